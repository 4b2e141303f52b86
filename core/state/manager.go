package state

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"connectsphere/storage"
)

var errCommitted = errors.New("state: overlay already committed or discarded")

// Manager provides RLP-encoded key/value access to ledger state. A root
// manager reads and writes the backing database directly. Begin returns an
// overlay whose writes stay private until Commit flushes them in one batch.
//
// Manager is not safe for concurrent use; callers serialise access.
type Manager struct {
	db      storage.Database
	base    *Manager
	pending map[string][]byte
	order   []string
	closed  bool
}

// NewManager creates a root state manager on top of the supplied database.
func NewManager(db storage.Database) *Manager {
	return &Manager{db: db}
}

// Begin opens a write overlay on top of the receiver.
func (m *Manager) Begin() *Manager {
	return &Manager{
		db:      m.db,
		base:    m,
		pending: make(map[string][]byte),
	}
}

// Pending reports the number of keys written through the overlay.
func (m *Manager) Pending() int { return len(m.order) }

// Commit applies every buffered write to the parent. When the parent is the
// root manager the writes go to storage in a single batch.
func (m *Manager) Commit() error {
	if m.base == nil {
		return nil
	}
	if m.closed {
		return errCommitted
	}
	m.closed = true
	if len(m.order) == 0 {
		return nil
	}
	if m.base.base != nil {
		for _, key := range m.order {
			m.base.stage(key, m.pending[key])
		}
		return nil
	}
	batch := m.db.NewBatch()
	for _, key := range m.order {
		batch.Put([]byte(key), m.pending[key])
	}
	return batch.Write()
}

// Discard drops the buffered writes.
func (m *Manager) Discard() {
	m.closed = true
	m.pending = nil
	m.order = nil
}

func (m *Manager) stage(key string, value []byte) {
	if _, ok := m.pending[key]; !ok {
		m.order = append(m.order, key)
	}
	m.pending[key] = value
}

func (m *Manager) get(key []byte) ([]byte, error) {
	if m.pending != nil {
		if value, ok := m.pending[string(key)]; ok {
			return value, nil
		}
	}
	if m.base != nil {
		return m.base.get(key)
	}
	if m.db == nil {
		return nil, fmt.Errorf("state manager unavailable")
	}
	value, err := m.db.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	return value, err
}

func (m *Manager) put(key, value []byte) error {
	if m.base != nil {
		if m.closed {
			return errCommitted
		}
		m.stage(string(key), append([]byte(nil), value...))
		return nil
	}
	if m.db == nil {
		return fmt.Errorf("state manager unavailable")
	}
	return m.db.Put(key, value)
}

var (
	rolePrefix  = []byte("role:")
	pausePrefix = []byte("pause:")
)

func roleKey(role string) []byte {
	buf := make([]byte, len(rolePrefix)+len(role))
	copy(buf, rolePrefix)
	copy(buf[len(rolePrefix):], role)
	return ethcrypto.Keccak256(buf)
}

func pauseKey(module string) []byte {
	normalized := strings.ToLower(strings.TrimSpace(module))
	buf := make([]byte, len(pausePrefix)+len(normalized))
	copy(buf, pausePrefix)
	copy(buf[len(pausePrefix):], normalized)
	return ethcrypto.Keccak256(buf)
}

func kvKey(key []byte) []byte {
	return ethcrypto.Keccak256(key)
}

// SetRole associates an address with the specified role. Duplicate assignments
// are ignored while the stored list remains sorted for determinism.
func (m *Manager) SetRole(role string, addr []byte) error {
	trimmed := strings.TrimSpace(role)
	if trimmed == "" {
		return fmt.Errorf("role must not be empty")
	}
	if len(addr) == 0 {
		return fmt.Errorf("address must not be empty")
	}
	members, err := m.RoleMembers(trimmed)
	if err != nil {
		return err
	}
	for _, existing := range members {
		if bytes.Equal(existing, addr) {
			return nil
		}
	}
	members = append(members, append([]byte(nil), addr...))
	sort.Slice(members, func(i, j int) bool {
		return bytes.Compare(members[i], members[j]) < 0
	})
	return m.writeRole(trimmed, members)
}

// RevokeRole removes the address from the role. Missing members are ignored.
func (m *Manager) RevokeRole(role string, addr []byte) error {
	trimmed := strings.TrimSpace(role)
	if trimmed == "" {
		return fmt.Errorf("role must not be empty")
	}
	members, err := m.RoleMembers(trimmed)
	if err != nil {
		return err
	}
	kept := members[:0]
	for _, existing := range members {
		if !bytes.Equal(existing, addr) {
			kept = append(kept, existing)
		}
	}
	return m.writeRole(trimmed, kept)
}

func (m *Manager) writeRole(role string, members [][]byte) error {
	encoded, err := rlp.EncodeToBytes(members)
	if err != nil {
		return err
	}
	return m.put(roleKey(role), encoded)
}

// RoleMembers returns all addresses assigned to the provided role.
func (m *Manager) RoleMembers(role string) ([][]byte, error) {
	data, err := m.get(roleKey(strings.TrimSpace(role)))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return [][]byte{}, nil
	}
	var members [][]byte
	if err := rlp.DecodeBytes(data, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// HasRole reports whether the provided address is associated with the
// specified role. Errors while reading the underlying state result in a false
// return so authorisation fails closed.
func (m *Manager) HasRole(role string, addr []byte) bool {
	if len(addr) == 0 {
		return false
	}
	members, err := m.RoleMembers(role)
	if err != nil {
		return false
	}
	for _, member := range members {
		if bytes.Equal(member, addr) {
			return true
		}
	}
	return false
}

// SetPaused stores the paused flag for a module.
func (m *Manager) SetPaused(module string, paused bool) error {
	if strings.TrimSpace(module) == "" {
		return fmt.Errorf("module must not be empty")
	}
	encoded, err := rlp.EncodeToBytes(paused)
	if err != nil {
		return err
	}
	return m.put(pauseKey(module), encoded)
}

// IsPaused reports whether the module is paused. Unreadable state is treated
// as paused.
func (m *Manager) IsPaused(module string) bool {
	data, err := m.get(pauseKey(module))
	if err != nil {
		return true
	}
	if len(data) == 0 {
		return false
	}
	var paused bool
	if err := rlp.DecodeBytes(data, &paused); err != nil {
		return true
	}
	return paused
}

// KVPut stores the provided value under the supplied key using RLP encoding.
// The key is hashed with keccak256 before it reaches storage.
func (m *Manager) KVPut(key []byte, value interface{}) error {
	if len(key) == 0 {
		return fmt.Errorf("kv: key must not be empty")
	}
	encoded, err := rlp.EncodeToBytes(value)
	if err != nil {
		return err
	}
	return m.put(kvKey(key), encoded)
}

// KVGet retrieves the value stored under the supplied key and decodes it into
// the provided destination. The boolean return value indicates whether the key
// existed in state.
func (m *Manager) KVGet(key []byte, out interface{}) (bool, error) {
	if len(key) == 0 {
		return false, fmt.Errorf("kv: key must not be empty")
	}
	data, err := m.get(kvKey(key))
	if err != nil {
		return false, err
	}
	if len(data) == 0 {
		return false, nil
	}
	if out == nil {
		return true, nil
	}
	if err := rlp.DecodeBytes(data, out); err != nil {
		return false, err
	}
	return true, nil
}

// KVAppend appends the provided value to the RLP-encoded byte slice list stored
// under the supplied key. Duplicate values are ignored to keep the index
// deterministic.
func (m *Manager) KVAppend(key []byte, value []byte) error {
	if len(key) == 0 {
		return fmt.Errorf("kv: key must not be empty")
	}
	hashed := kvKey(key)
	data, err := m.get(hashed)
	if err != nil {
		return err
	}
	var list [][]byte
	if len(data) > 0 {
		if err := rlp.DecodeBytes(data, &list); err != nil {
			return err
		}
	}
	for _, existing := range list {
		if bytes.Equal(existing, value) {
			return nil
		}
	}
	list = append(list, append([]byte(nil), value...))
	encoded, err := rlp.EncodeToBytes(list)
	if err != nil {
		return err
	}
	return m.put(hashed, encoded)
}

// KVGetList retrieves an RLP-encoded slice stored under the provided key and
// decodes it into the supplied destination slice pointer. When no value is
// present the destination is initialised with an empty slice.
func (m *Manager) KVGetList(key []byte, out interface{}) error {
	if len(key) == 0 {
		return fmt.Errorf("kv: key must not be empty")
	}
	data, err := m.get(kvKey(key))
	if err != nil {
		return err
	}
	if len(data) == 0 {
		val := reflect.ValueOf(out)
		if val.Kind() != reflect.Ptr || val.IsNil() {
			return fmt.Errorf("kv: destination must be a non-nil pointer")
		}
		elem := val.Elem()
		if elem.Kind() != reflect.Slice {
			return fmt.Errorf("kv: destination must point to a slice")
		}
		elem.Set(reflect.MakeSlice(elem.Type(), 0, 0))
		return nil
	}
	return rlp.DecodeBytes(data, out)
}
