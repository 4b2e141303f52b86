package content

import (
	"encoding/binary"
	"fmt"
)

// engineState is the subset of the state manager the registry relies on.
type engineState interface {
	KVGet(key []byte, out interface{}) (bool, error)
	KVPut(key []byte, value interface{}) error
	KVAppend(key []byte, value []byte) error
	KVGetList(key []byte, out interface{}) error
	HasRole(role string, addr []byte) bool
	IsPaused(module string) bool
}

var (
	nextContentIDKey = []byte("content/next-id")
	nextLicenseIDKey = []byte("content/license/next-id")
	paramsKey        = []byte("content/params")
)

func contentKey(id uint64) []byte {
	return []byte(fmt.Sprintf("content/item/%d", id))
}

func likedKey(id uint64, account [20]byte) []byte {
	return []byte(fmt.Sprintf("content/liked/%d/%x", id, account))
}

func reportedKey(id uint64, account [20]byte) []byte {
	return []byte(fmt.Sprintf("content/reported/%d/%x", id, account))
}

func creatorKey(wallet [20]byte) []byte {
	return []byte(fmt.Sprintf("content/creator/%x", wallet))
}

func creatorIndexKey(wallet [20]byte) []byte {
	return []byte(fmt.Sprintf("content/creator-index/%x", wallet))
}

func licenseKey(id uint64) []byte {
	return []byte(fmt.Sprintf("content/license/%d", id))
}

func contentLicensesKey(contentID uint64) []byte {
	return []byte(fmt.Sprintf("content/licenses/%d", contentID))
}

func (e *Engine) nextID(key []byte) (uint64, error) {
	var next uint64
	if _, err := e.state.KVGet(key, &next); err != nil {
		return 0, err
	}
	if err := e.state.KVPut(key, next+1); err != nil {
		return 0, err
	}
	return next, nil
}

func (e *Engine) loadContent(id uint64) (*Content, error) {
	item := new(Content)
	ok, err := e.state.KVGet(contentKey(id), item)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrContentNotFound
	}
	return item, nil
}

func (e *Engine) storeContent(item *Content) error {
	return e.state.KVPut(contentKey(item.ID), item)
}

// loadCreator returns the stored creator record or a fresh one for wallets
// that have not interacted with the registry yet.
func (e *Engine) loadCreator(wallet [20]byte) (*Creator, error) {
	record := new(Creator)
	ok, err := e.state.KVGet(creatorKey(wallet), record)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Creator{Wallet: wallet}, nil
	}
	return record, nil
}

func (e *Engine) storeCreator(record *Creator) error {
	return e.state.KVPut(creatorKey(record.Wallet), record)
}

// Index lists hold big-endian ids. Ids are never reused, so the manager's
// duplicate suppression never drops an entry.
func (e *Engine) loadIDs(key []byte) ([]uint64, error) {
	var raw [][]byte
	if err := e.state.KVGetList(key, &raw); err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(raw))
	for _, entry := range raw {
		if len(entry) != 8 {
			return nil, fmt.Errorf("content: malformed index entry under %s", key)
		}
		ids = append(ids, binary.BigEndian.Uint64(entry))
	}
	return ids, nil
}

func (e *Engine) appendID(key []byte, id uint64) error {
	return e.state.KVAppend(key, binary.BigEndian.AppendUint64(nil, id))
}

func (e *Engine) flag(key []byte) (bool, error) {
	var set bool
	if _, err := e.state.KVGet(key, &set); err != nil {
		return false, err
	}
	return set, nil
}

func (e *Engine) loadLicense(id uint64) (*License, bool, error) {
	license := new(License)
	ok, err := e.state.KVGet(licenseKey(id), license)
	if err != nil || !ok {
		return nil, false, err
	}
	return license, true, nil
}

func (e *Engine) loadParams() (Params, error) {
	params := DefaultParams()
	if _, err := e.state.KVGet(paramsKey, &params); err != nil {
		return Params{}, err
	}
	return params, nil
}

func (e *Engine) storeParams(params Params) error {
	return e.state.KVPut(paramsKey, &params)
}
