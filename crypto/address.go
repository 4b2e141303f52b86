package crypto

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// AddressPrefix is the human-readable part used when rendering accounts.
type AddressPrefix string

const CSPPrefix AddressPrefix = "csp"

// Address is a 20-byte account identifier rendered with a bech32 prefix.
type Address struct {
	prefix AddressPrefix
	bytes  [20]byte
}

func NewAddress(prefix AddressPrefix, b [20]byte) Address {
	return Address{prefix: prefix, bytes: b}
}

func (a Address) String() string {
	conv, err := bech32.ConvertBits(a.bytes[:], 8, 5, true)
	if err != nil {
		panic(err)
	}
	encoded, err := bech32.Encode(string(a.prefix), conv)
	if err != nil {
		panic(err)
	}
	return encoded
}

func (a Address) Bytes() [20]byte { return a.bytes }

func (a Address) Prefix() AddressPrefix { return a.prefix }

// Render formats raw account bytes with the default prefix.
func Render(addr [20]byte) string {
	return NewAddress(CSPPrefix, addr).String()
}

// DecodeAddress parses a bech32 encoded account.
func DecodeAddress(addrStr string) (Address, error) {
	prefix, decoded, err := bech32.Decode(addrStr)
	if err != nil {
		return Address{}, fmt.Errorf("invalid bech32 string: %w", err)
	}
	conv, err := bech32.ConvertBits(decoded, 5, 8, false)
	if err != nil {
		return Address{}, fmt.Errorf("error converting bits: %w", err)
	}
	if len(conv) != 20 {
		return Address{}, fmt.Errorf("address must be 20 bytes long, got %d", len(conv))
	}
	var out [20]byte
	copy(out[:], conv)
	return NewAddress(AddressPrefix(prefix), out), nil
}

// ParseAccount accepts either a bech32 account ("csp1...") or a 0x-prefixed
// hex address and returns the raw bytes.
func ParseAccount(value string) ([20]byte, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return [20]byte{}, fmt.Errorf("account must not be empty")
	}
	if strings.HasPrefix(trimmed, "0x") || strings.HasPrefix(trimmed, "0X") {
		if !common.IsHexAddress(trimmed) {
			return [20]byte{}, fmt.Errorf("invalid hex account %q", trimmed)
		}
		return common.HexToAddress(trimmed), nil
	}
	addr, err := DecodeAddress(trimmed)
	if err != nil {
		return [20]byte{}, err
	}
	if addr.Prefix() != CSPPrefix {
		return [20]byte{}, fmt.Errorf("unexpected account prefix %q", addr.Prefix())
	}
	return addr.Bytes(), nil
}

// SystemAccount derives a deterministic account for a system-held balance
// such as the vesting holding pool or the license escrow.
func SystemAccount(label string) [20]byte {
	digest := ethcrypto.Keccak256([]byte("connectsphere/system/" + strings.ToLower(strings.TrimSpace(label))))
	var out [20]byte
	copy(out[:], digest[12:])
	return out
}
