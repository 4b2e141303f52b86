package events

import (
	"math/big"
	"strconv"
	"strings"

	"connectsphere/crypto"
)

func formatAmount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func intToString(v int64) string {
	return strconv.FormatInt(v, 10)
}

func uintToString(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func boolToString(v bool) string {
	return strconv.FormatBool(v)
}

func addr(a [20]byte) string {
	return crypto.Render(a)
}

func normalizeAsset(asset string) string {
	trimmed := strings.TrimSpace(asset)
	if trimmed == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(trimmed)
}
