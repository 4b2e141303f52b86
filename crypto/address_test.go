package crypto

import (
	"strings"
	"testing"
)

func TestRenderRoundTrip(t *testing.T) {
	var raw [20]byte
	raw[0] = 0xab
	raw[19] = 0x01
	rendered := Render(raw)
	if !strings.HasPrefix(rendered, "csp1") {
		t.Fatalf("unexpected prefix: %s", rendered)
	}
	parsed, err := ParseAccount(rendered)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed != raw {
		t.Fatalf("round trip mismatch: %x != %x", parsed, raw)
	}
}

func TestParseAccountHex(t *testing.T) {
	parsed, err := ParseAccount("0x00000000000000000000000000000000000000ff")
	if err != nil {
		t.Fatalf("parse hex: %v", err)
	}
	if parsed[19] != 0xff {
		t.Fatalf("unexpected bytes: %x", parsed)
	}
	if _, err := ParseAccount("0x1234"); err == nil {
		t.Fatalf("expected short hex to fail")
	}
	if _, err := ParseAccount("  "); err == nil {
		t.Fatalf("expected empty account to fail")
	}
}

func TestSystemAccountDeterministic(t *testing.T) {
	a := SystemAccount("holding")
	b := SystemAccount(" Holding ")
	if a != b {
		t.Fatalf("expected normalised labels to match")
	}
	if a == SystemAccount("escrow") {
		t.Fatalf("expected distinct labels to differ")
	}
	if a == ([20]byte{}) {
		t.Fatalf("expected non-zero account")
	}
}
