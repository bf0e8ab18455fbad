package logging

import "testing"

func TestMaskFieldRedactsProvider(t *testing.T) {
	attr := MaskField("provider", "alice")
	if attr.Value.String() != RedactedValue {
		t.Fatalf("expected provider to be redacted, got %q", attr.Value.String())
	}
}

func TestMaskFieldAllowlistsKnownKeys(t *testing.T) {
	attr := MaskField("pool", "P1")
	if attr.Value.String() != "P1" {
		t.Fatalf("expected pool to pass through unredacted, got %q", attr.Value.String())
	}
}

func TestMaskFieldLeavesEmptyValuesAlone(t *testing.T) {
	attr := MaskField("provider", "")
	if attr.Value.String() != "" {
		t.Fatalf("expected empty value to pass through, got %q", attr.Value.String())
	}
}

func TestIsAllowlistedCaseInsensitive(t *testing.T) {
	if !IsAllowlisted("POOL") {
		t.Fatal("expected case-insensitive allowlist match")
	}
	if IsAllowlisted("provider") {
		t.Fatal("provider must never be allowlisted")
	}
}
