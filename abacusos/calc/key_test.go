package calc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseKeyLabels(t *testing.T) {
	kp := DefaultKeypad()
	for _, row := range kp {
		for _, b := range row {
			k, ok := ParseKey(b.Text)
			if !ok {
				t.Fatalf("ParseKey(%q) failed", b.Text)
			}
			if k != b.Key {
				t.Fatalf("ParseKey(%q) = %+v, want %+v", b.Text, k, b.Key)
			}
			if k.String() != b.Text {
				t.Fatalf("%+v.String() = %q, want %q", k, k.String(), b.Text)
			}
		}
	}
}

func TestParseKeyRejectsUnknown(t *testing.T) {
	for _, label := range []string{"", "x", "10", "AC ", "=="} {
		if k, ok := ParseKey(label); ok {
			t.Fatalf("ParseKey(%q) = %+v, want failure", label, k)
		}
	}
}

func TestParseKeys(t *testing.T) {
	got, err := ParseKeys("AC 12 + 3.5 ⌫ =")
	if err != nil {
		t.Fatalf("ParseKeys: %v", err)
	}
	want := []Key{Clear, Digit('1'), Digit('2'), Op('+'), Digit('3'), Digit('.'), Digit('5'), Backspace, Equals}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ParseKeys (-want +got):\n%s", diff)
	}

	if got := FormatKeys(got); got != "AC12+3.5⌫=" {
		t.Fatalf("FormatKeys = %q", got)
	}
}

func TestParseKeysRoundTrip(t *testing.T) {
	script := "AC7^2%-9/0*1+⌫=AC"
	keys, err := ParseKeys(script)
	if err != nil {
		t.Fatalf("ParseKeys: %v", err)
	}
	again, err := ParseKeys(FormatKeys(keys))
	if err != nil {
		t.Fatalf("ParseKeys(FormatKeys): %v", err)
	}
	if diff := cmp.Diff(keys, again); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}

func TestParseKeysError(t *testing.T) {
	if _, err := ParseKeys("12x3"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestKeyKindString(t *testing.T) {
	if got := Op('+').Kind.String(); got != "binary_op" {
		t.Fatalf("kind = %q", got)
	}
	if got := KeyKind(200).String(); got != "unknown" {
		t.Fatalf("kind = %q", got)
	}
}
