package calc

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// KeyKind is the category of a calculator key.
type KeyKind uint8

const (
	KeyUnknown KeyKind = iota
	KeyClear
	KeyBackspace
	KeyPercent
	KeyBinaryOp
	KeyMinus
	KeyEquals
	KeyDigit
)

func (k KeyKind) String() string {
	switch k {
	case KeyClear:
		return "clear"
	case KeyBackspace:
		return "backspace"
	case KeyPercent:
		return "percent"
	case KeyBinaryOp:
		return "binary_op"
	case KeyMinus:
		return "minus"
	case KeyEquals:
		return "equals"
	case KeyDigit:
		return "digit"
	default:
		return "unknown"
	}
}

// Key is one button press.
//
// Char is the operator for KeyBinaryOp ('^', '/', '*', '+') and the typed
// character for KeyDigit ('0'-'9' or '.'). It is zero for the other kinds.
type Key struct {
	Kind KeyKind
	Char rune
}

// Button labels as they appear on the keypad.
const (
	LabelClear     = "AC"
	LabelClearOne  = "C"
	LabelBackspace = "⌫"
)

var (
	Clear     = Key{Kind: KeyClear}
	Backspace = Key{Kind: KeyBackspace}
	Percent   = Key{Kind: KeyPercent}
	Minus     = Key{Kind: KeyMinus}
	Equals    = Key{Kind: KeyEquals}
)

// Digit returns the key for '0'-'9' or '.'.
func Digit(r rune) Key { return Key{Kind: KeyDigit, Char: r} }

// Op returns the key for one of '^', '/', '*', '+'.
func Op(r rune) Key { return Key{Kind: KeyBinaryOp, Char: r} }

// String returns the keypad label.
func (k Key) String() string {
	switch k.Kind {
	case KeyClear:
		return LabelClear
	case KeyBackspace:
		return LabelBackspace
	case KeyPercent:
		return "%"
	case KeyMinus:
		return "-"
	case KeyEquals:
		return "="
	case KeyBinaryOp, KeyDigit:
		return string(k.Char)
	default:
		return ""
	}
}

// ParseKey maps a keypad label to a key.
//
// Both captions of the clear button ("AC" and "C") map to KeyClear.
func ParseKey(label string) (Key, bool) {
	switch label {
	case LabelClear, LabelClearOne:
		return Clear, true
	case LabelBackspace:
		return Backspace, true
	case "%":
		return Percent, true
	case "-":
		return Minus, true
	case "=":
		return Equals, true
	case "^", "/", "*", "+":
		return Op(rune(label[0])), true
	case ".":
		return Digit('.'), true
	}
	if len(label) == 1 && label[0] >= '0' && label[0] <= '9' {
		return Digit(rune(label[0])), true
	}
	return Key{}, false
}

// ParseKeys tokenizes a key script such as "12+3=" or "AC 7 / 0 =".
//
// Whitespace separates nothing and is skipped. "AC" and "C" clear, "<" is an
// alias for backspace.
func ParseKeys(s string) ([]Key, error) {
	var keys []Key
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
			continue
		case strings.HasPrefix(s[i:], LabelClear):
			keys = append(keys, Clear)
			i += len(LabelClear)
			continue
		case r == '<':
			keys = append(keys, Backspace)
			i += size
			continue
		}
		k, ok := ParseKey(s[i : i+size])
		if !ok {
			return nil, fmt.Errorf("unknown key %q at offset %d", r, i)
		}
		keys = append(keys, k)
		i += size
	}
	return keys, nil
}

// FormatKeys joins keys back into a script accepted by ParseKeys.
func FormatKeys(keys []Key) string {
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k.String())
	}
	return b.String()
}
