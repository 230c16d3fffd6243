package proto

import "unicode/utf8"

// KeyPressPayload encodes a MsgKeyPress payload: the UTF-8 key label.
func KeyPressPayload(label string) []byte {
	return []byte(label)
}

// DecodeKeyPressPayload decodes a KeyPressPayload.
func DecodeKeyPressPayload(payload []byte) (label string, ok bool) {
	if len(payload) == 0 || !utf8.Valid(payload) {
		return "", false
	}
	return string(payload), true
}

// maxOperandBytes bounds each operand in a CalcStatePayload so the whole
// payload fits one message.
const maxOperandBytes = 60

// CalcState is the calculator state as published to watchers.
type CalcState struct {
	ClearLabel string
	First      string
	Operator   string
	Second     string
}

// Display returns the text the calculator shows for s.
func (s CalcState) Display() string {
	if s.Second != "" {
		return s.Second
	}
	if s.First != "" {
		return s.First
	}
	return "0"
}

// CalcStatePayload encodes a MsgCalcState payload.
//
// Layout: four u8-length-prefixed UTF-8 strings (clear label, first operand,
// operator, second operand). Operands longer than 60 bytes keep their
// rightmost characters.
func CalcStatePayload(s CalcState) []byte {
	fields := [...]string{
		clip(s.ClearLabel, 4),
		keepTail(s.First, maxOperandBytes),
		clip(s.Operator, 1),
		keepTail(s.Second, maxOperandBytes),
	}
	n := 0
	for _, f := range fields {
		n += 1 + len(f)
	}
	buf := make([]byte, 0, n)
	for _, f := range fields {
		buf = append(buf, byte(len(f)))
		buf = append(buf, f...)
	}
	return buf
}

// DecodeCalcStatePayload decodes a CalcStatePayload.
func DecodeCalcStatePayload(payload []byte) (CalcState, bool) {
	var fields [4]string
	for i := range fields {
		if len(payload) < 1 {
			return CalcState{}, false
		}
		n := int(payload[0])
		payload = payload[1:]
		if len(payload) < n {
			return CalcState{}, false
		}
		fields[i] = string(payload[:n])
		payload = payload[n:]
	}
	return CalcState{
		ClearLabel: fields[0],
		First:      fields[1],
		Operator:   fields[2],
		Second:     fields[3],
	}, true
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	n := max
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func keepTail(s string, max int) string {
	if len(s) <= max {
		return s
	}
	i := len(s) - max
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return s[i:]
}
