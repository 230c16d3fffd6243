//go:build tinygo && baremetal

package hal

import (
	"errors"
	"machine"
	"time"
)

const (
	picoCalcKbdAddr uint16 = 0x1F
	picoCalcKbdCmd         = 0x09
)

// Keyboard MCU event types.
const (
	picoCalcKeyDown byte = 0x01
	picoCalcKeyHeld byte = 0x02
	picoCalcKeyUp   byte = 0x03
)

// Non-text key codes reported by the keyboard MCU.
const (
	picoCalcKeyBackspace byte = 0x08
	picoCalcKeyEsc       byte = 0xB1
	picoCalcKeyDel       byte = 0xD4
	picoCalcKeyF1        byte = 0x81
)

type i2cKeyboard struct {
	i2c   *machine.I2C
	write [1]byte
	read  [2]byte
}

func initI2CKeyboard() (*i2cKeyboard, error) {
	// Prefer I2C1 (original PicoCalc wiring), but some TinyGo targets expose only I2C0.
	for _, bus := range []*machine.I2C{machine.I2C1, machine.I2C0} {
		if bus == nil {
			continue
		}
		for _, freq := range []uint32{100_000, 400_000} {
			if err := bus.Configure(machine.I2CConfig{
				SCL:       machine.GP7,
				SDA:       machine.GP6,
				Frequency: freq,
			}); err != nil {
				continue
			}

			k := &i2cKeyboard{i2c: bus, write: [1]byte{picoCalcKbdCmd}}

			// The keyboard MCU can be slow to answer right after power-on.
			for i := 0; i < 50; i++ {
				if err := k.poll(); err == nil {
					return k, nil
				}
				time.Sleep(10 * time.Millisecond)
			}
		}
	}

	return nil, errors.New("keyboard: I2C unavailable")
}

func (k *i2cKeyboard) poll() error {
	return k.i2c.Tx(picoCalcKbdAddr, k.write[:], k.read[:])
}

func (k *i2cKeyboard) readEvent() (KeyEvent, bool) {
	if err := k.poll(); err != nil {
		return KeyEvent{}, false
	}

	switch k.read[0] {
	case picoCalcKeyDown:
		return translatePicoCalcKey(k.read[1], true)
	case picoCalcKeyUp:
		return translatePicoCalcKey(k.read[1], false)
	default:
		// Idle (0x00) and held keys carry nothing new.
		return KeyEvent{}, false
	}
}

func translatePicoCalcKey(code byte, press bool) (KeyEvent, bool) {
	switch code {
	case 0:
		return KeyEvent{}, false
	case picoCalcKeyBackspace:
		return KeyEvent{Code: KeyBackspace, Press: press}, true
	case picoCalcKeyDel:
		return KeyEvent{Code: KeyDelete, Press: press}, true
	case picoCalcKeyEsc, picoCalcKeyF1:
		return KeyEvent{Code: KeyEscape, Press: press}, true
	case '\r', '\n':
		return KeyEvent{Code: KeyEnter, Press: press}, true
	}
	if code >= 0x80 {
		// Arrows, modifiers and function keys have no calculator meaning.
		return KeyEvent{}, false
	}
	return KeyEvent{Rune: rune(code), Press: press}, true
}
