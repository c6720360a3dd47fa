package expr

import "strings"

// Keypad buttons with special behaviour.
const (
	KeyClear  = "C"
	KeyDelete = "DEL"
	KeyEquals = "="
	KeySqrt   = "√"
)

var keypadLayout = []string{
	KeyClear, KeySqrt, "^", "/",
	"7", "8", "9", "*",
	"4", "5", "6", "-",
	"1", "2", "3", "+",
	"0", ".", KeyEquals, KeyDelete,
}

// Keys returns the keypad buttons in row-major layout order, four per row.
func Keys() []string {
	out := make([]string, len(keypadLayout))
	copy(out, keypadLayout)
	return out
}

// IsKey reports whether key is a keypad button.
func IsKey(key string) bool {
	for _, k := range keypadLayout {
		if k == key {
			return true
		}
	}
	return false
}

// Keypad is the calculator display state driven one button press at a time.
type Keypad struct {
	eval     *Evaluator
	display  string
	equation string
}

// NewKeypad returns a cleared keypad. A nil evaluator uses the package default.
func NewKeypad(eval *Evaluator) *Keypad {
	if eval == nil {
		eval = defaultEvaluator
	}
	return &Keypad{eval: eval, display: "0"}
}

// Display is the current display token.
func (k *Keypad) Display() string { return k.display }

// Equation is the last successfully evaluated expression followed by " =".
func (k *Keypad) Equation() string { return k.equation }

// Failed reports whether the display shows ErrorToken.
func (k *Keypad) Failed() bool { return k.display == ErrorToken }

// Press applies one button. It reports whether the press was an evaluation
// and, if so, whether it succeeded. Unknown keys are ignored, and while the
// display shows ErrorToken only KeyClear is accepted.
func (k *Keypad) Press(key string) (evaluated, ok bool) {
	if key == KeyClear {
		k.display = "0"
		k.equation = ""
		return false, false
	}
	if k.Failed() || !IsKey(key) {
		return false, false
	}

	switch key {
	case KeyDelete:
		if len([]rune(k.display)) > 1 {
			r := []rune(k.display)
			k.display = string(r[:len(r)-1])
		} else {
			k.display = "0"
		}
		return false, false
	case KeyEquals:
		v, err := k.eval.Eval(k.display)
		if err != nil {
			k.display = ErrorToken
			return true, false
		}
		k.equation = k.display + " ="
		k.display = FormatNumber(v)
		return true, true
	default:
		if k.display == "0" {
			k.display = key
		} else {
			k.display += key
		}
		return false, false
	}
}

// PressAll applies keys in order and returns the final display.
func (k *Keypad) PressAll(keys ...string) string {
	for _, key := range keys {
		k.Press(key)
	}
	return k.display
}

// SplitKeys splits a compact key sequence such as "7+3=" or "C DEL" into
// keypad buttons. Unknown characters are dropped.
func SplitKeys(seq string) []string {
	var keys []string
	for _, field := range strings.Fields(seq) {
		if IsKey(field) {
			keys = append(keys, field)
			continue
		}
		for _, r := range field {
			if s := string(r); IsKey(s) {
				keys = append(keys, s)
			}
		}
	}
	return keys
}
