package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeypadSequenceEvaluates(t *testing.T) {
	k := NewKeypad(nil)

	display := k.PressAll("7", "+", "3", "=")

	assert.Equal(t, "10", display)
	assert.Equal(t, "7+3 =", k.Equation())
}

func TestKeypadReplacesLeadingZero(t *testing.T) {
	k := NewKeypad(nil)
	assert.Equal(t, "0", k.Display())

	k.Press("0")
	assert.Equal(t, "0", k.Display())
	k.Press("5")
	assert.Equal(t, "5", k.Display())
	k.Press(".")
	k.Press("0")
	assert.Equal(t, "5.0", k.Display())
}

func TestKeypadDelete(t *testing.T) {
	k := NewKeypad(nil)
	k.PressAll("1", "2", "√")
	assert.Equal(t, "12√", k.Display())

	k.Press(KeyDelete)
	assert.Equal(t, "12", k.Display())
	k.Press(KeyDelete)
	k.Press(KeyDelete)
	assert.Equal(t, "0", k.Display())
	k.Press(KeyDelete)
	assert.Equal(t, "0", k.Display())
}

func TestKeypadErrorAwaitsClear(t *testing.T) {
	k := NewKeypad(nil)
	k.PressAll("5", "/", "0")

	evaluated, ok := k.Press(KeyEquals)
	require.True(t, evaluated)
	require.False(t, ok)
	assert.Equal(t, ErrorToken, k.Display())
	assert.True(t, k.Failed())

	k.PressAll("1", KeyDelete, "+", KeyEquals)
	assert.Equal(t, ErrorToken, k.Display(), "only C is accepted after an error")

	k.Press(KeyClear)
	assert.Equal(t, "0", k.Display())
	assert.Empty(t, k.Equation())
	assert.Equal(t, "0", Evaluate(""))
}

func TestKeypadContinuesFromResult(t *testing.T) {
	k := NewKeypad(NewEvaluator(8))
	k.PressAll("2", "^", "3", "=")
	assert.Equal(t, "8", k.Display())
	assert.Equal(t, "2^3 =", k.Equation())

	k.PressAll("*", "2", "=")
	assert.Equal(t, "16", k.Display())
	assert.Equal(t, "8*2 =", k.Equation())
}

func TestKeypadIgnoresUnknownKeys(t *testing.T) {
	k := NewKeypad(nil)
	k.PressAll("x", "(", "4")
	assert.Equal(t, "4", k.Display())
}

func TestKeysAndSplitKeys(t *testing.T) {
	keys := Keys()
	require.Len(t, keys, 20)
	assert.Equal(t, KeyClear, keys[0])
	assert.Equal(t, KeyDelete, keys[19])

	assert.Equal(t, []string{"7", "+", "3", "="}, SplitKeys("7+3="))
	assert.Equal(t, []string{"C", "9", "DEL", "√", "4"}, SplitKeys("C 9 DEL √4"))
}
