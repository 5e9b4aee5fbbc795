package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKebabCase(t *testing.T) {
	cases := map[string]string{
		"Button":            "button",
		"ButtonBase":        "button-base",
		"ToggleButtonGroup": "toggle-button-group",
		"HTMLElementType":   "html-element-type",
		"Grid2":             "grid2",
		"Unstable_Grid2":    "unstable-grid2",
	}
	for in, want := range cases {
		assert.Equal(t, want, KebabCase(in), in)
	}
}

func TestLowerFirst(t *testing.T) {
	assert.Equal(t, "button", LowerFirst("Button"))
	assert.Equal(t, "", LowerFirst(""))
}

func TestTri(t *testing.T) {
	assert.False(t, TriUnset.IsSet())
	assert.Equal(t, TriFalse, TriUnset.Or(TriFalse))
	assert.Equal(t, TriTrue, TriTrue.Or(TriFalse))
	assert.Equal(t, TriFalse, TriFalse.Or(TriTrue), "false must not be treated as unset")

	b, err := TriFalse.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, "false", string(b))

	var got Tri
	assert.NoError(t, got.UnmarshalJSON([]byte("true")))
	assert.Equal(t, TriTrue, got)
}

func TestGetOptimalPoolSizeWithOverride(t *testing.T) {
	assert.Equal(t, 3, GetOptimalPoolSizeWithOverride(3))
	size := GetOptimalPoolSizeWithOverride(0)
	assert.GreaterOrEqual(t, size, 4)
	assert.LessOrEqual(t, size, 32)
}
