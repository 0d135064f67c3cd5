package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestToFunctionName hex-escapes everything outside [A-Za-z0-9_].
func TestToFunctionName(t *testing.T) {
	assert.Equal(t, "E_16_4", ToFunctionName("E_16_4"))
	assert.Equal(t, "add2Emul", ToFunctionName("add.mul"))
	assert.Equal(t, "a20b", ToFunctionName("a b"))
	assert.Equal(t, "n4x4", ToFunctionName("4x4"))
	assert.Equal(t, "_", ToFunctionName(""))
}

// TestToFunctionNameDeterministic same input, same symbol.
func TestToFunctionNameDeterministic(t *testing.T) {
	name := "reduce<float>(axis=1)"
	assert.Equal(t, ToFunctionName(name), ToFunctionName(name))
}
