package bspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndResolve(t *testing.T) {
	set := NewStepSet().Given(`^a number (\d+)$`, func(n int) error { return nil })
	Register("Math", set)
	defer Unregister("Math")

	got, ok := Resolve("Math")
	require.True(t, ok)
	assert.Same(t, set, got)
}

func TestRegistry_ResolveMiss(t *testing.T) {
	got, ok := Resolve("Nope")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestRegistry_ReplacesPreviousRegistration(t *testing.T) {
	first := NewStepSet()
	second := NewStepSet()
	Register("Math", first)
	Register("Math", second)
	defer Unregister("Math")

	got, ok := Resolve("Math")
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestRegistry_RegisteredIsSorted(t *testing.T) {
	Register("Strings", NewStepSet())
	Register("Math", NewStepSet())
	defer Unregister("Strings")
	defer Unregister("Math")

	assert.Equal(t, []string{"Math", "Strings"}, Registered())
}

func TestRegistry_Unregister(t *testing.T) {
	Register("Math", NewStepSet())
	Unregister("Math")

	_, ok := Resolve("Math")
	assert.False(t, ok)
}
