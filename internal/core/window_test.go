// ABOUTME: Tests for the bounded recent-statement window
// ABOUTME: Checks ring-buffer eviction, ordering and the minimum capacity
package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecentWindow(t *testing.T) {
	w := newRecentWindow(2)

	_, ok := w.last()
	assert.False(t, ok)
	assert.Empty(t, w.items())

	w.append("a")
	last, ok := w.last()
	assert.True(t, ok)
	assert.Equal(t, "a", last)

	w.append("b")
	w.append("c")
	last, _ = w.last()
	assert.Equal(t, "c", last)
	assert.Equal(t, []string{"b", "c"}, w.items())
}

func TestRecentWindow_MinimumCapacity(t *testing.T) {
	w := newRecentWindow(0)
	w.append("a")
	w.append("b")

	last, ok := w.last()
	assert.True(t, ok)
	assert.Equal(t, "b", last)
	assert.Equal(t, []string{"b"}, w.items())
}
