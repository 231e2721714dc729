package terminal

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withTerminal(t *testing.T, fn func(int) bool) {
	t.Helper()
	orig := isTerminal
	isTerminal = fn
	t.Cleanup(func() { isTerminal = orig })
}

func TestIsInteractive(t *testing.T) {
	withTerminal(t, func(int) bool { return true })
	assert.True(t, IsInteractive())

	stdin := int(os.Stdin.Fd())
	withTerminal(t, func(fd int) bool { return fd != stdin })
	assert.False(t, IsInteractive())
}

func TestIsTerminalWriter(t *testing.T) {
	withTerminal(t, func(int) bool { return true })
	assert.False(t, IsTerminalWriter(&bytes.Buffer{}))
	assert.True(t, IsTerminalWriter(os.Stderr))

	withTerminal(t, func(int) bool { return false })
	assert.False(t, IsTerminalWriter(os.Stderr))
}
