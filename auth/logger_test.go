package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKvLineFormatsPairs(t *testing.T) {
	line := kvLine("[WRN] AUTH", "login failed", []any{"email", "pia@example.com", "attempts", 3})
	assert.Equal(t, "[WRN] AUTH login failed email=pia@example.com attempts=3\n", line)
}

func TestKvLineWithoutArgs(t *testing.T) {
	assert.Equal(t, "[INF] AUTH session issued\n", kvLine("[INF] AUTH", "session issued", nil))
}

func TestKvLineDanglingKey(t *testing.T) {
	// An odd trailing arg is printed bare rather than dropped.
	line := kvLine("[DBG] AUTH", "rule hit", []any{"path", "/cart", "orphan"})
	assert.Equal(t, "[DBG] AUTH rule hit path=/cart orphan\n", line)
}
