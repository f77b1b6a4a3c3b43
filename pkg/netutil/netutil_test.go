package netutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitHostPort(t *testing.T) {
	tests := []struct {
		addr     string
		wantHost string
		wantPort int
	}{
		{"127.0.0.1", "127.0.0.1", 6379},
		{"redis.internal:6380", "redis.internal", 6380},
		{"[::1]:7000", "::1", 7000},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			host, port, err := SplitHostPort(tt.addr, 6379)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantPort, port)
		})
	}

	_, _, err := SplitHostPort("redis:0", 6379)
	assert.Error(t, err)
}

func TestJoinHostPort(t *testing.T) {
	assert.Equal(t, "localhost:6379", JoinHostPort("localhost", 6379))
	assert.Equal(t, "[::1]:6379", JoinHostPort("::1", 6379))
}

func TestIsValidPort(t *testing.T) {
	assert.True(t, IsValidPort(1))
	assert.True(t, IsValidPort(65535))
	assert.False(t, IsValidPort(0))
	assert.False(t, IsValidPort(70000))
}
