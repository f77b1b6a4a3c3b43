package state

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, found, err := kv.Get(ctx, "app.hotkeys")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Put(ctx, "app.hotkeys", `{"a":1}`))
	require.NoError(t, kv.Put(ctx, "app.hotkeys", `{"a":2}`))

	v, found, err := kv.Get(ctx, "app.hotkeys")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"a":2}`, v)

	require.NoError(t, kv.Delete(ctx, "app.hotkeys"))
	require.NoError(t, kv.Delete(ctx, "app.hotkeys"), "deleting twice is fine")

	_, found, err = kv.Get(ctx, "app.hotkeys")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBackends(t *testing.T) {
	t.Run("bolt", func(t *testing.T) {
		kv, err := Open(Options{Backend: BackendBolt, BoltPath: filepath.Join(t.TempDir(), "state.db")})
		require.NoError(t, err)
		defer kv.Close()
		assert.IsType(t, &BoltKV{}, kv)
		exerciseKV(t, kv)
	})

	t.Run("sqlite file", func(t *testing.T) {
		kv, err := Open(Options{Backend: BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "nested", "state.sqlite")})
		require.NoError(t, err)
		defer kv.Close()
		assert.IsType(t, &SQLiteKV{}, kv)
		exerciseKV(t, kv)
	})

	t.Run("sqlite memory", func(t *testing.T) {
		kv, err := OpenSQLite(":memory:")
		require.NoError(t, err)
		defer kv.Close()
		exerciseKV(t, kv)
	})

	t.Run("memory", func(t *testing.T) {
		kv, err := Open(Options{Backend: BackendMemory})
		require.NoError(t, err)
		exerciseKV(t, kv)
		assert.Equal(t, 4, kv.(*MemoryKV).Writes())
	})
}

func TestBoltPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	kv, err := OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, kv.Put(ctx, "k", "v"))
	require.NoError(t, kv.Close())

	kv, err = OpenBolt(path)
	require.NoError(t, err)
	defer kv.Close()

	v, found, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", v)
}

func TestOpenErrors(t *testing.T) {
	t.Run("unsupported backend", func(t *testing.T) {
		_, err := Open(Options{Backend: "etcd"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported storage backend")
	})

	t.Run("bolt without path", func(t *testing.T) {
		_, err := Open(Options{Backend: BackendBolt})
		assert.Error(t, err)
	})

	t.Run("redis unreachable", func(t *testing.T) {
		// Port 1 on loopback refuses immediately.
		_, err := Open(Options{Backend: BackendRedis, Redis: RedisOptions{Host: "127.0.0.1", Port: 1}})
		assert.Error(t, err)
	})

	t.Run("redis bad address", func(t *testing.T) {
		_, err := Open(Options{Backend: BackendRedis, Redis: RedisOptions{Host: "127.0.0.1:0", Port: 6379}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis address")
	})
}
