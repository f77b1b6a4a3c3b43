// Package commands provides the shared context type and all CLI subcommands.
package commands

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/f9-o/hotkeys/internal/core/config"
	"github.com/f9-o/hotkeys/internal/core/logger"
	"github.com/f9-o/hotkeys/internal/core/state"
	"github.com/f9-o/hotkeys/internal/hotkeys"
)

// contextKey is the key type for values stored in a command context.
type contextKey string

const runtimeContextKey contextKey = "hotkeys.runtime"

// GlobalFlags holds the parsed global flags for use by subcommands.
type GlobalFlags struct {
	Debug      bool
	JSONOutput bool
	Platform   string
}

// Runtime is the shared dependency bundle injected into each subcommand via context.
type Runtime struct {
	Config  *config.Config
	Log     *logger.Logger
	State   state.KV
	Manager *hotkeys.Manager
	Flags   GlobalFlags

	closeOnce sync.Once
}

// Close releases the state backend and log files. Later calls are no-ops.
func (rt *Runtime) Close() (err error) {
	rt.closeOnce.Do(func() { err = rt.close() })
	return err
}

func (rt *Runtime) close() error {
	var first error
	if rt.State != nil {
		first = rt.State.Close()
	}
	if rt.Log != nil {
		if err := rt.Log.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewContext returns a new context carrying the Runtime.
func NewContext(parent context.Context, rt *Runtime) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithValue(parent, runtimeContextKey, rt)
}

// RuntimeFrom returns the Runtime in ctx, if any.
func RuntimeFrom(ctx context.Context) (*Runtime, bool) {
	if ctx == nil {
		return nil, false
	}
	rt, ok := ctx.Value(runtimeContextKey).(*Runtime)
	return rt, ok && rt != nil
}

// FromContext extracts the Runtime from ctx. Panics if not present (programming error).
func FromContext(ctx context.Context) *Runtime {
	rt, ok := ctx.Value(runtimeContextKey).(*Runtime)
	if !ok || rt == nil {
		panic("hotkeys: Runtime not found in context; missing PersistentPreRunE?")
	}
	return rt
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
