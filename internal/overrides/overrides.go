// Package overrides loads, sanitizes and saves the user's custom shortcuts.
//
// Overrides are a sparse map of command ID to binding holding only the
// entries that differ from the computed defaults. They live as a single JSON
// object under one key of a state.KV:
//
//	{"merge":{"code":"KeyM","alt":true,"ctrl":true,"meta":false,"shift":false}}
//
// Parsing never fails: anything malformed is dropped. So is any entry that
// could not be a global shortcut (no alt, ctrl or meta, or a bare modifier
// code), since SetBinding would never have stored it. Such blobs are not
// reproduced by Save.
package overrides

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"github.com/tidwall/gjson"

	v1 "github.com/f9-o/hotkeys/api/v1"
	"github.com/f9-o/hotkeys/internal/binding"
	"github.com/f9-o/hotkeys/internal/core/state"
	"github.com/f9-o/hotkeys/pkg/errs"
)

// DefaultKey is the storage key used when none is configured.
const DefaultKey = "app.hotkeys"

var modifierFields = [...]string{"alt", "ctrl", "meta", "shift"}

// Load parses blob into an override map. Entries missing a field, carrying a
// non-boolean modifier, a non-string or empty code, or no alt/ctrl/meta are
// dropped. An unparseable blob yields an empty map.
func Load(blob string) map[string]v1.Binding {
	out := make(map[string]v1.Binding)
	if blob == "" || !gjson.Valid(blob) {
		return out
	}
	root := gjson.Parse(blob)
	if !root.IsObject() {
		return out
	}

	root.ForEach(func(key, value gjson.Result) bool {
		id := key.String()
		if id == "" || !value.IsObject() {
			return true
		}
		if b, ok := sanitize(value); ok {
			out[id] = b
		}
		return true
	})
	return out
}

func sanitize(entry gjson.Result) (v1.Binding, bool) {
	code := entry.Get("code")
	if code.Type != gjson.String || code.Str == "" {
		return v1.Binding{}, false
	}

	var raw v1.RawBinding
	raw.Code = &code.Str
	flags := [len(modifierFields)]*bool{}
	for i, name := range modifierFields {
		f := entry.Get(name)
		if f.Type != gjson.True && f.Type != gjson.False {
			return v1.Binding{}, false
		}
		v := f.Type == gjson.True
		flags[i] = &v
	}
	raw.Alt, raw.Ctrl, raw.Meta, raw.Shift = flags[0], flags[1], flags[2], flags[3]

	b := binding.Normalize(raw)
	if !binding.Valid(b) {
		return v1.Binding{}, false
	}
	return b, true
}

// Save serializes overrides into the canonical blob (keys sorted).
func Save(overrides map[string]v1.Binding) (string, error) {
	if overrides == nil {
		overrides = map[string]v1.Binding{}
	}
	// Command IDs are stored verbatim: no \u0026-style HTML escaping.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(overrides); err != nil {
		return "", errs.Wrap(err, errs.ErrStateWrite, "overrides.save")
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// Prune returns a copy of overrides without entries whose ID is not known.
func Prune(overrides map[string]v1.Binding, knownIDs []string) map[string]v1.Binding {
	known := make(map[string]bool, len(knownIDs))
	for _, id := range knownIDs {
		known[id] = true
	}
	out := make(map[string]v1.Binding, len(overrides))
	for id, b := range overrides {
		if known[id] {
			out[id] = b
		}
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Store
// ─────────────────────────────────────────────────────────────────────────────

// Store binds Load/Save to one key of a KV backend.
type Store struct {
	kv  state.KV
	key string
	log *slog.Logger
}

// NewStore returns a Store writing under key (DefaultKey when empty).
func NewStore(kv state.KV, key string, log *slog.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = slog.Default()
	}
	return &Store{kv: kv, key: key, log: log}
}

// Key returns the storage key.
func (s *Store) Key() string { return s.key }

// Read loads and sanitizes the persisted overrides. Backend failures and
// corrupt data both degrade to an empty map.
func (s *Store) Read(ctx context.Context) map[string]v1.Binding {
	out, err := s.Fetch(ctx)
	if err != nil {
		s.log.Warn("read overrides failed; using defaults", "key", s.key, "err", err)
		return map[string]v1.Binding{}
	}
	return out
}

// Fetch is Read with backend failures reported as ErrStateRead. Corrupt
// data is still not an error.
func (s *Store) Fetch(ctx context.Context) (map[string]v1.Binding, error) {
	blob, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrStateRead, "overrides.read").WithResource(s.key)
	}
	if !found {
		return map[string]v1.Binding{}, nil
	}
	out := Load(blob)
	if blob != "" && len(out) == 0 && !gjson.Valid(blob) {
		s.log.Warn("stored overrides are corrupt; ignoring", "key", s.key)
	}
	return out, nil
}

// Write persists overrides. An empty map deletes the key.
func (s *Store) Write(ctx context.Context, overrides map[string]v1.Binding) error {
	if len(overrides) == 0 {
		if err := s.kv.Delete(ctx, s.key); err != nil {
			return errs.Wrap(err, errs.ErrStateWrite, "overrides.write").WithResource(s.key)
		}
		return nil
	}
	blob, err := Save(overrides)
	if err != nil {
		return err
	}
	if err := s.kv.Put(ctx, s.key, blob); err != nil {
		return errs.Wrap(err, errs.ErrStateWrite, "overrides.write").WithResource(s.key)
	}
	return nil
}
