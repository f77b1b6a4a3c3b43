// Package registry reads the command manifest that feeds the shortcut
// allocator and watches it for edits.
package registry

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	v1 "github.com/f9-o/hotkeys/api/v1"
	"github.com/f9-o/hotkeys/pkg/errs"
)

// DefaultFile is the manifest file name looked up next to the config.
const DefaultFile = "commands.yaml"

// Manifest is the on-disk shape of the command registry.
type Manifest struct {
	Commands []v1.Command `yaml:"commands"`
}

// Load reads and validates the manifest at path.
func Load(path string) ([]v1.Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrRegistryRead, "registry.load").
			WithResource(path).
			WithAdvice("run 'hotkeys init' to create a starter manifest")
	}
	cmds, err := Parse(data)
	if err != nil {
		var e *errs.Error
		if errors.As(err, &e) {
			return nil, e.WithResource(path)
		}
		return nil, err
	}
	return cmds, nil
}

// Parse decodes manifest YAML. IDs must be non-empty and unique; a missing
// name falls back to the ID and blank synonyms are dropped.
func Parse(data []byte) ([]v1.Command, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, errs.Wrap(err, errs.ErrRegistryInvalid, "registry.parse")
	}

	seen := make(map[string]int, len(m.Commands))
	out := make([]v1.Command, 0, len(m.Commands))
	for i, c := range m.Commands {
		c.ID = strings.TrimSpace(c.ID)
		if c.ID == "" {
			return nil, errs.Newf(errs.ErrRegistryInvalid, "registry.parse", "command #%d has no id", i+1)
		}
		if first, dup := seen[c.ID]; dup {
			return nil, errs.Newf(errs.ErrRegistryInvalid, "registry.parse",
				"command id %q used by entries #%d and #%d", c.ID, first+1, i+1)
		}
		seen[c.ID] = i

		c.DisplayName = strings.TrimSpace(c.DisplayName)
		if c.DisplayName == "" {
			c.DisplayName = c.ID
		}
		var syn []string
		for _, s := range c.Synonyms {
			if s = strings.TrimSpace(s); s != "" {
				syn = append(syn, s)
			}
		}
		c.Synonyms = syn
		out = append(out, c)
	}
	return out, nil
}

// Marshal renders commands as manifest YAML.
func Marshal(commands []v1.Command) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Manifest{Commands: commands}); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Starter is the manifest written by 'hotkeys init'.
var Starter = []v1.Command{
	{ID: "palette.open", DisplayName: "Command Palette", Pinned: true},
	{ID: "file.save", DisplayName: "Save File", Synonyms: []string{"write"}},
	{ID: "file.open", DisplayName: "Open File"},
	{ID: "file.close", DisplayName: "Close File"},
	{ID: "edit.find", DisplayName: "Find", Synonyms: []string{"search"}},
	{ID: "edit.replace", DisplayName: "Replace"},
	{ID: "view.sidebar", DisplayName: "Toggle Sidebar"},
	{ID: "git.merge", DisplayName: "Merge Branch"},
}
