// hotkeys init: scaffold hotkeys.yaml and a starter commands.yaml.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/f9-o/hotkeys/internal/core/config"
	"github.com/f9-o/hotkeys/internal/registry"
	"github.com/f9-o/hotkeys/pkg/pprint"
)

func NewInitCmd() *cobra.Command {
	var (
		targetPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold hotkeys.yaml and a starter commands.yaml",
		Example: `  hotkeys init
  hotkeys init --path ./my-app`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if targetPath == "" {
				targetPath = "."
			}
			if err := os.MkdirAll(targetPath, 0755); err != nil {
				return fmt.Errorf("create dir %q: %w", targetPath, err)
			}

			manifest, err := registry.Marshal(registry.Starter)
			if err != nil {
				return err
			}
			files := []struct {
				name string
				data []byte
			}{
				{config.ProjectFile, []byte(config.DefaultConfigTemplate)},
				{registry.DefaultFile, manifest},
			}

			for _, f := range files {
				out := filepath.Join(targetPath, f.name)
				if _, err := os.Stat(out); err == nil && !force {
					pprint.Warn("%s already exists, skipping (use --force to overwrite)", out)
					continue
				}
				if err := os.WriteFile(out, f.data, 0644); err != nil {
					return fmt.Errorf("write %s: %w", f.name, err)
				}
				pprint.Success("Created %s", out)
			}
			pprint.Info("Edit commands.yaml to describe your commands, then run: hotkeys list")
			return nil
		},
	}

	cmd.Flags().StringVar(&targetPath, "path", ".", "Target directory")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return cmd
}
