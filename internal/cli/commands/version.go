// hotkeys version: print build and environment information.
package commands

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f9-o/hotkeys/internal/core/config"
	"github.com/f9-o/hotkeys/pkg/pprint"
)

// Build-time variables injected via -ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// BuildInfo is the JSON form of `hotkeys version`.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	Go        string `json:"go_version"`
	OSArch    string `json:"os_arch"`
	Home      string `json:"home"`
}

func currentBuild() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		Go:        runtime.Version(),
		OSArch:    runtime.GOOS + "/" + runtime.GOARCH,
		Home:      config.Home(),
	}
}

// panelBody lays out label/value pairs for a pprint panel.
func panelBody(pairs ...[2]string) string {
	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		lines = append(lines, pprint.StyleLabel.Render(p[0])+pprint.StyleText.Render(p[1]))
	}
	return strings.Join(lines, "\n")
}

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "version",
		Short:        "Print hotkeys version information",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := currentBuild()

			// Runs without a Runtime, so read the flag directly.
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd.OutOrStdout(), info)
			}

			pprint.PrintBanner(info.Version, info.BuildDate)
			pprint.Panel("build", panelBody(
				[2]string{"Version", info.Version},
				[2]string{"Commit", info.Commit},
				[2]string{"Built", info.BuildDate},
				[2]string{"Go", info.Go},
				[2]string{"Platform", info.OSArch},
			))
			pprint.Rule(40)
			pprint.KV("State dir ", info.Home)
			return nil
		},
	}
}
