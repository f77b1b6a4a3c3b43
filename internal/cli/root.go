// Package cli defines the root Cobra command and global flag/context setup.
package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/f9-o/hotkeys/internal/cli/commands"
	"github.com/f9-o/hotkeys/internal/core/config"
	"github.com/f9-o/hotkeys/internal/core/logger"
	"github.com/f9-o/hotkeys/internal/core/state"
	"github.com/f9-o/hotkeys/internal/hotkeys"
	"github.com/f9-o/hotkeys/internal/overrides"
	"github.com/f9-o/hotkeys/internal/registry"
	"github.com/f9-o/hotkeys/pkg/errs"
	"github.com/f9-o/hotkeys/pkg/pprint"
)

// globalFlags holds values bound to persistent global flags.
type globalFlags struct {
	configFile string
	platform   string
	debug      bool
	jsonOutput bool
}

// skipRuntime lists subcommands that run without config, state or registry.
var skipRuntime = map[string]bool{
	"version":    true,
	"init":       true,
	"completion": true,
	"help":       true,
}

// NewRootCmd builds the base command with every subcommand registered.
func NewRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "hotkeys",
		Short:         "Collision-free keyboard shortcuts for command-driven apps",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipRuntime[cmd.Name()] {
				return nil
			}
			return initRuntime(cmd, flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "Path to hotkeys.yaml (defaults to auto-discovery)")
	pf.StringVar(&flags.platform, "platform", "", "Modifier convention: auto, mac or other (overrides config)")
	pf.BoolVar(&flags.debug, "debug", false, "Enable debug-level logging")
	pf.BoolVar(&flags.jsonOutput, "json", false, "Output in machine-readable JSON")

	origHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd == root {
			pprint.PrintBanner(commands.Version, commands.BuildDate)
		}
		origHelp(cmd, args)
	})

	root.AddCommand(
		commands.NewListCmd(),
		commands.NewDefaultsCmd(),
		commands.NewSetCmd(),
		commands.NewResetCmd(),
		commands.NewPressCmd(),
		commands.NewUICmd(),
		commands.NewInitCmd(),
		commands.NewVersionCmd(),
	)
	return root
}

// Run executes root and releases the runtime of whichever subcommand ran,
// including when it failed.
func Run(root *cobra.Command) error {
	cmd, err := root.ExecuteC()
	if cmd != nil {
		if rt, ok := commands.RuntimeFrom(cmd.Context()); ok {
			if cerr := rt.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}
	}
	return err
}

// Execute runs the CLI. Called by main().
func Execute() {
	if err := Run(NewRootCmd()); err != nil {
		if e := errs.As(err); e != nil {
			pprint.Error("%s", e.UserMessage())
		} else {
			pprint.Error("%s", err)
		}
		os.Exit(1)
	}
}

// initRuntime loads config, logger, state and the registry before each command runs.
func initRuntime(cmd *cobra.Command, flags globalFlags) error {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return err
	}
	if flags.platform != "" {
		cfg.Platform = flags.platform
	}
	switch cfg.Platform {
	case config.PlatformAuto, config.PlatformMac, config.PlatformOther:
	default:
		return errs.Newf(errs.ErrValidation, "cli.flags", "--platform %q: must be auto, mac or other", flags.platform)
	}

	home := config.Home()
	if err := os.MkdirAll(home, 0750); err != nil {
		return errs.Wrap(err, errs.ErrInternal, "cli.init").WithResource(home)
	}

	// The TUI owns the terminal, so its log lines go to a file.
	logFile := cfg.Log.File
	if cmd.Name() == "ui" && logFile == "" {
		logFile = filepath.Join(home, "logs", "hotkeys.log")
	}
	log, err := logger.Init(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   logFile,
		Home:   home,
		Debug:  flags.debug,
	})
	if err != nil {
		return errs.Wrap(err, errs.ErrInternal, "cli.logger")
	}
	log.Debug("config loaded", cfg.Redacted()...)

	kv, err := state.Open(cfg.StateOptions())
	if err != nil {
		log.Close()
		return errs.Wrap(err, errs.ErrStateOpen, "cli.state").
			WithResource(cfg.Storage.Backend).
			WithAdvice("check the storage section of hotkeys.yaml")
	}

	rt := &commands.Runtime{
		Config: cfg,
		Log:    log,
		State:  kv,
		Flags: commands.GlobalFlags{
			Debug:      flags.debug,
			JSONOutput: flags.jsonOutput,
			Platform:   cfg.Platform,
		},
	}

	cmds, err := registry.Load(cfg.Registry.Path)
	if err != nil {
		rt.Close()
		return err
	}

	ctx := cmd.Context()
	rt.Manager = hotkeys.NewManager(hotkeys.Options{
		Store: overrides.NewStore(kv, cfg.Storage.Key, log.Logger),
		IsMac: cfg.IsMac(),
		Log:   log.Logger,
		Audit: log,
	})
	rt.Manager.Start(ctx)
	rt.Manager.SetCommands(ctx, cmds)
	log.Debug("runtime ready", "commands", len(cmds), "backend", cfg.Storage.Backend)

	cmd.SetContext(commands.NewContext(ctx, rt))
	return nil
}
