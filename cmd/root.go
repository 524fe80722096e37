package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/example/parkctl/internal/config"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

// cfg is loaded once per invocation in the root PersistentPreRunE and
// read by every subcommand.
var cfg *config.Config

func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "parkctl",
		Short:        "Book, release and inspect Parkanizer parking spots from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// keys and version run without any configuration.
			switch cmd.Name() {
			case "keys", "version", "help", "completion":
				return nil
			}

			path := configPath
			if path == "" {
				path = defaultConfigPath()
			}
			loaded, err := config.Load(path)
			if err != nil {
				return err
			}
			cfg = loaded

			log.DefaultLogger.Level = log.ParseLevel(cfg.Logging.Level)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the TOML config file")

	root.AddCommand(newBookCmd())
	root.AddCommand(newReleaseCmd())
	root.AddCommand(newBookingsCmd())
	root.AddCommand(newSpotsCmd())
	root.AddCommand(newBookFreeCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newKeysCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// defaultConfigPath looks for parkctl.toml in the working directory
// first, then under ~/.parkctl. No file is fine: credentials can come
// entirely from the environment.
func defaultConfigPath() string {
	if _, err := os.Stat("parkctl.toml"); err == nil {
		return "parkctl.toml"
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".parkctl", "config.toml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
