// commands.go implements the init, config and version subcommands.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kingrea/endthought/internal/config"
)

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the home directory and a default config.yaml",
		Long: `Create the endthought home directory with a commented config.yaml and
a logs/ directory for the session journal. An existing config.yaml is
left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := config.ResolveHomeDir(flags.home)
			if err != nil {
				return err
			}
			cfg := config.Default(home)
			_, statErr := os.Stat(cfg.ConfigPath())
			existed := statErr == nil
			if err := config.InitHomeDir(home); err != nil {
				return err
			}
			if existed {
				printf(cmd.OutOrStdout(), "Config already present at %s\n", cfg.ConfigPath())
				return nil
			}
			printf(cmd.OutOrStdout(), "Created %s\n", cfg.ConfigPath())
			return nil
		},
	}
}

func newConfigCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration after config.yaml, .env and process environment
overrides and command-line flags have been applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags, false)
			if err != nil {
				return err
			}
			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "# %s\n%s", cfg.ConfigPath(), data)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the endthought version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printf(cmd.OutOrStdout(), "endthought %s\n", version)
		},
	}
}
