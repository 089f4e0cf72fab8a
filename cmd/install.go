package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kp7742/theos/internal/config"
	"github.com/kp7742/theos/internal/logger"
	"github.com/kp7742/theos/internal/platform"
	"github.com/kp7742/theos/internal/prompt"
	"github.com/kp7742/theos/internal/provision"
	"github.com/kp7742/theos/internal/shell"
)

// configPath holds the path to an optional settings YAML file.
// It's passed via the `--config` or `-c` flag; empty means built-in defaults.
var configPath string

// installCmd runs the full provisioning sequence: OS dependencies, THEOS
// environment variable, repository, toolchain and SDKs. On the first fatal
// failure it prints the diagnostic and terminates the process with that
// step's exit code.
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Provision the Theos environment (deps, THEOS variable, repo, toolchain, SDKs)",
	Run: func(cmd *cobra.Command, args []string) {
		b := newBootstrapper()
		if err := b.Run(); err != nil {
			logger.Error("[ERROR] %v\n", err)
			os.Exit(provision.ExitCode(err))
		}
		logger.Info("[INFO] Theos bootstrap complete. Open a new shell or source your profile to pick up %s.\n", provision.EnvVar)
	},
}

// checkCmd prints the derived state of every resource without performing any
// acquisition, so a user can see what an install run would still do.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Show which resources are already provisioned, without installing anything",
	Run: func(cmd *cobra.Command, args []string) {
		b := newBootstrapper()
		for _, st := range b.States() {
			if st.Satisfied {
				logger.Info("[INFO] %-20s present (%s)\n", st.Name, st.Detail)
			} else {
				logger.Warn("[WARN] %-20s missing (%s)\n", st.Name, st.Detail)
			}
		}
	},
}

// newBootstrapper assembles the provisioning driver from the host identity:
// detected platform, resolved shell profile, home directory, settings, and
// the answer source (interactive on a terminal, a fixed "no" under CI so
// runs never block on a prompt).
func newBootstrapper() *provision.Bootstrapper {
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		logger.Error("[ERROR] Failed to determine home directory: %v\n", err)
		os.Exit(1)
	}

	plat := platform.Detect()
	profile := shell.Resolve(filepath.Base(os.Getenv("SHELL")), home)

	var asker prompt.Asker = prompt.NewStdinAsker()
	if os.Getenv("CI") != "" {
		asker = prompt.FixedAsker{Answer: ""}
	}

	return provision.New(cfg, plat, profile, home, asker)
}

// init registers the subcommands and their flags with the root command.
func init() {
	installCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to an optional settings YAML file")
	checkCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to an optional settings YAML file")
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(checkCmd)
}
