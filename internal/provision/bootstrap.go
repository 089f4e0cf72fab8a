package provision

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kp7742/theos/internal/config"
	"github.com/kp7742/theos/internal/logger"
	"github.com/kp7742/theos/internal/platform"
	"github.com/kp7742/theos/internal/prompt"
	"github.com/kp7742/theos/internal/shell"
)

// EnvVar is the environment variable naming the installation root. Its
// presence in the process environment is trusted as-is and never validated.
const EnvVar = "THEOS"

// Bootstrapper runs the provisioning sequence for one detected platform.
// All external effects (process execution, downloads, archive extraction,
// privilege inspection) go through the injectable function fields so the
// sequence can be exercised without touching the network or the package
// manager.
type Bootstrapper struct {
	cfg     config.Settings
	plat    *platform.Platform
	profile shell.Profile
	home    string
	asker   prompt.Asker

	// root is fixed by ensureInstallationRoot; every later step derives its
	// paths from it and nothing holds an independent copy.
	root string

	run     func(name string, args ...string) error
	fetch   func(url, dest string) error
	extract func(src, dest string, strip int) error
	euid    func() int
}

// New builds a Bootstrapper wired to the real external tools.
func New(cfg config.Settings, plat *platform.Platform, profile shell.Profile, home string, asker prompt.Asker) *Bootstrapper {
	return &Bootstrapper{
		cfg:     cfg,
		plat:    plat,
		profile: profile,
		home:    home,
		asker:   asker,
		run:     runCommand,
		fetch:   downloadFile,
		extract: extractTar,
		euid:    os.Geteuid,
	}
}

// installationRoot returns the fixed root once established, otherwise the
// root the run would use: the THEOS variable when set, else $HOME/<root_dir>.
func (b *Bootstrapper) installationRoot() string {
	if b.root != "" {
		return b.root
	}
	if v := os.Getenv(EnvVar); v != "" {
		return v
	}
	return filepath.Join(b.home, b.cfg.RootDirName)
}

// toolchainDir is the platform-specific toolchain tree under the root.
func (b *Bootstrapper) toolchainDir() string {
	return filepath.Join(b.installationRoot(), "toolchain", "linux", "iphone")
}

// sdksDir is the SDK tree under the root.
func (b *Bootstrapper) sdksDir() string {
	return filepath.Join(b.installationRoot(), "sdks")
}

// runCommand executes an external tool, capturing combined output for the
// diagnostic when it fails.
func runCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(cmd.Args, " "))
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w\noutput: %s", name, err, output)
	}
	return nil
}

// dirNonEmpty reports whether path is an existing directory with at least
// one entry. This is the idempotency signal for "already installed".
func dirNonEmpty(path string) bool {
	entries, err := os.ReadDir(path)
	return err == nil && len(entries) > 0
}

// hasSDKEntry reports whether dir contains at least one *.sdk entry.
func hasSDKEntry(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".sdk") {
			return true
		}
	}
	return false
}

// isExecutable reports whether path is a regular file with an execute bit.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0
}
