package provision

import (
	"os"
	"path/filepath"

	"github.com/kp7742/theos/internal/logger"
	"github.com/kp7742/theos/internal/shell"
)

// ensureInstallationRoot establishes the THEOS installation root for this
// run and for future shell sessions.
//
// When the variable is already set in the process environment its value is
// trusted as-is and nothing is written: that short-circuit is what keeps
// reruns from appending duplicate export lines to the profile file. When it
// is unset, a known shell dialect is required so the export can be persisted;
// the export line is appended to the resolved profile file (created if
// absent) and the variable is set in-process for the remainder of the run.
func (b *Bootstrapper) ensureInstallationRoot() error {
	if v := os.Getenv(EnvVar); v != "" {
		logger.Info("[INFO] %s is already set to %s. Skipping environment setup.\n", EnvVar, v)
		b.root = v
		return nil
	}

	if b.profile.Dialect == shell.DialectUnknown {
		return failf(ExitUnsupportedShell,
			"cannot persist %s: the invoking shell is not recognized (supported: sh, bash, zsh, dash, fish)", EnvVar)
	}

	root := filepath.Join(b.home, b.cfg.RootDirName)
	line := b.profile.ExportLine(EnvVar, root)

	// The fish config lives in a subdirectory that may not exist yet.
	if err := os.MkdirAll(filepath.Dir(b.profile.Path), 0755); err != nil {
		return wrapf(ExitEnvironmentConfig, err, "failed to create profile directory for %s", b.profile.Path)
	}

	f, err := os.OpenFile(b.profile.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return wrapf(ExitEnvironmentConfig, err, "failed to open profile file %s", b.profile.Path)
	}
	_, werr := f.WriteString(line + "\n")
	cerr := f.Close()
	if werr != nil {
		return wrapf(ExitEnvironmentConfig, werr, "failed to write %s", b.profile.Path)
	}
	if cerr != nil {
		return wrapf(ExitEnvironmentConfig, cerr, "failed to close %s", b.profile.Path)
	}

	if err := os.Setenv(EnvVar, root); err != nil {
		return wrapf(ExitEnvironmentConfig, err, "failed to set %s in the current process", EnvVar)
	}
	b.root = root

	logger.Info("[INFO] Added %q to %s\n", line, b.profile.Path)
	return nil
}
