package provision

import (
	"strings"

	"github.com/kp7742/theos/internal/logger"
	"github.com/kp7742/theos/internal/platform"
)

// installDependencies installs the OS packages Theos needs, branching on
// the distribution family. Failure on a recognized distribution is fatal;
// on an unrecognized one the required package list is printed as guidance
// and the run continues.
func (b *Bootstrapper) installDependencies() error {
	switch b.plat.Distro {
	case platform.DistroDebian:
		logger.Info("[INFO] Installing OS dependencies via apt-get...\n")

		// A stale package index makes installs fail spuriously; refreshing it
		// is best effort because some locked-down hosts forbid it.
		if err := b.run("sudo", "apt-get", "update"); err != nil {
			logger.Warn("[WARN] apt-get update failed: %v\n", err)
		}

		args := append([]string{"apt-get", "install", "-y"}, b.cfg.Packages...)
		if err := b.run("sudo", args...); err != nil {
			return wrapf(ExitDependencyInstall, err, "failed to install OS dependencies")
		}
		logger.Info("[INFO] OS dependencies installed.\n")

	default:
		logger.Warn("[WARN] Unrecognized distribution (%s). Install these packages manually: %s\n",
			b.plat.Name, strings.Join(b.cfg.Packages, " "))
	}
	return nil
}
