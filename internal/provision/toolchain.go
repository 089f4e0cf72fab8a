package provision

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kp7742/theos/internal/logger"
	"github.com/kp7742/theos/internal/platform"
	"github.com/kp7742/theos/internal/prompt"
)

// ensureToolchain installs the iOS cross toolchain under the installation
// root. A non-empty toolchain directory counts as installed. Otherwise the
// variant decision is solicited from the configured answer source (a fixed
// "no" in non-interactive runs) and the standard toolchain is downloaded and
// extracted. The post-condition is stricter than the skip check: the clang
// executable must exist with an execute bit, because successful extraction
// alone is not proof of a usable toolchain.
func (b *Bootstrapper) ensureToolchain() error {
	dir := b.toolchainDir()
	clang := filepath.Join(dir, "bin", "clang")

	acquired, err := ensureResource("iOS toolchain",
		func() bool { return dirNonEmpty(dir) },
		b.installToolchain,
		func() bool { return isExecutable(clang) },
	)
	if err != nil {
		var step *StepError
		if errors.As(err, &step) {
			return err
		}
		return wrapf(ExitToolchainInstall, err, "toolchain installation failed")
	}
	if acquired {
		logger.Info("[INFO] Toolchain installed at %s\n", dir)
	}
	return nil
}

// installToolchain acquires the standard toolchain variant, or fails when
// the Swift variant is requested: that variant is not implemented and
// selecting it is a hard failure rather than a silent downgrade.
func (b *Bootstrapper) installToolchain() error {
	answer, err := b.asker.Ask("Install the Swift-enabled toolchain variant (several GB larger)? [y/N] ")
	if err != nil {
		return wrapf(ExitToolchainInstall, err, "failed to read the toolchain variant answer")
	}
	if prompt.IsAffirmative(answer) {
		return failf(ExitToolchainInstall, "the Swift toolchain variant is not implemented yet")
	}

	// The toolchain binaries link against these; installable only where the
	// recognized package manager exists, harmless to skip elsewhere.
	if b.plat.Distro == platform.DistroDebian && len(b.cfg.ToolchainPackages) > 0 {
		args := append([]string{"apt-get", "install", "-y"}, b.cfg.ToolchainPackages...)
		if err := b.run("sudo", args...); err != nil {
			logger.Warn("[WARN] Failed to install toolchain support packages (continuing): %v\n", err)
		}
	}

	if err := os.MkdirAll(b.toolchainDir(), 0755); err != nil {
		return fmt.Errorf("failed to create toolchain directory: %w", err)
	}

	archive := filepath.Join(os.TempDir(), filepath.Base(b.cfg.ToolchainURL))
	logger.Info("[INFO] Downloading toolchain from %s...\n", b.cfg.ToolchainURL)
	if err := b.fetch(b.cfg.ToolchainURL, archive); err != nil {
		return fmt.Errorf("toolchain download failed: %w", err)
	}
	defer os.Remove(archive)

	logger.Info("[INFO] Extracting toolchain...\n")
	if err := b.extract(archive, b.toolchainDir(), 0); err != nil {
		return fmt.Errorf("toolchain extraction failed: %w", err)
	}
	return nil
}
