package provision

import (
	"os"

	"github.com/kp7742/theos/internal/platform"
)

// Run drives the full provisioning sequence for the detected platform:
// privilege gate, platform gate, OS dependencies, environment variable,
// repository, toolchain, SDKs — strictly in that order, returning on the
// first fatal error so a later stage never begins after an earlier failure.
// Both gates fire before any side effect occurs.
func (b *Bootstrapper) Run() error {
	// Theos is built and owned by the invoking user; a root-owned tree would
	// break every later non-root build.
	if b.euid() == 0 {
		return failf(ExitRootPrivilege, "refusing to run as root: Theos must be installed as a regular user")
	}

	if b.plat.Family != platform.Linux {
		return failf(ExitUnsupportedPlatform, "unsupported platform %q: only Linux is supported", b.plat.Family)
	}

	if err := b.installDependencies(); err != nil {
		return err
	}
	if err := b.ensureInstallationRoot(); err != nil {
		return err
	}
	if err := b.ensureRepository(); err != nil {
		return err
	}
	if err := b.ensureToolchain(); err != nil {
		return err
	}
	return b.ensureSDKs()
}

// ResourceState is the derived "already satisfied" state of one provisioned
// resource, computed fresh from the filesystem and environment.
type ResourceState struct {
	Name      string
	Satisfied bool
	Detail    string
}

// States inspects every resource without performing any acquisition. The
// paths are derived from the root the next install run would use.
func (b *Bootstrapper) States() []ResourceState {
	root := b.installationRoot()
	envValue := os.Getenv(EnvVar)

	return []ResourceState{
		{
			Name:      "environment variable",
			Satisfied: envValue != "",
			Detail:    EnvVar + "=" + envValue,
		},
		{
			Name:      "Theos repository",
			Satisfied: dirNonEmpty(root),
			Detail:    root,
		},
		{
			Name:      "iOS toolchain",
			Satisfied: dirNonEmpty(b.toolchainDir()),
			Detail:    b.toolchainDir(),
		},
		{
			Name:      "platform SDKs",
			Satisfied: hasSDKEntry(b.sdksDir()),
			Detail:    b.sdksDir(),
		},
	}
}
