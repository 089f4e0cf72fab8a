package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds every tunable of the bootstrap run: the name of the
// installation root directory under $HOME, the remote locations of the Theos
// repository, toolchain archive and SDK bundle, and the OS package lists.
// All fields have built-in defaults; a YAML file only overrides what it names.
type Settings struct {
	// RootDirName is the directory under $HOME used as the installation root
	// when the THEOS environment variable is not already set.
	RootDirName string `yaml:"root_dir"`

	// RepositoryURL is the remote the Theos repository is cloned from.
	RepositoryURL string `yaml:"repository_url"`

	// ToolchainURL points at the iOS cross toolchain archive (.tar.xz).
	ToolchainURL string `yaml:"toolchain_url"`

	// SDKArchiveURL points at the platform SDK bundle (.tar.gz).
	SDKArchiveURL string `yaml:"sdk_archive_url"`

	// Packages are the OS packages Theos needs, installed via the
	// distribution's package manager on recognized distributions.
	Packages []string `yaml:"packages"`

	// ToolchainPackages are extra packages the toolchain binaries link
	// against. They are installed best-effort on Debian-family systems only.
	ToolchainPackages []string `yaml:"toolchain_packages"`
}

// Defaults returns the built-in settings used when no config file is given.
func Defaults() Settings {
	return Settings{
		RootDirName:   "theos",
		RepositoryURL: "https://github.com/theos/theos.git",
		ToolchainURL:  "https://github.com/kp7742/ios-toolchain-linux/releases/latest/download/linux-ios-clang-toolchain.tar.xz",
		SDKArchiveURL: "https://github.com/theos/sdks/archive/refs/heads/master.tar.gz",
		Packages: []string{
			"bash", "curl", "fakeroot", "git", "perl", "unzip", "build-essential", "libplist-utils",
		},
		ToolchainPackages: []string{"libtinfo5"},
	}
}

// Load returns the effective settings. An empty path means "no config file";
// the defaults are returned as-is. A non-empty path must name a readable YAML
// file whose present fields override the corresponding defaults.
func Load(path string) (Settings, error) {
	s := Defaults()
	if path == "" {
		return s, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Unmarshal over the defaults so absent keys keep their built-in values.
	var override Settings
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return s, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
	}
	if override.RootDirName != "" {
		s.RootDirName = override.RootDirName
	}
	if override.RepositoryURL != "" {
		s.RepositoryURL = override.RepositoryURL
	}
	if override.ToolchainURL != "" {
		s.ToolchainURL = override.ToolchainURL
	}
	if override.SDKArchiveURL != "" {
		s.SDKArchiveURL = override.SDKArchiveURL
	}
	if len(override.Packages) > 0 {
		s.Packages = override.Packages
	}
	if len(override.ToolchainPackages) > 0 {
		s.ToolchainPackages = override.ToolchainPackages
	}
	return s, nil
}
