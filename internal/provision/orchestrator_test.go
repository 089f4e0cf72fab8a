package provision

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kp7742/theos/internal/platform"
	"github.com/kp7742/theos/internal/shell"
)

func TestRunRefusesRootPrivilege(t *testing.T) {
	unsetRootVar(t)

	b := newTestBootstrapper(t, platform.DistroDebian, shell.DialectPosix)
	b.euid = func() int { return 0 }

	err := b.Run()
	require.Error(t, err)
	assert.Equal(t, ExitRootPrivilege, ExitCode(err))
}

func TestRunRejectsUnsupportedPlatform(t *testing.T) {
	unsetRootVar(t)

	b := newTestBootstrapper(t, platform.DistroUnknown, shell.DialectPosix)
	b.plat = &platform.Platform{Family: platform.Darwin}

	err := b.Run()
	require.Error(t, err)
	assert.Equal(t, ExitUnsupportedPlatform, ExitCode(err))

	// Zero side effects: nothing appeared under home (the failing command
	// stubs from the helper would also have flagged any execution).
	entries, rerr := os.ReadDir(b.home)
	require.NoError(t, rerr)
	assert.Empty(t, entries)
	assert.Empty(t, os.Getenv(EnvVar))
}

func TestRunSequencesAllStages(t *testing.T) {
	unsetRootVar(t)

	b := newTestBootstrapper(t, platform.DistroDebian, shell.DialectPosix)

	var commands []string
	b.run = func(name string, args ...string) error {
		commands = append(commands, strings.Join(append([]string{name}, args...), " "))
		if name == "git" {
			// Clone success means a populated root.
			writeFile(t, filepath.Join(b.installationRoot(), "Makefile"), "")
		}
		return nil
	}
	b.fetch = func(url, dest string) error {
		writeFile(t, dest, "archive")
		return nil
	}
	b.extract = func(src, dest string, strip int) error {
		if strip == 1 {
			writeFile(t, filepath.Join(dest, "iPhoneOS14.4.sdk", "SDKSettings.plist"), "")
			return nil
		}
		path := filepath.Join(dest, "bin", "clang")
		writeFile(t, path, "")
		return os.Chmod(path, 0755)
	}

	require.NoError(t, b.Run())

	// Stage order: apt update, apt install, clone, toolchain support package.
	require.Len(t, commands, 4)
	assert.Contains(t, commands[0], "apt-get update")
	assert.Contains(t, commands[1], "apt-get install")
	assert.Contains(t, commands[2], "git clone --recursive")
	assert.Contains(t, commands[3], "libtinfo5")

	// Every resource is satisfied afterwards.
	for _, st := range b.States() {
		assert.True(t, st.Satisfied, "%s should be satisfied", st.Name)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	unsetRootVar(t)

	b := newTestBootstrapper(t, platform.DistroDebian, shell.DialectPosix)

	var commands []string
	b.run = func(name string, args ...string) error {
		commands = append(commands, name)
		if name == "git" {
			writeFile(t, filepath.Join(b.installationRoot(), "Makefile"), "")
		}
		return nil
	}
	b.fetch = func(url, dest string) error {
		writeFile(t, dest, "archive")
		return nil
	}
	b.extract = func(src, dest string, strip int) error {
		if strip == 1 {
			writeFile(t, filepath.Join(dest, "iPhoneOS14.4.sdk", "SDKSettings.plist"), "")
			return nil
		}
		path := filepath.Join(dest, "bin", "clang")
		writeFile(t, path, "")
		return os.Chmod(path, 0755)
	}
	require.NoError(t, b.Run())

	// The second run may update packages and the repository but must not
	// download or extract anything again.
	b.fetch = func(url, dest string) error {
		t.Fatalf("unexpected download on rerun: %s", url)
		return nil
	}
	b.extract = func(src, dest string, strip int) error {
		t.Fatalf("unexpected extraction on rerun: %s", src)
		return nil
	}
	require.NoError(t, b.Run())
}

func TestRunDependencyFailureOnDebianIsFatal(t *testing.T) {
	unsetRootVar(t)

	b := newTestBootstrapper(t, platform.DistroDebian, shell.DialectPosix)
	b.run = func(name string, args ...string) error {
		return os.ErrPermission
	}

	err := b.Run()
	require.Error(t, err)
	assert.Equal(t, ExitDependencyInstall, ExitCode(err))
}

func TestRunUnknownDistroDependencyIsAdvisory(t *testing.T) {
	unsetRootVar(t)

	b := newTestBootstrapper(t, platform.DistroUnknown, shell.DialectUnknown)

	// Dependencies are only advisory on an unrecognized distro, so the run
	// proceeds to the environment step, which fails on the unknown shell.
	err := b.Run()
	require.Error(t, err)
	assert.Equal(t, ExitUnsupportedShell, ExitCode(err))
}

func TestStatesReflectFilesystem(t *testing.T) {
	unsetRootVar(t)

	b := newTestBootstrapper(t, platform.DistroDebian, shell.DialectPosix)

	for _, st := range b.States() {
		assert.False(t, st.Satisfied, "%s should start unsatisfied", st.Name)
	}

	writeFile(t, filepath.Join(b.installationRoot(), "Makefile"), "")
	writeFile(t, filepath.Join(b.sdksDir(), "iPhoneOS14.4.sdk", "SDKSettings.plist"), "")

	states := b.States()
	byName := map[string]ResourceState{}
	for _, st := range states {
		byName[st.Name] = st
	}
	assert.True(t, byName["Theos repository"].Satisfied)
	assert.True(t, byName["platform SDKs"].Satisfied)
	assert.False(t, byName["iOS toolchain"].Satisfied)
	assert.False(t, byName["environment variable"].Satisfied)
}
