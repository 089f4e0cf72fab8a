package provision

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kp7742/theos/internal/platform"
)

func TestEnsureSDKsSkipsWhenPresent(t *testing.T) {
	b := rootedBootstrapper(t, platform.DistroDebian)
	writeFile(t, filepath.Join(b.sdksDir(), "iPhoneOS14.4.sdk", "SDKSettings.plist"), "")

	// The failing fetch/extract stubs prove no acquisition happens.
	assert.NoError(t, b.ensureSDKs())
}

func TestEnsureSDKsNonSDKEntriesDoNotSatisfy(t *testing.T) {
	b := rootedBootstrapper(t, platform.DistroDebian)
	writeFile(t, filepath.Join(b.sdksDir(), "README.md"), "")

	b.fetch = func(url, dest string) error {
		return os.ErrDeadlineExceeded
	}

	// A populated directory without *.sdk entries still triggers acquisition.
	err := b.ensureSDKs()
	require.Error(t, err)
	assert.Equal(t, ExitSDKInstall, ExitCode(err))
}

func TestEnsureSDKsInstallsAndMovesEntries(t *testing.T) {
	b := rootedBootstrapper(t, platform.DistroDebian)

	b.fetch = func(url, dest string) error {
		writeFile(t, dest, "archive")
		return nil
	}
	b.extract = func(src, dest string, strip int) error {
		// The bundle's single leading component is stripped away.
		assert.Equal(t, 1, strip)
		writeFile(t, filepath.Join(dest, "iPhoneOS14.4.sdk", "SDKSettings.plist"), "")
		writeFile(t, filepath.Join(dest, "iPhoneOS14.5.sdk", "SDKSettings.plist"), "")
		writeFile(t, filepath.Join(dest, "README.md"), "")
		return nil
	}

	require.NoError(t, b.ensureSDKs())

	entries, err := os.ReadDir(b.sdksDir())
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"iPhoneOS14.4.sdk", "iPhoneOS14.5.sdk"}, names)
}

func TestEnsureSDKsPostCheckGovernsSuccess(t *testing.T) {
	b := rootedBootstrapper(t, platform.DistroDebian)

	b.fetch = func(url, dest string) error {
		writeFile(t, dest, "archive")
		return nil
	}
	// Extraction raises no error but yields nothing to move.
	b.extract = func(src, dest string, strip int) error {
		return nil
	}

	err := b.ensureSDKs()
	require.Error(t, err)
	assert.Equal(t, ExitSDKInstall, ExitCode(err))
}
