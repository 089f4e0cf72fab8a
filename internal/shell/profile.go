package shell

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kp7742/theos/internal/logger"
)

// Dialect is the startup-file dialect of the invoking shell.
type Dialect int

const (
	// DialectUnknown means the shell name matched no known dialect.
	// No profile file can be resolved for it.
	DialectUnknown Dialect = iota
	// DialectPosix covers the Bourne-compatible shells (sh, bash, zsh, dash).
	DialectPosix
	// DialectFish covers fish, which has its own config syntax and location.
	DialectFish
)

// String returns a readable dialect name for diagnostics.
func (d Dialect) String() string {
	switch d {
	case DialectPosix:
		return "posix"
	case DialectFish:
		return "fish"
	default:
		return "unknown"
	}
}

// Profile identifies the startup file environment exports are persisted to.
// Path is empty when the dialect is unknown.
type Profile struct {
	Dialect Dialect
	Path    string
}

// posixShells is the fixed set of shell names treated as Bourne-compatible.
var posixShells = map[string]bool{
	"sh":   true,
	"bash": true,
	"zsh":  true,
	"dash": true,
}

// posixCandidates are probed in priority order under $HOME; the first
// existing file wins. posixDefault is used when none exist yet.
var posixCandidates = []string{".profile", ".bashrc", ".zshrc"}

const posixDefault = ".profile"

// fishConfig is both the only candidate and the default for fish.
var fishConfig = filepath.Join(".config", "fish", "config.fish")

// Resolve determines the dialect of the named shell and the profile file to
// write exports to. The dialect is an exact match against fixed name sets.
// Within a dialect, candidate files are probed for existence in priority
// order; if none exists, the dialect's default file name is selected even
// though it does not exist yet (it is created on first write). Unmatched
// shell names yield DialectUnknown and no path.
func Resolve(name, home string) Profile {
	switch {
	case posixShells[name]:
		return Profile{Dialect: DialectPosix, Path: firstExisting(home, posixCandidates, posixDefault)}
	case name == "fish":
		return Profile{Dialect: DialectFish, Path: firstExisting(home, []string{fishConfig}, fishConfig)}
	default:
		logger.Debug("[DEBUG] Unrecognized shell %q\n", name)
		return Profile{Dialect: DialectUnknown}
	}
}

// ExportLine renders the dialect's syntax for exporting key=value.
func (p Profile) ExportLine(key, value string) string {
	if p.Dialect == DialectFish {
		return fmt.Sprintf("set -gx %s %s", key, value)
	}
	return fmt.Sprintf("export %s=%s", key, value)
}

// firstExisting returns the first candidate that exists under home, or the
// fallback joined with home when none do.
func firstExisting(home string, candidates []string, fallback string) string {
	for _, c := range candidates {
		path := filepath.Join(home, c)
		if _, err := os.Stat(path); err == nil {
			logger.Debug("[DEBUG] Using existing profile file %s\n", path)
			return path
		}
	}
	return filepath.Join(home, fallback)
}
