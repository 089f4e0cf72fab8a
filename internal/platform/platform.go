package platform

import (
	"os"
	"runtime"
	"strings"

	"github.com/kp7742/theos/internal/logger"
)

// Family represents the operating system family.
type Family string

// Distro represents the Linux distribution family.
type Distro string

const (
	// Linux represents Linux, the one fully supported family.
	Linux Family = "linux"
	// Darwin represents macOS.
	Darwin Family = "darwin"
	// Unknown represents any other family.
	Unknown Family = "unknown"
)

const (
	// DistroDebian represents the Debian/Ubuntu family (uses apt-get).
	DistroDebian Distro = "debian"
	// DistroUnknown represents an unrecognized distribution.
	DistroUnknown Distro = "unknown"
)

// Platform contains the host identity detected once at startup.
// It is immutable after Detect and drives every later branch.
type Platform struct {
	Family Family
	Distro Distro
	Name   string // Pretty distribution name when known (e.g., "Ubuntu 24.04 LTS")
}

// Detect identifies the host OS family and, on Linux, the distribution
// flavor. It never fails: unsupported families are reported as-is and
// rejected later by the orchestrator, not here.
func Detect() *Platform {
	p := &Platform{Family: family(), Distro: DistroUnknown}
	logger.Debug("[DEBUG] Platform family: %s\n", p.Family)

	if p.Family == Linux {
		data, err := os.ReadFile("/etc/os-release")
		if err != nil {
			logger.Debug("[DEBUG] Failed to read /etc/os-release: %v\n", err)
			return p
		}
		p.Distro, p.Name = classifyOSRelease(string(data))
		logger.Debug("[DEBUG] Linux distro: %s (family: %s)\n", p.Name, p.Distro)
	}
	return p
}

// family maps GOOS onto the Family enum.
func family() Family {
	switch runtime.GOOS {
	case "linux":
		return Linux
	case "darwin":
		return Darwin
	default:
		return Unknown
	}
}

// classifyOSRelease maps /etc/os-release content onto a distribution family
// and a human-readable name. Only the Debian/Ubuntu family is recognized;
// everything else is DistroUnknown.
func classifyOSRelease(content string) (Distro, string) {
	fields := parseOSRelease(content)

	id := strings.ToLower(fields["ID"])
	idLike := strings.ToLower(fields["ID_LIKE"])
	name := fields["PRETTY_NAME"]
	if name == "" {
		name = id
	}

	if id == "debian" || id == "ubuntu" || id == "linuxmint" || id == "pop" ||
		strings.Contains(idLike, "debian") || strings.Contains(idLike, "ubuntu") {
		return DistroDebian, name
	}
	return DistroUnknown, name
}

// parseOSRelease parses /etc/os-release content into a key=value map.
func parseOSRelease(content string) map[string]string {
	result := make(map[string]string)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			result[parts[0]] = strings.Trim(parts[1], "\"'")
		}
	}
	return result
}
