package provision

import (
	"fmt"

	"github.com/kp7742/theos/internal/logger"
)

// ensureResource runs the check, acquire, re-check sequence shared by the
// repository, toolchain and SDK steps. satisfied is consulted first: a
// satisfied resource is skipped and acquired is false. Otherwise acquire
// runs, and verify (or satisfied when verify is nil) must hold afterwards:
// an acquisition that reports success but leaves the resource unverifiable
// is still a failure, because the check is the success criterion, not the
// absence of errors from the acquisition itself.
func ensureResource(name string, satisfied func() bool, acquire func() error, verify func() bool) (acquired bool, err error) {
	if satisfied() {
		logger.Info("[INFO] %s is already present. Skipping.\n", name)
		return false, nil
	}
	if err := acquire(); err != nil {
		return false, err
	}
	if verify == nil {
		verify = satisfied
	}
	if !verify() {
		return false, fmt.Errorf("%s is still missing after installation", name)
	}
	return true, nil
}
