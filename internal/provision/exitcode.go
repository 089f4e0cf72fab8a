package provision

import (
	"errors"
	"fmt"
)

// Process exit codes. Each code names exactly one failure class; at most one
// is emitted per run and emission is immediately followed by termination.
// Codes 9-11 are reserved for platform-specific post-install fixups that the
// primary supported platform never exercises.
const (
	ExitRootPrivilege       = 1 // invoked with elevated/root privilege
	ExitUnsupportedPlatform = 2 // unsupported OS family
	ExitDependencyInstall   = 3 // OS dependency installation failed on a recognized distribution
	ExitUnsupportedShell    = 4 // shell dialect unrecognized, cannot persist environment variable
	ExitEnvironmentConfig   = 5 // environment variable configuration failed
	ExitCloneFailed         = 6 // repository clone failed
	ExitToolchainInstall    = 7 // toolchain installation failed or unimplemented variant requested
	ExitSDKInstall          = 8 // SDK installation failed
)

// StepError is a fatal provisioning failure carrying its assigned process
// exit code. The printed message plus the code is the entire error-reporting
// surface; there is no recovery or retry.
type StepError struct {
	Code int
	msg  string
	err  error
}

// Error returns the human-readable diagnostic.
func (e *StepError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

// Unwrap exposes the underlying cause, if any.
func (e *StepError) Unwrap() error {
	return e.err
}

// failf builds a StepError with a formatted message.
func failf(code int, format string, a ...any) *StepError {
	return &StepError{Code: code, msg: fmt.Sprintf(format, a...)}
}

// wrapf builds a StepError around an underlying cause.
func wrapf(code int, err error, format string, a ...any) *StepError {
	return &StepError{Code: code, msg: fmt.Sprintf(format, a...), err: err}
}

// ExitCode extracts the process exit code from a provisioning error.
// Errors that are not StepErrors map to 1 as a generic failure.
func ExitCode(err error) int {
	var step *StepError
	if errors.As(err, &step) {
		return step.Code
	}
	return 1
}
