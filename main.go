package main

import (
	"github.com/kp7742/theos/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// theos-bootstrap provisions a Theos cross-compilation environment on a Linux machine:
//   - Detects the host OS family and Linux distribution flavor
//   - Installs the OS packages Theos depends on via the distribution's package manager
//   - Persists the THEOS environment variable in the invoking shell's profile file
//     and exports it for the remainder of the run
//   - Clones the Theos repository, or triggers its self-update when already present
//   - Installs the iOS cross toolchain and the platform SDK set under the THEOS root
//
// Every step derives its "already satisfied" state fresh from the filesystem and
// environment on each run, so repeated invocations skip work that is already done.
// There is no persisted state file; the directory layout itself is the state.
//
// Error handling strategy:
//   - Fail fast. The first fatal step terminates the process with that step's
//     assigned exit code after printing a human-readable diagnostic. Nothing is
//     retried and no partial state is repaired.
//   - Two conditions are advisory only: an unrecognized Linux distribution (the
//     required package list is printed and the run continues) and a failed
//     self-update of an already-cloned repository.
func main() {
	cmd.Execute()
}
