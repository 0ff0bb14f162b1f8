package core

// Process exit codes. Signal-driven exits use the Unix 128+N convention
// so a supervisor can tell a drained watcher from a crash.
const (
	// ExitCodeSuccess is a clean exit: batch completed or watch loop drained.
	ExitCodeSuccess = 0

	// ExitCodeError covers runtime failures such as bad configuration or
	// a batch with failed documents.
	ExitCodeError = 1

	// ExitCodeSIGINT is an interactive interrupt: 128 + 2.
	ExitCodeSIGINT = 130

	// ExitCodeSIGTERM is a supervisor-requested stop: 128 + 15.
	ExitCodeSIGTERM = 143
)

// ExitCodeName returns a human-readable label for an exit code, used in
// the final shutdown log line.
func ExitCodeName(code int) string {
	switch code {
	case ExitCodeSuccess:
		return "success"
	case ExitCodeError:
		return "error"
	case ExitCodeSIGINT:
		return "interrupted (SIGINT)"
	case ExitCodeSIGTERM:
		return "terminated (SIGTERM)"
	default:
		return "unknown"
	}
}

// IsSignalExit reports whether an exit code came from signal handling
// rather than the run's own outcome.
func IsSignalExit(code int) bool {
	return code == ExitCodeSIGINT || code == ExitCodeSIGTERM
}
