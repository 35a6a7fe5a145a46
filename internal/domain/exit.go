package domain

// ExitStatus is the engine's process exit status.
type ExitStatus int

const (
	ExitSuccess  ExitStatus = 0
	ExitOffenses ExitStatus = 1
	ExitError    ExitStatus = 2
)

// Success reports whether the run found nothing to complain about.
func (s ExitStatus) Success() bool {
	return s == ExitSuccess
}

func (s ExitStatus) String() string {
	switch s {
	case ExitSuccess:
		return "success"
	case ExitOffenses:
		return "offenses"
	case ExitError:
		return "error"
	default:
		return "unknown"
	}
}
