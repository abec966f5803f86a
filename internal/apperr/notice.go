package apperr

import "errors"

// CrashLogName is the file unexpected errors are written to.
const CrashLogName = "yt-dl.log"

// Severity mirrors the icon of the dialog a notice is shown in.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityCritical
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "info"
	}
}

// Notice is what the UI shows to the user in place of a raised error.
type Notice struct {
	Title    string
	Message  string
	Severity Severity
	Detail   string // optional trace or cause, shown collapsed
}

// Info builds an informational notice.
func Info(message string) Notice {
	return Notice{Title: "Info", Message: message, Severity: SeverityInfo}
}

// NoticeFor maps err to a notice. Expected failures become warnings; anything
// unclassified is critical.
func NoticeFor(err error) Notice {
	if err == nil {
		return Notice{}
	}

	var pe *PanicError
	if errors.As(err, &pe) {
		return Notice{
			Title:    "Unexpected error",
			Message:  "An unexpected error occurred. Details were written to " + CrashLogName + ".",
			Severity: SeverityCritical,
			Detail:   pe.Trace(),
		}
	}

	n := Notice{
		Title:    "Error",
		Message:  MessageOf(err),
		Severity: SeverityWarning,
	}
	if e, ok := err.(*Error); ok && e.Err != nil {
		n.Detail = e.Err.Error()
	}

	switch KindOf(err) {
	case UnsupportedPlatform:
		n.Title = "Info"
		n.Severity = SeverityInfo
	case Internal:
		n.Message = "An unexpected error occurred."
		n.Detail = err.Error()
		n.Severity = SeverityCritical
	}
	return n
}
