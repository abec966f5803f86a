package logger

import (
	"runtime/debug"

	"github.com/ytget/yt-dl/internal/apperr"
)

// Warning is a panic value that is logged but never shown to the user.
type Warning string

func (w Warning) String() string { return string(w) }

// Recover is the last line of defence for a goroutine: deferred at its top,
// it logs any panic with its stack trace and, unless the panic value is a
// Warning, hands a generic critical notice to report.
//
//	defer logger.Recover(showNotice)
func Recover(report func(apperr.Notice)) {
	r := recover()
	if r == nil {
		return
	}
	HandlePanic(r, debug.Stack(), report)
}

// HandlePanic logs a recovered value and reports it when it is an error.
func HandlePanic(r any, stack []byte, report func(apperr.Notice)) {
	if w, ok := r.(Warning); ok {
		std.Infof("suppressed warning: %s", w)
		return
	}

	pe := &apperr.PanicError{Value: r, Stack: stack}
	std.Errorf("uncaught error: %s", pe.Trace())

	if report != nil {
		report(apperr.NoticeFor(pe))
	}
}
