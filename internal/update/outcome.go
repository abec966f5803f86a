package update

import (
	"fmt"

	"github.com/ytget/yt-dl/internal/apperr"
)

// OutcomeKind is the terminal result of an update run
type OutcomeKind int

const (
	Success OutcomeKind = iota
	Unsupported
	NoUpdate
	Failed
)

func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case Unsupported:
		return "unsupported"
	case NoUpdate:
		return "no update"
	}
	return "error"
}

// User facing messages
const (
	MsgUnsupported = "Updating is not yet supported for packaged executables."
	MsgNoUpdate    = "There's no update available at the time!"
	MsgCancelled   = "The update was cancelled."
)

// Outcome is what an update run ended with. Exactly one kind is set.
type Outcome struct {
	Kind       OutcomeKind
	OldVersion string
	NewVersion string
	Notice     apperr.Notice
	Err        error
}

// RestartRequired reports whether the new files only take effect after a restart
func (o Outcome) RestartRequired() bool {
	return o.Kind == Success
}

func successOutcome(oldVersion, newVersion string) Outcome {
	msg := fmt.Sprintf("Updated successfully! (%s -> %s)\nThe application will restart now for the update to take effect.", oldVersion, newVersion)
	return Outcome{Kind: Success, OldVersion: oldVersion, NewVersion: newVersion, Notice: apperr.Info(msg)}
}

func unsupportedOutcome(oldVersion, newVersion string) Outcome {
	err := apperr.New(apperr.UnsupportedPlatform, "update", MsgUnsupported)
	return Outcome{Kind: Unsupported, OldVersion: oldVersion, NewVersion: newVersion, Notice: apperr.NoticeFor(err), Err: err}
}

func noUpdateOutcome(oldVersion, newVersion string) Outcome {
	return Outcome{Kind: NoUpdate, OldVersion: oldVersion, NewVersion: newVersion, Notice: apperr.Info(MsgNoUpdate)}
}

func failedOutcome(err error) Outcome {
	return Outcome{Kind: Failed, Notice: apperr.NoticeFor(err), Err: err}
}

func cancelledOutcome(err error) Outcome {
	return Outcome{Kind: Failed, Notice: apperr.Info(MsgCancelled), Err: fmt.Errorf("update cancelled: %w", err)}
}
