package update

import "fmt"

// Stage is a step of an update run
type Stage int

const (
	Fetching Stage = iota
	Extracting
	Verifying
	Applying
	CleaningUp
	Done
)

// TotalStages is the number of stages reported to the user
const TotalStages = 5

var stageDescriptions = map[Stage]string{
	Fetching:   "Fetching the latest version from Github...",
	Extracting: "Extracting ZIP archive...",
	Verifying:  "Verifying files...",
	Applying:   "Copying new files...",
	CleaningUp: "Cleaning up...",
	Done:       "Done.",
}

// Ordinal returns the 1-based position shown to the user
func (s Stage) Ordinal() int {
	if s >= Done {
		return TotalStages
	}
	return int(s) + 1
}

// Label renders the stage as "n / 5\n<description>"
func (s Stage) Label() string {
	return fmt.Sprintf("%d / %d\n%s", s.Ordinal(), TotalStages, stageDescriptions[s])
}

func (s Stage) String() string {
	switch s {
	case Fetching:
		return "fetching"
	case Extracting:
		return "extracting"
	case Verifying:
		return "verifying"
	case Applying:
		return "applying"
	case CleaningUp:
		return "cleaning up"
	case Done:
		return "done"
	}
	return "unknown"
}

// Progress is emitted before each blocking stage runs
type Progress struct {
	Stage   Stage
	Ordinal int
	Total   int
	Label   string
}

func progressFor(s Stage) Progress {
	return Progress{Stage: s, Ordinal: s.Ordinal(), Total: TotalStages, Label: s.Label()}
}
