package model

import (
	"fmt"
	"strings"
)

// ItemError records why one batch item failed
type ItemError struct {
	Index int
	URL   string
	Err   string
}

// DownloadResult accumulates counts for one user initiated batch. Files holds
// the paths written, in batch order, so a later conversion step can find them.
type DownloadResult struct {
	Attempted int
	Succeeded int
	Failed    int
	Skipped   int // no stream matched the requested format and resolution
	Files     []string
	Errors    []ItemError
	Cancelled bool
}

// Summary renders the result for the user
func (r DownloadResult) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d videos were downloaded successfully.", r.Succeeded, r.Attempted)
	if r.Failed > 0 {
		fmt.Fprintf(&b, "\n%d errors occurred.", r.Failed)
	}
	if r.Skipped > 0 {
		fmt.Fprintf(&b, "\n%d videos had no stream in the selected format and resolution.", r.Skipped)
	}
	if r.Cancelled {
		b.WriteString("\nThe download was cancelled.")
	}
	return b.String()
}

// HasFiles reports whether anything was downloaded
func (r DownloadResult) HasFiles() bool {
	return len(r.Files) > 0
}
