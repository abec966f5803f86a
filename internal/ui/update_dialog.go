package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-dl/internal/update"
)

// UpdateDialog shows the stage an update run is in
type UpdateDialog struct {
	dialog   *dialog.CustomDialog
	label    *widget.Label
	progress *widget.ProgressBar
	finished bool
}

// NewUpdateDialog creates the dialog; onCancel runs when the user dismisses it.
func NewUpdateDialog(window fyne.Window, localization *Localization, onCancel func()) *UpdateDialog {
	ud := &UpdateDialog{
		label:    widget.NewLabel(update.Fetching.Label()),
		progress: widget.NewProgressBar(),
	}
	ud.label.Alignment = fyne.TextAlignCenter
	ud.progress.Min = 0
	ud.progress.Max = update.TotalStages

	content := container.NewVBox(ud.label, ud.progress)
	ud.dialog = dialog.NewCustom(localization.GetText(KeyUpdateTitle), localization.GetText(KeyCancel), content, window)
	ud.dialog.SetOnClosed(func() {
		if !ud.finished && onCancel != nil {
			onCancel()
		}
	})
	ud.dialog.Resize(fyne.NewSize(UpdateDialogWidth, ud.dialog.MinSize().Height))
	return ud
}

// Show displays the dialog
func (ud *UpdateDialog) Show() {
	ud.dialog.Show()
}

// SetProgress renders p. Must run on the UI goroutine.
func (ud *UpdateDialog) SetProgress(p update.Progress) {
	ud.label.SetText(p.Label)
	ud.progress.SetValue(float64(p.Ordinal))
}

// Close hides the dialog without triggering the cancel callback.
func (ud *UpdateDialog) Close() {
	ud.finished = true
	ud.dialog.Hide()
}
