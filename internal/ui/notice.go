package ui

import (
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-dl/internal/apperr"
)

// showNotice presents n in a dialog matching its severity. Must run on the
// UI goroutine.
func showNotice(window fyne.Window, n apperr.Notice) {
	switch n.Severity {
	case apperr.SeverityInfo:
		dialog.ShowInformation(n.Title, n.Message, window)
	case apperr.SeverityWarning:
		if n.Detail == "" {
			dialog.ShowError(errors.New(n.Message), window)
			return
		}
		showDetailed(window, n)
	default:
		showDetailed(window, n)
	}
}

// showDetailed shows the message with the detail in a collapsed, read-only
// entry below it.
func showDetailed(window fyne.Window, n apperr.Notice) {
	message := widget.NewLabel(n.Message)
	message.Wrapping = fyne.TextWrapWord

	detail := widget.NewMultiLineEntry()
	detail.SetText(n.Detail)
	detail.Wrapping = fyne.TextWrapOff
	detail.SetMinRowsVisible(6)
	detail.Disable()

	accordion := widget.NewAccordion(widget.NewAccordionItem("Details", detail))
	content := container.NewVBox(message, accordion)

	d := dialog.NewCustom(n.Title, "OK", content, window)
	d.Resize(fyne.NewSize(SettingsDialogWidth, DetailEntryHeight))
	d.Show()
}
