package ui

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-dl/internal/model"
)

// File size formatting constants
const (
	FileSizeUnit  = 1024
	FileSizeUnits = "KMGTPE"
)

// Progress calculation constants
const (
	MaxProgressPercent  = 100
	MinProgressPercent  = 1
	RoundingCoefficient = 0.5
)

// formatFileSize formats file size in bytes to human readable format
func formatFileSize(bytes int64) string {
	if bytes < FileSizeUnit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(FileSizeUnit), 0
	for n := bytes / FileSizeUnit; n >= FileSizeUnit; n /= FileSizeUnit {
		div *= FileSizeUnit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), FileSizeUnits[exp])
}

// effectivePercent clamps the task percentage to 0..100 and never shows 0
// once bytes have arrived.
func effectivePercent(task *model.DownloadTask) int {
	if task.Status == model.TaskStatusCompleted {
		return MaxProgressPercent
	}
	percent := task.Percent
	if percent <= 0 && task.Progress > 0 {
		percent = int(task.Progress*MaxProgressPercent + RoundingCoefficient)
		if percent == 0 {
			percent = MinProgressPercent
		}
	}
	if percent < 0 {
		percent = 0
	}
	if percent > MaxProgressPercent {
		percent = MaxProgressPercent
	}
	return percent
}

// statusText renders the status with its icon
func statusText(status model.TaskStatus) string {
	switch status {
	case model.TaskStatusError:
		return IconError + " " + status.String()
	case model.TaskStatusDownloading:
		return IconPlay + " " + status.String()
	case model.TaskStatusPending, model.TaskStatusResolving:
		return IconPending + " " + status.String()
	case model.TaskStatusStopped, model.TaskStatusStopping:
		return IconStopped + " " + status.String()
	case model.TaskStatusSkipped:
		return IconSkip + " " + status.String()
	}
	return status.String()
}

// speedETAText renders speed and ETA while downloading, the error otherwise
func speedETAText(task *model.DownloadTask) string {
	switch task.Status {
	case model.TaskStatusDownloading:
		text := task.Speed
		if task.ETASec > 0 {
			if text != "" {
				text += MiddleDotSeparator
			}
			text += task.GetETAString()
		}
		if text == "" {
			text = DashPlaceholder
		}
		return text
	case model.TaskStatusCompleted:
		if task.FileSize > 0 {
			return formatFileSize(task.FileSize)
		}
	case model.TaskStatusError, model.TaskStatusSkipped:
		return task.LastError
	}
	return ""
}

// hasLocalFile reports whether path looks like a file on disk rather than a URL
func hasLocalFile(path string) bool {
	if path == "" || strings.HasPrefix(path, "http") {
		return false
	}
	return strings.ContainsAny(path, `/\`)
}

// TaskRow shows one item of a download batch
type TaskRow struct {
	widget.BaseWidget

	task         *model.DownloadTask
	localization *Localization

	titleLabel    *widget.Label
	positionLabel *widget.Label
	statusLabel   *widget.Label
	progressLabel *widget.Label
	speedEtaLabel *widget.Label

	revealBtn *widget.Button // reveal in file manager
	openBtn   *widget.Button // open with default app
	copyBtn   *widget.Button

	onReveal   func(filePath string)
	onOpen     func(filePath string)
	onCopyPath func(filePath string)
}

// NewTaskRow creates a new task row widget
func NewTaskRow(task *model.DownloadTask, localization *Localization) *TaskRow {
	if task == nil {
		task = &model.DownloadTask{Status: model.TaskStatusPending}
	}

	tr := &TaskRow{
		task:         task,
		localization: localization,
	}
	tr.ExtendBaseWidget(tr)
	tr.createUI()
	tr.updateFromTask()
	return tr
}

// SetCallbacks sets the action callbacks
func (tr *TaskRow) SetCallbacks(onReveal, onOpen, onCopyPath func(filePath string)) {
	tr.onReveal = onReveal
	tr.onOpen = onOpen
	tr.onCopyPath = onCopyPath
}

// UpdateTask updates the row with new task data
func (tr *TaskRow) UpdateTask(task *model.DownloadTask) {
	if task == nil {
		return
	}
	tr.task = task
	tr.updateFromTask()
	tr.Refresh()
}

func (tr *TaskRow) createUI() {
	tr.titleLabel = widget.NewLabel("")
	tr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	tr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	tr.positionLabel = widget.NewLabel("")
	tr.positionLabel.TextStyle = fyne.TextStyle{Monospace: true}

	tr.statusLabel = widget.NewLabel("")
	tr.statusLabel.Alignment = fyne.TextAlignTrailing
	tr.progressLabel = widget.NewLabel("")
	tr.progressLabel.Alignment = fyne.TextAlignTrailing
	tr.speedEtaLabel = widget.NewLabel("")
	tr.speedEtaLabel.TextStyle = fyne.TextStyle{Monospace: true}
	tr.speedEtaLabel.Truncation = fyne.TextTruncateEllipsis

	withPath := func(action func() func(string)) func() {
		return func() {
			path := tr.task.OutputPath
			if cb := action(); cb != nil && hasLocalFile(path) {
				cb(path)
			}
		}
	}

	tr.revealBtn = widget.NewButton(tr.localization.GetText(KeyReveal), withPath(func() func(string) { return tr.onReveal }))
	tr.openBtn = widget.NewButton(tr.localization.GetText(KeyOpen), withPath(func() func(string) { return tr.onOpen }))
	tr.copyBtn = widget.NewButton(tr.localization.GetText(KeyPath), withPath(func() func(string) { return tr.onCopyPath }))
	for _, b := range []*widget.Button{tr.revealBtn, tr.openBtn, tr.copyBtn} {
		b.Importance = widget.MediumImportance
	}
}

func (tr *TaskRow) updateFromTask() {
	task := tr.task

	tr.titleLabel.SetText(cleanText(task.GetDisplayTitle()))
	tr.positionLabel.SetText(task.GetPositionString())

	switch task.Status {
	case model.TaskStatusError:
		tr.statusLabel.Importance = widget.DangerImportance
	case model.TaskStatusCompleted:
		tr.statusLabel.Importance = widget.SuccessImportance
	case model.TaskStatusSkipped:
		tr.statusLabel.Importance = widget.WarningImportance
	case model.TaskStatusDownloading:
		tr.statusLabel.Importance = widget.HighImportance
	default:
		tr.statusLabel.Importance = widget.MediumImportance
	}
	tr.statusLabel.SetText(statusText(task.Status))

	if task.Status == model.TaskStatusDownloading {
		tr.progressLabel.SetText(fmt.Sprintf(ProgressLabelFormat, effectivePercent(task)))
	} else {
		tr.progressLabel.SetText("")
	}
	tr.speedEtaLabel.SetText(speedETAText(task))

	tr.revealBtn.SetText(tr.localization.GetText(KeyReveal))
	tr.openBtn.SetText(tr.localization.GetText(KeyOpen))
	tr.copyBtn.SetText(tr.localization.GetText(KeyPath))
	for _, b := range []*widget.Button{tr.revealBtn, tr.openBtn, tr.copyBtn} {
		if task.Status == model.TaskStatusCompleted && hasLocalFile(task.OutputPath) {
			b.Enable()
		} else {
			b.Disable()
		}
	}
}

// cleanText flattens control characters that break single line labels
func cleanText(s string) string {
	s = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(s)
	return strings.TrimSpace(s)
}

// CreateRenderer creates the widget renderer
func (tr *TaskRow) CreateRenderer() fyne.WidgetRenderer {
	return &taskRowRenderer{taskRow: tr}
}

type taskRowRenderer struct {
	taskRow *TaskRow
	layout  *fyne.Container
}

func (r *taskRowRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	if size.Width < RowMinWidth {
		size.Width = RowMinWidth
	}
	if size.Height < RowMinHeight {
		size.Height = RowMinHeight
	}
	r.layout.Resize(size)
}

func (r *taskRowRenderer) MinSize() fyne.Size {
	if r.layout != nil {
		return r.layout.MinSize()
	}
	return fyne.NewSize(RowMinWidth, RowMinHeight)
}

func (r *taskRowRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Refresh()
}

func (r *taskRowRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

func (r *taskRowRenderer) Destroy() {}

func (r *taskRowRenderer) createLayout() {
	tr := r.taskRow

	// fixed widths keep the columns aligned across rows
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	info := container.NewVBox(
		fixedWidth(StatusLabelWidth, tr.statusLabel),
		container.NewHBox(
			fixedWidth(SpeedLabelWidth, tr.speedEtaLabel),
			fixedWidth(PercentLabelWidth, tr.progressLabel),
		),
	)
	actions := container.NewHBox(tr.revealBtn, tr.openBtn, tr.copyBtn)
	rightCluster := container.NewBorder(nil, nil, nil, actions, info)

	left := container.NewBorder(nil, nil, fixedWidth(PositionLabelWidth, tr.positionLabel), nil, tr.titleLabel)
	body := container.NewBorder(nil, nil, nil, rightCluster, left)

	r.layout = container.NewVBox(body, widget.NewSeparator())
	r.layout.Resize(fyne.NewSize(RowMinWidth, RowDefaultH))
}
