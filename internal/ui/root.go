package ui

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-dl/internal/apperr"
	"github.com/ytget/yt-dl/internal/config"
	"github.com/ytget/yt-dl/internal/convert"
	"github.com/ytget/yt-dl/internal/download"
	"github.com/ytget/yt-dl/internal/logger"
	"github.com/ytget/yt-dl/internal/model"
	"github.com/ytget/yt-dl/internal/platform"
	"github.com/ytget/yt-dl/internal/update"
	"github.com/ytget/yt-dl/internal/worker"
)

// Locator resolves a URL to a video or a playlist
type Locator interface {
	Locate(ctx context.Context, rawURL string) (model.Location, error)
}

// Updater runs an update check
type Updater interface {
	SetObserver(observer func(update.Progress))
	Run(ctx context.Context) update.Outcome
}

// Services are the components the window drives
type Services struct {
	Locator   Locator
	Downloads download.BatchDownloader
	Converter convert.Converter
	Updater   Updater
	Pool      *worker.Pool
	Version   string
}

// RootUI represents the main application UI
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	svc          Services
	settings     *config.Settings
	localization *Localization

	// Section 1: find videos
	findCard *widget.Card
	urlEntry *widget.Entry
	findBtn  *widget.Button

	// Section 2: format and resolution
	formatCard       *widget.Card
	formatSelect     *widget.Select
	resolutionSelect *widget.Select

	// Section 3: destination and download
	downloadCard *widget.Card
	destEntry    *widget.Entry
	browseBtn    *widget.Button
	downloadBtn  *widget.Button
	cancelBtn    *widget.Button

	// Section 4: conversion
	convertCard *widget.Card
	modeSelect  *widget.Select
	convertBtn  *widget.Button
	modeLabels  map[string]config.ConversionMode

	// Located items, each with a checkbox
	selectAllCheck *widget.Check
	itemList       *widget.List

	taskList *widget.List

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite

	// State below is only touched on the UI goroutine
	location     model.Location
	selection    *itemSelection
	lastResult   model.DownloadResult
	tasks        []*model.DownloadTask
	current      *worker.Future
	updateDialog *UpdateDialog
	conversions  map[string]model.ConversionTask

	// UI update debouncing
	lastUIUpdate  time.Time
	uiUpdateMutex sync.Mutex

	closing atomic.Bool
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, svc Services) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		svc:          svc,
		settings:     settings,
		localization: localization,
		conversions:  make(map[string]model.ConversionTask),
		selection:    newItemSelection(model.Location{}),
	}

	window.SetTitle(ui.windowTitle())

	ui.svc.Downloads.SetUpdateCallback(ui.onTaskUpdate)
	ui.svc.Converter.SetUpdateCallback(ui.onConversionUpdate)
	ui.svc.Updater.SetObserver(ui.onUpdateProgress)

	ui.setupUI()
	go ui.drainCompletions()

	logger.Infof("RootUI initialized, version %s", svc.Version)
	return ui
}

// Shutdown stops routing completions to widgets and cancels running jobs.
// Call it after the window has closed and before closing the pool.
func (ui *RootUI) Shutdown() {
	ui.closing.Store(true)
	ui.svc.Pool.CancelAll()
}

func (ui *RootUI) windowTitle() string {
	return fmt.Sprintf("%s v%s", ui.localization.GetText(KeyAppTitle), ui.svc.Version)
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()
	l := ui.localization

	// Section 1
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(l.GetText(KeyEnterURL))
	ui.urlEntry.Validator = validateURL
	ui.urlEntry.OnSubmitted = func(string) { ui.onFindClick() }
	ui.findBtn = widget.NewButton(l.GetText(KeyFindVideos), ui.onFindClick)
	ui.findBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	left := container.NewHBox(settingsBtn)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		logoImage.FillMode = canvas.ImageFillContain
		left = container.NewHBox(logoImage, settingsBtn)
	}
	ui.findCard = widget.NewCard("", l.GetText(KeySectionFind),
		container.NewBorder(nil, nil, left, ui.findBtn, ui.urlEntry))

	// Section 2
	ui.formatSelect = widget.NewSelect(nil, ui.onFormatChanged)
	ui.formatSelect.PlaceHolder = l.GetText(KeyFormat)
	ui.resolutionSelect = widget.NewSelect(nil, nil)
	ui.resolutionSelect.PlaceHolder = l.GetText(KeyResolution)
	ui.formatCard = widget.NewCard("", l.GetText(KeySectionFormat),
		container.NewGridWithColumns(2, ui.formatSelect, ui.resolutionSelect))

	// Section 3
	ui.destEntry = widget.NewEntry()
	ui.destEntry.SetPlaceHolder(l.GetText(KeyCurrentDirectory))
	ui.destEntry.SetText(ui.settings.GetDownloadDirectory())
	ui.browseBtn = widget.NewButton(IconFolder+" "+l.GetText(KeyBrowse), ui.onBrowseDestination)
	ui.downloadBtn = widget.NewButton(l.GetText(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.cancelBtn = widget.NewButton(l.GetText(KeyCancel), ui.onCancelClick)
	ui.cancelBtn.Hide()
	ui.downloadCard = widget.NewCard("", l.GetText(KeySectionDownload),
		container.NewBorder(nil, nil, nil,
			container.NewHBox(ui.browseBtn, ui.downloadBtn, ui.cancelBtn), ui.destEntry))

	// Section 4
	ui.modeSelect = widget.NewSelect(nil, nil)
	ui.fillModeOptions()
	ui.convertBtn = widget.NewButton(l.GetText(KeyConvert), ui.onConvertClick)
	ui.convertCard = widget.NewCard("", l.GetText(KeySectionConvert),
		container.NewBorder(nil, nil, nil, ui.convertBtn, ui.modeSelect))

	// Notification panel under the sections (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Truncation = fyne.TextTruncateEllipsis
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewBorder(nil, nil, ui.notificationSpinner, nil, ui.notificationLabel)
	ui.notificationContainer.Hide()

	ui.selectAllCheck = widget.NewCheck(l.GetText(KeySelectAll), ui.onSelectAll)
	ui.itemList = widget.NewList(
		func() int { return ui.selection.Len() },
		func() fyne.CanvasObject { return widget.NewCheck("", nil) },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateItemCheck(id, obj) },
	)
	items := container.NewBorder(ui.selectAllCheck, nil, nil, nil, ui.itemList)

	ui.taskList = widget.NewList(
		func() int { return len(ui.tasks) },
		func() fyne.CanvasObject { return ui.createTaskItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateTaskItem(id, obj) },
	)

	top := container.NewVBox(ui.findCard, ui.formatCard, ui.downloadCard, ui.convertCard, ui.notificationContainer)
	lists := container.NewVSplit(items, ui.taskList)
	lists.Offset = ItemListSplitOffset
	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, lists))

	ui.refreshControls()
	logger.Debugf("UI setup completed")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	l := ui.localization

	updateItem := fyne.NewMenuItem(l.GetText(KeyCheckForUpdates), ui.onCheckForUpdates)
	settingsItem := fyne.NewMenuItem(l.GetText(KeySettings), ui.onShowSettings)
	aboutItem := fyne.NewMenuItem(l.GetText(KeyAbout), ui.onShowAbout)
	exitItem := fyne.NewMenuItem(l.GetText(KeyExit), ui.app.Quit)
	exitItem.IsQuit = true

	languageMenu := fyne.NewMenu(l.GetText(KeyLanguage))
	for code, name := range l.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = l.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(l.GetText(KeyFile),
			updateItem,
			aboutItem,
			fyne.NewMenuItemSeparator(),
			settingsItem,
			fyne.NewMenuItemSeparator(),
			exitItem,
		),
		languageMenu,
	)
	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization

	ui.window.SetTitle(ui.windowTitle())

	ui.findCard.SetSubTitle(l.GetText(KeySectionFind))
	ui.formatCard.SetSubTitle(l.GetText(KeySectionFormat))
	ui.downloadCard.SetSubTitle(l.GetText(KeySectionDownload))
	ui.convertCard.SetSubTitle(l.GetText(KeySectionConvert))

	ui.urlEntry.SetPlaceHolder(l.GetText(KeyEnterURL))
	ui.findBtn.SetText(l.GetText(KeyFindVideos))
	ui.formatSelect.PlaceHolder = l.GetText(KeyFormat)
	ui.resolutionSelect.PlaceHolder = l.GetText(KeyResolution)
	ui.formatSelect.Refresh()
	ui.resolutionSelect.Refresh()
	ui.destEntry.SetPlaceHolder(l.GetText(KeyCurrentDirectory))
	ui.browseBtn.SetText(IconFolder + " " + l.GetText(KeyBrowse))
	ui.downloadBtn.SetText(l.GetText(KeyDownload))
	ui.cancelBtn.SetText(l.GetText(KeyCancel))
	ui.convertBtn.SetText(l.GetText(KeyConvert))
	ui.selectAllCheck.SetText(l.GetText(KeySelectAll))
	ui.fillModeOptions()

	ui.taskList.Refresh()
}

// fillModeOptions (re)labels the conversion modes, keeping the selection
func (ui *RootUI) fillModeOptions() {
	selected := ui.settings.GetConversionMode()
	if mode, ok := ui.modeLabels[ui.modeSelect.Selected]; ok {
		selected = mode
	}

	ui.modeLabels = make(map[string]config.ConversionMode)
	var options []string
	for _, mode := range ui.settings.GetConversionModeOptions() {
		label := ui.localization.GetText(conversionModeKey(mode))
		ui.modeLabels[label] = mode
		options = append(options, label)
	}
	ui.modeSelect.Options = options
	ui.modeSelect.SetSelected(ui.localization.GetText(conversionModeKey(selected)))
}

// validateURL accepts URLs without a scheme; the locator retries them with
// https. An explicit scheme must be http or https.
func validateURL(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	if !strings.Contains(input, "://") {
		return nil
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return err
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	return nil
}

// busy reports whether a locate or download job is running
func (ui *RootUI) busy() bool {
	return ui.current != nil
}

// refreshControls enables the sections the current state allows
func (ui *RootUI) refreshControls() {
	busy := ui.busy()
	located := ui.location.Resolved()

	setEnabled(ui.findBtn, !busy)
	setEnabled(ui.formatSelect, located && !busy)
	setEnabled(ui.resolutionSelect, located && !busy)
	setEnabled(ui.browseBtn, !busy)
	setEnabled(ui.selectAllCheck, located && !busy)
	setEnabled(ui.downloadBtn, located && ui.selection.Count() > 0 && !busy)
	setEnabled(ui.convertBtn, ui.lastResult.HasFiles() && !busy)

	if busy {
		ui.cancelBtn.Show()
	} else {
		ui.cancelBtn.Hide()
	}
	ui.itemList.Refresh()
}

type disableable interface {
	Enable()
	Disable()
}

func setEnabled(w disableable, enabled bool) {
	if enabled {
		w.Enable()
	} else {
		w.Disable()
	}
}

// onFindClick runs the locator on the worker pool
func (ui *RootUI) onFindClick() {
	if ui.busy() {
		return
	}

	urlText := cleanText(ui.urlEntry.Text)
	if urlText == "" {
		ui.showNotification(ui.localization.GetText(KeyPleaseEnterURL), false)
		return
	}
	if err := validateURL(urlText); err != nil {
		ui.showNotification(ui.localization.GetText(KeyInvalidURL)+": "+err.Error(), false)
		return
	}

	logger.Infof("Locating %s", urlText)

	ui.location = model.Location{}
	ui.selection = newItemSelection(ui.location)
	ui.formatSelect.Options = nil
	ui.formatSelect.ClearSelected()
	ui.resolutionSelect.Options = nil
	ui.resolutionSelect.ClearSelected()

	ui.current = ui.svc.Pool.Submit(JobLocate, func(ctx context.Context) (any, error) {
		return ui.svc.Locator.Locate(ctx, urlText)
	})
	ui.showNotification(ui.localization.GetText(KeyLocating), true)
	ui.refreshControls()
}

// onLocated fills section 2 from a locate result
func (ui *RootUI) onLocated(loc model.Location) {
	ui.location = loc
	ui.selection = newItemSelection(loc)
	ui.selectAllCheck.SetChecked(true)
	ui.itemList.ScrollToTop()

	switch loc.Kind {
	case model.SingleVideo:
		ui.showNotification(ui.localization.Format(KeyFoundVideo, loc.Video.Title), false)
	case model.PlaylistVideos:
		ui.showNotification(ui.localization.Format(KeyFoundPlaylist, len(loc.Entries)), false)
	}

	formats := formatChoices(loc)
	ui.formatSelect.Options = labels(formats, config.FormatLabel)
	ui.formatSelect.SetSelected(config.FormatLabel(pickDefault(formats, ui.settings.GetFormat())))
}

// onFormatChanged repopulates the resolutions offered for the chosen format
func (ui *RootUI) onFormatChanged(label string) {
	format, ok := config.FormatValue(label)
	if !ok {
		ui.resolutionSelect.Options = nil
		ui.resolutionSelect.ClearSelected()
		return
	}

	resolutions := resolutionChoices(ui.location, format)
	ui.resolutionSelect.Options = labels(resolutions, resolutionLabel)
	ui.resolutionSelect.SetSelected(resolutionLabel(pickDefault(resolutions, ui.settings.GetResolution())))
}

// onSelectAll checks or unchecks every located item
func (ui *RootUI) onSelectAll(checked bool) {
	ui.selection.SetAll(checked)
	ui.refreshControls()
}

// updateItemCheck binds the checkbox at id to its located item
func (ui *RootUI) updateItemCheck(id widget.ListItemID, obj fyne.CanvasObject) {
	check, ok := obj.(*widget.Check)
	if !ok {
		return
	}
	// detach before SetChecked so rebinding does not write back
	check.OnChanged = nil
	check.SetText(ui.selection.Label(id))
	check.SetChecked(ui.selection.Checked(id))
	setEnabled(check, !ui.busy())
	check.OnChanged = func(checked bool) {
		ui.selection.SetChecked(id, checked)
		setEnabled(ui.downloadBtn, ui.location.Resolved() && ui.selection.Count() > 0 && !ui.busy())
	}
}

// onBrowseDestination picks the download folder
func (ui *RootUI) onBrowseDestination() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.destEntry.SetText(uri.Path())
	}, ui.window)
}

// onDownloadClick runs a download batch over the located items
func (ui *RootUI) onDownloadClick() {
	if ui.busy() || !ui.location.Resolved() {
		return
	}

	format, ok := config.FormatValue(ui.formatSelect.Selected)
	if !ok || ui.resolutionSelect.Selected == "" {
		ui.showNotification(ui.localization.GetText(KeySelectFormat), false)
		return
	}
	resolution := resolutionValue(ui.resolutionSelect.Selected)
	destination := strings.TrimSpace(ui.destEntry.Text)
	items := ui.selection.Selected()
	if len(items) == 0 {
		ui.showNotification(ui.localization.GetText(KeyNoItemsSelected), false)
		return
	}

	ui.settings.SetFormat(format)
	ui.settings.SetResolution(resolution)
	if destination != "" {
		ui.settings.SetDownloadDirectory(destination)
	}

	logger.Infof("Downloading %d item(s) as %s %s into %q", len(items), format, resolution, destination)

	ui.tasks = nil
	ui.taskList.Refresh()
	ui.lastResult = model.DownloadResult{}

	ui.current = ui.svc.Pool.Submit(JobDownload, func(ctx context.Context) (any, error) {
		return ui.svc.Downloads.DownloadBatch(ctx, items, format, resolution, destination), nil
	})
	ui.showNotification(ui.localization.GetText(KeyDownloadStarted), true)
	ui.refreshControls()
}

// onCancelClick cancels the running locate or download job
func (ui *RootUI) onCancelClick() {
	if ui.current == nil {
		return
	}
	ui.current.Cancel()
	ui.showNotification(ui.localization.GetText(KeyCancelling), true)
}

// onBatchFinished shows the batch summary and unlocks conversion
func (ui *RootUI) onBatchFinished(result model.DownloadResult) {
	ui.lastResult = result
	ui.hideNotification()

	logger.Infof("Batch finished: attempted=%d succeeded=%d failed=%d skipped=%d",
		result.Attempted, result.Succeeded, result.Failed, result.Skipped)

	severity := apperr.SeverityInfo
	if result.Failed > 0 {
		severity = apperr.SeverityWarning
	}
	notice := apperr.Notice{
		Title:    ui.localization.GetText(KeyDownloadFinished),
		Message:  result.Summary(),
		Severity: severity,
	}
	if len(result.Errors) > 0 {
		var b strings.Builder
		for _, e := range result.Errors {
			fmt.Fprintf(&b, "#%d %s: %s\n", e.Index, e.URL, e.Err)
		}
		notice.Detail = b.String()
	}
	showNotice(ui.window, notice)

	if result.Succeeded > 0 {
		ui.app.SendNotification(&fyne.Notification{
			Title:   notice.Title,
			Content: result.Summary(),
		})
	}
}

// onConvertClick converts every file of the last batch
func (ui *RootUI) onConvertClick() {
	files := ui.lastResult.Files
	if len(files) == 0 {
		showNotice(ui.window, apperr.Info(ui.localization.GetText(KeyNothingToConvert)))
		return
	}

	mode, ok := ui.modeLabels[ui.modeSelect.Selected]
	if !ok {
		mode = ui.settings.GetConversionMode()
	}
	ui.settings.SetConversionMode(mode)

	logger.Infof("Converting %d file(s) with mode %s", len(files), mode)

	ui.conversions = make(map[string]model.ConversionTask)
	tasks, errs := ui.svc.Converter.ConvertAll(files, convert.Mode(mode))
	for _, task := range tasks {
		// the service keeps mutating task; only its identity is read here
		ui.conversions[task.ID] = model.ConversionTask{ID: task.ID, InputPath: task.InputPath, Status: model.TaskStatusPending}
	}
	for _, err := range errs {
		logger.Errorf("Conversion not started: %v", err)
	}

	if len(tasks) == 0 {
		if len(errs) > 0 {
			showNotice(ui.window, apperr.NoticeFor(errs[0]))
		}
		return
	}
	ui.convertBtn.Disable()
	ui.showNotification(ui.localization.Format(KeyConverting, 1, len(tasks), 0), true)
}

// onConversionUpdate is called by the converter from its own goroutines
func (ui *RootUI) onConversionUpdate(task *model.ConversionTask) {
	if ui.closing.Load() {
		return
	}
	fyne.Do(func() {
		if _, ok := ui.conversions[task.ID]; !ok {
			return
		}
		ui.conversions[task.ID] = *task

		finished, converted := 0, 0
		for _, t := range ui.conversions {
			if t.Status.IsFinished() {
				finished++
			}
			if t.Status == model.TaskStatusCompleted {
				converted++
			}
		}

		total := len(ui.conversions)
		if finished < total {
			ui.showNotification(ui.localization.Format(KeyConverting, finished+1, total, task.Percent), true)
			return
		}

		ui.hideNotification()
		ui.refreshControls()
		notice := apperr.Info(ui.localization.Format(KeyConversionFinished, converted, total))
		if converted < total {
			notice.Severity = apperr.SeverityWarning
			var b strings.Builder
			for _, t := range ui.conversions {
				if t.LastError != "" {
					fmt.Fprintf(&b, "%s: %s\n", t.InputPath, t.LastError)
				}
			}
			notice.Detail = b.String()
		}
		showNotice(ui.window, notice)
	})
}

// onCheckForUpdates runs the updater on the worker pool behind a stage dialog
func (ui *RootUI) onCheckForUpdates() {
	if ui.updateDialog != nil {
		return
	}

	var future *worker.Future
	ui.updateDialog = NewUpdateDialog(ui.window, ui.localization, func() {
		if future != nil {
			future.Cancel()
		}
	})
	future = ui.svc.Pool.Submit(JobUpdate, func(ctx context.Context) (any, error) {
		return ui.svc.Updater.Run(ctx), nil
	})
	ui.updateDialog.Show()
}

// onUpdateProgress is the updater's observer; it runs on a pool goroutine
func (ui *RootUI) onUpdateProgress(p update.Progress) {
	if ui.closing.Load() {
		return
	}
	fyne.Do(func() {
		if ui.updateDialog != nil {
			ui.updateDialog.SetProgress(p)
		}
	})
}

// onUpdateFinished shows the outcome and restarts after a successful update
func (ui *RootUI) onUpdateFinished(outcome update.Outcome) {
	if ui.updateDialog != nil {
		ui.updateDialog.Close()
		ui.updateDialog = nil
	}

	if !outcome.RestartRequired() {
		showNotice(ui.window, outcome.Notice)
		return
	}

	d := dialog.NewInformation(outcome.Notice.Title, outcome.Notice.Message, ui.window)
	d.SetOnClosed(func() {
		if err := platform.Restart(); err != nil {
			logger.Errorf("Restart failed: %v", err)
			showNotice(ui.window, apperr.Notice{
				Title:    outcome.Notice.Title,
				Message:  ui.localization.GetText(KeyRestartFailed),
				Severity: apperr.SeverityWarning,
				Detail:   err.Error(),
			})
			return
		}
		ui.app.Quit()
	})
	d.Show()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		logger.Default().SetVerbose(ui.settings.GetVerboseLog())
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.destEntry.SetText(ui.settings.GetDownloadDirectory())
		ui.refreshUITexts()
		ui.createMenu()
	})
}

// onShowAbout shows the about box
func (ui *RootUI) onShowAbout() {
	dialog.ShowInformation(ui.localization.GetText(KeyAbout),
		ui.localization.Format(KeyAboutText, ui.svc.Version), ui.window)
}

// drainCompletions applies finished pool jobs on the UI goroutine until the
// pool closes its completion channel.
func (ui *RootUI) drainCompletions() {
	defer logger.Recover(ui.reportNotice)

	for c := range ui.svc.Pool.Completions() {
		if ui.closing.Load() {
			continue
		}
		completion := c
		fyne.Do(func() { ui.onCompletion(completion) })
	}
}

// onCompletion routes a finished job by name
func (ui *RootUI) onCompletion(c worker.Completion) {
	logger.Debugf("Job %s (%s) finished, err=%v", c.Name, c.ID, c.Err)

	switch c.Name {
	case JobLocate:
		ui.current = nil
		switch {
		case c.Cancelled():
			ui.hideNotification()
		case c.Err != nil:
			ui.hideNotification()
			showNotice(ui.window, apperr.NoticeFor(c.Err))
		default:
			if loc, ok := c.Result.(model.Location); ok {
				ui.onLocated(loc)
			}
		}
	case JobDownload:
		ui.current = nil
		if result, ok := c.Result.(model.DownloadResult); ok {
			ui.onBatchFinished(result)
		} else {
			ui.hideNotification()
			if c.Err != nil && !c.Cancelled() {
				showNotice(ui.window, apperr.NoticeFor(c.Err))
			}
		}
	case JobUpdate:
		if outcome, ok := c.Result.(update.Outcome); ok {
			ui.onUpdateFinished(outcome)
		} else if ui.updateDialog != nil {
			ui.updateDialog.Close()
			ui.updateDialog = nil
			if c.Err != nil && !c.Cancelled() {
				showNotice(ui.window, apperr.NoticeFor(c.Err))
			}
		}
	}
	ui.refreshControls()
}

// reportNotice shows n from any goroutine
func (ui *RootUI) reportNotice(n apperr.Notice) {
	if ui.closing.Load() {
		return
	}
	fyne.Do(func() { showNotice(ui.window, n) })
}

// createTaskItem creates a new task row for the list
func (ui *RootUI) createTaskItem() fyne.CanvasObject {
	row := NewTaskRow(nil, ui.localization)
	row.SetCallbacks(ui.onRevealFile, ui.onOpenFile, ui.onCopyPath)
	return row
}

// updateTaskItem binds the row at id to its task
func (ui *RootUI) updateTaskItem(id widget.ListItemID, item fyne.CanvasObject) {
	if id < 0 || id >= len(ui.tasks) {
		return
	}
	if row, ok := item.(*TaskRow); ok {
		row.UpdateTask(ui.tasks[id])
	}
}

// onTaskUpdate handles task updates from the download service. It runs on
// the batch goroutine with a snapshot of the task.
func (ui *RootUI) onTaskUpdate(task *model.DownloadTask) {
	if ui.closing.Load() {
		return
	}
	if task.Status == model.TaskStatusDownloading && !ui.shouldRefresh() {
		return
	}

	fyne.Do(func() {
		index := -1
		for i, t := range ui.tasks {
			if t.ID == task.ID {
				index = i
				break
			}
		}
		if index < 0 {
			ui.tasks = append(ui.tasks, task)
			ui.taskList.Refresh()
		} else {
			ui.tasks[index] = task
			ui.taskList.RefreshItem(index)
		}

		if task.Status.IsActive() {
			ui.showNotification(ui.localization.Format(KeyDownloadProgress,
				task.GetPositionString(), task.GetDisplayTitle()), true)
		}
	})
}

// shouldRefresh limits progress refreshes to one per UIUpdateDebounce
func (ui *RootUI) shouldRefresh() bool {
	ui.uiUpdateMutex.Lock()
	defer ui.uiUpdateMutex.Unlock()

	now := time.Now()
	if now.Sub(ui.lastUIUpdate) < UIUpdateDebounce {
		return false
	}
	ui.lastUIUpdate = now
	return true
}

// onRevealFile handles revealing a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		logger.Errorf("Error revealing file %s: %v", filePath, err)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), false)
	}
}

// onOpenFile handles opening a downloaded file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		logger.Errorf("Error opening file %s: %v", filePath, err)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), false)
	}
}

// onCopyPath handles copying file path to clipboard
func (ui *RootUI) onCopyPath(filePath string) {
	ui.app.Clipboard().SetContent(filePath)
	ui.showNotification(ui.localization.GetText(KeyPathCopied), false)
}

// showNotification displays a message in the notification panel.
// When spinning is true, a spinner is shown to indicate background activity.
// Must run on the UI goroutine.
func (ui *RootUI) showNotification(message string, spinning bool) {
	ui.notificationLabel.SetText(message)
	if spinning {
		ui.notificationSpinner.Show()
	} else {
		ui.notificationSpinner.Hide()
	}
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()
}

// hideNotification hides the notification panel.
func (ui *RootUI) hideNotification() {
	ui.notificationSpinner.Hide()
	ui.notificationContainer.Hide()
}
