package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-dl/internal/config"
)

// SettingsDialog edits the preferences the main window starts from
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	downloadDirEntry *widget.Entry
	formatSelect     *widget.Select
	resolutionSelect *widget.Select
	modeSelect       *widget.Select
	languageSelect   *widget.Select
	verboseCheck     *widget.Check

	modeLabels     map[string]config.ConversionMode
	languageLabels map[string]string
}

// ShowSettingsDialog builds and shows the settings dialog. onSaved runs after
// the preferences have been written.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	sd := NewSettingsDialog(settings, localization, window)
	sd.onSaved = onSaved
	sd.Show()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.downloadDirEntry = widget.NewEntry()
	sd.downloadDirEntry.SetPlaceHolder(l.GetText(KeyCurrentDirectory))
	browseDirBtn := widget.NewButton(l.GetText(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.formatSelect = widget.NewSelect(labels(config.FormatOrder, config.FormatLabel), nil)

	resolutions := make([]string, len(config.Resolutions))
	for i, r := range config.Resolutions {
		resolutions[i] = r.Label
	}
	sd.resolutionSelect = widget.NewSelect(resolutions, nil)

	sd.modeLabels = make(map[string]config.ConversionMode)
	var modeOptions []string
	for _, mode := range sd.settings.GetConversionModeOptions() {
		label := l.GetText(conversionModeKey(mode))
		sd.modeLabels[label] = mode
		modeOptions = append(modeOptions, label)
	}
	sd.modeSelect = widget.NewSelect(modeOptions, nil)

	sd.languageLabels = make(map[string]string)
	var languageOptions []string
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageLabels[name] = code
		languageOptions = append(languageOptions, name)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	sd.verboseCheck = widget.NewCheck(l.GetText(KeyVerboseLog), nil)

	form := widget.NewForm(
		widget.NewFormItem(l.GetText(KeyDownloadDirectory), downloadDirRow),
		widget.NewFormItem(l.GetText(KeyFormat), sd.formatSelect),
		widget.NewFormItem(l.GetText(KeyResolution), sd.resolutionSelect),
		widget.NewFormItem(l.GetText(KeyConversionMode), sd.modeSelect),
		widget.NewFormItem(l.GetText(KeyLanguage), sd.languageSelect),
		widget.NewFormItem("", sd.verboseCheck),
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.formatSelect.SetSelected(config.FormatLabel(sd.settings.GetFormat()))
	sd.resolutionSelect.SetSelected(resolutionLabel(sd.settings.GetResolution()))
	sd.modeSelect.SetSelected(sd.localization.GetText(conversionModeKey(sd.settings.GetConversionMode())))
	if name, ok := sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()]; ok {
		sd.languageSelect.SetSelected(name)
	}
	sd.verboseCheck.SetChecked(sd.settings.GetVerboseLog())
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	sd.settings.SetDownloadDirectory(sd.downloadDirEntry.Text)

	if format, ok := config.FormatValue(sd.formatSelect.Selected); ok {
		sd.settings.SetFormat(format)
	}
	if sd.resolutionSelect.Selected != "" {
		sd.settings.SetResolution(resolutionValue(sd.resolutionSelect.Selected))
	}
	if mode, ok := sd.modeLabels[sd.modeSelect.Selected]; ok {
		sd.settings.SetConversionMode(mode)
	}
	if code, ok := sd.languageLabels[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
	sd.settings.SetVerboseLog(sd.verboseCheck.Checked)

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}
