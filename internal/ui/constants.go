package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconFolder   = "📁"
	IconError    = "❌"
	IconSkip     = "⏭"
	IconPending  = "⏳"
	IconStopped  = "⏹"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Layout sizing (TaskRow / lists)
const (
	StatusLabelWidth   float32 = 96
	SpeedLabelWidth    float32 = 100
	PercentLabelWidth  float32 = 48
	PositionLabelWidth float32 = 64

	RowMinWidth  float32 = 400
	RowMinHeight float32 = 56
	RowDefaultH  float32 = 56

	LogoSize float32 = 32

	// share of the list area given to the located items
	ItemListSplitOffset = 0.4
)

// Dialog sizing
const (
	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 420
	UpdateDialogWidth    float32 = 360
	DetailEntryHeight    float32 = 160
)

// Worker pool job names, used to route completions
const (
	JobLocate   = "locate"
	JobDownload = "download"
	JobUpdate   = "update"
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)
