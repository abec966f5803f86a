package ui

import (
	"fyne.io/fyne/v2"
)

const (
	AppIcon = "yt-dl.png"
)

// LoadLogoResource loads the logo from file path. The icon ships next to the
// executable; a missing file only hides the logo.
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}
