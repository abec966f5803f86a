// Package ui contains the Fyne-based desktop user interface for the application.
// The main window walks the user through four sections: finding videos,
// choosing a format and resolution, downloading into a folder and converting
// the downloaded files. Blocking work runs on the worker pool; results come
// back through the pool's completion channel and are applied with fyne.Do.
// All UI strings are localized via Localization.
package ui
