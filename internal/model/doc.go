// Package model defines the data passed between the locator, the download
// driver, the updater and the UI: resolved streams, playlist entries, the
// tagged locate result, per-item tasks and batch results. Values live for a
// single user action; nothing here is persisted.
package model
