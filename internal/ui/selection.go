package ui

import (
	"fmt"

	"github.com/ytget/yt-dl/internal/model"
)

// itemSelection holds the located items and which of them are checked for
// download. Every item starts checked.
type itemSelection struct {
	items   []model.BatchItem
	checked []bool
}

func newItemSelection(loc model.Location) *itemSelection {
	items := loc.Items()
	checked := make([]bool, len(items))
	for i := range checked {
		checked[i] = true
	}
	return &itemSelection{items: items, checked: checked}
}

// Len returns the number of located items
func (s *itemSelection) Len() int {
	return len(s.items)
}

// Label numbers the item from 1, e.g. "1 - <title>"
func (s *itemSelection) Label(i int) string {
	if i < 0 || i >= len(s.items) {
		return ""
	}
	title := cleanText(s.items[i].Title())
	if title == "" {
		title = s.items[i].URL()
	}
	return fmt.Sprintf("%d - %s", i+1, title)
}

// Checked reports whether item i is checked
func (s *itemSelection) Checked(i int) bool {
	return i >= 0 && i < len(s.checked) && s.checked[i]
}

// SetChecked checks or unchecks item i; out of range indexes are ignored
func (s *itemSelection) SetChecked(i int, checked bool) {
	if i >= 0 && i < len(s.checked) {
		s.checked[i] = checked
	}
}

// SetAll checks or unchecks every item
func (s *itemSelection) SetAll(checked bool) {
	for i := range s.checked {
		s.checked[i] = checked
	}
}

// Count returns the number of checked items
func (s *itemSelection) Count() int {
	n := 0
	for _, c := range s.checked {
		if c {
			n++
		}
	}
	return n
}

// Selected returns the checked items in list order
func (s *itemSelection) Selected() []model.BatchItem {
	selected := make([]model.BatchItem, 0, s.Count())
	for i, item := range s.items {
		if s.checked[i] {
			selected = append(selected, item)
		}
	}
	return selected
}
