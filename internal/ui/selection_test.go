package ui

import (
	"testing"

	"github.com/ytget/yt-dl/internal/model"
)

func TestItemSelection(t *testing.T) {
	loc := model.Location{
		Kind: model.PlaylistVideos,
		Entries: []model.PlaylistEntry{
			{Title: "First", URL: "https://www.youtube.com/watch?v=a"},
			{Title: "Second", URL: "https://www.youtube.com/watch?v=b"},
			{Title: "", URL: "https://www.youtube.com/watch?v=c"},
		},
	}

	tests := []struct {
		name     string
		apply    func(s *itemSelection)
		expected []string
	}{
		{"all checked by default", func(s *itemSelection) {}, []string{"a", "b", "c"}},
		{"unchecked item is left out", func(s *itemSelection) { s.SetChecked(1, false) }, []string{"a", "c"}},
		{"none", func(s *itemSelection) { s.SetAll(false) }, nil},
		{"recheck one", func(s *itemSelection) {
			s.SetAll(false)
			s.SetChecked(2, true)
		}, []string{"c"}},
		{"out of range ignored", func(s *itemSelection) { s.SetChecked(7, false) }, []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newItemSelection(loc)
			tt.apply(s)

			selected := s.Selected()
			if len(selected) != len(tt.expected) || s.Count() != len(tt.expected) {
				t.Fatalf("expected %d selected items, got %d (count %d)", len(tt.expected), len(selected), s.Count())
			}
			for i, id := range tt.expected {
				if want := "https://www.youtube.com/watch?v=" + id; selected[i].URL() != want {
					t.Errorf("item %d: expected %s, got %s", i, want, selected[i].URL())
				}
			}
		})
	}
}

func TestItemSelectionLabels(t *testing.T) {
	playlist := newItemSelection(model.Location{
		Kind: model.PlaylistVideos,
		Entries: []model.PlaylistEntry{
			{Title: "First\nclip", URL: "https://www.youtube.com/watch?v=a"},
			{URL: "https://www.youtube.com/watch?v=b"},
		},
	})

	if got := playlist.Label(0); got != "1 - First clip" {
		t.Errorf("unexpected label %q", got)
	}
	if got := playlist.Label(1); got != "2 - https://www.youtube.com/watch?v=b" {
		t.Errorf("expected URL fallback, got %q", got)
	}
	if got := playlist.Label(5); got != "" {
		t.Errorf("expected empty label out of range, got %q", got)
	}

	single := newItemSelection(model.Location{
		Kind:  model.SingleVideo,
		Video: &model.Video{Title: "Clip", URL: "https://www.youtube.com/watch?v=z"},
	})
	if single.Len() != 1 || !single.Checked(0) || single.Label(0) != "1 - Clip" {
		t.Errorf("unexpected single video selection: len=%d label=%q", single.Len(), single.Label(0))
	}

	empty := newItemSelection(model.Location{})
	if empty.Len() != 0 || len(empty.Selected()) != 0 {
		t.Error("unresolved location should have no items")
	}
}
