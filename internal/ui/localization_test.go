package ui

import "testing"

func TestLocalizationCompleteness(t *testing.T) {
	l := NewLocalization()
	english := l.texts["en"]

	for lang := range l.GetAvailableLanguages() {
		texts, ok := l.texts[lang]
		if !ok {
			t.Errorf("no texts for language %s", lang)
			continue
		}
		for key := range english {
			if _, ok := texts[key]; !ok {
				t.Errorf("language %s is missing key %s", lang, key)
			}
		}
	}
}

func TestLocalizationFallbacks(t *testing.T) {
	l := NewLocalization()

	l.SetLanguage("system")
	if l.GetCurrentLanguage() != "en" {
		t.Errorf("system should map to en, got %s", l.GetCurrentLanguage())
	}

	l.SetLanguage("xx")
	if l.GetCurrentLanguage() != "en" {
		t.Errorf("unknown language should be ignored, got %s", l.GetCurrentLanguage())
	}

	if got := l.GetText("no_such_key"); got != "no_such_key" {
		t.Errorf("missing key should return itself, got %s", got)
	}

	l.SetLanguage("ru")
	if got := l.GetText(KeyDownload); got != "Скачать" {
		t.Errorf("unexpected russian text %s", got)
	}
}

func TestLocalizationFormat(t *testing.T) {
	l := NewLocalization()
	if got := l.Format(KeyFoundPlaylist, 12); got != "Found 12 videos in the playlist" {
		t.Errorf("unexpected text %q", got)
	}
	if got := l.Format(KeyConversionFinished, 2, 3); got != "2 of 3 files were converted." {
		t.Errorf("unexpected text %q", got)
	}
}
