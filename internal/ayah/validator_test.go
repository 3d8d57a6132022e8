package ayah

import (
	"errors"
	"fmt"
	"testing"

	"derrclan.com/ayah-printer/internal/domain/entities"
)

func TestValidateChapter(t *testing.T) {
	for _, input := range []string{"1", "114", " 2 "} {
		if _, err := ValidateChapter(input); err != nil {
			t.Errorf("ValidateChapter(%q) error = %v", input, err)
		}
	}

	for _, input := range []string{"0", "115", "200", "-1", "abc", "", "1.5"} {
		_, err := ValidateChapter(input)
		var chapterErr *InvalidChapterError
		if !errors.As(err, &chapterErr) {
			t.Errorf("ValidateChapter(%q): expected InvalidChapterError, got %v", input, err)
			continue
		}
		if chapterErr.Max != 114 {
			t.Errorf("InvalidChapterError.Max = %d, want 114", chapterErr.Max)
		}
	}
}

func TestValidateVerses(t *testing.T) {
	fatihah := entities.ChapterInfo{Number: 1, Name: "Al-Fatihah", VerseCount: 7}

	valid := []entities.VerseRange{
		{Chapter: 1, Start: 1, End: 1},
		{Chapter: 1, Start: 7, End: 7},
		{Chapter: 1, Start: 1, End: 7},
	}
	for _, rng := range valid {
		if err := ValidateVerses(fatihah, rng); err != nil {
			t.Errorf("ValidateVerses(%+v) error = %v", rng, err)
		}
	}

	invalid := []struct {
		rng      entities.VerseRange
		inverted bool
	}{
		{rng: entities.VerseRange{Chapter: 1, Start: 0, End: 0}},
		{rng: entities.VerseRange{Chapter: 1, Start: 8, End: 8}},
		{rng: entities.VerseRange{Chapter: 1, Start: 5, End: 9}},
		{rng: entities.VerseRange{Chapter: 1, Start: -2, End: 3}},
		{rng: entities.VerseRange{Chapter: 1, Start: 5, End: 3}, inverted: true},
	}
	for _, tt := range invalid {
		err := ValidateVerses(fatihah, tt.rng)
		var verseErr *InvalidVerseError
		if !errors.As(err, &verseErr) {
			t.Errorf("ValidateVerses(%+v): expected InvalidVerseError, got %v", tt.rng, err)
			continue
		}
		if verseErr.Inverted != tt.inverted {
			t.Errorf("ValidateVerses(%+v): Inverted = %v, want %v", tt.rng, verseErr.Inverted, tt.inverted)
		}
		if verseErr.Chapter.VerseCount != 7 || verseErr.Chapter.Name != "Al-Fatihah" {
			t.Errorf("InvalidVerseError should carry chapter info, got %+v", verseErr.Chapter)
		}
	}
}

func TestInvalidVerseError_Message(t *testing.T) {
	err := &InvalidVerseError{Chapter: entities.ChapterInfo{Name: "Al-Fatihah", VerseCount: 7}}
	want := "Invalid ayah number. Please enter a number between 1 and 7 for Surat Al-Fatihah."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestUserMessage(t *testing.T) {
	fetchErr := fmt.Errorf("fetch chapter 2: %w", errors.New("connection refused"))
	chapterErr := fmt.Errorf("wrapped: %w", &InvalidChapterError{Input: "200", Max: entities.TotalChapters})

	tests := []struct {
		name string
		err  error
		mode entities.Mode
		want string
	}{
		{"validation keeps its message", chapterErr, entities.ModeExplicit, "Invalid surah number. Please enter a number between 1 and 114."},
		{"doubly wrapped format error", fmt.Errorf("print: %w", fmt.Errorf("parse: %w", &FormatError{Input: "1-2-3"})), entities.ModeExplicit, `Invalid ayah "1-2-3". Please enter a number like 5 or a range like 5-10.`},
		{"explicit fetch failure", fetchErr, entities.ModeExplicit, "Error fetching ayah. Please try again."},
		{"random fetch failure", fetchErr, entities.ModeRandom, "Error generating random ayah. Please try again."},
		{"daily fetch failure", fetchErr, entities.ModeDaily, "Error generating ayah of the day. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err, tt.mode); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
