package ayah

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"derrclan.com/ayah-printer/internal/domain/entities"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		input string
		want  entities.VerseRange
	}{
		{input: "7", want: entities.VerseRange{Start: 7, End: 7}},
		{input: "3-5", want: entities.VerseRange{Start: 3, End: 5}},
		{input: " 10 - 12 ", want: entities.VerseRange{Start: 10, End: 12}},
		{input: "5-3", want: entities.VerseRange{Start: 5, End: 3}},
		{input: "-5", want: entities.VerseRange{Start: -5, End: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRange(tt.input)
			if err != nil {
				t.Fatalf("ParseRange(%q) error = %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseRange(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseRange_FormatError(t *testing.T) {
	for _, input := range []string{"abc", "", "1-", "-", "1-2-3", "a-3", "3-b", "1.5"} {
		_, err := ParseRange(input)
		var formatErr *FormatError
		if !errors.As(err, &formatErr) {
			t.Errorf("ParseRange(%q): expected FormatError, got %v", input, err)
			continue
		}
		if formatErr.Input != input {
			t.Errorf("FormatError.Input = %q, want %q", formatErr.Input, input)
		}
	}
}

func TestVerseRange_References(t *testing.T) {
	got := entities.VerseRange{Chapter: 1, Start: 1, End: 3}.References()
	want := []entities.VerseReference{{Chapter: 1, Verse: 1}, {Chapter: 1, Verse: 2}, {Chapter: 1, Verse: 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("References() mismatch (-want +got):\n%s", diff)
	}

	if refs := (entities.VerseRange{Chapter: 1, Start: 3, End: 1}).References(); len(refs) != 0 {
		t.Errorf("inverted range should expand to nothing, got %v", refs)
	}
}
