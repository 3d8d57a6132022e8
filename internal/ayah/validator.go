package ayah

import (
	"strconv"
	"strings"

	"derrclan.com/ayah-printer/internal/domain/entities"
)

// ValidateChapter parses a typed surah number and checks it against the
// number of surahs. It never touches the network.
func ValidateChapter(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > entities.TotalChapters {
		return 0, &InvalidChapterError{Input: input, Max: entities.TotalChapters}
	}
	return n, nil
}

// ValidateVerses checks that every ayah of rng exists in chapter.
func ValidateVerses(chapter entities.ChapterInfo, rng entities.VerseRange) error {
	inBounds := func(v int) bool { return v >= 1 && v <= chapter.VerseCount }

	if !inBounds(rng.Start) || !inBounds(rng.End) {
		return &InvalidVerseError{Chapter: chapter, Range: rng}
	}
	if rng.End < rng.Start {
		return &InvalidVerseError{Chapter: chapter, Range: rng, Inverted: true}
	}
	return nil
}
