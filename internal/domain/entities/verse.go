// Package entities contains domain entities used across the application.
package entities

import "fmt"

// TotalChapters is the number of surahs in the Qur'an.
const TotalChapters = 114

// VerseReference identifies a single ayah.
type VerseReference struct {
	Chapter int `json:"chapter"` // surah number (from 1 to 114)
	Verse   int `json:"verse"`   // ayah number within the surah
}

// Key returns the "chapter:verse" key used by the quran.com API.
func (r VerseReference) Key() string {
	return fmt.Sprintf("%d:%d", r.Chapter, r.Verse)
}

// VerseRange is an inclusive interval of ayahs within one surah.
type VerseRange struct {
	Chapter int `json:"chapter"`
	Start   int `json:"start"`
	End     int `json:"end"`
}

// Single reports whether the range covers exactly one ayah.
func (r VerseRange) Single() bool {
	return r.Start == r.End
}

// References expands the range into its ayahs in order.
// An inverted range yields no references.
func (r VerseRange) References() []VerseReference {
	if r.End < r.Start {
		return nil
	}
	refs := make([]VerseReference, 0, r.End-r.Start+1)
	for v := r.Start; v <= r.End; v++ {
		refs = append(refs, VerseReference{Chapter: r.Chapter, Verse: v})
	}
	return refs
}

// ChapterInfo is the surah metadata needed to validate and title a request.
type ChapterInfo struct {
	Number     int    `json:"number"`
	Name       string `json:"name"`        // simple English transliteration, e.g. "Al-Fatihah"
	VerseCount int    `json:"verse_count"` // total number of ayahs
}
