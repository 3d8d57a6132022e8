package ayah

import (
	"errors"
	"fmt"

	"derrclan.com/ayah-printer/internal/domain/entities"
)

// FormatError is returned when an ayah specification is neither a number
// nor a "start-end" range.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("Invalid ayah %q. Please enter a number like 5 or a range like 5-10.", e.Input)
}

// InvalidChapterError is returned for a surah number outside [1, Max].
type InvalidChapterError struct {
	Input string
	Max   int
}

func (e *InvalidChapterError) Error() string {
	return fmt.Sprintf("Invalid surah number. Please enter a number between 1 and %d.", e.Max)
}

// InvalidVerseError is returned when a range does not fit the surah it
// refers to. It carries what a caller needs to tell the user the valid bounds.
type InvalidVerseError struct {
	Chapter  entities.ChapterInfo
	Range    entities.VerseRange
	Inverted bool // end lies before start
}

func (e *InvalidVerseError) Error() string {
	if e.Inverted {
		return fmt.Sprintf("Invalid ayah range. Please enter a valid range between 1 and %d.", e.Chapter.VerseCount)
	}
	return fmt.Sprintf("Invalid ayah number. Please enter a number between 1 and %d for %s.",
		e.Chapter.VerseCount, SurahTitle(e.Chapter.Name))
}

// IsValidation reports whether err was caused by bad user input rather than
// by the remote source.
func IsValidation(err error) bool {
	return validationError(err) != nil
}

// validationError returns the input error wrapped in err, or nil.
func validationError(err error) error {
	var (
		formatErr  *FormatError
		chapterErr *InvalidChapterError
		verseErr   *InvalidVerseError
	)
	switch {
	case errors.As(err, &formatErr):
		return formatErr
	case errors.As(err, &chapterErr):
		return chapterErr
	case errors.As(err, &verseErr):
		return verseErr
	}
	return nil
}

// UserMessage is the one line shown to a user when printing in mode failed.
func UserMessage(err error, mode entities.Mode) string {
	if inputErr := validationError(err); inputErr != nil {
		return inputErr.Error()
	}
	switch mode {
	case entities.ModeRandom:
		return "Error generating random ayah. Please try again."
	case entities.ModeDaily:
		return "Error generating ayah of the day. Please try again."
	default:
		return "Error fetching ayah. Please try again."
	}
}
