package ayah

import (
	"strconv"
	"strings"

	"derrclan.com/ayah-printer/internal/domain/entities"
)

// ParseRange resolves "7" to 7..7 and "3-5" to 3..5. The chapter of the
// returned range is left zero. Bounds are not checked here, see ValidateVerses.
func ParseRange(input string) (entities.VerseRange, error) {
	s := strings.TrimSpace(input)

	if n, err := strconv.Atoi(s); err == nil {
		return entities.VerseRange{Start: n, End: n}, nil
	}

	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return entities.VerseRange{}, &FormatError{Input: input}
	}

	start, errStart := strconv.Atoi(strings.TrimSpace(parts[0]))
	end, errEnd := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errStart != nil || errEnd != nil {
		return entities.VerseRange{}, &FormatError{Input: input}
	}

	return entities.VerseRange{Start: start, End: end}, nil
}
