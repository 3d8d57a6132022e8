package ayah

import (
	"math"
	"math/rand/v2"
	"time"
)

const millisPerDay = 24 * 60 * 60 * 1000

// RandomSource draws uniform integers in [0, n).
type RandomSource interface {
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int { return rand.IntN(n) }

// RandomInRange draws uniformly from [min, max].
func RandomInRange(src RandomSource, min, max int) int {
	return src.IntN(max-min+1) + min
}

// DayIndex is the number of whole days since the Unix epoch. It is the seed
// of the ayah of the day, so every caller sees the same ayah on the same UTC day.
func DayIndex(t time.Time) int64 {
	ms := t.UnixMilli()
	day := ms / millisPerDay
	if ms < 0 && ms%millisPerDay != 0 {
		day--
	}
	return day
}

// SeededRandom maps seed onto [min, max] with the sine hash
// frac(sin(seed) * 10000). It only has to look unpredictable to a reader,
// the same seed always yields the same value.
func SeededRandom(seed int64, min, max int) int {
	x := math.Sin(float64(seed)) * 10000
	frac := x - math.Floor(x)

	n := int(math.Floor(frac*float64(max-min+1) + float64(min)))
	if n > max {
		n = max
	}
	return n
}
