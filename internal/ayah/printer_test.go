package ayah

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derrclan.com/ayah-printer/internal/domain/entities"
)

type fakeSource struct {
	chapters  map[int]entities.ChapterInfo
	failVerse int
	calls     []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		chapters: map[int]entities.ChapterInfo{
			1: {Number: 1, Name: "Al-Fatihah", VerseCount: 7},
			2: {Number: 2, Name: "Al-Baqarah", VerseCount: 286},
		},
	}
}

func (f *fakeSource) ArabicVerse(_ context.Context, ref entities.VerseReference) (string, error) {
	f.calls = append(f.calls, "ar "+ref.Key())
	if ref.Verse == f.failVerse {
		return "", errors.New("boom")
	}
	return "ar" + ref.Key(), nil
}

func (f *fakeSource) TranslatedVerse(_ context.Context, ref entities.VerseReference) (string, error) {
	f.calls = append(f.calls, "en "+ref.Key())
	return "en" + ref.Key(), nil
}

func (f *fakeSource) Chapter(_ context.Context, number int) (entities.ChapterInfo, error) {
	f.calls = append(f.calls, fmt.Sprintf("chapter %d", number))
	info, ok := f.chapters[number]
	if !ok {
		// every surah has at least three ayahs
		return entities.ChapterInfo{Number: number, Name: "Test", VerseCount: 3}, nil
	}
	return info, nil
}

type memoryHistory struct {
	entries []entities.HistoryEntry
	err     error
}

func (m *memoryHistory) Record(_ context.Context, entry entities.HistoryEntry) (entities.HistoryEntry, error) {
	if m.err != nil {
		return entities.HistoryEntry{}, m.err
	}
	entry.ID = fmt.Sprintf("h%d", len(m.entries)+1)
	m.entries = append(m.entries, entry)
	return entry, nil
}

var testDate = time.Date(2025, time.March, 7, 12, 0, 0, 0, time.UTC)

func newTestPrinter(src VerseSource, opts ...Option) *Printer {
	opts = append([]Option{WithClock(func() time.Time { return testDate })}, opts...)
	return NewPrinter(src, nil, opts...)
}

func TestPrinter_Print_SingleAyah(t *testing.T) {
	src := newFakeSource()
	p := newTestPrinter(src)

	res, err := p.Print(context.Background(), entities.Selection{Chapter: "1", Ayah: "1"})
	require.NoError(t, err)

	out := Format(res, TextRenderer{})
	assert.Contains(t, out, "Ayah of the Day, 3/7")
	assert.Contains(t, out, "Surat Al-Fatihah, Ayah 1")
	assert.Contains(t, out, "ar1:1")
	assert.NotContains(t, out, "(")
	assert.Equal(t, entities.ModeExplicit, res.Selection.Mode)
	assert.Equal(t, []string{"chapter 1", "ar 1:1", "en 1:1"}, src.calls)
}

func TestPrinter_Print_Range(t *testing.T) {
	src := newFakeSource()
	p := newTestPrinter(src, WithAttribution("-Dr. Mustafa Khattab, The Clear Quran"))

	res, err := p.Print(context.Background(), entities.Selection{Chapter: "1", Ayah: "1-3"})
	require.NoError(t, err)

	out := Format(res, TextRenderer{})
	assert.Contains(t, out, "Surat Al-Fatihah, Ayah 1-3")
	assert.Contains(t, out, "ar1:1 (١) ar1:2 (٢) ar1:3 (٣)")
	assert.Contains(t, out, "en1:1 en1:2 en1:3")
	assert.True(t, strings.HasSuffix(out, "-Dr. Mustafa Khattab, The Clear Quran"))

	// verses are fetched one by one, arabic first
	assert.Equal(t, []string{
		"chapter 1",
		"ar 1:1", "ar 1:2", "ar 1:3",
		"en 1:1", "en 1:2", "en 1:3",
	}, src.calls)
}

func TestPrinter_Print_ValidationBeforeNetwork(t *testing.T) {
	tests := []struct {
		name   string
		sel    entities.Selection
		target any
	}{
		{name: "chapter too large", sel: entities.Selection{Chapter: "200", Ayah: "1"}, target: new(*InvalidChapterError)},
		{name: "chapter zero", sel: entities.Selection{Chapter: "0", Ayah: "1"}, target: new(*InvalidChapterError)},
		{name: "chapter not a number", sel: entities.Selection{Chapter: "one", Ayah: "1"}, target: new(*InvalidChapterError)},
		{name: "malformed ayah", sel: entities.Selection{Chapter: "1", Ayah: "abc"}, target: new(*FormatError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newFakeSource()
			p := newTestPrinter(src)

			res, err := p.Print(context.Background(), tt.sel)
			assert.Nil(t, res)
			require.Error(t, err)
			assert.True(t, errors.As(err, tt.target), "unexpected error type %T", err)
			assert.Empty(t, src.calls, "no request may be issued")
		})
	}
}

func TestPrinter_Print_InvalidVerse(t *testing.T) {
	src := newFakeSource()
	p := newTestPrinter(src)

	_, err := p.Print(context.Background(), entities.Selection{Chapter: "1", Ayah: "8"})
	var verseErr *InvalidVerseError
	require.ErrorAs(t, err, &verseErr)
	assert.Equal(t, 7, verseErr.Chapter.VerseCount)
	assert.Equal(t, "Invalid ayah number. Please enter a number between 1 and 7 for Surat Al-Fatihah.", err.Error())
	assert.Equal(t, []string{"chapter 1"}, src.calls)

	_, err = p.Print(context.Background(), entities.Selection{Chapter: "1", Ayah: "5-2"})
	require.ErrorAs(t, err, &verseErr)
	assert.True(t, verseErr.Inverted)
}

func TestPrinter_Print_FetchFailureAbortsRequest(t *testing.T) {
	src := newFakeSource()
	src.failVerse = 2
	history := &memoryHistory{}
	p := newTestPrinter(src, WithHistory(history))

	res, err := p.Print(context.Background(), entities.Selection{Chapter: "1", Ayah: "1-3"})
	assert.Nil(t, res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1:2")
	assert.Equal(t, []string{"chapter 1", "ar 1:1", "ar 1:2"}, src.calls)
	assert.Empty(t, history.entries)
}

func TestPrinter_Today_Deterministic(t *testing.T) {
	p1 := newTestPrinter(newFakeSource())
	p2 := newTestPrinter(newFakeSource())

	a, err := p1.Today(context.Background())
	require.NoError(t, err)
	b, err := p2.Today(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Range, b.Range)
	assert.Equal(t, entities.ModeDaily, a.Selection.Mode)

	seed := DayIndex(testDate)
	assert.Equal(t, SeededRandom(seed, 1, 114), a.Range.Chapter)
	assert.True(t, a.Range.Single())
}

func TestPrinter_Random(t *testing.T) {
	src := newFakeSource()
	rnd := &fixedRandom{values: []int{1, 254}}
	p := newTestPrinter(src, WithRandom(rnd))

	res, err := p.Random(context.Background())
	require.NoError(t, err)

	assert.Equal(t, entities.VerseRange{Chapter: 2, Start: 255, End: 255}, res.Range)
	assert.Equal(t, entities.ModeRandom, res.Selection.Mode)
	assert.Equal(t, []int{114, 286}, rnd.calls)
	// chapter metadata is fetched once and reused for validation
	assert.Equal(t, []string{"chapter 2", "ar 2:255", "en 2:255"}, src.calls)
}

func TestPrinter_History(t *testing.T) {
	history := &memoryHistory{}
	p := newTestPrinter(newFakeSource(), WithHistory(history))

	res, err := p.Print(context.Background(), entities.Selection{Chapter: "1", Ayah: "2"})
	require.NoError(t, err)

	require.Len(t, history.entries, 1)
	entry := history.entries[0]
	assert.Equal(t, "h1", res.HistoryID)
	assert.Equal(t, 1, entry.Chapter)
	assert.Equal(t, "2", entry.Ayah)
	assert.Equal(t, Format(res, TextRenderer{}), entry.Output)

	history.err = errors.New("disk full")
	res, err = p.Print(context.Background(), entities.Selection{Chapter: "1", Ayah: "3"})
	require.NoError(t, err, "history failures must not fail the request")
	assert.Empty(t, res.HistoryID)
}
