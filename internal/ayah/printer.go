package ayah

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"derrclan.com/ayah-printer/internal/domain/entities"
)

// Result is everything needed to render one printed ayah or range.
type Result struct {
	Selection   entities.Selection   `json:"selection"`
	Chapter     entities.ChapterInfo `json:"chapter"`
	Range       entities.VerseRange  `json:"range"`
	Arabic      []string             `json:"arabic"`
	Translated  []string             `json:"translated"`
	Date        time.Time            `json:"date"`
	Attribution string               `json:"attribution,omitempty"`
	HistoryID   string               `json:"history_id,omitempty"`
}

// AyahLabel is the ayah part of the title, as the user typed it.
func (r *Result) AyahLabel() string {
	if label := strings.TrimSpace(r.Selection.Ayah); label != "" {
		return label
	}
	if r.Range.Single() {
		return strconv.Itoa(r.Range.Start)
	}
	return fmt.Sprintf("%d-%d", r.Range.Start, r.Range.End)
}

// Printer runs a selection through validation, the remote source and the
// formatter. It either returns a complete Result or an error, never both.
type Printer struct {
	source      VerseSource
	history     HistoryRecorder
	logger      *zap.Logger
	attribution string
	now         func() time.Time
	random      RandomSource
}

type Option func(*Printer)

// WithHistory records every successful result.
func WithHistory(h HistoryRecorder) Option {
	return func(p *Printer) { p.history = h }
}

// WithAttribution appends a fixed attribution line to every output.
func WithAttribution(attribution string) Option {
	return func(p *Printer) { p.attribution = attribution }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Printer) { p.now = now }
}

// WithRandom replaces the source used by Random.
func WithRandom(src RandomSource) Option {
	return func(p *Printer) { p.random = src }
}

func NewPrinter(source VerseSource, logger *zap.Logger, opts ...Option) *Printer {
	p := &Printer{
		source: source,
		logger: logger,
		now:    time.Now,
		random: globalRandom{},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	return p
}

// Print handles an explicit selection.
func (p *Printer) Print(ctx context.Context, sel entities.Selection) (*Result, error) {
	if sel.Mode == "" {
		sel.Mode = entities.ModeExplicit
	}
	return p.print(ctx, sel, nil)
}

// Random prints a uniformly chosen ayah.
func (p *Printer) Random(ctx context.Context) (*Result, error) {
	chapter := RandomInRange(p.random, 1, entities.TotalChapters)
	info, err := p.chapter(ctx, chapter)
	if err != nil {
		return nil, err
	}

	verse := RandomInRange(p.random, 1, info.VerseCount)
	sel := entities.Selection{
		Chapter: strconv.Itoa(chapter),
		Ayah:    strconv.Itoa(verse),
		Mode:    entities.ModeRandom,
	}
	return p.print(ctx, sel, &info)
}

// Today prints the ayah of the day. Every call on the same UTC day picks
// the same ayah.
func (p *Printer) Today(ctx context.Context) (*Result, error) {
	seed := DayIndex(p.now())

	chapter := SeededRandom(seed, 1, entities.TotalChapters)
	info, err := p.chapter(ctx, chapter)
	if err != nil {
		return nil, err
	}

	verse := SeededRandom(seed, 1, info.VerseCount)
	sel := entities.Selection{
		Chapter: strconv.Itoa(chapter),
		Ayah:    strconv.Itoa(verse),
		Mode:    entities.ModeDaily,
	}
	return p.print(ctx, sel, &info)
}

// print validates sel and fetches its verses. info may carry chapter
// metadata the strategy already fetched.
func (p *Printer) print(ctx context.Context, sel entities.Selection, info *entities.ChapterInfo) (*Result, error) {
	chapter, err := ValidateChapter(sel.Chapter)
	if err != nil {
		return nil, err
	}

	rng, err := ParseRange(sel.Ayah)
	if err != nil {
		return nil, err
	}
	rng.Chapter = chapter

	if info == nil {
		fetched, err := p.chapter(ctx, chapter)
		if err != nil {
			return nil, err
		}
		info = &fetched
	}

	if err := ValidateVerses(*info, rng); err != nil {
		return nil, err
	}

	refs := rng.References()
	arabic := make([]string, 0, len(refs))
	for _, ref := range refs {
		text, err := p.source.ArabicVerse(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("fetch arabic text of %s: %w", ref.Key(), err)
		}
		arabic = append(arabic, text)
	}

	translated := make([]string, 0, len(refs))
	for _, ref := range refs {
		text, err := p.source.TranslatedVerse(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("fetch translation of %s: %w", ref.Key(), err)
		}
		translated = append(translated, text)
	}

	res := &Result{
		Selection:   sel,
		Chapter:     *info,
		Range:       rng,
		Arabic:      arabic,
		Translated:  translated,
		Date:        p.now(),
		Attribution: p.attribution,
	}

	p.logger.Info("printed ayah",
		zap.String("mode", string(sel.Mode)),
		zap.Int("chapter", chapter),
		zap.Int("start", rng.Start),
		zap.Int("end", rng.End),
	)

	p.record(ctx, res)
	return res, nil
}

func (p *Printer) chapter(ctx context.Context, number int) (entities.ChapterInfo, error) {
	info, err := p.source.Chapter(ctx, number)
	if err != nil {
		return entities.ChapterInfo{}, fmt.Errorf("fetch chapter %d: %w", number, err)
	}
	return info, nil
}

// record stores res in the history log. Failures are logged only: the
// user already has a complete output.
func (p *Printer) record(ctx context.Context, res *Result) {
	if p.history == nil {
		return
	}

	entry, err := p.history.Record(ctx, entities.HistoryEntry{
		CreatedAt: res.Date,
		Mode:      res.Selection.Mode,
		Chapter:   res.Range.Chapter,
		Ayah:      res.AyahLabel(),
		Output:    Format(res, TextRenderer{}),
	})
	if err != nil {
		p.logger.Warn("failed to record history",
			zap.Int("chapter", res.Range.Chapter),
			zap.Error(err),
		)
		return
	}
	res.HistoryID = entry.ID
}
