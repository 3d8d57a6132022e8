package ayah

import (
	"context"

	"derrclan.com/ayah-printer/internal/domain/entities"
)

// VerseSource is the remote scripture API.
type VerseSource interface {
	ArabicVerse(ctx context.Context, ref entities.VerseReference) (string, error)
	TranslatedVerse(ctx context.Context, ref entities.VerseReference) (string, error)
	Chapter(ctx context.Context, number int) (entities.ChapterInfo, error)
}

// HistoryRecorder keeps a log of printed outputs.
type HistoryRecorder interface {
	Record(ctx context.Context, entry entities.HistoryEntry) (entities.HistoryEntry, error)
}
