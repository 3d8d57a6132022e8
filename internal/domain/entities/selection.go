package entities

import "time"

// Mode names the strategy that produced a selection.
type Mode string

const (
	ModeExplicit Mode = "explicit"
	ModeRandom   Mode = "random"
	ModeDaily    Mode = "daily"
)

// Selection is the hand-off between a selection strategy and the printer.
// Chapter and Ayah are kept as typed so validation can report the raw input.
type Selection struct {
	Chapter string `json:"chapter"`
	Ayah    string `json:"ayah"`
	Mode    Mode   `json:"mode"`
}

// HistoryEntry is one successfully printed output.
type HistoryEntry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Mode      Mode      `json:"mode"`
	Chapter   int       `json:"chapter"`
	Ayah      string    `json:"ayah"`
	Output    string    `json:"output"`
}

// JournalEntry is a personal reflection kept for one calendar date.
type JournalEntry struct {
	Date       string    `json:"date"` // YYYY-MM-DD
	Chapter    int       `json:"chapter"`
	Ayah       string    `json:"ayah"`
	Reflection string    `json:"reflection"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}
