package telegram

import (
	"context"
	"strings"

	"derrclan.com/ayah-printer/internal/ayah"
	"derrclan.com/ayah-printer/internal/domain/entities"
)

// ayahHandler prints the selection given as "<surah> <ayah spec>".
func (h *Handler) ayahHandler(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		fields := strings.Fields(args)
		if len(fields) != 2 {
			return h.send(newPlainMessage(chatID, msgUseAyah))
		}

		return h.reply(ctx, chatID, entities.ModeExplicit, func(ctx context.Context) (*ayah.Result, error) {
			return h.printer.Print(ctx, entities.Selection{
				Chapter: fields[0],
				Ayah:    fields[1],
				Mode:    entities.ModeExplicit,
			})
		})
	}
}

func (h *Handler) randomHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.reply(ctx, chatID, entities.ModeRandom, h.printer.Random)
	}
}

func (h *Handler) todayHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.reply(ctx, chatID, entities.ModeDaily, h.printer.Today)
	}
}

// reply runs fetch and sends its output. Invalid input is answered
// directly; any other failure is returned to the error middleware.
func (h *Handler) reply(ctx context.Context, chatID int64, mode entities.Mode, fetch func(context.Context) (*ayah.Result, error)) error {
	res, err := fetch(ctx)
	if err != nil {
		if ayah.IsValidation(err) {
			return h.send(newPlainMessage(chatID, ayah.UserMessage(err, mode)))
		}
		return &printFailure{mode: mode, err: err}
	}

	for _, chunk := range splitMessage(ayah.Format(res, ayah.TextRenderer{}), maxMessageLength) {
		if err := h.send(newPlainMessage(chatID, chunk)); err != nil {
			return err
		}
	}
	return nil
}
