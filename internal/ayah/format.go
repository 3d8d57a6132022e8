package ayah

import (
	"fmt"
	"html"
	"strings"
	"unicode"
)

// Renderer supplies the markup of one display surface.
type Renderer interface {
	// Text prepares plain text for the surface, e.g. escaping it.
	Text(s string) string
	// Break is a single line break.
	Break() string
}

// HTMLRenderer renders for web pages.
type HTMLRenderer struct{}

func (HTMLRenderer) Text(s string) string { return html.EscapeString(s) }
func (HTMLRenderer) Break() string        { return "<br/>" }

// TextRenderer renders for terminals, chat messages and e-mail plain text.
type TextRenderer struct{}

func (TextRenderer) Text(s string) string { return s }
func (TextRenderer) Break() string        { return "\n" }

// SurahPrefix returns "Surat" when the name starts with a vowel (y included)
// and "Surah" otherwise. It only looks at the first letter.
func SurahPrefix(name string) string {
	for _, r := range name {
		if strings.ContainsRune("aeiouy", unicode.ToLower(r)) {
			return "Surat"
		}
		break
	}
	return "Surah"
}

// SurahTitle is the prefixed display name, e.g. "Surat Al-Fatihah".
func SurahTitle(name string) string {
	return SurahPrefix(name) + " " + name
}

// Format composes the display text of res for the given surface.
func Format(res *Result, r Renderer) string {
	paragraph := r.Break() + r.Break()

	var sb strings.Builder
	sb.WriteString(r.Text(fmt.Sprintf("Ayah of the Day, %d/%d", int(res.Date.Month()), res.Date.Day())))
	sb.WriteString(paragraph)
	sb.WriteString(r.Text(fmt.Sprintf("%s, Ayah %s", SurahTitle(res.Chapter.Name), res.AyahLabel())))
	sb.WriteString(paragraph)
	sb.WriteString(r.Text(arabicBlock(res)))
	sb.WriteString(paragraph)
	sb.WriteString(r.Text(strings.Join(res.Translated, " ")))

	if res.Attribution != "" {
		sb.WriteString(paragraph)
		sb.WriteString(r.Text(res.Attribution))
	}

	return sb.String()
}

// arabicBlock joins the Uthmani verses. A range gets "(n)" markers in
// Arabic-Indic digits after each verse; a single ayah gets none.
func arabicBlock(res *Result) string {
	if res.Range.Single() {
		return strings.Join(res.Arabic, " ")
	}

	verses := make([]string, 0, len(res.Arabic))
	for i, text := range res.Arabic {
		verses = append(verses, fmt.Sprintf("%s (%s)", text, ToArabicDigits(res.Range.Start+i)))
	}
	return strings.Join(verses, " ")
}
