package quran

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StripFootnotes turns a translation fragment into plain text. quran.com marks
// footnotes with <sup foot_note="..."> elements; those are dropped together
// with their content, every other tag is unwrapped.
func StripFootnotes(fragment string) (string, error) {
	if !strings.ContainsAny(fragment, "<&") {
		return collapseSpace(fragment), nil
	}

	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse translation fragment: %w", err)
	}

	var sb strings.Builder
	for _, n := range nodes {
		collectText(&sb, n)
	}
	return collapseSpace(sb.String()), nil
}

// collectText appends the text of n, skipping footnote markers.
func collectText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if isFootnote(n) {
			return
		}
		if n.DataAtom == atom.Br {
			sb.WriteByte(' ')
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(sb, c)
	}
}

func isFootnote(n *html.Node) bool {
	if n.DataAtom == atom.Sup {
		return true
	}
	for _, a := range n.Attr {
		if a.Key == "foot_note" || (a.Key == "class" && strings.Contains(a.Val, "footnote")) {
			return true
		}
	}
	return false
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
