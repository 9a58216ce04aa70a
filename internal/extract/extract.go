// Package extract reduces fetched HTML to a short plain-text excerpt.
package extract

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultWordLimit caps excerpts when the caller does not specify a limit.
const DefaultWordLimit = 1000

// skipped lists elements whose whole subtree carries no readable content.
var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Nav:      true,
	atom.Footer:   true,
	atom.Header:   true,
	atom.Form:     true,
	atom.Iframe:   true,
	atom.Img:      true,
	atom.Audio:    true,
	atom.Video:    true,
	atom.Picture:  true,
	atom.Svg:      true,
	atom.Canvas:   true,
	atom.Object:   true,
	atom.Embed:    true,
}

// Text strips non-content markup from raw HTML, joins the remaining visible
// text with single spaces and keeps the first wordLimit words. It returns ""
// when the document cannot be parsed or has no visible text.
func Text(raw string, wordLimit int) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	if wordLimit <= 0 {
		wordLimit = DefaultWordLimit
	}

	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		zap.L().Debug("extract: parse html", zap.Error(err))
		return ""
	}

	words := make([]string, 0, 256)

	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		switch n.Type {
		case html.ElementNode:
			if skipped[n.DataAtom] {
				return true
			}
		case html.TextNode:
			for _, w := range strings.Fields(n.Data) {
				words = append(words, w)
				if len(words) >= wordLimit {
					return false
				}
			}
			return true
		case html.CommentNode, html.DoctypeNode:
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(doc)

	return strings.Join(words, " ")
}
