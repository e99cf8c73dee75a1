package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// stripHTML flattens a feed description to plain text. Many feeds ship HTML
// fragments in <description>; the digest wants readable text only.
func stripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return collapseWhitespace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapseWhitespace(s)
	}
	return collapseWhitespace(doc.Text())
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
