package research

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanSnippet strips HTML markup from a search-result fragment and collapses
// whitespace, leaving plain text suitable for a model prompt.
func CleanSnippet(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapseWhitespace(fragment)
	}
	return collapseWhitespace(doc.Text())
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
