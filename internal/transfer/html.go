package transfer

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/five82/quoter/internal/quotes"
)

// DefaultHTMLCategory is used when a blockquote carries no category hint.
const DefaultHTMLCategory = "Imported"

// ImportHTML collects quotes from <blockquote> elements. The category comes
// from data-category, then a <cite> or <footer> child, then DefaultHTMLCategory.
func ImportHTML(r io.Reader) (ImportResult, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("import: parse html: %w", err)
	}

	var res ImportResult
	doc.Find("blockquote").Each(func(_ int, bq *goquery.Selection) {
		category := strings.TrimSpace(bq.AttrOr("data-category", ""))
		attribution := bq.Find("cite, footer").First()
		if category == "" && attribution.Length() > 0 {
			category = condense(attribution.Text())
			category = strings.TrimLeft(category, "—–- ")
		}
		if category == "" {
			category = DefaultHTMLCategory
		}

		body := bq.Clone()
		body.Find("cite, footer").Remove()
		q := quotes.Quote{Text: trimQuotes(condense(body.Text())), Category: category}
		if err := quotes.Validate(&q); err != nil {
			res.Skipped++
			return
		}
		res.Quotes = append(res.Quotes, q)
	})
	quotes.EnsureIDs(res.Quotes)
	return res, nil
}

func condense(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func trimQuotes(s string) string {
	return strings.Trim(s, "\"“”")
}
