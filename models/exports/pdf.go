package exports

import (
	"time"

	"bitbucket.org/ztofreight/quotes_backend/models"
)

// The paginated-document backend currently serves the styled document bytes;
// browsers print those to PDF. A real PDF engine slots in here without
// touching the callers.
func renderPDF(quote *models.Quote, quoter *models.Quoter, theme Theme, now time.Time) (*Artifact, error) {
	content, err := renderHTML(quote, quoter, theme, now)
	if err != nil {
		return nil, err
	}
	return &Artifact{
		Content:     content,
		ContentType: "text/html; charset=utf-8",
		Filename:    "quote-" + quote.QuoteNumber + ".html",
	}, nil
}
