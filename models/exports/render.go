package exports

import (
	"strings"
	"time"

	"bitbucket.org/ztofreight/quotes_backend/models"
)

// Render produces the requested artifact from a quote and its quoter. Pure
// apart from the generation timestamp stamped into styled documents; renderAt
// is the deterministic entry point the tests use.
func Render(quote *models.Quote, quoter *models.Quoter, format Format, theme string) (*Artifact, error) {
	return renderAt(quote, quoter, format, theme, time.Now())
}

func renderAt(quote *models.Quote, quoter *models.Quoter, format Format, theme string, now time.Time) (*Artifact, error) {
	if err := checkPriceData(quote, format); err != nil {
		return nil, err
	}

	switch format {
	case FormatHTML:
		content, err := renderHTML(quote, quoter, ThemeColors(theme), now)
		if err != nil {
			return nil, err
		}
		return &Artifact{
			Content:     content,
			ContentType: "text/html; charset=utf-8",
			Filename:    "quote-" + quote.QuoteNumber + ".html",
		}, nil
	case FormatExcel:
		content, err := renderExcel(quote, quoter)
		if err != nil {
			return nil, err
		}
		return &Artifact{
			Content:     content,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Filename:    "quote-" + quote.QuoteNumber + ".xlsx",
		}, nil
	case FormatPDF:
		return renderPDF(quote, quoter, ThemeColors(theme), now)
	default:
		return nil, &RenderError{Format: format, Reason: "unsupported format"}
	}
}

// The tongpiao scheme is the only one with a defined price block; it must
// carry at least one region. Other schemes are accepted and render an empty
// price table (extension point for their dedicated layouts).
func checkPriceData(quote *models.Quote, format Format) error {
	if quote.TemplateType == models.TemplateTypeTongpiao && len(quote.PriceData.Regions) == 0 {
		return &RenderError{Format: format, Reason: "tongpiao price data has no regions"}
	}
	return nil
}

func priceRows(quote *models.Quote) []models.RegionPrice {
	if quote.TemplateType != models.TemplateTypeTongpiao {
		return nil
	}
	return quote.PriceData.Regions
}

func joinProvinces(provinces []string) string {
	return strings.Join(provinces, "、")
}

func quoterLine(quoter *models.Quoter) string {
	if quoter == nil {
		return ""
	}
	return quoter.Name + " (" + quoter.Phone + ")"
}

func taxNote(quote *models.Quote) string {
	if quote.IsTaxIncluded == nil || *quote.IsTaxIncluded {
		return "含税价格"
	}
	return "不含税价格"
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
