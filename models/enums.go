package models

import (
	"errors"
	"strconv"
)

type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "DRAFT"
	QuoteStatusSent      QuoteStatus = "SENT"
	QuoteStatusConfirmed QuoteStatus = "CONFIRMED"
	QuoteStatusExpired   QuoteStatus = "EXPIRED"
)

// convert enum to send response
func (s QuoteStatus) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(s))), nil
}

// convert input to enum type
func (s *QuoteStatus) UnmarshalJSON(b []byte) error {
	str, err := strconv.Unquote(string(b))
	if err != nil {
		return errors.New("quote status must be string")
	}
	switch str {
	case "DRAFT":
		*s = QuoteStatusDraft
	case "SENT":
		*s = QuoteStatusSent
	case "CONFIRMED":
		*s = QuoteStatusConfirmed
	case "EXPIRED":
		*s = QuoteStatusExpired
	default:
		return errors.New("invalid quote status")
	}
	return nil
}

func (s QuoteStatus) String() string {
	return string(s)
}

func IsAllowedQuoteStatus(s string) bool {
	switch QuoteStatus(s) {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusConfirmed, QuoteStatusExpired:
		return true
	default:
		return false
	}
}

// TemplateType tags the pricing scheme governing how price_data is
// interpreted. Only tongpiao is rendered by the export backends; the other
// two are carried opaquely.
type TemplateType string

const (
	TemplateTypeTongpiao TemplateType = "TONGPIAO" // flat rate by region
	TemplateTypeDakehu   TemplateType = "DAKEHU"   // key account
	TemplateTypeCangpei  TemplateType = "CANGPEI"  // warehouse fulfilment
)

func (t TemplateType) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(t))), nil
}

func (t *TemplateType) UnmarshalJSON(b []byte) error {
	str, err := strconv.Unquote(string(b))
	if err != nil {
		return errors.New("template type must be string")
	}
	switch str {
	case "TONGPIAO":
		*t = TemplateTypeTongpiao
	case "DAKEHU":
		*t = TemplateTypeDakehu
	case "CANGPEI":
		*t = TemplateTypeCangpei
	default:
		return errors.New("invalid template type")
	}
	return nil
}

func (t TemplateType) String() string {
	return string(t)
}

func IsAllowedTemplateType(t string) bool {
	switch TemplateType(t) {
	case TemplateTypeTongpiao, TemplateTypeDakehu, TemplateTypeCangpei:
		return true
	default:
		return false
	}
}
