package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// RegionPrice is one row of the tongpiao (flat-rate-by-region) scheme.
// FirstWeight / AdditionalWeight are unit prices per KG.
type RegionPrice struct {
	RegionName       string          `json:"regionName"`
	Provinces        []string        `json:"provinces"`
	FirstWeight      decimal.Decimal `json:"firstWeight"`
	AdditionalWeight decimal.Decimal `json:"additionalWeight"`
	Remark           string          `json:"remark,omitempty"`
}

// PriceData is the scheme-dependent pricing payload of a quote, stored as
// JSON text. Regions is populated for the tongpiao scheme; payloads of other
// schemes round-trip through raw untouched.
type PriceData struct {
	Regions []RegionPrice `json:"regions,omitempty"`

	raw json.RawMessage
}

func (p *PriceData) UnmarshalJSON(b []byte) error {
	type envelope struct {
		Regions []RegionPrice `json:"regions"`
	}
	var e envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return err
	}
	p.Regions = e.Regions
	p.raw = append(json.RawMessage(nil), b...)
	return nil
}

func (p PriceData) MarshalJSON() ([]byte, error) {
	if len(p.raw) > 0 {
		return p.raw, nil
	}
	type envelope struct {
		Regions []RegionPrice `json:"regions"`
	}
	return json.Marshal(envelope{Regions: p.Regions})
}

func (p PriceData) Value() (driver.Value, error) {
	b, err := p.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *PriceData) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = PriceData{}
		return nil
	case []byte:
		return p.UnmarshalJSON(v)
	case string:
		return p.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("cannot scan %T into PriceData", src)
	}
}

// TermItem is one {title, content} pair snapshot-copied from the term
// catalog into a quote at creation time. Later catalog edits never change
// already-created quotes.
type TermItem struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// TermList is an ordered JSON column of term snapshots.
type TermList []TermItem

func (l TermList) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *TermList) Scan(src interface{}) error {
	return scanJSON(src, l, "TermList")
}

// StringList is an ordered JSON column of free-text lines (custom terms).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l, "StringList")
}

func scanJSON(src interface{}, dest interface{}, typeName string) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dest)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("cannot scan value into " + typeName)
	}
}
