package models

import (
	"testing"
	"time"
)

func TestFormatQuoteNumber(t *testing.T) {
	date := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	if got := FormatQuoteNumber(date, 1); got != "ZTO-JCYB-20260115-01" {
		t.Errorf("FormatQuoteNumber seq 1 = %q", got)
	}
	if got := FormatQuoteNumber(date, 42); got != "ZTO-JCYB-20260115-42" {
		t.Errorf("FormatQuoteNumber seq 42 = %q", got)
	}
}

func TestMaxSequenceIgnoresMalformedSuffixes(t *testing.T) {
	prefix := "ZTO-JCYB-20260115-"
	numbers := []string{
		"ZTO-JCYB-20260115-01",
		"ZTO-JCYB-20260115-07",
		"ZTO-JCYB-20260115-xx", // never produced, but must not break the scan
		"ZTO-JCYB-20260115-03",
	}
	if got := maxSequence(numbers, prefix); got != 7 {
		t.Errorf("maxSequence = %d, want 7", got)
	}
	if got := maxSequence(nil, prefix); got != 0 {
		t.Errorf("maxSequence(empty) = %d, want 0", got)
	}
}

func TestComputeExpireDate(t *testing.T) {
	quoteDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	got := ComputeExpireDate(quoteDate, 30)
	want := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ComputeExpireDate = %v, want %v", got, want)
	}

	// Month-end rollover.
	got = ComputeExpireDate(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), 1)
	want = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ComputeExpireDate rollover = %v, want %v", got, want)
	}
}
