package models

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/ztofreight/quotes_backend/config"
	"bitbucket.org/ztofreight/quotes_backend/utils"
	"github.com/go-sql-driver/mysql"
)

// Quote numbers are ZTO-JCYB-YYYYMMDD-NN: two-digit sequence, 01-based,
// scoped to the exact calendar date string. Allocation is a scan of existing
// numbers, so creation serializes it per date (see CreateQuote) and the
// unique index on quote_number backstops the race.

const (
	QuoteNumberPrefix = "ZTO-JCYB"

	// The sequence never wraps past the two-digit format.
	quoteNumberMaxSeq = 99

	quoteNumberMaxRetries = 3
)

func FormatQuoteNumber(date time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%02d", QuoteNumberPrefix, date.Format("20060102"), seq)
}

func quoteNumberDatePrefix(date time.Time) string {
	return fmt.Sprintf("%s-%s-", QuoteNumberPrefix, date.Format("20060102"))
}

// MaxSequenceForDate returns the highest sequence suffix among existing
// numbers of the exact date, 0 when the date has none. The LIKE prefix keeps
// the scan on the quote_number unique index.
func MaxSequenceForDate(ctx context.Context, date time.Time) (int, error) {
	prefix := quoteNumberDatePrefix(date)

	db := config.GetDB()
	var numbers []string
	if err := db.WithContext(ctx).Model(&Quote{}).
		Where("quote_number LIKE ?", prefix+"%").
		Pluck("quote_number", &numbers).Error; err != nil {
		return 0, err
	}
	return maxSequence(numbers, prefix), nil
}

func maxSequence(numbers []string, prefix string) int {
	max := 0
	for _, n := range numbers {
		seq, err := strconv.Atoi(strings.TrimPrefix(n, prefix))
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max
}

// NextQuoteNumber previews the next unused number for a date without
// reserving it. A date with no quotes yields sequence 01.
func NextQuoteNumber(ctx context.Context, date time.Time) (string, error) {
	max, err := MaxSequenceForDate(ctx, date)
	if err != nil {
		return "", err
	}

	seq := max + 1
	if seq > quoteNumberMaxSeq {
		return "", utils.ErrorAllocationExhausted
	}
	return FormatQuoteNumber(date, seq), nil
}

func allocationLockKey(date time.Time) string {
	return "quote_number:" + date.Format("20060102")
}

// insertWithAllocatedNumber allocates the next number and inserts the quote.
// Callers hold the per-date scope lock; the unique index is the backstop.
// A writer that slipped past the lock (lock expiry, redis unavailable in a
// second process) hits a duplicate-key error and allocation is retried.
func insertWithAllocatedNumber(ctx context.Context, quote *Quote) error {
	db := config.GetDB()
	for attempt := 0; attempt < quoteNumberMaxRetries; attempt++ {
		number, err := NextQuoteNumber(ctx, quote.QuoteDate)
		if err != nil {
			return err
		}
		quote.QuoteNumber = number

		err = db.WithContext(ctx).Create(quote).Error
		if err == nil {
			return nil
		}
		if !isDuplicateNumberError(err) {
			return err
		}
		quote.ID = 0
	}
	return utils.ErrorDuplicateNumber
}

// MySQL 1062 (ER_DUP_ENTRY); quote_number is the only unique text index on
// the quotes table.
func isDuplicateNumberError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
