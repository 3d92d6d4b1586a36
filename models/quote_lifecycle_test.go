package models_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"bitbucket.org/ztofreight/quotes_backend/config"
	"bitbucket.org/ztofreight/quotes_backend/models"
	"bitbucket.org/ztofreight/quotes_backend/utils"
	"github.com/shopspring/decimal"
)

func seedQuoter(t *testing.T, ctx context.Context, name string) *models.Quoter {
	t.Helper()
	quoter, err := models.CreateQuoter(ctx, &models.NewQuoter{
		Name:  name,
		Phone: "13800138000",
	})
	if err != nil {
		t.Fatalf("CreateQuoter: %v", err)
	}
	return quoter
}

func newQuoteInput(quoterId int, date string) models.NewQuote {
	return models.NewQuote{
		CustomerName: "杭州迅达电子有限公司",
		ContactPhone: "13912345678",
		QuoterId:     quoterId,
		QuoteDate:    date,
		ValidDays:    30,
		TemplateType: models.TemplateTypeTongpiao,
		PriceData: models.PriceData{
			Regions: []models.RegionPrice{
				{
					RegionName:       "1区",
					Provinces:        []string{"江苏", "浙江"},
					FirstWeight:      decimal.NewFromFloat(12.0),
					AdditionalWeight: decimal.NewFromFloat(2.5),
					Remark:           "次日达",
				},
			},
		},
	}
}

func TestQuoteNumbersSequencePerDate(t *testing.T) {
	setupIntegration(t)
	ctx := context.Background()
	quoter := seedQuoter(t, ctx, "测试报价人")

	for i := 1; i <= 3; i++ {
		quote, err := models.CreateQuote(ctx, newQuoteInput(quoter.ID, "2026-01-15"))
		if err != nil {
			t.Fatalf("CreateQuote %d: %v", i, err)
		}
		want := fmt.Sprintf("ZTO-JCYB-20260115-%02d", i)
		if quote.QuoteNumber != want {
			t.Errorf("quote %d number = %q, want %q", i, quote.QuoteNumber, want)
		}
		if quote.Status != models.QuoteStatusDraft {
			t.Errorf("new quote status = %q, want DRAFT", quote.Status)
		}
	}

	// A different date starts its own sequence.
	quote, err := models.CreateQuote(ctx, newQuoteInput(quoter.ID, "2026-01-16"))
	if err != nil {
		t.Fatalf("CreateQuote other date: %v", err)
	}
	if quote.QuoteNumber != "ZTO-JCYB-20260116-01" {
		t.Errorf("other-date number = %q", quote.QuoteNumber)
	}

	// Preview reflects the next unreserved number without consuming it.
	date, _ := utils.ParseDate("2026-01-15")
	next, err := models.NextQuoteNumber(ctx, date)
	if err != nil {
		t.Fatalf("NextQuoteNumber: %v", err)
	}
	if next != "ZTO-JCYB-20260115-04" {
		t.Errorf("preview = %q, want ZTO-JCYB-20260115-04", next)
	}
	again, err := models.NextQuoteNumber(ctx, date)
	if err != nil {
		t.Fatalf("NextQuoteNumber again: %v", err)
	}
	if again != next {
		t.Errorf("preview consumed a number: %q then %q", next, again)
	}
}

func TestConcurrentQuoteCreationYieldsDistinctNumbers(t *testing.T) {
	setupIntegration(t)
	ctx := context.Background()
	quoter := seedQuoter(t, ctx, "并发报价人")

	const workers = 10
	var wg sync.WaitGroup
	numbers := make(chan string, workers)
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			quote, err := models.CreateQuote(ctx, newQuoteInput(quoter.ID, "2026-03-01"))
			if err != nil {
				errs <- err
				return
			}
			numbers <- quote.QuoteNumber
		}()
	}
	wg.Wait()
	close(numbers)
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent CreateQuote: %v", err)
	}

	seen := map[string]bool{}
	for number := range numbers {
		if seen[number] {
			t.Fatalf("duplicate quote number allocated: %s", number)
		}
		seen[number] = true
		if !strings.HasPrefix(number, "ZTO-JCYB-20260301-") {
			t.Fatalf("unexpected number shape: %s", number)
		}
	}
	if len(seen) != workers {
		t.Fatalf("expected %d distinct numbers, got %d", workers, len(seen))
	}
}

func TestAllocationExhaustedPastTwoDigits(t *testing.T) {
	setupIntegration(t)
	ctx := context.Background()
	quoter := seedQuoter(t, ctx, "边界报价人")

	// Occupy the last slot of the day directly.
	date, _ := utils.ParseDate("2027-01-01")
	db := config.GetDB()
	full := models.Quote{
		QuoteNumber:  "ZTO-JCYB-20270101-99",
		CustomerName: "占位客户",
		QuoterId:     quoter.ID,
		QuoteDate:    date,
		ValidDays:    30,
		ExpireDate:   models.ComputeExpireDate(date, 30),
		TemplateType: models.TemplateTypeDakehu,
		PriceData:    models.PriceData{},
		Status:       models.QuoteStatusDraft,
	}
	if err := db.WithContext(ctx).Create(&full).Error; err != nil {
		t.Fatalf("seed slot 99: %v", err)
	}

	if _, err := models.NextQuoteNumber(ctx, date); !errors.Is(err, utils.ErrorAllocationExhausted) {
		t.Fatalf("preview error = %v, want ErrorAllocationExhausted", err)
	}
	if _, err := models.CreateQuote(ctx, newQuoteInput(quoter.ID, "2027-01-01")); !errors.Is(err, utils.ErrorAllocationExhausted) {
		t.Fatalf("create error = %v, want ErrorAllocationExhausted", err)
	}
}

func TestUpdateQuoteRecomputesExpireDate(t *testing.T) {
	setupIntegration(t)
	ctx := context.Background()
	quoter := seedQuoter(t, ctx, "更新报价人")

	quote, err := models.CreateQuote(ctx, newQuoteInput(quoter.ID, "2026-01-15"))
	if err != nil {
		t.Fatalf("CreateQuote: %v", err)
	}

	validDays := 60
	updated, err := models.UpdateQuote(ctx, quote.ID, models.UpdateQuoteInput{ValidDays: &validDays})
	if err != nil {
		t.Fatalf("UpdateQuote: %v", err)
	}
	if updated.QuoteNumber != quote.QuoteNumber {
		t.Errorf("quote number changed on update: %q -> %q", quote.QuoteNumber, updated.QuoteNumber)
	}
	wantExpire := models.ComputeExpireDate(quote.QuoteDate, validDays)
	if !sameDate(updated.ExpireDate, wantExpire) {
		t.Errorf("expire date = %v, want %v", updated.ExpireDate, wantExpire)
	}

	// Touching neither date field leaves the expiry alone.
	remark := "价格以当月燃油附加费为准"
	again, err := models.UpdateQuote(ctx, quote.ID, models.UpdateQuoteInput{Remark: &remark})
	if err != nil {
		t.Fatalf("UpdateQuote remark: %v", err)
	}
	if !sameDate(again.ExpireDate, wantExpire) {
		t.Errorf("expire date moved on unrelated update: %v", again.ExpireDate)
	}
}

func TestCopyQuoteGetsFreshNumberAndDraftStatus(t *testing.T) {
	setupIntegration(t)
	ctx := context.Background()
	quoter := seedQuoter(t, ctx, "复制报价人")

	source, err := models.CreateQuote(ctx, newQuoteInput(quoter.ID, "2026-01-15"))
	if err != nil {
		t.Fatalf("CreateQuote: %v", err)
	}
	if _, err := models.UpdateQuoteStatus(ctx, source.ID, models.QuoteStatusConfirmed); err != nil {
		t.Fatalf("UpdateQuoteStatus: %v", err)
	}

	clone, err := models.CopyQuote(ctx, source.ID)
	if err != nil {
		t.Fatalf("CopyQuote: %v", err)
	}
	if clone.QuoteNumber == source.QuoteNumber {
		t.Error("copy reused the source quote number")
	}
	todayPrefix := "ZTO-JCYB-" + utils.Today().Format("20060102") + "-"
	if !strings.HasPrefix(clone.QuoteNumber, todayPrefix) {
		t.Errorf("copy number %q not scoped to today (%s)", clone.QuoteNumber, todayPrefix)
	}
	if clone.Status != models.QuoteStatusDraft {
		t.Errorf("copy status = %q, want DRAFT", clone.Status)
	}
	if clone.CustomerName != source.CustomerName {
		t.Errorf("copy lost customer name: %q", clone.CustomerName)
	}
	if len(clone.PriceData.Regions) != len(source.PriceData.Regions) {
		t.Errorf("copy lost price data")
	}
}

func TestDeleteQuoterReferencedByQuote(t *testing.T) {
	setupIntegration(t)
	ctx := context.Background()
	quoter := seedQuoter(t, ctx, "离职报价人")

	quote, err := models.CreateQuote(ctx, newQuoteInput(quoter.ID, "2026-01-15"))
	if err != nil {
		t.Fatalf("CreateQuote: %v", err)
	}

	// A non-default quoter can be deleted even while quotes reference it.
	if _, err := models.DeleteQuoter(ctx, quoter.ID); err != nil {
		t.Fatalf("DeleteQuoter referenced: %v", err)
	}

	// The quote survives; only the association is gone.
	kept, err := models.GetQuote(ctx, quote.ID)
	if err != nil {
		t.Fatalf("GetQuote after quoter delete: %v", err)
	}
	if kept.QuoterId != quoter.ID {
		t.Errorf("quote lost quoter_id: %d", kept.QuoterId)
	}
	if kept.Quoter != nil {
		t.Errorf("quote still carries deleted quoter: %+v", kept.Quoter)
	}
}

func sameDate(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}
