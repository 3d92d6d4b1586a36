package models

import (
	"context"
	"time"

	"bitbucket.org/ztofreight/quotes_backend/config"
	"bitbucket.org/ztofreight/quotes_backend/utils"
)

type Quote struct {
	ID              int          `gorm:"primaryKey" json:"id"`
	QuoteNumber     string       `gorm:"size:50;uniqueIndex;not null" json:"quote_number"`
	CustomerName    string       `gorm:"size:100;not null" json:"customer_name"`
	ContactPerson   string       `gorm:"size:50" json:"contact_person"`
	ContactPhone    string       `gorm:"size:20" json:"contact_phone"`
	CustomerAddress string       `gorm:"size:255" json:"customer_address"`
	DailyVolume     string       `gorm:"size:50" json:"daily_volume"`
	WeightRange     string       `gorm:"size:50" json:"weight_range"`
	ProductType     string       `gorm:"size:100" json:"product_type"`
	QuoterId        int          `gorm:"index;not null" json:"quoter_id"`
	Quoter          *Quoter      `gorm:"foreignKey:QuoterId" json:"quoter,omitempty"`
	QuoteDate       time.Time    `gorm:"type:date;not null" json:"quote_date"`
	ValidDays       int          `gorm:"not null;default:30" json:"valid_days"`
	ExpireDate      time.Time    `gorm:"type:date;not null" json:"expire_date"`
	TemplateType    TemplateType `gorm:"size:20;not null" json:"template_type"`
	PriceData       PriceData    `gorm:"type:longtext;not null" json:"price_data"`
	FixedTerms      TermList     `gorm:"type:longtext" json:"fixed_terms"`
	OptionalTerms   TermList     `gorm:"type:longtext" json:"optional_terms"`
	CustomTerms     StringList   `gorm:"type:longtext" json:"custom_terms"`
	IsTaxIncluded   *bool        `gorm:"not null;default:true" json:"is_tax_included"`
	Remark          string       `gorm:"type:text" json:"remark"`
	Status          QuoteStatus  `gorm:"size:20;not null;default:DRAFT" json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

type NewQuote struct {
	CustomerName    string       `json:"customer_name" binding:"required"`
	ContactPerson   string       `json:"contact_person"`
	ContactPhone    string       `json:"contact_phone"`
	CustomerAddress string       `json:"customer_address"`
	DailyVolume     string       `json:"daily_volume"`
	WeightRange     string       `json:"weight_range"`
	ProductType     string       `json:"product_type"`
	QuoterId        int          `json:"quoter_id" binding:"required"`
	QuoteDate       string       `json:"quote_date" binding:"required"`
	ValidDays       int          `json:"valid_days"`
	TemplateType    TemplateType `json:"template_type" binding:"required"`
	PriceData       PriceData    `json:"price_data" binding:"required"`
	FixedTerms      TermList     `json:"fixed_terms"`
	OptionalTerms   TermList     `json:"optional_terms"`
	CustomTerms     StringList   `json:"custom_terms"`
	IsTaxIncluded   *bool        `json:"is_tax_included"`
	Remark          string       `json:"remark"`
}

type UpdateQuoteInput struct {
	CustomerName    *string       `json:"customer_name"`
	ContactPerson   *string       `json:"contact_person"`
	ContactPhone    *string       `json:"contact_phone"`
	CustomerAddress *string       `json:"customer_address"`
	DailyVolume     *string       `json:"daily_volume"`
	WeightRange     *string       `json:"weight_range"`
	ProductType     *string       `json:"product_type"`
	QuoterId        *int          `json:"quoter_id"`
	QuoteDate       *string       `json:"quote_date"`
	ValidDays       *int          `json:"valid_days"`
	TemplateType    *TemplateType `json:"template_type"`
	PriceData       *PriceData    `json:"price_data"`
	FixedTerms      *TermList     `json:"fixed_terms"`
	OptionalTerms   *TermList     `json:"optional_terms"`
	CustomTerms     *StringList   `json:"custom_terms"`
	IsTaxIncluded   *bool         `json:"is_tax_included"`
	Remark          *string       `json:"remark"`
}

type QuoteFilter struct {
	CustomerName string `form:"customer_name"`
	ContactPhone string `form:"contact_phone"`
	QuoteNumber  string `form:"quote_number"`
	Status       string `form:"status"`
	QuoterId     int    `form:"quoter_id"`
	StartDate    string `form:"start_date"`
	EndDate      string `form:"end_date"`
	Offset       int    `form:"offset"`
	Limit        int    `form:"limit"`
}

const defaultValidDays = 30

// ComputeExpireDate derives the expiry date from the quote date and the
// validity window in days.
func ComputeExpireDate(quoteDate time.Time, validDays int) time.Time {
	return quoteDate.AddDate(0, 0, validDays)
}

func (input *NewQuote) validate(ctx context.Context) error {
	if !IsAllowedTemplateType(input.TemplateType.String()) {
		return &utils.ValidationError{
			Field:   "template_type",
			Message: "template_type must be one of TONGPIAO, DAKEHU, CANGPEI",
		}
	}
	if input.ValidDays < 0 {
		return &utils.ValidationError{Field: "valid_days", Message: "valid_days cannot be negative"}
	}
	if err := utils.ValidateResourceId[Quoter](ctx, input.QuoterId); err != nil {
		return err
	}
	return nil
}

func CreateQuote(ctx context.Context, input NewQuote) (*Quote, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	quoteDate, err := utils.ParseDate(input.QuoteDate)
	if err != nil {
		return nil, &utils.ValidationError{Field: "quote_date", Message: "quote_date must be YYYY-MM-DD"}
	}

	validDays := input.ValidDays
	if validDays == 0 {
		validDays = defaultValidDays
	}
	isTaxIncluded := input.IsTaxIncluded
	if isTaxIncluded == nil {
		isTaxIncluded = utils.NewTrue()
	}

	quote := Quote{
		CustomerName:    input.CustomerName,
		ContactPerson:   input.ContactPerson,
		ContactPhone:    input.ContactPhone,
		CustomerAddress: input.CustomerAddress,
		DailyVolume:     input.DailyVolume,
		WeightRange:     input.WeightRange,
		ProductType:     input.ProductType,
		QuoterId:        input.QuoterId,
		QuoteDate:       quoteDate,
		ValidDays:       validDays,
		ExpireDate:      ComputeExpireDate(quoteDate, validDays),
		TemplateType:    input.TemplateType,
		PriceData:       input.PriceData,
		FixedTerms:      input.FixedTerms,
		OptionalTerms:   input.OptionalTerms,
		CustomTerms:     input.CustomTerms,
		IsTaxIncluded:   isTaxIncluded,
		Remark:          input.Remark,
		Status:          QuoteStatusDraft,
	}

	err = utils.WithScopeLock(ctx, allocationLockKey(quoteDate), "quote.go", "CreateQuote", func() error {
		return insertWithAllocatedNumber(ctx, &quote)
	})
	if err != nil {
		return nil, err
	}
	return GetQuote(ctx, quote.ID)
}

// UpdateQuote applies a partial update. The quote number never changes;
// expire_date is recomputed whenever quote_date or valid_days does.
func UpdateQuote(ctx context.Context, id int, input UpdateQuoteInput) (*Quote, error) {
	quote, err := utils.FetchModel[Quote](ctx, id)
	if err != nil {
		return nil, err
	}

	if input.QuoterId != nil {
		if err := utils.ValidateResourceId[Quoter](ctx, *input.QuoterId); err != nil {
			return nil, err
		}
		quote.QuoterId = *input.QuoterId
	}
	if input.TemplateType != nil {
		if !IsAllowedTemplateType(input.TemplateType.String()) {
			return nil, &utils.ValidationError{
				Field:   "template_type",
				Message: "template_type must be one of TONGPIAO, DAKEHU, CANGPEI",
			}
		}
		quote.TemplateType = *input.TemplateType
	}

	recompute := false
	if input.QuoteDate != nil {
		quoteDate, err := utils.ParseDate(*input.QuoteDate)
		if err != nil {
			return nil, &utils.ValidationError{Field: "quote_date", Message: "quote_date must be YYYY-MM-DD"}
		}
		quote.QuoteDate = quoteDate
		recompute = true
	}
	if input.ValidDays != nil {
		if *input.ValidDays < 0 {
			return nil, &utils.ValidationError{Field: "valid_days", Message: "valid_days cannot be negative"}
		}
		quote.ValidDays = *input.ValidDays
		recompute = true
	}
	if recompute {
		quote.ExpireDate = ComputeExpireDate(quote.QuoteDate, quote.ValidDays)
	}

	if input.CustomerName != nil {
		quote.CustomerName = *input.CustomerName
	}
	if input.ContactPerson != nil {
		quote.ContactPerson = *input.ContactPerson
	}
	if input.ContactPhone != nil {
		quote.ContactPhone = *input.ContactPhone
	}
	if input.CustomerAddress != nil {
		quote.CustomerAddress = *input.CustomerAddress
	}
	if input.DailyVolume != nil {
		quote.DailyVolume = *input.DailyVolume
	}
	if input.WeightRange != nil {
		quote.WeightRange = *input.WeightRange
	}
	if input.ProductType != nil {
		quote.ProductType = *input.ProductType
	}
	if input.PriceData != nil {
		quote.PriceData = *input.PriceData
	}
	if input.FixedTerms != nil {
		quote.FixedTerms = *input.FixedTerms
	}
	if input.OptionalTerms != nil {
		quote.OptionalTerms = *input.OptionalTerms
	}
	if input.CustomTerms != nil {
		quote.CustomTerms = *input.CustomTerms
	}
	if input.IsTaxIncluded != nil {
		quote.IsTaxIncluded = input.IsTaxIncluded
	}
	if input.Remark != nil {
		quote.Remark = *input.Remark
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(quote).Error; err != nil {
		return nil, err
	}
	return GetQuote(ctx, id)
}

func UpdateQuoteStatus(ctx context.Context, id int, status QuoteStatus) (*Quote, error) {
	if !IsAllowedQuoteStatus(status.String()) {
		return nil, &utils.ValidationError{
			Field:   "status",
			Message: "status must be one of DRAFT, SENT, CONFIRMED, EXPIRED",
		}
	}

	db := config.GetDB()
	result := db.WithContext(ctx).Model(&Quote{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if err := utils.ValidateResourceId[Quote](ctx, id); err != nil {
			return nil, err
		}
	}
	return GetQuote(ctx, id)
}

// CopyQuote duplicates an existing quote as a new draft. The copy gets a
// fresh number and today's dates; everything else carries over.
func CopyQuote(ctx context.Context, id int) (*Quote, error) {
	source, err := utils.FetchModel[Quote](ctx, id)
	if err != nil {
		return nil, err
	}

	today := utils.Today()
	quote := *source
	quote.ID = 0
	quote.QuoteNumber = ""
	quote.Quoter = nil
	quote.QuoteDate = today
	quote.ExpireDate = ComputeExpireDate(today, source.ValidDays)
	quote.Status = QuoteStatusDraft
	quote.CreatedAt = time.Time{}
	quote.UpdatedAt = time.Time{}

	err = utils.WithScopeLock(ctx, allocationLockKey(today), "quote.go", "CopyQuote", func() error {
		return insertWithAllocatedNumber(ctx, &quote)
	})
	if err != nil {
		return nil, err
	}
	return GetQuote(ctx, quote.ID)
}

func DeleteQuote(ctx context.Context, id int) error {
	quote, err := utils.FetchModel[Quote](ctx, id)
	if err != nil {
		return err
	}

	db := config.GetDB()
	return db.WithContext(ctx).Delete(quote).Error
}

func GetQuote(ctx context.Context, id int) (*Quote, error) {
	return utils.FetchModel[Quote](ctx, id, "Quoter")
}

func GetQuotes(ctx context.Context, filter QuoteFilter) ([]*Quote, int64, error) {
	db := config.GetDB()
	query := db.WithContext(ctx).Model(&Quote{})

	if filter.CustomerName != "" {
		query = query.Where("customer_name LIKE ?", "%"+filter.CustomerName+"%")
	}
	if filter.QuoteNumber != "" {
		query = query.Where("quote_number LIKE ?", "%"+filter.QuoteNumber+"%")
	}
	if filter.ContactPhone != "" {
		query = query.Where("contact_phone LIKE ?", "%"+filter.ContactPhone+"%")
	}
	if filter.Status != "" {
		if !IsAllowedQuoteStatus(filter.Status) {
			return nil, 0, &utils.ValidationError{
				Field:   "status",
				Message: "status must be one of DRAFT, SENT, CONFIRMED, EXPIRED",
			}
		}
		query = query.Where("status = ?", filter.Status)
	}
	if filter.QuoterId != 0 {
		query = query.Where("quoter_id = ?", filter.QuoterId)
	}
	if filter.StartDate != "" {
		startDate, err := utils.ParseDate(filter.StartDate)
		if err != nil {
			return nil, 0, &utils.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"}
		}
		query = query.Where("quote_date >= ?", startDate)
	}
	if filter.EndDate != "" {
		endDate, err := utils.ParseDate(filter.EndDate)
		if err != nil {
			return nil, 0, &utils.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"}
		}
		query = query.Where("quote_date <= ?", endDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > config.SearchLimit {
		limit = config.SearchLimit
	}

	var quotes []*Quote
	err := query.
		Preload("Quoter").
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(limit).
		Find(&quotes).Error
	if err != nil {
		return nil, 0, err
	}
	return quotes, total, nil
}
