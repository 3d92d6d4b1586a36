package models

import (
	"context"
	"time"

	"bitbucket.org/ztofreight/quotes_backend/config"
)

// QuoteExport records every rendered artifact handed to a client, one row
// per download.
type QuoteExport struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	QuoteId      int       `gorm:"index;not null" json:"quote_id"`
	Quote        *Quote    `gorm:"foreignKey:QuoteId" json:"quote,omitempty"`
	ExportFormat string    `gorm:"size:20;not null" json:"export_format"`
	FileName     string    `gorm:"size:100;not null" json:"file_name"`
	FileSize     int       `gorm:"not null" json:"file_size"`
	CreatedAt    time.Time `json:"created_at"`
}

func RecordQuoteExport(ctx context.Context, quoteId int, format string, fileName string, fileSize int) error {
	export := QuoteExport{
		QuoteId:      quoteId,
		ExportFormat: format,
		FileName:     fileName,
		FileSize:     fileSize,
	}

	db := config.GetDB()
	return db.WithContext(ctx).Create(&export).Error
}

func GetQuoteExports(ctx context.Context, quoteId int) ([]*QuoteExport, error) {
	db := config.GetDB()

	var exports []*QuoteExport
	err := db.WithContext(ctx).
		Where("quote_id = ?", quoteId).
		Order("created_at DESC").
		Find(&exports).Error
	if err != nil {
		return nil, err
	}
	return exports, nil
}
