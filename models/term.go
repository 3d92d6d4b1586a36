package models

import (
	"context"
	"time"
)

// FixedTerm and OptionalTerm are catalog entries copied into a quote at
// creation time. Quote edits never touch the catalog and catalog edits never
// touch existing quotes.

type FixedTerm struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Title     string    `gorm:"size:100;not null" json:"title" binding:"required"`
	Content   string    `gorm:"type:text;not null" json:"content" binding:"required"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// OptionalTerm's IsDefault marks it pre-selected in the quote builder; it is
// not scope-unique like the quoter/template default flag.
type OptionalTerm struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Title     string    `gorm:"size:100;not null" json:"title" binding:"required"`
	Content   string    `gorm:"type:text;not null" json:"content" binding:"required"`
	IsDefault bool      `gorm:"not null;default:false" json:"is_default"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func GetFixedTerms(ctx context.Context) ([]*FixedTerm, error) {
	return ListAllResource[FixedTerm](ctx, "sort_order")
}

func GetOptionalTerms(ctx context.Context) ([]*OptionalTerm, error) {
	return ListAllResource[OptionalTerm](ctx, "sort_order")
}
