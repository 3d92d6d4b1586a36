package models

import (
	"context"
	"encoding/json"
	"time"

	"bitbucket.org/ztofreight/quotes_backend/config"
	"bitbucket.org/ztofreight/quotes_backend/utils"
	"gorm.io/gorm"
)

// Template is a reusable starting price/term payload for new quotes, scoped
// by template_type. Deletion is logical (is_active cleared); is_default is
// unique within one type, not globally.
type Template struct {
	ID           int          `gorm:"primary_key" json:"id"`
	Name         string       `gorm:"size:100;not null" json:"name" binding:"required"`
	TemplateType TemplateType `gorm:"size:20;not null;index" json:"template_type" binding:"required"`
	Description  string       `gorm:"type:text" json:"description"`

	// TemplateData is stored as JSON text to avoid requiring MySQL JSON
	// column support. Validated as JSON on write.
	TemplateData string `gorm:"type:longtext" json:"template_data"`

	IsDefault bool      `gorm:"not null;default:false" json:"is_default"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewTemplate struct {
	Name         string `json:"name" binding:"required,max=100"`
	TemplateType string `json:"template_type" binding:"required"`
	Description  string `json:"description"`
	TemplateData string `json:"template_data" binding:"required"`
	IsDefault    bool   `json:"is_default"`
}

func (input *NewTemplate) validate() error {
	if !IsAllowedTemplateType(input.TemplateType) {
		return &utils.ValidationError{
			Field:   "template_type",
			Message: "template_type must be one of TONGPIAO, DAKEHU, CANGPEI",
		}
	}
	if !json.Valid([]byte(input.TemplateData)) {
		return &utils.ValidationError{Field: "template_data", Message: "template_data must be valid JSON"}
	}
	return nil
}

func CreateTemplate(ctx context.Context, input *NewTemplate) (*Template, error) {

	if err := input.validate(); err != nil {
		return nil, err
	}

	template := Template{
		Name:         input.Name,
		TemplateType: TemplateType(input.TemplateType),
		Description:  input.Description,
		TemplateData: input.TemplateData,
		IsDefault:    input.IsDefault,
		IsActive:     utils.NewTrue(),
	}

	db := config.GetDB()
	scope := templateDefaultScope(template.TemplateType)

	var err error
	var displaced []int
	if input.IsDefault {
		err = utils.WithScopeLock(ctx, scope.lockKey(), "template.go", "CreateTemplate", func() error {
			return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				displaced, err = claimDefaultFlag[Template](tx, ctx, scope, 0)
				if err != nil {
					return err
				}
				return tx.WithContext(ctx).Create(&template).Error
			})
		})
	} else {
		err = db.WithContext(ctx).Create(&template).Error
	}
	if err != nil {
		return nil, err
	}

	for _, displacedId := range displaced {
		clearResourceCache[Template](displacedId)
	}
	_ = utils.RemoveRedisList[Template]()
	return &template, nil
}

type UpdateTemplateInput struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	TemplateData *string `json:"template_data"`
	IsDefault    *bool   `json:"is_default"`
}

func UpdateTemplate(ctx context.Context, id int, input *UpdateTemplateInput) (*Template, error) {

	template, err := utils.FetchModel[Template](ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["Name"] = *input.Name
	}
	if input.Description != nil {
		updates["Description"] = *input.Description
	}
	if input.TemplateData != nil {
		if !json.Valid([]byte(*input.TemplateData)) {
			return nil, &utils.ValidationError{Field: "template_data", Message: "template_data must be valid JSON"}
		}
		updates["TemplateData"] = *input.TemplateData
	}
	if input.IsDefault != nil {
		updates["IsDefault"] = *input.IsDefault
	}

	db := config.GetDB()
	scope := templateDefaultScope(template.TemplateType)

	var displaced []int
	if input.IsDefault != nil && *input.IsDefault && !template.IsDefault {
		err = utils.WithScopeLock(ctx, scope.lockKey(), "template.go", "UpdateTemplate", func() error {
			return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				displaced, err = claimDefaultFlag[Template](tx, ctx, scope, id)
				if err != nil {
					return err
				}
				return tx.WithContext(ctx).Model(&template).Updates(updates).Error
			})
		})
	} else {
		err = db.WithContext(ctx).Model(&template).Updates(updates).Error
	}
	if err != nil {
		return nil, err
	}

	for _, displacedId := range displaced {
		clearResourceCache[Template](displacedId)
	}
	clearResourceCache[Template](id)
	return template, nil
}

// SetDefaultTemplate makes id the single default within its template_type.
func SetDefaultTemplate(ctx context.Context, id int) (*Template, error) {
	template, err := utils.FetchModel[Template](ctx, id)
	if err != nil {
		return nil, err
	}
	result, err := setDefaultRecord[Template](ctx, templateDefaultScope(template.TemplateType), id)
	if err != nil {
		return nil, err
	}
	clearResourceCache[Template](id)
	return result, nil
}

// DeleteTemplate deactivates a template (record retained). The default
// template of a type cannot be deactivated.
func DeleteTemplate(ctx context.Context, id int) (*Template, error) {

	template, err := utils.FetchModel[Template](ctx, id)
	if err != nil {
		return nil, err
	}
	if template.IsDefault {
		return nil, utils.ErrorCannotDeleteDefault
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&template).Update("IsActive", false).Error
	if err != nil {
		return nil, err
	}

	clearResourceCache[Template](id)
	return template, nil
}

func GetTemplate(ctx context.Context, id int) (*Template, error) {

	return GetResource[Template](ctx, id)
}

func GetTemplates(ctx context.Context, templateType *string, isActive *bool) ([]*Template, error) {

	if templateType != nil {
		if !IsAllowedTemplateType(*templateType) {
			return nil, &utils.ValidationError{
				Field:   "template_type",
				Message: "template_type must be one of TONGPIAO, DAKEHU, CANGPEI",
			}
		}
		if err := checkSingleDefault[Template](ctx, templateDefaultScope(TemplateType(*templateType))); err != nil {
			return nil, err
		}
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	if templateType != nil {
		dbCtx = dbCtx.Where("template_type = ?", *templateType)
	}
	if isActive != nil {
		dbCtx = dbCtx.Where("is_active = ?", *isActive)
	}

	var results []*Template
	err := dbCtx.Order("created_at desc").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetDefaultTemplate returns the active default template of a type, or
// RecordNotFound when the type has none.
func GetDefaultTemplate(ctx context.Context, templateType TemplateType) (*Template, error) {

	if err := checkSingleDefault[Template](ctx, templateDefaultScope(templateType)); err != nil {
		return nil, err
	}

	db := config.GetDB()
	var result Template
	err := db.WithContext(ctx).
		Where("template_type = ? AND is_default = ? AND is_active = ?", templateType, true, true).
		First(&result).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &result, nil
}
