package models

import (
	"context"
	"time"

	"bitbucket.org/ztofreight/quotes_backend/config"
	"bitbucket.org/ztofreight/quotes_backend/utils"
	"gorm.io/gorm"
)

// Quoter is the salesperson attributed to a quote. At most one quoter is
// marked default across the whole table.
type Quoter struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:50;not null" json:"name" binding:"required"`
	Phone     string    `gorm:"size:20;not null" json:"phone" binding:"required"`
	Email     string    `gorm:"size:100" json:"email"`
	Position  string    `gorm:"size:50" json:"position"`
	IsDefault bool      `gorm:"not null;default:false" json:"is_default"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewQuoter struct {
	Name      string `json:"name" binding:"required,min=2,max=50"`
	Phone     string `json:"phone" binding:"required,max=20"`
	Email     string `json:"email"`
	Position  string `json:"position"`
	IsDefault bool   `json:"is_default"`
	SortOrder int    `json:"sort_order"`
}

// validate input for both create & update. (id = 0 for create)

func (input *NewQuoter) validate(ctx context.Context, id int) error {
	if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
		return err
	}
	if len(input.Email) > 0 {
		if !utils.IsValidEmail(input.Email) {
			return &utils.ValidationError{Field: "email", Message: "email address is invalid"}
		}
		if err := utils.ValidateUnique[Quoter](ctx, "email", input.Email, id); err != nil {
			return err
		}
	}
	return nil
}

func CreateQuoter(ctx context.Context, input *NewQuoter) (*Quoter, error) {

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	quoter := Quoter{
		Name:      input.Name,
		Phone:     input.Phone,
		Email:     input.Email,
		Position:  input.Position,
		IsDefault: input.IsDefault,
		SortOrder: input.SortOrder,
	}

	db := config.GetDB()
	scope := quoterDefaultScope()

	// A candidate arriving with the flag set displaces the current default
	// before insert, inside one transaction.
	var err error
	var displaced []int
	if input.IsDefault {
		err = utils.WithScopeLock(ctx, scope.lockKey(), "quoter.go", "CreateQuoter", func() error {
			return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				displaced, err = claimDefaultFlag[Quoter](tx, ctx, scope, 0)
				if err != nil {
					return err
				}
				return tx.WithContext(ctx).Create(&quoter).Error
			})
		})
	} else {
		err = db.WithContext(ctx).Create(&quoter).Error
	}
	if err != nil {
		return nil, err
	}

	for _, displacedId := range displaced {
		clearResourceCache[Quoter](displacedId)
	}
	_ = utils.RemoveRedisList[Quoter]()
	return &quoter, nil
}

func UpdateQuoter(ctx context.Context, id int, input *NewQuoter) (*Quoter, error) {

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	quoter, err := utils.FetchModel[Quoter](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	updates := map[string]interface{}{
		"Name":      input.Name,
		"Phone":     input.Phone,
		"Email":     input.Email,
		"Position":  input.Position,
		"IsDefault": input.IsDefault,
		"SortOrder": input.SortOrder,
	}

	scope := quoterDefaultScope()
	var displaced []int
	if input.IsDefault && !quoter.IsDefault {
		err = utils.WithScopeLock(ctx, scope.lockKey(), "quoter.go", "UpdateQuoter", func() error {
			return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				displaced, err = claimDefaultFlag[Quoter](tx, ctx, scope, id)
				if err != nil {
					return err
				}
				return tx.WithContext(ctx).Model(&quoter).Updates(updates).Error
			})
		})
	} else {
		err = db.WithContext(ctx).Model(&quoter).Updates(updates).Error
	}
	if err != nil {
		return nil, err
	}

	for _, displacedId := range displaced {
		clearResourceCache[Quoter](displacedId)
	}
	clearResourceCache[Quoter](id)
	return quoter, nil
}

// SetDefaultQuoter makes id the single default quoter.
func SetDefaultQuoter(ctx context.Context, id int) (*Quoter, error) {
	quoter, err := setDefaultRecord[Quoter](ctx, quoterDefaultScope(), id)
	if err != nil {
		return nil, err
	}
	clearResourceCache[Quoter](id)
	return quoter, nil
}

// DeleteQuoter removes a quoter permanently. The default quoter cannot be
// deleted; the caller reassigns the default first.
func DeleteQuoter(ctx context.Context, id int) (*Quoter, error) {

	result, err := utils.FetchModel[Quoter](ctx, id)
	if err != nil {
		return nil, err
	}
	if result.IsDefault {
		return nil, utils.ErrorCannotDeleteDefault
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}

	clearResourceCache[Quoter](id)
	return result, nil
}

func GetQuoter(ctx context.Context, id int) (*Quoter, error) {

	return GetResource[Quoter](ctx, id)
}

func GetQuoters(ctx context.Context, name *string) ([]*Quoter, error) {

	if err := checkSingleDefault[Quoter](ctx, quoterDefaultScope()); err != nil {
		return nil, err
	}

	if name == nil || *name == "" {
		return ListAllResource[Quoter](ctx, "sort_order", "created_at")
	}

	db := config.GetDB()
	var results []*Quoter
	err := db.WithContext(ctx).
		Where("name LIKE ?", "%"+*name+"%").
		Order("sort_order").Order("created_at").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
