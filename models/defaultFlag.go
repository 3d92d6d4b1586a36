package models

import (
	"context"

	"bitbucket.org/ztofreight/quotes_backend/config"
	"bitbucket.org/ztofreight/quotes_backend/utils"
	"gorm.io/gorm"
)

// At most one record within a scope may carry is_default = true. The scope
// is all quoters, or all templates sharing one template_type. One generic
// implementation serves both so the two cannot drift.

// defaultScope identifies one contention scope of the single-default rule.
type defaultScope struct {
	kind string // redis lock key suffix
	cond string // extra WHERE predicate, empty for a global scope
	args []interface{}
}

func quoterDefaultScope() defaultScope {
	return defaultScope{kind: "quoter"}
}

func templateDefaultScope(templateType TemplateType) defaultScope {
	return defaultScope{
		kind: "template:" + string(templateType),
		cond: "template_type = ?",
		args: []interface{}{templateType},
	}
}

func (s defaultScope) lockKey() string { return "default:" + s.kind }

// clearDefaultFlag clears the flag on every record in scope except exceptId
// (0 = no exception). Single UPDATE matching the scope predicate.
func clearDefaultFlag[T any](tx *gorm.DB, ctx context.Context, scope defaultScope, exceptId int) error {
	var model T
	dbCtx := tx.WithContext(ctx).Model(&model).Where("is_default = ?", true)
	if scope.cond != "" {
		dbCtx = dbCtx.Where(scope.cond, scope.args...)
	}
	if exceptId != 0 {
		dbCtx = dbCtx.Where("id <> ?", exceptId)
	}
	return dbCtx.Update("is_default", false).Error
}

// currentDefaultIds lists the records holding the flag in scope, so their
// redis item caches can be dropped after a demotion.
func currentDefaultIds[T any](tx *gorm.DB, ctx context.Context, scope defaultScope) ([]int, error) {
	var model T
	dbCtx := tx.WithContext(ctx).Model(&model).Where("is_default = ?", true)
	if scope.cond != "" {
		dbCtx = dbCtx.Where(scope.cond, scope.args...)
	}
	var ids []int
	if err := dbCtx.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// claimDefaultFlag demotes the current holders inside tx and reports which
// ids were displaced.
func claimDefaultFlag[T any](tx *gorm.DB, ctx context.Context, scope defaultScope, exceptId int) ([]int, error) {
	ids, err := currentDefaultIds[T](tx, ctx, scope)
	if err != nil {
		return nil, err
	}
	if err := clearDefaultFlag[T](tx, ctx, scope, exceptId); err != nil {
		return nil, err
	}
	return ids, nil
}

// setDefaultRecord makes id the single default of its scope. Serialized per
// scope by a redis lock; clear-others and set run in one transaction so no
// reader observes two defaults.
func setDefaultRecord[T any](ctx context.Context, scope defaultScope, id int) (*T, error) {
	db := config.GetDB()
	var displaced []int
	err := utils.WithScopeLock(ctx, scope.lockKey(), "defaultFlag.go", "setDefaultRecord", func() error {
		return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var model T
			// mysql reports zero affected rows for a no-op update, so
			// existence is checked explicitly instead.
			if err := tx.WithContext(ctx).First(&model, id).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return utils.ErrorRecordNotFound
				}
				return err
			}
			var err error
			displaced, err = claimDefaultFlag[T](tx, ctx, scope, id)
			if err != nil {
				return err
			}
			return tx.WithContext(ctx).Model(&model).Where("id = ?", id).Update("is_default", true).Error
		})
	})
	if err != nil {
		return nil, err
	}
	for _, displacedId := range displaced {
		clearResourceCache[T](displacedId)
	}
	clearResourceCache[T](id)
	return utils.FetchModel[T](ctx, id)
}

// checkSingleDefault surfaces a data-integrity error when a scope holds more
// than one default. Violations are reported, never repaired silently.
func checkSingleDefault[T any](ctx context.Context, scope defaultScope) error {
	var model T
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&model).Where("is_default = ?", true)
	if scope.cond != "" {
		dbCtx = dbCtx.Where(scope.cond, scope.args...)
	}
	var count int64
	if err := dbCtx.Count(&count).Error; err != nil {
		return err
	}
	if count > 1 {
		return utils.ErrorDefaultFlagConflict
	}
	return nil
}
