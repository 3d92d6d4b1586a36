package models

import (
	"context"

	"bitbucket.org/ztofreight/quotes_backend/utils"
	"gorm.io/gorm"
)

// Seed data matching the standard ZTO regional split: 34 provinces across
// 6 shipping regions, ordered by region then entry position.

type seedRegion struct {
	id        int
	name      string
	provinces []string
}

func defaultRegions() []seedRegion {
	return []seedRegion{
		{1, "1区", []string{"江苏", "浙江", "安徽", "上海"}},
		{2, "2区", []string{"北京", "天津", "河北", "山东", "河南"}},
		{3, "3区", []string{"湖南", "湖北", "江西", "广东", "福建", "广西", "海南"}},
		{4, "4区", []string{"四川", "重庆", "云南", "贵州", "陕西", "山西", "甘肃", "宁夏"}},
		{5, "5区", []string{"辽宁", "吉林", "黑龙江", "内蒙古"}},
		{6, "6区", []string{"新疆", "西藏", "青海", "香港", "澳门", "台湾"}},
	}
}

func CreateDefaultProvinces(tx *gorm.DB, ctx context.Context) ([]Province, error) {
	var provinces []Province
	sortOrder := 1
	for _, region := range defaultRegions() {
		for _, name := range region.provinces {
			provinces = append(provinces, Province{
				Name:       name,
				RegionId:   region.id,
				RegionName: region.name,
				SortOrder:  sortOrder,
			})
			sortOrder++
		}
	}

	if err := tx.WithContext(ctx).Create(&provinces).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	return provinces, nil
}

func CreateDefaultFixedTerms(tx *gorm.DB, ctx context.Context) ([]FixedTerm, error) {
	fixedTerms := []FixedTerm{
		{Title: "到付方式", Content: "运费到付,货到付款", SortOrder: 1},
		{Title: "回单要求", Content: "签收回单需在7个工作日内返回", SortOrder: 2},
		{Title: "包装要求", Content: "货物包装需符合快递运输标准", SortOrder: 3},
		{Title: "保价说明", Content: "贵重物品请保价,保价费为声明价值的3‰", SortOrder: 4},
	}

	if err := tx.WithContext(ctx).Create(&fixedTerms).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	return fixedTerms, nil
}

func CreateDefaultOptionalTerms(tx *gorm.DB, ctx context.Context) ([]OptionalTerm, error) {
	optionalTerms := []OptionalTerm{
		{Title: "超重加收", Content: "单件超过30KG加收超重费", IsDefault: true, SortOrder: 1},
		{Title: "偏远附加费", Content: "偏远地区加收附加费,具体以网点报价为准", IsDefault: false, SortOrder: 2},
		{Title: "上楼费用", Content: "无电梯上楼每层加收费用", IsDefault: false, SortOrder: 3},
		{Title: "夜间配送", Content: "夜间配送需提前预约并加收服务费", IsDefault: false, SortOrder: 4},
		{Title: "节假日配送", Content: "法定节假日配送时效顺延", IsDefault: false, SortOrder: 5},
		{Title: "签回单服务", Content: "提供签回单服务,费用另计", IsDefault: true, SortOrder: 6},
		{Title: "代收货款", Content: "代收货款手续费按代收金额的5‰收取", IsDefault: false, SortOrder: 7},
	}

	if err := tx.WithContext(ctx).Create(&optionalTerms).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	return optionalTerms, nil
}

func CreateDefaultQuoter(tx *gorm.DB, ctx context.Context) (*Quoter, error) {
	quoter := Quoter{
		Name:      "范云飞",
		Phone:     "13800138000",
		Position:  "业务经理",
		IsDefault: true,
		SortOrder: 1,
	}

	if err := tx.WithContext(ctx).Create(&quoter).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	return &quoter, nil
}

// SeedDefaultData populates the catalog tables when empty. Safe to run on
// every startup: a table that already has rows is left alone.
func SeedDefaultData(tx *gorm.DB, ctx context.Context) error {
	count, err := utils.ResourceCountWhere[Province](ctx, "1 = 1")
	if err != nil {
		return err
	}
	if count == 0 {
		if _, err := CreateDefaultProvinces(tx, ctx); err != nil {
			return err
		}
	}

	count, err = utils.ResourceCountWhere[FixedTerm](ctx, "1 = 1")
	if err != nil {
		return err
	}
	if count == 0 {
		if _, err := CreateDefaultFixedTerms(tx, ctx); err != nil {
			return err
		}
	}

	count, err = utils.ResourceCountWhere[OptionalTerm](ctx, "1 = 1")
	if err != nil {
		return err
	}
	if count == 0 {
		if _, err := CreateDefaultOptionalTerms(tx, ctx); err != nil {
			return err
		}
	}

	count, err = utils.ResourceCountWhere[Quoter](ctx, "1 = 1")
	if err != nil {
		return err
	}
	if count == 0 {
		if _, err := CreateDefaultQuoter(tx, ctx); err != nil {
			return err
		}
	}

	return nil
}
