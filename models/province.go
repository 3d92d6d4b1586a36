package models

import (
	"context"
	"fmt"
	"time"
)

// Province is read-only reference data mapping each province to one of the
// six delivery regions used by the tongpiao pricing scheme.
type Province struct {
	ID         int       `gorm:"primary_key" json:"id"`
	Name       string    `gorm:"size:50;uniqueIndex;not null" json:"name" binding:"required"`
	RegionId   int       `gorm:"not null" json:"region_id" binding:"required"`
	RegionName string    `gorm:"size:20;not null" json:"region_name" binding:"required"`
	SortOrder  int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type RegionGroup struct {
	RegionId   int         `json:"region_id"`
	RegionName string      `json:"region_name"`
	Provinces  []*Province `json:"provinces"`
}

func GetProvinces(ctx context.Context) ([]*Province, error) {
	return ListAllResource[Province](ctx, "region_id", "sort_order")
}

// GetRegions groups provinces by region, preserving region order.
func GetRegions(ctx context.Context) ([]*RegionGroup, error) {
	provinces, err := GetProvinces(ctx)
	if err != nil {
		return nil, err
	}

	groupIndex := map[string]int{}
	var groups []*RegionGroup
	for _, p := range provinces {
		key := fmt.Sprintf("region_%d", p.RegionId)
		idx, ok := groupIndex[key]
		if !ok {
			groups = append(groups, &RegionGroup{
				RegionId:   p.RegionId,
				RegionName: p.RegionName,
			})
			idx = len(groups) - 1
			groupIndex[key] = idx
		}
		groups[idx].Provinces = append(groups[idx].Provinces, p)
	}
	return groups, nil
}
