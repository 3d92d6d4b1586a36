package models_test

import (
	"context"
	"errors"
	"testing"

	"bitbucket.org/ztofreight/quotes_backend/config"
	"bitbucket.org/ztofreight/quotes_backend/models"
	"bitbucket.org/ztofreight/quotes_backend/utils"
)

func countDefaultQuoters(t *testing.T, ctx context.Context) int64 {
	t.Helper()
	var count int64
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(&models.Quoter{}).Where("is_default = ?", true).Count(&count).Error; err != nil {
		t.Fatalf("count default quoters: %v", err)
	}
	return count
}

func TestSingleDefaultQuoterInvariant(t *testing.T) {
	setupIntegration(t)
	ctx := context.Background()

	first, err := models.CreateQuoter(ctx, &models.NewQuoter{
		Name: "范云飞", Phone: "13800138000", IsDefault: true,
	})
	if err != nil {
		t.Fatalf("CreateQuoter first: %v", err)
	}

	// Creating a second default demotes the first.
	second, err := models.CreateQuoter(ctx, &models.NewQuoter{
		Name: "李建国", Phone: "13800138001", IsDefault: true,
	})
	if err != nil {
		t.Fatalf("CreateQuoter second: %v", err)
	}
	if n := countDefaultQuoters(t, ctx); n != 1 {
		t.Fatalf("default quoter count = %d, want 1", n)
	}
	refreshed, err := models.GetQuoter(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetQuoter: %v", err)
	}
	if refreshed.IsDefault {
		t.Error("first quoter still default after second default created")
	}

	// Explicit promotion moves the flag back.
	if _, err := models.SetDefaultQuoter(ctx, first.ID); err != nil {
		t.Fatalf("SetDefaultQuoter: %v", err)
	}
	if n := countDefaultQuoters(t, ctx); n != 1 {
		t.Fatalf("default quoter count after promote = %d, want 1", n)
	}
	demoted, err := models.GetQuoter(ctx, second.ID)
	if err != nil {
		t.Fatalf("GetQuoter second: %v", err)
	}
	if demoted.IsDefault {
		t.Error("second quoter still default after promotion of first")
	}

	// The current default cannot be deleted.
	if _, err := models.DeleteQuoter(ctx, first.ID); !errors.Is(err, utils.ErrorCannotDeleteDefault) {
		t.Fatalf("delete default quoter error = %v, want ErrorCannotDeleteDefault", err)
	}
	// A non-default quoter can.
	if _, err := models.DeleteQuoter(ctx, second.ID); err != nil {
		t.Fatalf("delete non-default quoter: %v", err)
	}
}

func TestDefaultTemplateScopedPerType(t *testing.T) {
	setupIntegration(t)
	ctx := context.Background()

	tongpiaoA, err := models.CreateTemplate(ctx, &models.NewTemplate{
		Name: "通票标准", TemplateType: "TONGPIAO", TemplateData: "{}", IsDefault: true,
	})
	if err != nil {
		t.Fatalf("CreateTemplate tongpiaoA: %v", err)
	}
	dakehu, err := models.CreateTemplate(ctx, &models.NewTemplate{
		Name: "大客户标准", TemplateType: "DAKEHU", TemplateData: "{}", IsDefault: true,
	})
	if err != nil {
		t.Fatalf("CreateTemplate dakehu: %v", err)
	}

	// New default within one type demotes only that type.
	tongpiaoB, err := models.CreateTemplate(ctx, &models.NewTemplate{
		Name: "通票促销", TemplateType: "TONGPIAO", TemplateData: "{}", IsDefault: true,
	})
	if err != nil {
		t.Fatalf("CreateTemplate tongpiaoB: %v", err)
	}

	refreshedA, err := models.GetTemplate(ctx, tongpiaoA.ID)
	if err != nil {
		t.Fatalf("GetTemplate tongpiaoA: %v", err)
	}
	if refreshedA.IsDefault {
		t.Error("old tongpiao default not demoted")
	}
	refreshedDakehu, err := models.GetTemplate(ctx, dakehu.ID)
	if err != nil {
		t.Fatalf("GetTemplate dakehu: %v", err)
	}
	if !refreshedDakehu.IsDefault {
		t.Error("dakehu default lost when tongpiao default changed")
	}

	// Lookup returns the per-type default.
	gotDefault, err := models.GetDefaultTemplate(ctx, models.TemplateTypeTongpiao)
	if err != nil {
		t.Fatalf("GetDefaultTemplate: %v", err)
	}
	if gotDefault.ID != tongpiaoB.ID {
		t.Errorf("tongpiao default = %d, want %d", gotDefault.ID, tongpiaoB.ID)
	}

	// Deleting the default template is refused while it holds the flag.
	if _, err := models.DeleteTemplate(ctx, tongpiaoB.ID); !errors.Is(err, utils.ErrorCannotDeleteDefault) {
		t.Fatalf("delete default template error = %v, want ErrorCannotDeleteDefault", err)
	}
	if _, err := models.SetDefaultTemplate(ctx, tongpiaoA.ID); err != nil {
		t.Fatalf("SetDefaultTemplate: %v", err)
	}
	deleted, err := models.DeleteTemplate(ctx, tongpiaoB.ID)
	if err != nil {
		t.Fatalf("DeleteTemplate after demote: %v", err)
	}
	if deleted.IsActive != nil && *deleted.IsActive {
		t.Error("deleted template still active")
	}
}

func TestSeedDefaultDataIsIdempotent(t *testing.T) {
	setupIntegration(t)
	ctx := context.Background()
	db := config.GetDB()

	if err := models.SeedDefaultData(db, ctx); err != nil {
		t.Fatalf("SeedDefaultData: %v", err)
	}
	if err := models.SeedDefaultData(db, ctx); err != nil {
		t.Fatalf("SeedDefaultData rerun: %v", err)
	}

	provinces, err := models.GetProvinces(ctx)
	if err != nil {
		t.Fatalf("GetProvinces: %v", err)
	}
	if len(provinces) != 34 {
		t.Errorf("province count = %d, want 34", len(provinces))
	}

	regions, err := models.GetRegions(ctx)
	if err != nil {
		t.Fatalf("GetRegions: %v", err)
	}
	if len(regions) != 6 {
		t.Errorf("region count = %d, want 6", len(regions))
	}

	fixed, err := models.GetFixedTerms(ctx)
	if err != nil {
		t.Fatalf("GetFixedTerms: %v", err)
	}
	if len(fixed) != 4 {
		t.Errorf("fixed term count = %d, want 4", len(fixed))
	}

	optional, err := models.GetOptionalTerms(ctx)
	if err != nil {
		t.Fatalf("GetOptionalTerms: %v", err)
	}
	if len(optional) != 7 {
		t.Errorf("optional term count = %d, want 7", len(optional))
	}

	preselected := 0
	for _, term := range optional {
		if term.IsDefault {
			preselected++
		}
	}
	if preselected != 2 {
		t.Errorf("pre-selected optional terms = %d, want 2", preselected)
	}

	if n := countDefaultQuoters(t, context.Background()); n != 1 {
		t.Errorf("seeded default quoter count = %d, want 1", n)
	}
}
