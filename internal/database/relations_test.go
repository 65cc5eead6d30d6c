package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"crypto-portfolio-go/internal/models"
	"crypto-portfolio-go/internal/store"

	"github.com/shopspring/decimal"
)

func relationFixture(userId, companyId int, amount int64) models.UserCompanyRelation {
	return models.UserCompanyRelation{
		UserId:         userId,
		CompanyId:      companyId,
		InvestedAmount: decimal.NewFromInt(amount),
		StartDate:      time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateRelationAndLookups(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	mustCreateUser(t, service, 1, "Investor", "inv@x.com")
	mustInsertCompany(t, service, 10, "Acme", "TAX-10")

	if err := service.CreateRelation(ctx, relationFixture(1, 10, 500)); err != nil {
		t.Fatalf("CreateRelation failed: %v", err)
	}

	userIds, err := service.UsersByCompany(ctx, 10)
	if err != nil {
		t.Fatalf("UsersByCompany failed: %v", err)
	}
	if len(userIds) != 1 || userIds[0] != 1 {
		t.Errorf("expected [1], got %v", userIds)
	}

	relations, err := service.RelationsByUser(ctx, 1)
	if err != nil {
		t.Fatalf("RelationsByUser failed: %v", err)
	}
	if len(relations) != 1 {
		t.Fatalf("expected 1 relation, got %d", len(relations))
	}
	if !relations[0].InvestedAmount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected amount 500, got %s", relations[0].InvestedAmount)
	}
	if relations[0].StartDate.Format("2006-01-02") != "2025-05-01" {
		t.Errorf("expected start date 2025-05-01, got %s", relations[0].StartDate)
	}
}

func TestCreateRelationDuplicate(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	mustCreateUser(t, service, 1, "Investor", "inv@x.com")
	mustInsertCompany(t, service, 10, "Acme", "TAX-10")

	if err := service.CreateRelation(ctx, relationFixture(1, 10, 500)); err != nil {
		t.Fatalf("CreateRelation failed: %v", err)
	}

	err := service.CreateRelation(ctx, relationFixture(1, 10, 900))
	if !errors.Is(err, store.ErrDuplicateRelation) {
		t.Fatalf("expected ErrDuplicateRelation, got %v", err)
	}
}

func TestUpdateInvestedAmountReplaces(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	mustCreateUser(t, service, 1, "Investor", "inv@x.com")
	mustInsertCompany(t, service, 10, "Acme", "TAX-10")

	if err := service.CreateRelation(ctx, relationFixture(1, 10, 500)); err != nil {
		t.Fatalf("CreateRelation failed: %v", err)
	}

	ok, err := service.UpdateInvestedAmount(ctx, 1, 10, decimal.NewFromInt(750))
	if err != nil || !ok {
		t.Fatalf("UpdateInvestedAmount failed: ok=%v err=%v", ok, err)
	}

	rel, err := service.GetRelation(ctx, 1, 10)
	if err != nil || rel == nil {
		t.Fatalf("GetRelation failed: %v", err)
	}
	// Replace semantics: 750, not 500+750.
	if !rel.InvestedAmount.Equal(decimal.NewFromInt(750)) {
		t.Errorf("expected replaced amount 750, got %s", rel.InvestedAmount)
	}
}

func TestUpdateInvestedAmountMissing(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ok, err := service.UpdateInvestedAmount(context.Background(), 99, 99, decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("missing relation must not be an error: %v", err)
	}
	if ok {
		t.Error("expected false for update on missing relation")
	}
}

func TestDeleteRelation(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	mustCreateUser(t, service, 1, "Investor", "inv@x.com")
	mustInsertCompany(t, service, 10, "Acme", "TAX-10")

	if err := service.CreateRelation(ctx, relationFixture(1, 10, 500)); err != nil {
		t.Fatalf("CreateRelation failed: %v", err)
	}

	ok, err := service.DeleteRelation(ctx, 1, 10)
	if err != nil || !ok {
		t.Fatalf("DeleteRelation failed: ok=%v err=%v", ok, err)
	}

	rel, err := service.GetRelation(ctx, 1, 10)
	if err != nil {
		t.Fatalf("GetRelation failed: %v", err)
	}
	if rel != nil {
		t.Error("expected relation to be absent after delete")
	}
}
