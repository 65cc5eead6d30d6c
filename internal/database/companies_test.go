package database

import (
	"context"
	"testing"

	"crypto-portfolio-go/internal/models"
)

func TestInsertCompanyRoundTrip(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	mustInsertCompany(t, service, 10, "Acme", "TAX-10")

	company, err := service.GetCompanyById(ctx, 10)
	if err != nil {
		t.Fatalf("GetCompanyById failed: %v", err)
	}
	if company == nil {
		t.Fatal("expected company to exist")
	}
	if company.Name != "Acme" || company.Identifier != "TAX-10" {
		t.Errorf("round-trip mismatch: %+v", company)
	}
}

func TestInsertCompanyDuplicateId(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	mustInsertCompany(t, service, 10, "Acme", "TAX-10")

	ok, err := service.InsertCompany(ctx, models.Company{Id: 10, Name: "Clone", Identifier: "TAX-XX"})
	if err != nil {
		t.Fatalf("duplicate insert must not surface an error: %v", err)
	}
	if ok {
		t.Error("expected false for duplicate company id")
	}

	// The original is untouched.
	company, err := service.GetCompanyById(ctx, 10)
	if err != nil || company == nil {
		t.Fatalf("GetCompanyById failed: %v", err)
	}
	if company.Name != "Acme" {
		t.Errorf("original company mutated: %+v", company)
	}
}

func TestUpdateCompanyMissing(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ok, err := service.UpdateCompany(context.Background(), models.Company{Id: 999, Name: "Ghost", Identifier: "X"})
	if err != nil {
		t.Fatalf("missing row must not be an error: %v", err)
	}
	if ok {
		t.Error("expected false for update on missing id")
	}
}

func TestDeleteCompany(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	mustInsertCompany(t, service, 10, "Acme", "TAX-10")

	ok, err := service.DeleteCompany(ctx, 10)
	if err != nil || !ok {
		t.Fatalf("DeleteCompany failed: ok=%v err=%v", ok, err)
	}

	gone, err := service.GetCompanyById(ctx, 10)
	if err != nil {
		t.Fatalf("GetCompanyById failed: %v", err)
	}
	if gone != nil {
		t.Error("expected company to be absent after delete")
	}
}
