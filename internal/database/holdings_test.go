package database

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAddOrUpdateCompanyAssetAccumulates(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	mustInsertCompany(t, service, 10, "Acme", "TAX-10")
	btc := mustInsertAsset(t, service, "Bitcoin", "BTC", 21, 60000)

	if err := service.AddOrUpdateCompanyAsset(ctx, 10, btc, decimal.NewFromInt(2)); err != nil {
		t.Fatalf("first allocation failed: %v", err)
	}
	if err := service.AddOrUpdateCompanyAsset(ctx, 10, btc, decimal.NewFromInt(2)); err != nil {
		t.Fatalf("second allocation failed: %v", err)
	}

	holdings, err := service.AssetsByCompany(ctx, 10)
	if err != nil {
		t.Fatalf("AssetsByCompany failed: %v", err)
	}
	if len(holdings) != 1 {
		t.Fatalf("expected 1 holding, got %d", len(holdings))
	}
	if holdings[0].Asset.Symbol != "BTC" {
		t.Errorf("unexpected asset: %+v", holdings[0].Asset)
	}
	// Accumulate-on-conflict: 2 + 2 = 4, not a replace.
	if !holdings[0].Quantity.Equal(decimal.NewFromInt(4)) {
		t.Errorf("expected accumulated quantity 4, got %s", holdings[0].Quantity)
	}
}

func TestRemoveCompanyAsset(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	mustInsertCompany(t, service, 10, "Acme", "TAX-10")
	eth := mustInsertAsset(t, service, "Ethereum", "ETH", 100, 3000)

	if err := service.AddOrUpdateCompanyAsset(ctx, 10, eth, decimal.NewFromInt(1)); err != nil {
		t.Fatalf("allocation failed: %v", err)
	}

	ok, err := service.RemoveCompanyAsset(ctx, 10, eth)
	if err != nil || !ok {
		t.Fatalf("RemoveCompanyAsset failed: ok=%v err=%v", ok, err)
	}

	ok, err = service.RemoveCompanyAsset(ctx, 10, eth)
	if err != nil {
		t.Fatalf("second remove must not error: %v", err)
	}
	if ok {
		t.Error("expected false removing an absent association")
	}

	holdings, err := service.AssetsByCompany(ctx, 10)
	if err != nil {
		t.Fatalf("AssetsByCompany failed: %v", err)
	}
	if len(holdings) != 0 {
		t.Errorf("expected no holdings, got %d", len(holdings))
	}
}

func TestAssetsByCompanyEmpty(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	holdings, err := service.AssetsByCompany(context.Background(), 777)
	if err != nil {
		t.Fatalf("AssetsByCompany failed: %v", err)
	}
	if len(holdings) != 0 {
		t.Errorf("expected empty result for unknown company, got %d", len(holdings))
	}
}

func TestWalletHoldingsAccumulate(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	mustCreateUser(t, service, 1, "Owner", "owner@x.com")
	mustInsertWallet(t, service, 100, 1, "Main")
	sol := mustInsertAsset(t, service, "Solana", "SOL", 500, 150)

	if err := service.AddWalletAsset(ctx, 100, sol, decimal.NewFromFloat(1.5)); err != nil {
		t.Fatalf("AddWalletAsset failed: %v", err)
	}
	if err := service.AddWalletAsset(ctx, 100, sol, decimal.NewFromFloat(2.5)); err != nil {
		t.Fatalf("AddWalletAsset failed: %v", err)
	}

	holdings, err := service.AssetsByWallet(ctx, 100)
	if err != nil {
		t.Fatalf("AssetsByWallet failed: %v", err)
	}
	if len(holdings) != 1 {
		t.Fatalf("expected 1 holding, got %d", len(holdings))
	}
	if !holdings[0].Quantity.Equal(decimal.NewFromInt(4)) {
		t.Errorf("expected accumulated quantity 4, got %s", holdings[0].Quantity)
	}
	if !holdings[0].Value().Equal(decimal.NewFromInt(600)) {
		t.Errorf("expected value 600 (4 * 150), got %s", holdings[0].Value())
	}
}
