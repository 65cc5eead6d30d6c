package database

import (
	"context"
	"testing"

	"crypto-portfolio-go/internal/models"
)

func TestInsertWalletRoundTrip(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	mustCreateUser(t, service, 1, "Owner", "owner@x.com")
	mustInsertWallet(t, service, 100, 1, "Main Vault")

	wallet, err := service.GetWalletById(ctx, 100)
	if err != nil {
		t.Fatalf("GetWalletById failed: %v", err)
	}
	if wallet == nil {
		t.Fatal("expected wallet to exist")
	}
	if wallet.UserId != 1 || wallet.Name != "Main Vault" {
		t.Errorf("round-trip mismatch: %+v", wallet)
	}
}

func TestDeleteWalletNeverInserted(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	// Deleting an unknown wallet reports not-found; no error escapes.
	ok, err := service.DeleteWallet(context.Background(), 12345)
	if err != nil {
		t.Fatalf("delete of missing wallet must not error: %v", err)
	}
	if ok {
		t.Error("expected false for missing wallet")
	}
}

func TestUpdateWallet(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	mustCreateUser(t, service, 1, "Owner", "owner@x.com")
	mustCreateUser(t, service, 2, "Heir", "heir@x.com")
	mustInsertWallet(t, service, 100, 1, "Main")

	ok, err := service.UpdateWallet(ctx, models.Wallet{Id: 100, UserId: 2, Name: "Inherited"})
	if err != nil || !ok {
		t.Fatalf("UpdateWallet failed: ok=%v err=%v", ok, err)
	}

	wallet, err := service.GetWalletById(ctx, 100)
	if err != nil || wallet == nil {
		t.Fatalf("GetWalletById failed: %v", err)
	}
	if wallet.UserId != 2 || wallet.Name != "Inherited" {
		t.Errorf("update not persisted: %+v", wallet)
	}
}

func TestGetWallets(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	mustCreateUser(t, service, 1, "Owner", "owner@x.com")
	mustInsertWallet(t, service, 100, 1, "One")
	mustInsertWallet(t, service, 101, 1, "Two")

	wallets, err := service.GetWallets(ctx)
	if err != nil {
		t.Fatalf("GetWallets failed: %v", err)
	}
	if len(wallets) != 2 {
		t.Errorf("expected 2 wallets, got %d", len(wallets))
	}
}

func TestInsertWalletDuplicateId(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	mustCreateUser(t, service, 1, "Owner", "owner@x.com")
	mustInsertWallet(t, service, 100, 1, "Main")

	ok, err := service.InsertWallet(context.Background(), models.Wallet{Id: 100, UserId: 1, Name: "Clone"})
	if err != nil {
		t.Fatalf("duplicate insert must not surface an error: %v", err)
	}
	if ok {
		t.Error("expected false for duplicate wallet id")
	}
}
