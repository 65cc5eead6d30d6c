package database

import (
	"context"
	"errors"
	"testing"

	"crypto-portfolio-go/internal/models"
	"crypto-portfolio-go/internal/store"

	"github.com/shopspring/decimal"
)

func TestInsertTransactionRoundTrip(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	mustCreateUser(t, service, 1, "Trader", "trader@x.com")
	btc := mustInsertAsset(t, service, "Bitcoin", "BTC", 21, 60000)

	created, err := service.InsertTransaction(ctx, models.Transaction{
		CryptoAssetId: btc,
		UserId:        1,
		Amount:        decimal.NewFromFloat(2.0),
		Type:          models.TransactionBuy,
	})
	if err != nil {
		t.Fatalf("InsertTransaction failed: %v", err)
	}
	if created.Reference == "" {
		t.Error("expected a generated reference")
	}
	if created.AssetSymbol != "BTC" || created.AssetName != "Bitcoin" {
		t.Errorf("joined asset fields missing: %+v", created)
	}

	found, err := service.GetTransactionById(ctx, created.Id)
	if err != nil || found == nil {
		t.Fatalf("GetTransactionById failed: %v", err)
	}
	if !found.Amount.Equal(decimal.NewFromFloat(2.0)) || found.Type != models.TransactionBuy {
		t.Errorf("round-trip mismatch: %+v", found)
	}
}

func TestInsertTransactionInvalidType(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := service.InsertTransaction(context.Background(), models.Transaction{
		CryptoAssetId: 1,
		UserId:        1,
		Amount:        decimal.NewFromInt(1),
		Type:          "HODL",
	})
	if err == nil {
		t.Fatal("expected invalid type to be rejected")
	}
}

func TestInsertTransactionDuplicateReference(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	mustCreateUser(t, service, 1, "Trader", "trader@x.com")
	btc := mustInsertAsset(t, service, "Bitcoin", "BTC", 21, 60000)

	tx := models.Transaction{
		CryptoAssetId: btc,
		UserId:        1,
		Amount:        decimal.NewFromInt(1),
		Type:          models.TransactionBuy,
		Reference:     "order-1",
	}
	if _, err := service.InsertTransaction(ctx, tx); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	_, err := service.InsertTransaction(ctx, tx)
	if !errors.Is(err, store.ErrDuplicateReference) {
		t.Fatalf("expected ErrDuplicateReference, got %v", err)
	}
}

func TestTransactionsByUserOrdering(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	mustCreateUser(t, service, 1, "Trader", "trader@x.com")
	btc := mustInsertAsset(t, service, "Bitcoin", "BTC", 21, 60000)

	for _, ref := range []string{"t1", "t2", "t3"} {
		_, err := service.InsertTransaction(ctx, models.Transaction{
			CryptoAssetId: btc,
			UserId:        1,
			Amount:        decimal.NewFromInt(1),
			Type:          models.TransactionBuy,
			Reference:     ref,
		})
		if err != nil {
			t.Fatalf("insert %s failed: %v", ref, err)
		}
	}

	transactions, err := service.TransactionsByUser(ctx, 1)
	if err != nil {
		t.Fatalf("TransactionsByUser failed: %v", err)
	}
	if len(transactions) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(transactions))
	}
	// Most recent first; equal timestamps fall back to descending id.
	if transactions[0].Reference != "t3" {
		t.Errorf("expected t3 first, got %s", transactions[0].Reference)
	}

	all, err := service.GetTransactions(ctx)
	if err != nil {
		t.Fatalf("GetTransactions failed: %v", err)
	}
	if len(all) != 3 || all[0].Reference != "t3" {
		t.Errorf("expected all 3 transactions newest first, got %d", len(all))
	}
}

func TestDeleteTransaction(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	mustCreateUser(t, service, 1, "Trader", "trader@x.com")
	btc := mustInsertAsset(t, service, "Bitcoin", "BTC", 21, 60000)

	created, err := service.InsertTransaction(ctx, models.Transaction{
		CryptoAssetId: btc,
		UserId:        1,
		Amount:        decimal.NewFromInt(1),
		Type:          models.TransactionSell,
	})
	if err != nil {
		t.Fatalf("InsertTransaction failed: %v", err)
	}

	ok, err := service.DeleteTransaction(ctx, created.Id)
	if err != nil || !ok {
		t.Fatalf("DeleteTransaction failed: ok=%v err=%v", ok, err)
	}

	gone, err := service.GetTransactionById(ctx, created.Id)
	if err != nil {
		t.Fatalf("GetTransactionById failed: %v", err)
	}
	if gone != nil {
		t.Error("expected transaction to be absent after delete")
	}
}
