package market

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func TestGetPriceUnknownSymbol(t *testing.T) {
	m := New("")
	if _, ok := m.GetPrice("DOGE"); ok {
		t.Error("expected unknown symbol to be absent before seeding")
	}
}

func TestUpdatePricesDefaultSeed(t *testing.T) {
	m := New("")
	m.UpdatePrices()

	price, ok := m.GetPrice("BTC")
	if !ok {
		t.Fatal("expected BTC to be seeded")
	}
	if !price.Equal(decimal.NewFromInt(60000)) {
		t.Errorf("expected BTC at 60000, got %s", price.String())
	}
}

func TestSetPriceLastWriteWins(t *testing.T) {
	m := New("")
	m.SetPrice("BTC", decimal.NewFromInt(50000))
	m.SetPrice("BTC", decimal.NewFromInt(52000))

	price, ok := m.GetPrice("BTC")
	if !ok {
		t.Fatal("expected BTC to be present")
	}
	if !price.Equal(decimal.NewFromInt(52000)) {
		t.Errorf("expected most recent price 52000, got %s", price.String())
	}
}

func TestUpdatePricesFromSeedFile(t *testing.T) {
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "markets.yaml")
	seed := `markets:
  - symbol: BTC
    price: 61500.5
  - symbol: XRP
    price: 0.62
`
	if err := os.WriteFile(seedPath, []byte(seed), 0o644); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}

	m := New(seedPath)
	m.UpdatePrices()

	price, ok := m.GetPrice("XRP")
	if !ok {
		t.Fatal("expected XRP from seed file")
	}
	if !price.Equal(decimal.NewFromFloat(0.62)) {
		t.Errorf("expected XRP at 0.62, got %s", price.String())
	}

	btc, ok := m.GetPrice("BTC")
	if !ok || !btc.Equal(decimal.NewFromFloat(61500.5)) {
		t.Errorf("expected BTC at 61500.5, got %s (ok=%v)", btc.String(), ok)
	}
}

func TestUpdatePricesMalformedSeedFallsBack(t *testing.T) {
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "markets.yaml")
	if err := os.WriteFile(seedPath, []byte("markets: [not: valid"), 0o644); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}

	m := New(seedPath)
	m.UpdatePrices()

	if _, ok := m.GetPrice("ETH"); !ok {
		t.Error("expected default seed to apply when the seed file is malformed")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	m := New("")
	m.SetPrice("BTC", decimal.NewFromInt(100))

	snap := m.Snapshot()
	snap["BTC"] = decimal.NewFromInt(999)

	price, _ := m.GetPrice("BTC")
	if !price.Equal(decimal.NewFromInt(100)) {
		t.Error("mutating a snapshot must not affect the cache")
	}
}
