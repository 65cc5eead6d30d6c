package database

import (
	"context"
	"database/sql"
	"testing"

	"crypto-portfolio-go/internal/models"
	"crypto-portfolio-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) (*Service, func()) {
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A second pooled connection would see a different in-memory database.
	db.SetMaxOpenConns(1)

	service, err := NewServiceWithDB(db)
	if err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	cleanup := func() {
		db.Close()
	}
	return service, cleanup
}

func mustCreateUser(t *testing.T, s *Service, id int, name, email string) *models.User {
	t.Helper()
	user, err := s.CreateUser(context.Background(), store.CreateUserParams{
		Id: id, Name: name, Email: email, Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Failed to create user %d: %v", id, err)
	}
	return user
}

func mustInsertAsset(t *testing.T, s *Service, name, symbol string, quantity, price int64) int {
	t.Helper()
	id, err := s.InsertAsset(context.Background(), models.CryptoAsset{
		Name:     name,
		Symbol:   symbol,
		Quantity: decimal.NewFromInt(quantity),
		Price:    decimal.NewFromInt(price),
	})
	if err != nil {
		t.Fatalf("Failed to insert asset %s: %v", symbol, err)
	}
	return id
}

func cryptoAssetFixture(name, symbol string) models.CryptoAsset {
	return models.CryptoAsset{
		Name:     name,
		Symbol:   symbol,
		Quantity: decimal.NewFromInt(1),
		Price:    decimal.NewFromInt(100),
	}
}

func cryptoAssetFixtureWithId(id int, name, symbol string) models.CryptoAsset {
	asset := cryptoAssetFixture(name, symbol)
	asset.Id = id
	return asset
}

func mustInsertWallet(t *testing.T, s *Service, id, userId int, name string) {
	t.Helper()
	ok, err := s.InsertWallet(context.Background(), models.Wallet{Id: id, UserId: userId, Name: name})
	if err != nil || !ok {
		t.Fatalf("Failed to insert wallet %d: ok=%v err=%v", id, ok, err)
	}
}

func mustInsertCompany(t *testing.T, s *Service, id int, name, identifier string) {
	t.Helper()
	ok, err := s.InsertCompany(context.Background(), models.Company{Id: id, Name: name, Identifier: identifier})
	if err != nil || !ok {
		t.Fatalf("Failed to insert company %d: ok=%v err=%v", id, ok, err)
	}
}
