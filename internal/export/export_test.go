package export

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"crypto-portfolio-go/internal/database"
	"crypto-portfolio-go/internal/models"
	"crypto-portfolio-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

func setupExportTestDB(t *testing.T) (*database.Service, func()) {
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	service, err := database.NewServiceWithDB(db)
	if err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return service, func() { db.Close() }
}

func TestWriteFlatFile(t *testing.T) {
	service, cleanup := setupExportTestDB(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := service.CreateUser(ctx, store.CreateUserParams{
		Id: 1, Name: "Scrooge McDuck", Email: "scrooge@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if ok, err := service.InsertCompany(ctx, models.Company{Id: 10, Name: "Money Bin Inc", Identifier: "MB-1"}); err != nil || !ok {
		t.Fatalf("Failed to insert company: ok=%v err=%v", ok, err)
	}
	if _, err := service.InsertAsset(ctx, models.CryptoAsset{
		Name: "Bitcoin", Symbol: "BTC",
		Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(60000),
	}); err != nil {
		t.Fatalf("Failed to insert asset: %v", err)
	}
	if err := service.CreateRelation(ctx, models.UserCompanyRelation{
		UserId: 1, CompanyId: 10,
		InvestedAmount: decimal.NewFromInt(5000),
		StartDate:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("Failed to create relation: %v", err)
	}
	if err := service.SaveMarketPrice(ctx, "BTC", decimal.NewFromInt(60000)); err != nil {
		t.Fatalf("Failed to save market price: %v", err)
	}

	path := filepath.Join(t.TempDir(), "export.txt")
	if err := WriteFlatFile(ctx, service, path); err != nil {
		t.Fatalf("WriteFlatFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"# CRYPTO PORTFOLIO DATA EXPORT",
		"USER|1|Scrooge McDuck|scrooge@example.com",
		"COMPANY|10|Money Bin Inc|MB-1",
		"ASSET|Bitcoin|BTC|2|60000",
		"RELATION|1|10|5000|2024-03-01",
		"PRICE|BTC|60000",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("Export missing line %q\nGot:\n%s", want, content)
		}
	}
}

func TestWriteFlatFileReplacesPrevious(t *testing.T) {
	service, cleanup := setupExportTestDB(t)
	defer cleanup()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "export.txt")
	if err := os.WriteFile(path, []byte("stale content that must disappear"), 0644); err != nil {
		t.Fatalf("Failed to write stale file: %v", err)
	}

	if err := WriteFlatFile(ctx, service, path); err != nil {
		t.Fatalf("WriteFlatFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	if strings.Contains(string(data), "stale content") {
		t.Error("Expected previous export to be replaced")
	}
	if !strings.Contains(string(data), "## USERS") {
		t.Error("Expected section headers in empty export")
	}
}
