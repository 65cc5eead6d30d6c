/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"crypto-portfolio-go/internal/models"
	"crypto-portfolio-go/internal/store"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Compile-time check: *Service must satisfy store.PortfolioStore.
var _ store.PortfolioStore = (*Service)(nil)

// Service is the persistence layer. It owns a *sql.DB pool handle injected at
// construction; callers share the Service, never a raw connection.
type Service struct {
	db *sql.DB
}

func NewService(ctx context.Context, cfg models.DatabaseConfig) (*Service, error) {
	// Validate configuration
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if cfg.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("max open connections must be positive, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns < 0 {
		return nil, fmt.Errorf("max idle connections cannot be negative, got %d", cfg.MaxIdleConns)
	}
	if cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("ping timeout must be positive, got %v", cfg.PingTimeout)
	}

	zap.L().Info("Opening SQLite database", zap.String("file", cfg.Path))
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test connection with timeout
	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, cerr
		}
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	service := &Service{db: db}
	if err := service.initSchema(); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, cerr
		}
		return nil, fmt.Errorf("unable to initialize schema: %w", err)
	}

	if cfg.SeedSampleData {
		if err := service.seedSampleData(ctx); err != nil {
			zap.L().Warn("Failed to seed sample data", zap.Error(err))
		}
	}

	zap.L().Info("Database service initialized successfully")
	return service, nil
}

// NewServiceWithDB wraps an existing pool handle. Used by tests running
// against an in-memory database.
func NewServiceWithDB(db *sql.DB) (*Service, error) {
	service := &Service{db: db}
	if err := service.initSchema(); err != nil {
		return nil, fmt.Errorf("unable to initialize schema: %w", err)
	}
	return service, nil
}

func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close database connection", zap.Error(err))
	}
}

func (s *Service) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS companies (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		identifier TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS crypto_assets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		symbol TEXT NOT NULL UNIQUE,
		quantity TEXT NOT NULL DEFAULT '0',
		price TEXT NOT NULL DEFAULT '0'
	);
	CREATE INDEX IF NOT EXISTS idx_crypto_assets_symbol ON crypto_assets(symbol);

	CREATE TABLE IF NOT EXISTS wallets (
		id INTEGER PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_wallets_user ON wallets(user_id);

	CREATE TABLE IF NOT EXISTS market_prices (
		symbol TEXT PRIMARY KEY,
		price TEXT NOT NULL,
		last_updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		crypto_asset_id INTEGER NOT NULL REFERENCES crypto_assets(id),
		user_id INTEGER NOT NULL REFERENCES users(id),
		amount TEXT NOT NULL,
		type TEXT NOT NULL CHECK (type IN ('BUY', 'SELL')),
		reference TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_reference ON transactions(reference);

	CREATE TABLE IF NOT EXISTS user_company_relations (
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		company_id INTEGER NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		invested_amount TEXT NOT NULL,
		start_date DATE NOT NULL,
		PRIMARY KEY (user_id, company_id)
	);

	CREATE TABLE IF NOT EXISTS company_crypto_assets (
		company_id INTEGER NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		crypto_asset_id INTEGER NOT NULL REFERENCES crypto_assets(id) ON DELETE CASCADE,
		quantity NUMERIC NOT NULL,
		PRIMARY KEY (company_id, crypto_asset_id)
	);

	CREATE TABLE IF NOT EXISTS wallet_crypto_assets (
		wallet_id INTEGER NOT NULL REFERENCES wallets(id) ON DELETE CASCADE,
		crypto_asset_id INTEGER NOT NULL REFERENCES crypto_assets(id) ON DELETE CASCADE,
		quantity NUMERIC NOT NULL,
		PRIMARY KEY (wallet_id, crypto_asset_id)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// seedSampleData inserts a small demo data set. Insert failures on an already
// seeded database are expected and only logged.
func (s *Service) seedSampleData(ctx context.Context) error {
	users := []store.CreateUserParams{
		{Id: 1, Name: "Scrooge McDuck", Email: "scrooge@ducktales.com", Password: "vault123"},
		{Id: 2, Name: "Della Duck", Email: "della@ducktales.com", Password: "moonlander"},
	}
	for _, u := range users {
		if _, err := s.CreateUser(ctx, u); err != nil {
			zap.L().Debug("Sample user not inserted", zap.String("email", u.Email), zap.Error(err))
		}
	}

	assets := []models.CryptoAsset{
		{Name: "Bitcoin", Symbol: "BTC", Quantity: decimal.NewFromInt(21), Price: decimal.NewFromInt(60000)},
		{Name: "Ethereum", Symbol: "ETH", Quantity: decimal.NewFromInt(100), Price: decimal.NewFromInt(3000)},
		{Name: "Solana", Symbol: "SOL", Quantity: decimal.NewFromInt(500), Price: decimal.NewFromInt(150)},
	}
	for _, a := range assets {
		if _, err := s.InsertAsset(ctx, a); err != nil {
			zap.L().Debug("Sample asset not inserted", zap.String("symbol", a.Symbol), zap.Error(err))
		}
	}

	for symbol, price := range map[string]decimal.Decimal{
		"BTC": decimal.NewFromInt(60000),
		"ETH": decimal.NewFromInt(3000),
		"SOL": decimal.NewFromInt(150),
	} {
		if err := s.SaveMarketPrice(ctx, symbol, price); err != nil {
			zap.L().Debug("Sample market price not saved", zap.String("symbol", symbol), zap.Error(err))
		}
	}

	zap.L().Info("Sample data seeded")
	return nil
}

// withTx runs fn inside a transaction, rolling back on error.
func (s *Service) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a sqlite unique/primary-key
// constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
