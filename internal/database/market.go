package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaveMarketPrice upserts the persisted price row for a symbol, refreshing
// last_updated on every write.
func (s *Service) SaveMarketPrice(ctx context.Context, symbol string, price decimal.Decimal) error {
	zap.L().Debug("Saving market price", zap.String("symbol", symbol), zap.String("price", price.String()))

	_, err := s.db.ExecContext(ctx, queryUpsertMarketPrice, symbol, price.String())
	if err != nil {
		zap.L().Error("Failed to save market price", zap.String("symbol", symbol), zap.Error(err))
		return fmt.Errorf("unable to save market price: %w", err)
	}
	return nil
}

func (s *Service) GetMarketPrice(ctx context.Context, symbol string) (decimal.Decimal, bool, error) {
	var priceStr string
	err := s.db.QueryRowContext(ctx, queryGetMarketPrice, symbol).Scan(&priceStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		zap.L().Error("Failed to query market price", zap.String("symbol", symbol), zap.Error(err))
		return decimal.Zero, false, fmt.Errorf("unable to query market price: %w", err)
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to parse price '%s': %w", priceStr, err)
	}
	return price, true, nil
}

func (s *Service) AllMarketPrices(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx, queryGetAllMarketPrices)
	if err != nil {
		zap.L().Error("Failed to query market prices", zap.Error(err))
		return nil, fmt.Errorf("unable to query market prices: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	prices := make(map[string]decimal.Decimal)
	for rows.Next() {
		var symbol, priceStr string
		if err := rows.Scan(&symbol, &priceStr); err != nil {
			return nil, fmt.Errorf("unable to scan market price row: %w", err)
		}
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse price '%s': %w", priceStr, err)
		}
		prices[symbol] = price
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating market price rows: %w", err)
	}
	return prices, nil
}

func (s *Service) DeleteMarketPrice(ctx context.Context, symbol string) (bool, error) {
	result, err := s.db.ExecContext(ctx, queryDeleteMarketPrice, symbol)
	if err != nil {
		zap.L().Error("Failed to delete market price", zap.String("symbol", symbol), zap.Error(err))
		return false, fmt.Errorf("unable to delete market price: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unable to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}
