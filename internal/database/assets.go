package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"crypto-portfolio-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InsertAsset inserts a new asset and returns its generated id. The symbol
// must be unique at insert time but remains mutable afterwards via
// UpdateAsset.
func (s *Service) InsertAsset(ctx context.Context, asset models.CryptoAsset) (int, error) {
	zap.L().Info("Inserting crypto asset", zap.String("symbol", asset.Symbol), zap.String("name", asset.Name))

	result, err := s.db.ExecContext(ctx, queryInsertAsset,
		asset.Name, asset.Symbol, asset.Quantity.String(), asset.Price.String())
	if err != nil {
		if isUniqueViolation(err) {
			zap.L().Warn("Duplicate asset symbol rejected", zap.String("symbol", asset.Symbol))
			return 0, fmt.Errorf("asset symbol %s already exists", asset.Symbol)
		}
		zap.L().Error("Failed to insert asset", zap.String("symbol", asset.Symbol), zap.Error(err))
		return 0, fmt.Errorf("unable to insert asset: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("unable to get inserted asset id: %w", err)
	}
	return int(id), nil
}

func (s *Service) GetAssetById(ctx context.Context, id int) (*models.CryptoAsset, error) {
	return s.scanAsset(s.db.QueryRowContext(ctx, queryGetAssetById, id))
}

func (s *Service) GetAssetBySymbol(ctx context.Context, symbol string) (*models.CryptoAsset, error) {
	return s.scanAsset(s.db.QueryRowContext(ctx, queryGetAssetBySymbol, symbol))
}

func (s *Service) scanAsset(row *sql.Row) (*models.CryptoAsset, error) {
	var asset models.CryptoAsset
	var quantityStr, priceStr string
	err := row.Scan(&asset.Id, &asset.Name, &asset.Symbol, &quantityStr, &priceStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("Failed to query asset", zap.Error(err))
		return nil, fmt.Errorf("unable to query asset: %w", err)
	}

	asset.Quantity, err = decimal.NewFromString(quantityStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse quantity '%s': %w", quantityStr, err)
	}
	asset.Price, err = decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price '%s': %w", priceStr, err)
	}
	return &asset, nil
}

func (s *Service) GetAssets(ctx context.Context) ([]models.CryptoAsset, error) {
	rows, err := s.db.QueryContext(ctx, queryGetAssets)
	if err != nil {
		zap.L().Error("Failed to query assets", zap.Error(err))
		return nil, fmt.Errorf("unable to query assets: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var assets []models.CryptoAsset
	for rows.Next() {
		var asset models.CryptoAsset
		var quantityStr, priceStr string
		if err := rows.Scan(&asset.Id, &asset.Name, &asset.Symbol, &quantityStr, &priceStr); err != nil {
			return nil, fmt.Errorf("unable to scan asset row: %w", err)
		}
		asset.Quantity, err = decimal.NewFromString(quantityStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse quantity '%s': %w", quantityStr, err)
		}
		asset.Price, err = decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse price '%s': %w", priceStr, err)
		}
		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset rows: %w", err)
	}

	zap.L().Info("Retrieved assets", zap.Int("count", len(assets)))
	return assets, nil
}

// UpdateAsset replaces the stored row keyed by asset.Id; the symbol is an
// ordinary mutable column, so a rename is just an update.
func (s *Service) UpdateAsset(ctx context.Context, asset models.CryptoAsset) (bool, error) {
	result, err := s.db.ExecContext(ctx, queryUpdateAsset,
		asset.Name, asset.Symbol, asset.Quantity.String(), asset.Price.String(), asset.Id)
	if err != nil {
		if isUniqueViolation(err) {
			return false, fmt.Errorf("asset symbol %s already exists", asset.Symbol)
		}
		zap.L().Error("Failed to update asset", zap.Int("asset_id", asset.Id), zap.Error(err))
		return false, fmt.Errorf("unable to update asset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unable to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (s *Service) DeleteAsset(ctx context.Context, id int) (bool, error) {
	result, err := s.db.ExecContext(ctx, queryDeleteAsset, id)
	if err != nil {
		zap.L().Error("Failed to delete asset", zap.Int("asset_id", id), zap.Error(err))
		return false, fmt.Errorf("unable to delete asset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unable to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		zap.L().Debug("No asset found to delete", zap.Int("asset_id", id))
		return false, nil
	}
	zap.L().Info("Asset deleted", zap.Int("asset_id", id))
	return true, nil
}
