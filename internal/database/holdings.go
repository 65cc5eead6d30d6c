package database

import (
	"context"
	"database/sql"
	"fmt"

	"crypto-portfolio-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AddOrUpdateCompanyAsset allocates quantity of an asset to a company. A
// second allocation of the same pair accumulates the quantity.
func (s *Service) AddOrUpdateCompanyAsset(ctx context.Context, companyId, cryptoAssetId int, quantity decimal.Decimal) error {
	zap.L().Info("Allocating asset to company",
		zap.Int("company_id", companyId),
		zap.Int("asset_id", cryptoAssetId),
		zap.String("quantity", quantity.String()))

	_, err := s.db.ExecContext(ctx, queryUpsertCompanyAsset, companyId, cryptoAssetId, quantity.String())
	if err != nil {
		zap.L().Error("Failed to allocate asset to company",
			zap.Int("company_id", companyId),
			zap.Int("asset_id", cryptoAssetId),
			zap.Error(err))
		return fmt.Errorf("unable to allocate asset to company: %w", err)
	}
	return nil
}

func (s *Service) RemoveCompanyAsset(ctx context.Context, companyId, cryptoAssetId int) (bool, error) {
	result, err := s.db.ExecContext(ctx, queryDeleteCompanyAsset, companyId, cryptoAssetId)
	if err != nil {
		zap.L().Error("Failed to remove asset from company",
			zap.Int("company_id", companyId),
			zap.Int("asset_id", cryptoAssetId),
			zap.Error(err))
		return false, fmt.Errorf("unable to remove asset from company: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unable to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		zap.L().Debug("No company allocation found to remove",
			zap.Int("company_id", companyId),
			zap.Int("asset_id", cryptoAssetId))
		return false, nil
	}
	return true, nil
}

// AssetsByCompany returns the company's allocations joined with asset details.
func (s *Service) AssetsByCompany(ctx context.Context, companyId int) ([]models.Holding, error) {
	rows, err := s.db.QueryContext(ctx, queryGetAssetsByCompany, companyId)
	if err != nil {
		zap.L().Error("Failed to query company allocations", zap.Int("company_id", companyId), zap.Error(err))
		return nil, fmt.Errorf("unable to query company allocations: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	return scanHoldings(rows)
}

// scanHoldings maps association join rows (asset id, name, symbol, price,
// allocated quantity) into Holding values.
func scanHoldings(rows *sql.Rows) ([]models.Holding, error) {
	var holdings []models.Holding
	for rows.Next() {
		var h models.Holding
		var priceStr, quantityStr string
		if err := rows.Scan(&h.Asset.Id, &h.Asset.Name, &h.Asset.Symbol, &priceStr, &quantityStr); err != nil {
			return nil, fmt.Errorf("unable to scan holding row: %w", err)
		}

		var err error
		h.Asset.Price, err = decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse price '%s': %w", priceStr, err)
		}
		h.Quantity, err = decimal.NewFromString(quantityStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse quantity '%s': %w", quantityStr, err)
		}
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding rows: %w", err)
	}
	return holdings, nil
}
