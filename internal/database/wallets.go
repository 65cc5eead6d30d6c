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

func (s *Service) InsertWallet(ctx context.Context, wallet models.Wallet) (bool, error) {
	zap.L().Info("Inserting wallet", zap.Int("id", wallet.Id), zap.Int("user_id", wallet.UserId))

	result, err := s.db.ExecContext(ctx, queryInsertWallet, wallet.Id, wallet.UserId, wallet.Name)
	if err != nil {
		if isUniqueViolation(err) {
			zap.L().Warn("Duplicate wallet rejected", zap.Int("id", wallet.Id))
			return false, nil
		}
		zap.L().Error("Failed to insert wallet", zap.Int("id", wallet.Id), zap.Error(err))
		return false, fmt.Errorf("unable to insert wallet: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unable to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (s *Service) GetWalletById(ctx context.Context, id int) (*models.Wallet, error) {
	var wallet models.Wallet
	err := s.db.QueryRowContext(ctx, queryGetWalletById, id).Scan(&wallet.Id, &wallet.UserId, &wallet.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("Failed to query wallet by ID", zap.Int("wallet_id", id), zap.Error(err))
		return nil, fmt.Errorf("unable to query wallet by ID: %w", err)
	}
	return &wallet, nil
}

func (s *Service) GetWallets(ctx context.Context) ([]models.Wallet, error) {
	rows, err := s.db.QueryContext(ctx, queryGetWallets)
	if err != nil {
		zap.L().Error("Failed to query wallets", zap.Error(err))
		return nil, fmt.Errorf("unable to query wallets: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var wallets []models.Wallet
	for rows.Next() {
		var wallet models.Wallet
		if err := rows.Scan(&wallet.Id, &wallet.UserId, &wallet.Name); err != nil {
			return nil, fmt.Errorf("unable to scan wallet row: %w", err)
		}
		wallets = append(wallets, wallet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallet rows: %w", err)
	}

	zap.L().Info("Retrieved wallets", zap.Int("count", len(wallets)))
	return wallets, nil
}

func (s *Service) UpdateWallet(ctx context.Context, wallet models.Wallet) (bool, error) {
	result, err := s.db.ExecContext(ctx, queryUpdateWallet, wallet.UserId, wallet.Name, wallet.Id)
	if err != nil {
		zap.L().Error("Failed to update wallet", zap.Int("wallet_id", wallet.Id), zap.Error(err))
		return false, fmt.Errorf("unable to update wallet: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unable to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (s *Service) DeleteWallet(ctx context.Context, id int) (bool, error) {
	result, err := s.db.ExecContext(ctx, queryDeleteWallet, id)
	if err != nil {
		zap.L().Error("Failed to delete wallet", zap.Int("wallet_id", id), zap.Error(err))
		return false, fmt.Errorf("unable to delete wallet: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unable to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		zap.L().Debug("No wallet found to delete", zap.Int("wallet_id", id))
		return false, nil
	}
	zap.L().Info("Wallet deleted", zap.Int("wallet_id", id))
	return true, nil
}

// AddWalletAsset credits quantity of an asset to the wallet; an existing
// holding accumulates rather than being replaced.
func (s *Service) AddWalletAsset(ctx context.Context, walletId, cryptoAssetId int, quantity decimal.Decimal) error {
	zap.L().Info("Adding asset to wallet",
		zap.Int("wallet_id", walletId),
		zap.Int("asset_id", cryptoAssetId),
		zap.String("quantity", quantity.String()))

	_, err := s.db.ExecContext(ctx, queryUpsertWalletAsset, walletId, cryptoAssetId, quantity.String())
	if err != nil {
		zap.L().Error("Failed to add asset to wallet",
			zap.Int("wallet_id", walletId),
			zap.Int("asset_id", cryptoAssetId),
			zap.Error(err))
		return fmt.Errorf("unable to add asset to wallet: %w", err)
	}
	return nil
}

func (s *Service) RemoveWalletAsset(ctx context.Context, walletId, cryptoAssetId int) (bool, error) {
	result, err := s.db.ExecContext(ctx, queryDeleteWalletAsset, walletId, cryptoAssetId)
	if err != nil {
		zap.L().Error("Failed to remove asset from wallet",
			zap.Int("wallet_id", walletId),
			zap.Int("asset_id", cryptoAssetId),
			zap.Error(err))
		return false, fmt.Errorf("unable to remove asset from wallet: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unable to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// AssetsByWallet returns the wallet's holdings joined with asset details.
// The association rows are the single source of truth for wallet contents.
func (s *Service) AssetsByWallet(ctx context.Context, walletId int) ([]models.Holding, error) {
	rows, err := s.db.QueryContext(ctx, queryGetAssetsByWallet, walletId)
	if err != nil {
		zap.L().Error("Failed to query wallet holdings", zap.Int("wallet_id", walletId), zap.Error(err))
		return nil, fmt.Errorf("unable to query wallet holdings: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	return scanHoldings(rows)
}
