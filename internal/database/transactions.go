package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"crypto-portfolio-go/internal/models"
	"crypto-portfolio-go/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InsertTransaction records one BUY/SELL row. A missing Reference is filled
// with a generated UUID; a duplicate Reference is rejected with
// store.ErrDuplicateReference.
func (s *Service) InsertTransaction(ctx context.Context, tx models.Transaction) (*models.Transaction, error) {
	if tx.Type != models.TransactionBuy && tx.Type != models.TransactionSell {
		return nil, fmt.Errorf("invalid transaction type %q", tx.Type)
	}
	if tx.Reference == "" {
		tx.Reference = uuid.New().String()
	}

	zap.L().Info("Inserting transaction",
		zap.Int("user_id", tx.UserId),
		zap.Int("asset_id", tx.CryptoAssetId),
		zap.String("type", tx.Type),
		zap.String("amount", tx.Amount.String()),
		zap.String("reference", tx.Reference))

	var existingId int
	err := s.db.QueryRowContext(ctx, queryCheckDuplicateReference, tx.Reference).Scan(&existingId)
	if err == nil {
		zap.L().Warn("Duplicate transaction reference detected, skipping",
			zap.String("reference", tx.Reference),
			zap.Int("existing_id", existingId))
		return nil, fmt.Errorf("%w: %s", store.ErrDuplicateReference, tx.Reference)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check for duplicate reference: %w", err)
	}

	result, err := s.db.ExecContext(ctx, queryInsertTransaction,
		tx.CryptoAssetId, tx.UserId, tx.Amount.String(), tx.Type, tx.Reference)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", store.ErrDuplicateReference, tx.Reference)
		}
		zap.L().Error("Failed to insert transaction", zap.Error(err))
		return nil, fmt.Errorf("unable to insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("unable to get inserted transaction id: %w", err)
	}
	return s.GetTransactionById(ctx, int(id))
}

func (s *Service) GetTransactionById(ctx context.Context, id int) (*models.Transaction, error) {
	var tx models.Transaction
	var amountStr, priceStr string
	err := s.db.QueryRowContext(ctx, queryGetTransactionById, id).Scan(
		&tx.Id, &tx.CryptoAssetId, &tx.UserId, &amountStr, &tx.Type, &tx.Reference, &tx.CreatedAt,
		&tx.AssetName, &tx.AssetSymbol, &priceStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("Failed to query transaction by ID", zap.Int("transaction_id", id), zap.Error(err))
		return nil, fmt.Errorf("unable to query transaction by ID: %w", err)
	}

	tx.Amount, err = decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	tx.AssetPrice, err = decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price '%s': %w", priceStr, err)
	}
	return &tx, nil
}

// GetTransactions returns every transaction, most recent first.
func (s *Service) GetTransactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, queryGetTransactions)
	if err != nil {
		zap.L().Error("Failed to query transactions", zap.Error(err))
		return nil, fmt.Errorf("unable to query transactions: %w", err)
	}
	return scanTransactions(rows)
}

// TransactionsByUser returns the user's transactions, most recent first.
func (s *Service) TransactionsByUser(ctx context.Context, userId int) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, queryGetTransactionsByUser, userId)
	if err != nil {
		zap.L().Error("Failed to query transactions", zap.Int("user_id", userId), zap.Error(err))
		return nil, fmt.Errorf("unable to query transactions: %w", err)
	}
	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var amountStr, priceStr string
		err := rows.Scan(&tx.Id, &tx.CryptoAssetId, &tx.UserId, &amountStr, &tx.Type,
			&tx.Reference, &tx.CreatedAt, &tx.AssetName, &tx.AssetSymbol, &priceStr)
		if err != nil {
			return nil, fmt.Errorf("unable to scan transaction row: %w", err)
		}

		tx.Amount, err = decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
		}
		tx.AssetPrice, err = decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse price '%s': %w", priceStr, err)
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("Error during transaction row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return transactions, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, id int) (bool, error) {
	result, err := s.db.ExecContext(ctx, queryDeleteTransaction, id)
	if err != nil {
		zap.L().Error("Failed to delete transaction", zap.Int("transaction_id", id), zap.Error(err))
		return false, fmt.Errorf("unable to delete transaction: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unable to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}
