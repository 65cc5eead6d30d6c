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

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RecordTrade atomically inserts a BUY/SELL transaction and adjusts the
// wallet holding. A BUY credits the holding; a SELL debits it and fails with
// store.ErrInsufficientAssets if the wallet holds less than the traded
// amount. On any failure nothing is committed.
func (s *Service) RecordTrade(ctx context.Context, params store.RecordTradeParams) (*models.Transaction, error) {
	if params.Type != models.TransactionBuy && params.Type != models.TransactionSell {
		return nil, fmt.Errorf("invalid transaction type %q", params.Type)
	}
	if params.Amount.IsNegative() || params.Amount.IsZero() {
		return nil, fmt.Errorf("trade amount must be positive, got %s", params.Amount.String())
	}
	if params.Reference == "" {
		params.Reference = uuid.New().String()
	}

	zap.L().Info("Recording trade",
		zap.Int("user_id", params.UserId),
		zap.Int("wallet_id", params.WalletId),
		zap.Int("asset_id", params.CryptoAssetId),
		zap.String("type", params.Type),
		zap.String("amount", params.Amount.String()),
		zap.String("reference", params.Reference))

	var transactionId int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var existingId int
		err := tx.QueryRowContext(ctx, queryCheckDuplicateReference, params.Reference).Scan(&existingId)
		if err == nil {
			return fmt.Errorf("%w: %s", store.ErrDuplicateReference, params.Reference)
		} else if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to check for duplicate reference: %w", err)
		}

		// Current holding for the traded asset, zero when absent.
		holding := decimal.Zero
		var holdingStr string
		err = tx.QueryRowContext(ctx, queryGetWalletAssetQuantity, params.WalletId, params.CryptoAssetId).Scan(&holdingStr)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return fmt.Errorf("failed to read wallet holding: %w", err)
		default:
			holding, err = decimal.NewFromString(holdingStr)
			if err != nil {
				return fmt.Errorf("failed to parse holding '%s': %w", holdingStr, err)
			}
		}

		var newHolding decimal.Decimal
		if params.Type == models.TransactionBuy {
			newHolding = holding.Add(params.Amount)
		} else {
			newHolding = holding.Sub(params.Amount)
			if newHolding.IsNegative() {
				return fmt.Errorf("%w: have %s, want to sell %s",
					store.ErrInsufficientAssets, holding.String(), params.Amount.String())
			}
		}

		result, err := tx.ExecContext(ctx, queryInsertTransaction,
			params.CryptoAssetId, params.UserId, params.Amount.String(), params.Type, params.Reference)
		if err != nil {
			return fmt.Errorf("unable to insert transaction: %w", err)
		}
		transactionId, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("unable to get inserted transaction id: %w", err)
		}

		if holding.IsZero() && params.Type == models.TransactionBuy {
			_, err = tx.ExecContext(ctx, queryUpsertWalletAsset,
				params.WalletId, params.CryptoAssetId, params.Amount.String())
		} else {
			_, err = tx.ExecContext(ctx, queryUpdateWalletAssetQuantity,
				newHolding.String(), params.WalletId, params.CryptoAssetId)
		}
		if err != nil {
			return fmt.Errorf("unable to update wallet holding: %w", err)
		}
		return nil
	})
	if err != nil {
		zap.L().Warn("Trade rolled back", zap.String("reference", params.Reference), zap.Error(err))
		return nil, err
	}

	zap.L().Info("Trade recorded", zap.Int64("transaction_id", transactionId))
	return s.GetTransactionById(ctx, int(transactionId))
}

// OnboardCompany creates a company, its asset allocations, and its investor
// relations in a single transaction. A failure at any step rolls back every
// prior step, so the company never exists half-configured.
func (s *Service) OnboardCompany(ctx context.Context, params store.OnboardCompanyParams) error {
	zap.L().Info("Onboarding company",
		zap.Int("company_id", params.Company.Id),
		zap.String("name", params.Company.Name),
		zap.Int("allocations", len(params.Allocations)),
		zap.Int("investors", len(params.Investors)))

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, queryInsertCompany,
			params.Company.Id, params.Company.Name, params.Company.Identifier)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("company %d already exists", params.Company.Id)
			}
			return fmt.Errorf("unable to insert company: %w", err)
		}

		for _, alloc := range params.Allocations {
			_, err := tx.ExecContext(ctx, queryUpsertCompanyAsset,
				params.Company.Id, alloc.CryptoAssetId, alloc.Quantity.String())
			if err != nil {
				return fmt.Errorf("unable to allocate asset %d: %w", alloc.CryptoAssetId, err)
			}
		}

		for _, inv := range params.Investors {
			_, err := tx.ExecContext(ctx, queryInsertRelation,
				inv.UserId, params.Company.Id, inv.InvestedAmount.String(), inv.StartDate.Format("2006-01-02"))
			if err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("%w: user %d, company %d",
						store.ErrDuplicateRelation, inv.UserId, params.Company.Id)
				}
				return fmt.Errorf("unable to create relation for user %d: %w", inv.UserId, err)
			}
		}
		return nil
	})
	if err != nil {
		zap.L().Warn("Company onboarding rolled back", zap.Int("company_id", params.Company.Id), zap.Error(err))
		return err
	}

	zap.L().Info("Company onboarded", zap.Int("company_id", params.Company.Id))
	return nil
}
