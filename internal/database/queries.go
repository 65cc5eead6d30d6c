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

const (
	// User queries
	queryInsertUser = `
		INSERT INTO users (id, name, email, password_hash) VALUES (?, ?, ?, ?)`

	queryGetUserById = `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = ?`

	queryGetUserByEmail = `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = ?`

	queryGetUsers = `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		ORDER BY id`

	queryUpdateUser = `
		UPDATE users
		SET name = ?, email = ?, password_hash = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	queryDeleteUser = `
		DELETE FROM users WHERE id = ?`

	// Company queries
	queryInsertCompany = `
		INSERT INTO companies (id, name, identifier) VALUES (?, ?, ?)`

	queryGetCompanyById = `
		SELECT id, name, identifier FROM companies WHERE id = ?`

	queryGetCompanies = `
		SELECT id, name, identifier FROM companies ORDER BY id`

	queryUpdateCompany = `
		UPDATE companies SET name = ?, identifier = ? WHERE id = ?`

	queryDeleteCompany = `
		DELETE FROM companies WHERE id = ?`

	// Crypto asset queries
	queryInsertAsset = `
		INSERT INTO crypto_assets (name, symbol, quantity, price) VALUES (?, ?, ?, ?)`

	queryGetAssetById = `
		SELECT id, name, symbol, quantity, price FROM crypto_assets WHERE id = ?`

	queryGetAssetBySymbol = `
		SELECT id, name, symbol, quantity, price FROM crypto_assets WHERE symbol = ?`

	queryGetAssets = `
		SELECT id, name, symbol, quantity, price FROM crypto_assets ORDER BY id`

	queryUpdateAsset = `
		UPDATE crypto_assets SET name = ?, symbol = ?, quantity = ?, price = ? WHERE id = ?`

	queryDeleteAsset = `
		DELETE FROM crypto_assets WHERE id = ?`

	// Wallet queries
	queryInsertWallet = `
		INSERT INTO wallets (id, user_id, name) VALUES (?, ?, ?)`

	queryGetWalletById = `
		SELECT id, user_id, name FROM wallets WHERE id = ?`

	queryGetWallets = `
		SELECT id, user_id, name FROM wallets ORDER BY id`

	queryUpdateWallet = `
		UPDATE wallets SET user_id = ?, name = ? WHERE id = ?`

	queryDeleteWallet = `
		DELETE FROM wallets WHERE id = ?`

	// Market queries
	queryUpsertMarketPrice = `
		INSERT INTO market_prices (symbol, price, last_updated)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(symbol) DO UPDATE SET
			price = excluded.price,
			last_updated = CURRENT_TIMESTAMP`

	queryGetMarketPrice = `
		SELECT price FROM market_prices WHERE symbol = ?`

	queryGetAllMarketPrices = `
		SELECT symbol, price FROM market_prices`

	queryDeleteMarketPrice = `
		DELETE FROM market_prices WHERE symbol = ?`

	// Transaction queries
	queryInsertTransaction = `
		INSERT INTO transactions (crypto_asset_id, user_id, amount, type, reference)
		VALUES (?, ?, ?, ?, ?)`

	queryGetTransactionById = `
		SELECT t.id, t.crypto_asset_id, t.user_id, t.amount, t.type, t.reference, t.created_at,
		       ca.name, ca.symbol, ca.price
		FROM transactions t
		JOIN crypto_assets ca ON t.crypto_asset_id = ca.id
		WHERE t.id = ?`

	queryGetTransactions = `
		SELECT t.id, t.crypto_asset_id, t.user_id, t.amount, t.type, t.reference, t.created_at,
		       ca.name, ca.symbol, ca.price
		FROM transactions t
		JOIN crypto_assets ca ON t.crypto_asset_id = ca.id
		ORDER BY t.created_at DESC, t.id DESC`

	queryGetTransactionsByUser = `
		SELECT t.id, t.crypto_asset_id, t.user_id, t.amount, t.type, t.reference, t.created_at,
		       ca.name, ca.symbol, ca.price
		FROM transactions t
		JOIN crypto_assets ca ON t.crypto_asset_id = ca.id
		WHERE t.user_id = ?
		ORDER BY t.created_at DESC, t.id DESC`

	queryCheckDuplicateReference = `
		SELECT id FROM transactions WHERE reference = ? LIMIT 1`

	queryDeleteTransaction = `
		DELETE FROM transactions WHERE id = ?`

	// User-company relation queries
	queryInsertRelation = `
		INSERT INTO user_company_relations (user_id, company_id, invested_amount, start_date)
		VALUES (?, ?, ?, ?)`

	queryUpdateInvestedAmount = `
		UPDATE user_company_relations
		SET invested_amount = ?
		WHERE user_id = ? AND company_id = ?`

	queryDeleteRelation = `
		DELETE FROM user_company_relations WHERE user_id = ? AND company_id = ?`

	queryGetUsersByCompany = `
		SELECT user_id FROM user_company_relations WHERE company_id = ? ORDER BY user_id`

	queryGetRelationsByUser = `
		SELECT user_id, company_id, invested_amount, start_date
		FROM user_company_relations
		WHERE user_id = ?
		ORDER BY company_id`

	queryGetRelation = `
		SELECT user_id, company_id, invested_amount, start_date
		FROM user_company_relations
		WHERE user_id = ? AND company_id = ?`

	// Company asset allocation queries (quantity accumulates on conflict)
	queryUpsertCompanyAsset = `
		INSERT INTO company_crypto_assets (company_id, crypto_asset_id, quantity)
		VALUES (?, ?, ?)
		ON CONFLICT(company_id, crypto_asset_id) DO UPDATE SET
			quantity = quantity + excluded.quantity`

	queryGetCompanyAssetQuantity = `
		SELECT quantity FROM company_crypto_assets WHERE company_id = ? AND crypto_asset_id = ?`

	queryDeleteCompanyAsset = `
		DELETE FROM company_crypto_assets WHERE company_id = ? AND crypto_asset_id = ?`

	queryGetAssetsByCompany = `
		SELECT ca.id, ca.name, ca.symbol, ca.price, cca.quantity
		FROM crypto_assets ca
		JOIN company_crypto_assets cca ON ca.id = cca.crypto_asset_id
		WHERE cca.company_id = ?
		ORDER BY ca.symbol`

	// Wallet holding queries (quantity accumulates on conflict)
	queryUpsertWalletAsset = `
		INSERT INTO wallet_crypto_assets (wallet_id, crypto_asset_id, quantity)
		VALUES (?, ?, ?)
		ON CONFLICT(wallet_id, crypto_asset_id) DO UPDATE SET
			quantity = quantity + excluded.quantity`

	queryGetWalletAssetQuantity = `
		SELECT quantity FROM wallet_crypto_assets WHERE wallet_id = ? AND crypto_asset_id = ?`

	queryDeleteWalletAsset = `
		DELETE FROM wallet_crypto_assets WHERE wallet_id = ? AND crypto_asset_id = ?`

	queryGetAssetsByWallet = `
		SELECT ca.id, ca.name, ca.symbol, ca.price, wca.quantity
		FROM crypto_assets ca
		JOIN wallet_crypto_assets wca ON ca.id = wca.crypto_asset_id
		WHERE wca.wallet_id = ?
		ORDER BY ca.symbol`

	queryUpdateWalletAssetQuantity = `
		UPDATE wallet_crypto_assets
		SET quantity = ?
		WHERE wallet_id = ? AND crypto_asset_id = ?`
)
