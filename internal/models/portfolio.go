package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// User represents an account holder. PasswordHash is a bcrypt hash; the raw
// password is never persisted.
type User struct {
	Id           int       `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Company represents an organization users can invest in.
type Company struct {
	Id         int    `db:"id"`
	Name       string `db:"name"`
	Identifier string `db:"identifier"`
}

// CryptoAsset represents a tradable asset. Id is the stable key; Symbol is a
// mutable display attribute.
type CryptoAsset struct {
	Id       int             `db:"id"`
	Name     string          `db:"name"`
	Symbol   string          `db:"symbol"`
	Quantity decimal.Decimal `db:"quantity"`
	Price    decimal.Decimal `db:"price"`
}

// TotalValue returns quantity * price.
func (a CryptoAsset) TotalValue() decimal.Decimal {
	return a.Quantity.Mul(a.Price)
}

// Wallet represents a named container of holdings owned by a user. Holdings
// live in the wallet_crypto_assets table; a Wallet value carries no asset
// list of its own.
type Wallet struct {
	Id     int    `db:"id"`
	UserId int    `db:"user_id"`
	Name   string `db:"name"`
}

// Transaction types.
const (
	TransactionBuy  = "BUY"
	TransactionSell = "SELL"
)

// Transaction is an immutable BUY/SELL record. Reference is a caller-supplied
// or generated idempotency key, unique across all transactions.
type Transaction struct {
	Id            int             `db:"id"`
	CryptoAssetId int             `db:"crypto_asset_id"`
	UserId        int             `db:"user_id"`
	Amount        decimal.Decimal `db:"amount"`
	Type          string          `db:"type"`
	Reference     string          `db:"reference"`
	CreatedAt     time.Time       `db:"created_at"`
	// Populated by joined queries, zero-valued otherwise.
	AssetName   string
	AssetSymbol string
	AssetPrice  decimal.Decimal
}

// UserCompanyRelation links a user to a company with an invested amount.
// (UserId, CompanyId) is unique at the storage layer.
type UserCompanyRelation struct {
	UserId         int             `db:"user_id"`
	CompanyId      int             `db:"company_id"`
	InvestedAmount decimal.Decimal `db:"invested_amount"`
	StartDate      time.Time       `db:"start_date"`
}

// Holding is one row of an association table: an asset plus the quantity
// allocated to the owning company or wallet.
type Holding struct {
	Asset    CryptoAsset
	Quantity decimal.Decimal
}

// Value returns quantity * current asset price.
func (h Holding) Value() decimal.Decimal {
	return h.Quantity.Mul(h.Asset.Price)
}

// MarketPrice is one persisted market row.
type MarketPrice struct {
	Symbol      string          `db:"symbol"`
	Price       decimal.Decimal `db:"price"`
	LastUpdated time.Time       `db:"last_updated"`
}

func (u User) String() string {
	return fmt.Sprintf("User #%d %s <%s>", u.Id, u.Name, u.Email)
}

func (c Company) String() string {
	return fmt.Sprintf("Company #%d %s (%s)", c.Id, c.Name, c.Identifier)
}

func (a CryptoAsset) String() string {
	return fmt.Sprintf("%s (%s) qty=%s price=%s", a.Name, a.Symbol, a.Quantity.String(), a.Price.String())
}
