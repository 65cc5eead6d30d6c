package store

import (
	"context"
	"errors"
	"time"

	"crypto-portfolio-go/internal/models"

	"github.com/shopspring/decimal"
)

// Sentinel errors shared across the storage layer.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateRelation  = errors.New("user-company relation already exists")
	ErrDuplicateReference = errors.New("duplicate transaction reference")
	ErrInsufficientAssets = errors.New("insufficient asset quantity in wallet")
)

// CreateUserParams contains the parameters for registering a user.
// Password is the raw password; the store persists only a hash of it.
type CreateUserParams struct {
	Id       int
	Name     string
	Email    string
	Password string
}

// RecordTradeParams captures one BUY/SELL executed against a wallet. The
// transaction row and the wallet holding are written atomically. Reference is
// generated when empty.
type RecordTradeParams struct {
	UserId        int
	WalletId      int
	CryptoAssetId int
	Amount        decimal.Decimal
	Type          string // models.TransactionBuy or models.TransactionSell
	Reference     string
}

// CompanyAllocation is one asset grant inside an OnboardCompany call.
type CompanyAllocation struct {
	CryptoAssetId int
	Quantity      decimal.Decimal
}

// CompanyInvestor is one user relation inside an OnboardCompany call.
type CompanyInvestor struct {
	UserId         int
	InvestedAmount decimal.Decimal
	StartDate      time.Time
}

// OnboardCompanyParams creates a company together with its asset allocations
// and investor relations in a single transaction; a failure partway through
// rolls everything back.
type OnboardCompanyParams struct {
	Company     models.Company
	Allocations []CompanyAllocation
	Investors   []CompanyInvestor
}

// PortfolioStore defines the contract the persistence layer satisfies.
// Find operations report absence as (nil, nil) / (zero, false, nil) rather
// than an error; mutations keyed by id report no-match as (false, nil).
type PortfolioStore interface {
	// --- Users ---
	CreateUser(ctx context.Context, params CreateUserParams) (*models.User, error)
	GetUserById(ctx context.Context, id int) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) (bool, error)
	DeleteUser(ctx context.Context, id int) (bool, error)

	// --- Companies ---
	InsertCompany(ctx context.Context, company models.Company) (bool, error)
	GetCompanyById(ctx context.Context, id int) (*models.Company, error)
	GetCompanies(ctx context.Context) ([]models.Company, error)
	UpdateCompany(ctx context.Context, company models.Company) (bool, error)
	DeleteCompany(ctx context.Context, id int) (bool, error)

	// --- Crypto assets ---
	InsertAsset(ctx context.Context, asset models.CryptoAsset) (int, error)
	GetAssetById(ctx context.Context, id int) (*models.CryptoAsset, error)
	GetAssetBySymbol(ctx context.Context, symbol string) (*models.CryptoAsset, error)
	GetAssets(ctx context.Context) ([]models.CryptoAsset, error)
	UpdateAsset(ctx context.Context, asset models.CryptoAsset) (bool, error)
	DeleteAsset(ctx context.Context, id int) (bool, error)

	// --- Wallets ---
	InsertWallet(ctx context.Context, wallet models.Wallet) (bool, error)
	GetWalletById(ctx context.Context, id int) (*models.Wallet, error)
	GetWallets(ctx context.Context) ([]models.Wallet, error)
	UpdateWallet(ctx context.Context, wallet models.Wallet) (bool, error)
	DeleteWallet(ctx context.Context, id int) (bool, error)
	AddWalletAsset(ctx context.Context, walletId, cryptoAssetId int, quantity decimal.Decimal) error
	RemoveWalletAsset(ctx context.Context, walletId, cryptoAssetId int) (bool, error)
	AssetsByWallet(ctx context.Context, walletId int) ([]models.Holding, error)

	// --- Market rows ---
	SaveMarketPrice(ctx context.Context, symbol string, price decimal.Decimal) error
	GetMarketPrice(ctx context.Context, symbol string) (decimal.Decimal, bool, error)
	AllMarketPrices(ctx context.Context) (map[string]decimal.Decimal, error)
	DeleteMarketPrice(ctx context.Context, symbol string) (bool, error)

	// --- Transactions ---
	InsertTransaction(ctx context.Context, tx models.Transaction) (*models.Transaction, error)
	GetTransactionById(ctx context.Context, id int) (*models.Transaction, error)
	GetTransactions(ctx context.Context) ([]models.Transaction, error)
	TransactionsByUser(ctx context.Context, userId int) ([]models.Transaction, error)
	DeleteTransaction(ctx context.Context, id int) (bool, error)

	// --- User-company relations ---
	CreateRelation(ctx context.Context, rel models.UserCompanyRelation) error
	UpdateInvestedAmount(ctx context.Context, userId, companyId int, amount decimal.Decimal) (bool, error)
	DeleteRelation(ctx context.Context, userId, companyId int) (bool, error)
	UsersByCompany(ctx context.Context, companyId int) ([]int, error)
	RelationsByUser(ctx context.Context, userId int) ([]models.UserCompanyRelation, error)

	// --- Company asset allocations ---
	AddOrUpdateCompanyAsset(ctx context.Context, companyId, cryptoAssetId int, quantity decimal.Decimal) error
	RemoveCompanyAsset(ctx context.Context, companyId, cryptoAssetId int) (bool, error)
	AssetsByCompany(ctx context.Context, companyId int) ([]models.Holding, error)

	// --- Multi-step units of work ---
	RecordTrade(ctx context.Context, params RecordTradeParams) (*models.Transaction, error)
	OnboardCompany(ctx context.Context, params OnboardCompanyParams) error
}
