package selftest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"crypto-portfolio-go/internal/database"
	"crypto-portfolio-go/internal/market"
	"crypto-portfolio-go/internal/models"
	"crypto-portfolio-go/internal/report"
	"crypto-portfolio-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Runner exercises every data-access operation against a live database and
// tracks pass/fail counters. A failed check is reported and the run
// continues; only the final statistics decide success.
type Runner struct {
	db      *database.Service
	market  *market.Market
	out     io.Writer
	verbose bool

	total  int
	passed int
	failed int
}

func New(db *database.Service, mkt *market.Market, out io.Writer, verbose bool) *Runner {
	return &Runner{db: db, market: mkt, out: out, verbose: verbose}
}

// Run executes all phases and returns (passed, failed).
func (r *Runner) Run(ctx context.Context) (int, int) {
	r.phase("PHASE 1: ENTITY CRUD")
	r.testUsers(ctx)
	r.testCompanies(ctx)
	r.testAssets(ctx)
	r.testWallets(ctx)

	r.phase("PHASE 2: MARKET AND TRANSACTIONS")
	r.testMarket(ctx)
	r.testTransactions(ctx)

	r.phase("PHASE 3: ASSOCIATIONS")
	r.testRelations(ctx)
	r.testCompanyAssets(ctx)
	r.testWalletAssets(ctx)

	r.phase("PHASE 4: MULTI-STEP SCENARIOS")
	r.testTradeScenario(ctx)
	r.testOnboardingScenario(ctx)

	r.phase("PHASE 5: REPORTS")
	r.testReports(ctx)

	r.printStatistics()
	return r.passed, r.failed
}

func (r *Runner) phase(title string) {
	fmt.Fprintf(r.out, "\n%s\n", title)
	for i := 0; i < len(title); i++ {
		fmt.Fprint(r.out, "=")
	}
	fmt.Fprintln(r.out)
}

func (r *Runner) check(name string, ok bool, err error) {
	r.total++
	if ok && err == nil {
		r.passed++
		if r.verbose {
			fmt.Fprintf(r.out, "  PASS  %s\n", name)
		}
		return
	}
	r.failed++
	fmt.Fprintf(r.out, "  FAIL  %s", name)
	if err != nil {
		fmt.Fprintf(r.out, " (%v)", err)
	}
	fmt.Fprintln(r.out)
	zap.L().Warn("Self-test check failed", zap.String("check", name), zap.Error(err))
}

func (r *Runner) printStatistics() {
	fmt.Fprintf(r.out, "\nRESULTS: %d checks, %d passed, %d failed\n", r.total, r.passed, r.failed)
}

func (r *Runner) testUsers(ctx context.Context) {
	created, err := r.db.CreateUser(ctx, store.CreateUserParams{
		Id: 9001, Name: "Selftest User", Email: "selftest@example.com", Password: "selftest-pw",
	})
	r.check("user insert", created != nil, err)

	found, err := r.db.GetUserById(ctx, 9001)
	r.check("user find by id", found != nil && found.Email == "selftest@example.com", err)

	_, err = r.db.CreateUser(ctx, store.CreateUserParams{
		Id: 9002, Name: "Duplicate", Email: "selftest@example.com", Password: "selftest-pw",
	})
	r.check("user duplicate email rejected", errors.Is(err, store.ErrDuplicateEmail), nil)

	if found != nil {
		found.Name = "Selftest User Renamed"
		ok, err := r.db.UpdateUser(ctx, *found)
		r.check("user update", ok, err)
	}

	ok, err := r.db.DeleteUser(ctx, 9001)
	r.check("user delete", ok, err)

	gone, err := r.db.GetUserById(ctx, 9001)
	r.check("user absent after delete", gone == nil, err)
}

func (r *Runner) testCompanies(ctx context.Context) {
	ok, err := r.db.InsertCompany(ctx, models.Company{Id: 9100, Name: "Selftest Corp", Identifier: "ST-001"})
	r.check("company insert", ok, err)

	found, err := r.db.GetCompanyById(ctx, 9100)
	r.check("company find by id", found != nil && found.Name == "Selftest Corp", err)

	ok, err = r.db.UpdateCompany(ctx, models.Company{Id: 9100, Name: "Selftest Corp 2", Identifier: "ST-001"})
	r.check("company update", ok, err)

	ok, err = r.db.UpdateCompany(ctx, models.Company{Id: 99999, Name: "Ghost", Identifier: "X"})
	r.check("company update missing returns false", !ok, err)

	ok, err = r.db.DeleteCompany(ctx, 9100)
	r.check("company delete", ok, err)
}

func (r *Runner) testAssets(ctx context.Context) {
	id, err := r.db.InsertAsset(ctx, models.CryptoAsset{
		Name: "Selftest Coin", Symbol: "STC",
		Quantity: decimal.NewFromInt(10), Price: decimal.NewFromInt(5),
	})
	r.check("asset insert", id > 0, err)

	found, err := r.db.GetAssetBySymbol(ctx, "STC")
	r.check("asset find by symbol", found != nil && found.Id == id, err)

	if found != nil {
		found.Symbol = "STC2"
		ok, err := r.db.UpdateAsset(ctx, *found)
		r.check("asset symbol rename by id", ok, err)

		renamed, err := r.db.GetAssetById(ctx, id)
		r.check("asset rename persisted", renamed != nil && renamed.Symbol == "STC2", err)
	}

	ok, err := r.db.DeleteAsset(ctx, id)
	r.check("asset delete", ok, err)
}

func (r *Runner) testWallets(ctx context.Context) {
	_, err := r.db.CreateUser(ctx, store.CreateUserParams{
		Id: 9010, Name: "Wallet Owner", Email: "wallet-owner@example.com", Password: "selftest-pw",
	})
	r.check("wallet owner insert", err == nil, err)

	ok, err := r.db.InsertWallet(ctx, models.Wallet{Id: 9200, UserId: 9010, Name: "Selftest Wallet"})
	r.check("wallet insert", ok, err)

	found, err := r.db.GetWalletById(ctx, 9200)
	r.check("wallet find by id", found != nil && found.UserId == 9010, err)

	ok, err = r.db.DeleteWallet(ctx, 424242)
	r.check("wallet delete missing returns false", !ok, err)

	ok, err = r.db.DeleteWallet(ctx, 9200)
	r.check("wallet delete", ok, err)
}

func (r *Runner) testMarket(ctx context.Context) {
	err := r.db.SaveMarketPrice(ctx, "STBTC", decimal.NewFromInt(100))
	r.check("market price save", err == nil, err)

	err = r.db.SaveMarketPrice(ctx, "STBTC", decimal.NewFromInt(110))
	price, okFound, err2 := r.db.GetMarketPrice(ctx, "STBTC")
	r.check("market price upsert", err == nil && okFound && price.Equal(decimal.NewFromInt(110)), err2)

	_, okFound, err = r.db.GetMarketPrice(ctx, "ST-UNKNOWN")
	r.check("market price absent for unknown symbol", !okFound, err)

	r.market.SetPrice("STBTC", decimal.NewFromInt(120))
	cached, okCached := r.market.GetPrice("STBTC")
	r.check("market cache last write wins", okCached && cached.Equal(decimal.NewFromInt(120)), nil)

	ok, err := r.db.DeleteMarketPrice(ctx, "STBTC")
	r.check("market price delete", ok, err)
}

func (r *Runner) testTransactions(ctx context.Context) {
	_, err := r.db.CreateUser(ctx, store.CreateUserParams{
		Id: 9020, Name: "Tx User", Email: "tx-user@example.com", Password: "selftest-pw",
	})
	r.check("tx user insert", err == nil, err)

	assetId, err := r.db.InsertAsset(ctx, models.CryptoAsset{
		Name: "Tx Coin", Symbol: "TXC",
		Quantity: decimal.NewFromInt(100), Price: decimal.NewFromInt(2),
	})
	r.check("tx asset insert", assetId > 0, err)

	created, err := r.db.InsertTransaction(ctx, models.Transaction{
		CryptoAssetId: assetId, UserId: 9020,
		Amount: decimal.NewFromInt(3), Type: models.TransactionBuy,
	})
	r.check("transaction insert", created != nil, err)

	list, err := r.db.TransactionsByUser(ctx, 9020)
	r.check("transactions by user", len(list) == 1, err)

	all, err := r.db.GetTransactions(ctx)
	r.check("transactions list all", len(all) >= 1, err)

	if created != nil {
		ok, err := r.db.DeleteTransaction(ctx, created.Id)
		r.check("transaction delete", ok, err)
	}
}

func (r *Runner) testRelations(ctx context.Context) {
	_, err := r.db.CreateUser(ctx, store.CreateUserParams{
		Id: 9030, Name: "Rel User", Email: "rel-user@example.com", Password: "selftest-pw",
	})
	r.check("rel user insert", err == nil, err)

	ok, err := r.db.InsertCompany(ctx, models.Company{Id: 9300, Name: "Rel Corp", Identifier: "RC-1"})
	r.check("rel company insert", ok, err)

	rel := models.UserCompanyRelation{
		UserId: 9030, CompanyId: 9300,
		InvestedAmount: decimal.NewFromInt(500),
		StartDate:      time.Now(),
	}
	err = r.db.CreateRelation(ctx, rel)
	r.check("relation insert", err == nil, err)

	err = r.db.CreateRelation(ctx, rel)
	r.check("relation duplicate rejected", errors.Is(err, store.ErrDuplicateRelation), nil)

	ok, err = r.db.UpdateInvestedAmount(ctx, 9030, 9300, decimal.NewFromInt(750))
	r.check("relation update amount", ok, err)

	got, err := r.db.GetRelation(ctx, 9030, 9300)
	r.check("relation amount replaced", got != nil && got.InvestedAmount.Equal(decimal.NewFromInt(750)), err)

	ok, err = r.db.DeleteRelation(ctx, 9030, 9300)
	r.check("relation delete", ok, err)
}

func (r *Runner) testCompanyAssets(ctx context.Context) {
	ok, err := r.db.InsertCompany(ctx, models.Company{Id: 9310, Name: "Alloc Corp", Identifier: "AC-1"})
	r.check("alloc company insert", ok, err)

	assetId, err := r.db.InsertAsset(ctx, models.CryptoAsset{
		Name: "Alloc Coin", Symbol: "ALC",
		Quantity: decimal.NewFromInt(50), Price: decimal.NewFromInt(4),
	})
	r.check("alloc asset insert", assetId > 0, err)

	err = r.db.AddOrUpdateCompanyAsset(ctx, 9310, assetId, decimal.NewFromInt(2))
	r.check("company asset allocate", err == nil, err)

	err = r.db.AddOrUpdateCompanyAsset(ctx, 9310, assetId, decimal.NewFromInt(2))
	holdings, err2 := r.db.AssetsByCompany(ctx, 9310)
	accumulated := err == nil && err2 == nil && len(holdings) == 1 &&
		holdings[0].Quantity.Equal(decimal.NewFromInt(4))
	r.check("company asset quantity accumulates", accumulated, err2)

	ok, err = r.db.RemoveCompanyAsset(ctx, 9310, assetId)
	r.check("company asset remove", ok, err)
}

func (r *Runner) testWalletAssets(ctx context.Context) {
	_, err := r.db.CreateUser(ctx, store.CreateUserParams{
		Id: 9040, Name: "Holder", Email: "holder@example.com", Password: "selftest-pw",
	})
	r.check("holder insert", err == nil, err)

	ok, err := r.db.InsertWallet(ctx, models.Wallet{Id: 9400, UserId: 9040, Name: "Holder Wallet"})
	r.check("holder wallet insert", ok, err)

	assetId, err := r.db.InsertAsset(ctx, models.CryptoAsset{
		Name: "Hold Coin", Symbol: "HLD",
		Quantity: decimal.NewFromInt(10), Price: decimal.NewFromInt(7),
	})
	r.check("hold asset insert", assetId > 0, err)

	err = r.db.AddWalletAsset(ctx, 9400, assetId, decimal.NewFromFloat(1.5))
	r.check("wallet asset add", err == nil, err)

	holdings, err := r.db.AssetsByWallet(ctx, 9400)
	r.check("wallet holdings query", len(holdings) == 1, err)

	ok, err = r.db.RemoveWalletAsset(ctx, 9400, assetId)
	r.check("wallet asset remove", ok, err)
}

func (r *Runner) testTradeScenario(ctx context.Context) {
	_, err := r.db.CreateUser(ctx, store.CreateUserParams{
		Id: 9050, Name: "Scenario Trader", Email: "scenario-trader@example.com", Password: "selftest-pw",
	})
	r.check("scenario trader insert", err == nil, err)

	ok, err := r.db.InsertWallet(ctx, models.Wallet{Id: 9500, UserId: 9050, Name: "Trade Wallet"})
	r.check("scenario wallet insert", ok, err)

	assetId, err := r.db.InsertAsset(ctx, models.CryptoAsset{
		Name: "Trade Coin", Symbol: "TRD",
		Quantity: decimal.NewFromInt(1000), Price: decimal.NewFromInt(3),
	})
	r.check("scenario asset insert", assetId > 0, err)

	_, err = r.db.RecordTrade(ctx, store.RecordTradeParams{
		UserId: 9050, WalletId: 9500, CryptoAssetId: assetId,
		Amount: decimal.NewFromInt(2), Type: models.TransactionBuy,
	})
	r.check("trade buy", err == nil, err)

	_, err = r.db.RecordTrade(ctx, store.RecordTradeParams{
		UserId: 9050, WalletId: 9500, CryptoAssetId: assetId,
		Amount: decimal.NewFromInt(5), Type: models.TransactionSell,
	})
	r.check("overdrawn sell rejected", errors.Is(err, store.ErrInsufficientAssets), nil)

	holdings, err := r.db.AssetsByWallet(ctx, 9500)
	intact := err == nil && len(holdings) == 1 && holdings[0].Quantity.Equal(decimal.NewFromInt(2))
	r.check("holding intact after rollback", intact, err)
}

func (r *Runner) testOnboardingScenario(ctx context.Context) {
	_, err := r.db.CreateUser(ctx, store.CreateUserParams{
		Id: 9060, Name: "Founder", Email: "founder@example.com", Password: "selftest-pw",
	})
	r.check("founder insert", err == nil, err)

	assetId, err := r.db.InsertAsset(ctx, models.CryptoAsset{
		Name: "Board Coin", Symbol: "BRD",
		Quantity: decimal.NewFromInt(10), Price: decimal.NewFromInt(9),
	})
	r.check("onboarding asset insert", assetId > 0, err)

	err = r.db.OnboardCompany(ctx, store.OnboardCompanyParams{
		Company: models.Company{Id: 9600, Name: "Onboard Corp", Identifier: "OC-1"},
		Allocations: []store.CompanyAllocation{
			{CryptoAssetId: assetId, Quantity: decimal.NewFromInt(3)},
		},
		Investors: []store.CompanyInvestor{
			{UserId: 9060, InvestedAmount: decimal.NewFromInt(1000), StartDate: time.Now()},
		},
	})
	r.check("company onboarding", err == nil, err)

	holdings, err := r.db.AssetsByCompany(ctx, 9600)
	r.check("onboarding allocations present", len(holdings) == 1, err)

	userIds, err := r.db.UsersByCompany(ctx, 9600)
	r.check("onboarding investors present", len(userIds) == 1, err)
}

func (r *Runner) testReports(ctx context.Context) {
	rep := report.New(r.out)

	wallet, err := r.db.GetWalletById(ctx, 9500)
	if wallet == nil || err != nil {
		r.check("report wallet available", false, err)
		return
	}

	holdings, err := r.db.AssetsByWallet(ctx, wallet.Id)
	r.check("report wallet holdings", err == nil, err)
	if r.verbose {
		rep.WalletReport(*wallet, holdings)
	}

	transactions, err := r.db.TransactionsByUser(ctx, 9050)
	r.check("report transactions", err == nil, err)
	if r.verbose {
		rep.TransactionReport(transactions)
	}

	companies, err := r.db.GetCompanies(ctx)
	r.check("report companies", err == nil, err)
	if r.verbose {
		rep.CompanyReport(companies, nil)
	}
}
