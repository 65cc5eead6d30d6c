package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"crypto-portfolio-go/internal/common"
	"crypto-portfolio-go/internal/database"
	"crypto-portfolio-go/internal/export"
	"crypto-portfolio-go/internal/market"
	"crypto-portfolio-go/internal/models"
	"crypto-portfolio-go/internal/report"
	"crypto-portfolio-go/internal/selftest"
	"crypto-portfolio-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// deleteConfirmation must be typed verbatim before any delete runs.
const deleteConfirmation = "SIM"

// Menu is the interactive console shell. A malformed input or a failed
// operation is reported and the loop continues; only EOF or the exit choice
// terminates it.
type Menu struct {
	db         *database.Service
	market     *market.Market
	exportPath string

	in  *bufio.Scanner
	out io.Writer
}

func New(db *database.Service, mkt *market.Market, exportPath string, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		db:         db,
		market:     mkt,
		exportPath: exportPath,
		in:         bufio.NewScanner(in),
		out:        out,
	}
}

// Run drives the root menu until the user exits or input ends.
func (m *Menu) Run(ctx context.Context) {
	for {
		common.PrintHeader("CRYPTO PORTFOLIO", common.DefaultWidth)
		fmt.Fprintln(m.out, " 1. Users")
		fmt.Fprintln(m.out, " 2. Companies")
		fmt.Fprintln(m.out, " 3. Crypto assets")
		fmt.Fprintln(m.out, " 4. Wallets")
		fmt.Fprintln(m.out, " 5. Transactions")
		fmt.Fprintln(m.out, " 6. Investments")
		fmt.Fprintln(m.out, " 7. Market prices")
		fmt.Fprintln(m.out, " 8. Reports")
		fmt.Fprintln(m.out, " 9. Export to file")
		fmt.Fprintln(m.out, "10. Run self-test")
		fmt.Fprintln(m.out, " 0. Exit")

		choice, ok := m.promptString("Choice")
		if !ok {
			return
		}
		switch choice {
		case "1":
			m.userMenu(ctx)
		case "2":
			m.companyMenu(ctx)
		case "3":
			m.assetMenu(ctx)
		case "4":
			m.walletMenu(ctx)
		case "5":
			m.transactionMenu(ctx)
		case "6":
			m.relationMenu(ctx)
		case "7":
			m.marketMenu(ctx)
		case "8":
			m.reportMenu(ctx)
		case "9":
			m.runExport(ctx)
		case "10":
			runner := selftest.New(m.db, m.market, m.out, true)
			runner.Run(ctx)
		case "0":
			fmt.Fprintln(m.out, "Bye.")
			return
		default:
			fmt.Fprintf(m.out, "Unknown option %q\n", choice)
		}
	}
}

// --- prompts ---

func (m *Menu) promptString(label string) (string, bool) {
	fmt.Fprintf(m.out, "%s: ", label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) promptInt(label string) (int, bool) {
	raw, ok := m.promptString(label)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintf(m.out, "Not a whole number: %q\n", raw)
		return 0, false
	}
	return n, true
}

func (m *Menu) promptDecimal(label string) (decimal.Decimal, bool) {
	raw, ok := m.promptString(label)
	if !ok {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		fmt.Fprintf(m.out, "Not a number: %q\n", raw)
		return decimal.Decimal{}, false
	}
	return d, true
}

// confirmDelete requires the exact confirmation word before returning true.
func (m *Menu) confirmDelete() bool {
	raw, ok := m.promptString("Type " + deleteConfirmation + " to confirm")
	if !ok {
		return false
	}
	if raw != deleteConfirmation {
		fmt.Fprintln(m.out, "Delete cancelled.")
		return false
	}
	return true
}

func (m *Menu) reportError(action string, err error) {
	fmt.Fprintf(m.out, "%s failed: %v\n", action, err)
	zap.L().Warn("Menu operation failed", zap.String("action", action), zap.Error(err))
}

// --- users ---

func (m *Menu) userMenu(ctx context.Context) {
	for {
		common.PrintHeader("USERS", common.DefaultWidth)
		fmt.Fprintln(m.out, "1. Register  2. Find by id  3. List  4. Update  5. Delete  0. Back")
		choice, ok := m.promptString("Choice")
		if !ok {
			return
		}
		switch choice {
		case "1":
			m.createUser(ctx)
		case "2":
			if id, ok := m.promptInt("User id"); ok {
				user, err := m.db.GetUserById(ctx, id)
				switch {
				case err != nil:
					m.reportError("Find user", err)
				case user == nil:
					fmt.Fprintf(m.out, "No user with id %d\n", id)
				default:
					fmt.Fprintln(m.out, user)
				}
			}
		case "3":
			users, err := m.db.GetUsers(ctx)
			if err != nil {
				m.reportError("List users", err)
				break
			}
			for i, u := range users {
				fmt.Fprintf(m.out, "%s%s\n", common.BoxPrefix(i == len(users)-1), u)
			}
			if len(users) == 0 {
				fmt.Fprintln(m.out, "(no users)")
			}
		case "4":
			m.updateUser(ctx)
		case "5":
			if id, ok := m.promptInt("User id"); ok && m.confirmDelete() {
				deleted, err := m.db.DeleteUser(ctx, id)
				if err != nil {
					m.reportError("Delete user", err)
				} else if !deleted {
					fmt.Fprintf(m.out, "No user with id %d\n", id)
				} else {
					fmt.Fprintln(m.out, "Deleted.")
				}
			}
		case "0":
			return
		default:
			fmt.Fprintf(m.out, "Unknown option %q\n", choice)
		}
	}
}

func (m *Menu) createUser(ctx context.Context) {
	id, ok := m.promptInt("Id")
	if !ok {
		return
	}
	name, ok := m.promptString("Name")
	if !ok {
		return
	}
	email, ok := m.promptString("Email")
	if !ok {
		return
	}
	password, ok := m.promptString("Password")
	if !ok {
		return
	}
	user, err := m.db.CreateUser(ctx, store.CreateUserParams{Id: id, Name: name, Email: email, Password: password})
	switch {
	case errors.Is(err, store.ErrDuplicateEmail):
		fmt.Fprintf(m.out, "Email %s is already registered\n", email)
	case err != nil:
		m.reportError("Register user", err)
	default:
		fmt.Fprintf(m.out, "Registered %s\n", user)
	}
}

func (m *Menu) updateUser(ctx context.Context) {
	id, ok := m.promptInt("User id")
	if !ok {
		return
	}
	user, err := m.db.GetUserById(ctx, id)
	if err != nil {
		m.reportError("Find user", err)
		return
	}
	if user == nil {
		fmt.Fprintf(m.out, "No user with id %d\n", id)
		return
	}
	if name, ok := m.promptString("New name (blank keeps " + user.Name + ")"); ok && name != "" {
		user.Name = name
	}
	if email, ok := m.promptString("New email (blank keeps " + user.Email + ")"); ok && email != "" {
		user.Email = email
	}
	updated, err := m.db.UpdateUser(ctx, *user)
	switch {
	case errors.Is(err, store.ErrDuplicateEmail):
		fmt.Fprintln(m.out, "That email is already registered")
	case err != nil:
		m.reportError("Update user", err)
	case !updated:
		fmt.Fprintf(m.out, "No user with id %d\n", id)
	default:
		fmt.Fprintln(m.out, "Updated.")
	}
}

// --- companies ---

func (m *Menu) companyMenu(ctx context.Context) {
	for {
		common.PrintHeader("COMPANIES", common.DefaultWidth)
		fmt.Fprintln(m.out, "1. Create  2. Find by id  3. List  4. Update  5. Delete  0. Back")
		choice, ok := m.promptString("Choice")
		if !ok {
			return
		}
		switch choice {
		case "1":
			id, ok := m.promptInt("Id")
			if !ok {
				break
			}
			name, ok := m.promptString("Name")
			if !ok {
				break
			}
			identifier, ok := m.promptString("Identifier")
			if !ok {
				break
			}
			inserted, err := m.db.InsertCompany(ctx, models.Company{Id: id, Name: name, Identifier: identifier})
			if err != nil {
				m.reportError("Create company", err)
			} else if !inserted {
				fmt.Fprintf(m.out, "Company id %d already exists\n", id)
			} else {
				fmt.Fprintln(m.out, "Created.")
			}
		case "2":
			if id, ok := m.promptInt("Company id"); ok {
				company, err := m.db.GetCompanyById(ctx, id)
				switch {
				case err != nil:
					m.reportError("Find company", err)
				case company == nil:
					fmt.Fprintf(m.out, "No company with id %d\n", id)
				default:
					fmt.Fprintln(m.out, company)
				}
			}
		case "3":
			companies, err := m.db.GetCompanies(ctx)
			if err != nil {
				m.reportError("List companies", err)
				break
			}
			for i, c := range companies {
				fmt.Fprintf(m.out, "%s%s\n", common.BoxPrefix(i == len(companies)-1), c)
			}
			if len(companies) == 0 {
				fmt.Fprintln(m.out, "(no companies)")
			}
		case "4":
			id, ok := m.promptInt("Company id")
			if !ok {
				break
			}
			company, err := m.db.GetCompanyById(ctx, id)
			if err != nil {
				m.reportError("Find company", err)
				break
			}
			if company == nil {
				fmt.Fprintf(m.out, "No company with id %d\n", id)
				break
			}
			if name, ok := m.promptString("New name (blank keeps " + company.Name + ")"); ok && name != "" {
				company.Name = name
			}
			if identifier, ok := m.promptString("New identifier (blank keeps " + company.Identifier + ")"); ok && identifier != "" {
				company.Identifier = identifier
			}
			if updated, err := m.db.UpdateCompany(ctx, *company); err != nil {
				m.reportError("Update company", err)
			} else if !updated {
				fmt.Fprintf(m.out, "No company with id %d\n", id)
			} else {
				fmt.Fprintln(m.out, "Updated.")
			}
		case "5":
			if id, ok := m.promptInt("Company id"); ok && m.confirmDelete() {
				deleted, err := m.db.DeleteCompany(ctx, id)
				if err != nil {
					m.reportError("Delete company", err)
				} else if !deleted {
					fmt.Fprintf(m.out, "No company with id %d\n", id)
				} else {
					fmt.Fprintln(m.out, "Deleted.")
				}
			}
		case "0":
			return
		default:
			fmt.Fprintf(m.out, "Unknown option %q\n", choice)
		}
	}
}

// --- crypto assets ---

func (m *Menu) assetMenu(ctx context.Context) {
	for {
		common.PrintHeader("CRYPTO ASSETS", common.DefaultWidth)
		fmt.Fprintln(m.out, "1. Create  2. Find by id  3. Find by symbol  4. List  5. Update  6. Delete  0. Back")
		choice, ok := m.promptString("Choice")
		if !ok {
			return
		}
		switch choice {
		case "1":
			name, ok := m.promptString("Name")
			if !ok {
				break
			}
			symbol, ok := m.promptString("Symbol")
			if !ok {
				break
			}
			quantity, ok := m.promptDecimal("Quantity")
			if !ok {
				break
			}
			price, ok := m.promptDecimal("Price")
			if !ok {
				break
			}
			id, err := m.db.InsertAsset(ctx, models.CryptoAsset{Name: name, Symbol: symbol, Quantity: quantity, Price: price})
			if err != nil {
				m.reportError("Create asset", err)
			} else {
				fmt.Fprintf(m.out, "Created asset #%d\n", id)
			}
		case "2":
			if id, ok := m.promptInt("Asset id"); ok {
				m.printAsset(m.db.GetAssetById(ctx, id))
			}
		case "3":
			if symbol, ok := m.promptString("Symbol"); ok {
				m.printAsset(m.db.GetAssetBySymbol(ctx, symbol))
			}
		case "4":
			assets, err := m.db.GetAssets(ctx)
			if err != nil {
				m.reportError("List assets", err)
				break
			}
			for i, a := range assets {
				fmt.Fprintf(m.out, "%s#%d %s  total=%s\n", common.BoxPrefix(i == len(assets)-1), a.Id, a, a.TotalValue())
			}
			if len(assets) == 0 {
				fmt.Fprintln(m.out, "(no assets)")
			}
		case "5":
			m.updateAsset(ctx)
		case "6":
			if id, ok := m.promptInt("Asset id"); ok && m.confirmDelete() {
				deleted, err := m.db.DeleteAsset(ctx, id)
				if err != nil {
					m.reportError("Delete asset", err)
				} else if !deleted {
					fmt.Fprintf(m.out, "No asset with id %d\n", id)
				} else {
					fmt.Fprintln(m.out, "Deleted.")
				}
			}
		case "0":
			return
		default:
			fmt.Fprintf(m.out, "Unknown option %q\n", choice)
		}
	}
}

func (m *Menu) printAsset(asset *models.CryptoAsset, err error) {
	switch {
	case err != nil:
		m.reportError("Find asset", err)
	case asset == nil:
		fmt.Fprintln(m.out, "Not found.")
	default:
		fmt.Fprintf(m.out, "#%d %s  total=%s\n", asset.Id, asset, asset.TotalValue())
	}
}

func (m *Menu) updateAsset(ctx context.Context) {
	id, ok := m.promptInt("Asset id")
	if !ok {
		return
	}
	asset, err := m.db.GetAssetById(ctx, id)
	if err != nil {
		m.reportError("Find asset", err)
		return
	}
	if asset == nil {
		fmt.Fprintf(m.out, "No asset with id %d\n", id)
		return
	}
	if name, ok := m.promptString("New name (blank keeps " + asset.Name + ")"); ok && name != "" {
		asset.Name = name
	}
	if symbol, ok := m.promptString("New symbol (blank keeps " + asset.Symbol + ")"); ok && symbol != "" {
		asset.Symbol = symbol
	}
	if raw, ok := m.promptString("New price (blank keeps " + asset.Price.String() + ")"); ok && raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			fmt.Fprintf(m.out, "Not a number: %q\n", raw)
			return
		}
		asset.Price = price
	}
	if updated, err := m.db.UpdateAsset(ctx, *asset); err != nil {
		m.reportError("Update asset", err)
	} else if !updated {
		fmt.Fprintf(m.out, "No asset with id %d\n", id)
	} else {
		fmt.Fprintln(m.out, "Updated.")
	}
}

// --- wallets ---

func (m *Menu) walletMenu(ctx context.Context) {
	for {
		common.PrintHeader("WALLETS", common.DefaultWidth)
		fmt.Fprintln(m.out, "1. Create  2. List  3. Add asset  4. Remove asset  5. Show holdings  6. Delete  0. Back")
		choice, ok := m.promptString("Choice")
		if !ok {
			return
		}
		switch choice {
		case "1":
			id, ok := m.promptInt("Id")
			if !ok {
				break
			}
			userId, ok := m.promptInt("Owner user id")
			if !ok {
				break
			}
			name, ok := m.promptString("Name")
			if !ok {
				break
			}
			inserted, err := m.db.InsertWallet(ctx, models.Wallet{Id: id, UserId: userId, Name: name})
			if err != nil {
				m.reportError("Create wallet", err)
			} else if !inserted {
				fmt.Fprintf(m.out, "Wallet id %d already exists\n", id)
			} else {
				fmt.Fprintln(m.out, "Created.")
			}
		case "2":
			wallets, err := m.db.GetWallets(ctx)
			if err != nil {
				m.reportError("List wallets", err)
				break
			}
			for i, w := range wallets {
				fmt.Fprintf(m.out, "%sWallet #%d %s (user %d)\n", common.BoxPrefix(i == len(wallets)-1), w.Id, w.Name, w.UserId)
			}
			if len(wallets) == 0 {
				fmt.Fprintln(m.out, "(no wallets)")
			}
		case "3":
			walletId, ok := m.promptInt("Wallet id")
			if !ok {
				break
			}
			assetId, ok := m.promptInt("Asset id")
			if !ok {
				break
			}
			quantity, ok := m.promptDecimal("Quantity")
			if !ok {
				break
			}
			if err := m.db.AddWalletAsset(ctx, walletId, assetId, quantity); err != nil {
				m.reportError("Add wallet asset", err)
			} else {
				fmt.Fprintln(m.out, "Added.")
			}
		case "4":
			walletId, ok := m.promptInt("Wallet id")
			if !ok {
				break
			}
			assetId, ok := m.promptInt("Asset id")
			if !ok {
				break
			}
			if !m.confirmDelete() {
				break
			}
			removed, err := m.db.RemoveWalletAsset(ctx, walletId, assetId)
			if err != nil {
				m.reportError("Remove wallet asset", err)
			} else if !removed {
				fmt.Fprintln(m.out, "No such holding.")
			} else {
				fmt.Fprintln(m.out, "Removed.")
			}
		case "5":
			walletId, ok := m.promptInt("Wallet id")
			if !ok {
				break
			}
			wallet, err := m.db.GetWalletById(ctx, walletId)
			if err != nil {
				m.reportError("Find wallet", err)
				break
			}
			if wallet == nil {
				fmt.Fprintf(m.out, "No wallet with id %d\n", walletId)
				break
			}
			holdings, err := m.db.AssetsByWallet(ctx, walletId)
			if err != nil {
				m.reportError("Wallet holdings", err)
				break
			}
			report.New(m.out).WalletReport(*wallet, holdings)
		case "6":
			if id, ok := m.promptInt("Wallet id"); ok && m.confirmDelete() {
				deleted, err := m.db.DeleteWallet(ctx, id)
				if err != nil {
					m.reportError("Delete wallet", err)
				} else if !deleted {
					fmt.Fprintf(m.out, "No wallet with id %d\n", id)
				} else {
					fmt.Fprintln(m.out, "Deleted.")
				}
			}
		case "0":
			return
		default:
			fmt.Fprintf(m.out, "Unknown option %q\n", choice)
		}
	}
}

// --- transactions ---

func (m *Menu) transactionMenu(ctx context.Context) {
	for {
		common.PrintHeader("TRANSACTIONS", common.DefaultWidth)
		fmt.Fprintln(m.out, "1. Record trade  2. List by user  3. List all  4. Delete  0. Back")
		choice, ok := m.promptString("Choice")
		if !ok {
			return
		}
		switch choice {
		case "1":
			m.recordTrade(ctx)
		case "2":
			userId, ok := m.promptInt("User id")
			if !ok {
				break
			}
			transactions, err := m.db.TransactionsByUser(ctx, userId)
			if err != nil {
				m.reportError("List transactions", err)
				break
			}
			report.New(m.out).TransactionReport(transactions)
		case "3":
			transactions, err := m.db.GetTransactions(ctx)
			if err != nil {
				m.reportError("List transactions", err)
				break
			}
			report.New(m.out).TransactionReport(transactions)
		case "4":
			if id, ok := m.promptInt("Transaction id"); ok && m.confirmDelete() {
				deleted, err := m.db.DeleteTransaction(ctx, id)
				if err != nil {
					m.reportError("Delete transaction", err)
				} else if !deleted {
					fmt.Fprintf(m.out, "No transaction with id %d\n", id)
				} else {
					fmt.Fprintln(m.out, "Deleted.")
				}
			}
		case "0":
			return
		default:
			fmt.Fprintf(m.out, "Unknown option %q\n", choice)
		}
	}
}

func (m *Menu) recordTrade(ctx context.Context) {
	userId, ok := m.promptInt("User id")
	if !ok {
		return
	}
	walletId, ok := m.promptInt("Wallet id")
	if !ok {
		return
	}
	assetId, ok := m.promptInt("Asset id")
	if !ok {
		return
	}
	amount, ok := m.promptDecimal("Amount")
	if !ok {
		return
	}
	txType, ok := m.promptString("Type (BUY/SELL)")
	if !ok {
		return
	}
	txType = strings.ToUpper(txType)

	tx, err := m.db.RecordTrade(ctx, store.RecordTradeParams{
		UserId: userId, WalletId: walletId, CryptoAssetId: assetId,
		Amount: amount, Type: txType,
	})
	switch {
	case errors.Is(err, store.ErrInsufficientAssets):
		fmt.Fprintln(m.out, "Not enough of that asset in the wallet.")
	case err != nil:
		m.reportError("Record trade", err)
	default:
		fmt.Fprintf(m.out, "Recorded %s #%d ref=%s\n", tx.Type, tx.Id, tx.Reference)
	}
}

// --- investments (user-company relations) ---

func (m *Menu) relationMenu(ctx context.Context) {
	for {
		common.PrintHeader("INVESTMENTS", common.DefaultWidth)
		fmt.Fprintln(m.out, "1. Invest  2. List by user  3. Update amount  4. End investment  0. Back")
		choice, ok := m.promptString("Choice")
		if !ok {
			return
		}
		switch choice {
		case "1":
			userId, ok := m.promptInt("User id")
			if !ok {
				break
			}
			companyId, ok := m.promptInt("Company id")
			if !ok {
				break
			}
			amount, ok := m.promptDecimal("Invested amount")
			if !ok {
				break
			}
			err := m.db.CreateRelation(ctx, models.UserCompanyRelation{
				UserId: userId, CompanyId: companyId,
				InvestedAmount: amount, StartDate: time.Now(),
			})
			switch {
			case errors.Is(err, store.ErrDuplicateRelation):
				fmt.Fprintln(m.out, "Already invested in that company; use update instead.")
			case err != nil:
				m.reportError("Create investment", err)
			default:
				fmt.Fprintln(m.out, "Invested.")
			}
		case "2":
			userId, ok := m.promptInt("User id")
			if !ok {
				break
			}
			relations, err := m.db.RelationsByUser(ctx, userId)
			if err != nil {
				m.reportError("List investments", err)
				break
			}
			for i, rel := range relations {
				fmt.Fprintf(m.out, "%sCompany %d  amount=%s  since=%s\n",
					common.BoxPrefix(i == len(relations)-1),
					rel.CompanyId, rel.InvestedAmount, rel.StartDate.Format("2006-01-02"))
			}
			if len(relations) == 0 {
				fmt.Fprintln(m.out, "(no investments)")
			}
		case "3":
			userId, ok := m.promptInt("User id")
			if !ok {
				break
			}
			companyId, ok := m.promptInt("Company id")
			if !ok {
				break
			}
			amount, ok := m.promptDecimal("New amount")
			if !ok {
				break
			}
			if updated, err := m.db.UpdateInvestedAmount(ctx, userId, companyId, amount); err != nil {
				m.reportError("Update investment", err)
			} else if !updated {
				fmt.Fprintln(m.out, "No such investment.")
			} else {
				fmt.Fprintln(m.out, "Updated.")
			}
		case "4":
			userId, ok := m.promptInt("User id")
			if !ok {
				break
			}
			companyId, ok := m.promptInt("Company id")
			if !ok {
				break
			}
			if !m.confirmDelete() {
				break
			}
			if deleted, err := m.db.DeleteRelation(ctx, userId, companyId); err != nil {
				m.reportError("End investment", err)
			} else if !deleted {
				fmt.Fprintln(m.out, "No such investment.")
			} else {
				fmt.Fprintln(m.out, "Ended.")
			}
		case "0":
			return
		default:
			fmt.Fprintf(m.out, "Unknown option %q\n", choice)
		}
	}
}

// --- market ---

func (m *Menu) marketMenu(ctx context.Context) {
	for {
		common.PrintHeader("MARKET PRICES", common.DefaultWidth)
		fmt.Fprintln(m.out, "1. Refresh cache  2. Quote symbol  3. Set price  4. Show all  0. Back")
		choice, ok := m.promptString("Choice")
		if !ok {
			return
		}
		switch choice {
		case "1":
			m.market.UpdatePrices()
			fmt.Fprintf(m.out, "Cache holds %d symbols\n", len(m.market.Snapshot()))
		case "2":
			symbol, ok := m.promptString("Symbol")
			if !ok {
				break
			}
			symbol = strings.ToUpper(symbol)
			if price, found := m.market.GetPrice(symbol); found {
				fmt.Fprintf(m.out, "%s = %s\n", symbol, price)
				break
			}
			price, found, err := m.db.GetMarketPrice(ctx, symbol)
			switch {
			case err != nil:
				m.reportError("Quote", err)
			case !found:
				fmt.Fprintf(m.out, "No price for %s\n", symbol)
			default:
				fmt.Fprintf(m.out, "%s = %s (persisted)\n", symbol, price)
			}
		case "3":
			symbol, ok := m.promptString("Symbol")
			if !ok {
				break
			}
			price, ok := m.promptDecimal("Price")
			if !ok {
				break
			}
			symbol = strings.ToUpper(symbol)
			m.market.SetPrice(symbol, price)
			if err := m.db.SaveMarketPrice(ctx, symbol, price); err != nil {
				m.reportError("Save price", err)
			} else {
				fmt.Fprintln(m.out, "Saved.")
			}
		case "4":
			report.New(m.out).MarketReport(m.market.Snapshot())
		case "0":
			return
		default:
			fmt.Fprintf(m.out, "Unknown option %q\n", choice)
		}
	}
}

// --- reports and export ---

func (m *Menu) reportMenu(ctx context.Context) {
	common.PrintHeader("REPORTS", common.DefaultWidth)
	rep := report.New(m.out)

	companies, err := m.db.GetCompanies(ctx)
	if err != nil {
		m.reportError("Company report", err)
		return
	}
	holdingsByCompany := make(map[int][]models.Holding, len(companies))
	for _, c := range companies {
		holdings, err := m.db.AssetsByCompany(ctx, c.Id)
		if err != nil {
			m.reportError("Company holdings", err)
			return
		}
		holdingsByCompany[c.Id] = holdings
	}
	rep.CompanyReport(companies, holdingsByCompany)
	rep.MarketReport(m.market.Snapshot())
}

func (m *Menu) runExport(ctx context.Context) {
	if err := export.WriteFlatFile(ctx, m.db, m.exportPath); err != nil {
		m.reportError("Export", err)
		return
	}
	fmt.Fprintf(m.out, "Exported to %s\n", m.exportPath)
	zap.L().Info("Portfolio exported", zap.String("path", m.exportPath))
}
