package report

import (
	"fmt"
	"io"
	"strings"

	"crypto-portfolio-go/internal/models"

	"github.com/shopspring/decimal"
)

const width = 60

// Report renders human-readable summaries. It is pure formatting: empty
// inputs produce a minimal report, never an error.
type Report struct {
	w io.Writer
}

func New(w io.Writer) *Report {
	return &Report{w: w}
}

func (r *Report) header(title string) {
	fmt.Fprintln(r.w, strings.Repeat("=", width))
	fmt.Fprintln(r.w, title)
	fmt.Fprintln(r.w, strings.Repeat("=", width))
}

// WalletReport lists a wallet's holdings with per-asset and total values.
func (r *Report) WalletReport(wallet models.Wallet, holdings []models.Holding) {
	r.header(fmt.Sprintf("WALLET REPORT - %s (#%d, user %d)", wallet.Name, wallet.Id, wallet.UserId))

	if len(holdings) == 0 {
		fmt.Fprintln(r.w, "  (empty wallet)")
		return
	}

	total := decimal.Zero
	for _, h := range holdings {
		value := h.Value()
		total = total.Add(value)
		fmt.Fprintf(r.w, "  %-10s %-20s qty %12s @ %12s = %14s\n",
			h.Asset.Symbol, h.Asset.Name, h.Quantity.String(), h.Asset.Price.String(), value.StringFixed(2))
	}
	fmt.Fprintln(r.w, strings.Repeat("-", width))
	fmt.Fprintf(r.w, "  TOTAL VALUE: %s\n", total.StringFixed(2))
}

// TransactionReport lists transactions, most recent first.
func (r *Report) TransactionReport(transactions []models.Transaction) {
	r.header("TRANSACTION REPORT")

	if len(transactions) == 0 {
		fmt.Fprintln(r.w, "  (no transactions)")
		return
	}

	for _, tx := range transactions {
		fmt.Fprintf(r.w, "  #%-5d %-4s %12s %-8s at %s\n",
			tx.Id, tx.Type, tx.Amount.String(), tx.AssetSymbol,
			tx.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(r.w, "  %d transaction(s)\n", len(transactions))
}

// CompanyReport lists companies and, when provided, their asset allocations.
// holdingsByCompany may be nil or sparse; companies without entries render
// without an allocation block.
func (r *Report) CompanyReport(companies []models.Company, holdingsByCompany map[int][]models.Holding) {
	r.header("COMPANY REPORT")

	if len(companies) == 0 {
		fmt.Fprintln(r.w, "  (no companies)")
		return
	}

	for _, c := range companies {
		fmt.Fprintf(r.w, "  #%-5d %-25s %s\n", c.Id, c.Name, c.Identifier)
		for _, h := range holdingsByCompany[c.Id] {
			fmt.Fprintf(r.w, "      %-10s allocated %12s (value %s)\n",
				h.Asset.Symbol, h.Quantity.String(), h.Value().StringFixed(2))
		}
	}
}

// MarketReport lists persisted market prices by symbol.
func (r *Report) MarketReport(prices map[string]decimal.Decimal) {
	r.header("MARKET PRICES")

	if len(prices) == 0 {
		fmt.Fprintln(r.w, "  (no prices)")
		return
	}
	for symbol, price := range prices {
		fmt.Fprintf(r.w, "  %-10s %s\n", symbol, price.String())
	}
}
