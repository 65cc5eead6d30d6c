package report

import (
	"strings"
	"testing"
	"time"

	"crypto-portfolio-go/internal/models"

	"github.com/shopspring/decimal"
)

func TestWalletReportTotals(t *testing.T) {
	var sb strings.Builder
	r := New(&sb)

	wallet := models.Wallet{Id: 1, UserId: 7, Name: "Main Vault"}
	holdings := []models.Holding{
		{
			Asset:    models.CryptoAsset{Symbol: "BTC", Name: "Bitcoin", Price: decimal.NewFromInt(60000)},
			Quantity: decimal.NewFromInt(2),
		},
		{
			Asset:    models.CryptoAsset{Symbol: "ETH", Name: "Ethereum", Price: decimal.NewFromInt(3000)},
			Quantity: decimal.NewFromInt(5),
		},
	}

	r.WalletReport(wallet, holdings)
	out := sb.String()

	if !strings.Contains(out, "Main Vault") {
		t.Errorf("report missing wallet name:\n%s", out)
	}
	if !strings.Contains(out, "TOTAL VALUE: 135000.00") {
		t.Errorf("expected total 135000.00 (2*60000 + 5*3000):\n%s", out)
	}
}

func TestWalletReportEmpty(t *testing.T) {
	var sb strings.Builder
	New(&sb).WalletReport(models.Wallet{Id: 2, Name: "Empty"}, nil)

	if !strings.Contains(sb.String(), "(empty wallet)") {
		t.Errorf("expected empty-wallet marker:\n%s", sb.String())
	}
}

func TestTransactionReport(t *testing.T) {
	var sb strings.Builder
	transactions := []models.Transaction{
		{
			Id:          3,
			Type:        models.TransactionBuy,
			Amount:      decimal.NewFromFloat(1.5),
			AssetSymbol: "BTC",
			CreatedAt:   time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
		},
	}
	New(&sb).TransactionReport(transactions)
	out := sb.String()

	if !strings.Contains(out, "BUY") || !strings.Contains(out, "BTC") {
		t.Errorf("transaction line missing fields:\n%s", out)
	}
	if !strings.Contains(out, "1 transaction(s)") {
		t.Errorf("missing count line:\n%s", out)
	}
}

func TestCompanyReportWithAllocations(t *testing.T) {
	var sb strings.Builder
	companies := []models.Company{{Id: 10, Name: "DuckCorp", Identifier: "CNPJ-001"}}
	holdings := map[int][]models.Holding{
		10: {{
			Asset:    models.CryptoAsset{Symbol: "BTC", Price: decimal.NewFromInt(100)},
			Quantity: decimal.NewFromInt(4),
		}},
	}

	New(&sb).CompanyReport(companies, holdings)
	out := sb.String()

	if !strings.Contains(out, "DuckCorp") || !strings.Contains(out, "CNPJ-001") {
		t.Errorf("company line missing fields:\n%s", out)
	}
	if !strings.Contains(out, "allocated") || !strings.Contains(out, "400.00") {
		t.Errorf("allocation line missing value:\n%s", out)
	}
}
