package export

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"crypto-portfolio-go/internal/database"

	"go.uber.org/zap"
)

// WriteFlatFile dumps users, companies, assets, relations, and market prices
// to a pipe-delimited text file, replacing any previous export at path.
func WriteFlatFile(ctx context.Context, db *database.Service, path string) error {
	zap.L().Info("Writing flat-file export", zap.String("path", path))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create export file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			zap.L().Warn("Failed to close export file", zap.Error(err))
		}
	}()

	w := bufio.NewWriter(f)

	fmt.Fprintln(w, "# CRYPTO PORTFOLIO DATA EXPORT")
	fmt.Fprintf(w, "# Generated: %s\n\n", time.Now().Format("2006-01-02"))

	users, err := db.GetUsers(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "## USERS")
	for _, u := range users {
		fmt.Fprintf(w, "USER|%d|%s|%s\n", u.Id, u.Name, u.Email)
	}

	companies, err := db.GetCompanies(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\n## COMPANIES")
	for _, c := range companies {
		fmt.Fprintf(w, "COMPANY|%d|%s|%s\n", c.Id, c.Name, c.Identifier)
	}

	assets, err := db.GetAssets(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\n## CRYPTO ASSETS")
	for _, a := range assets {
		fmt.Fprintf(w, "ASSET|%s|%s|%s|%s\n", a.Name, a.Symbol, a.Quantity.String(), a.Price.String())
	}

	fmt.Fprintln(w, "\n## RELATIONS")
	for _, u := range users {
		relations, err := db.RelationsByUser(ctx, u.Id)
		if err != nil {
			return err
		}
		for _, rel := range relations {
			fmt.Fprintf(w, "RELATION|%d|%d|%s|%s\n",
				rel.UserId, rel.CompanyId, rel.InvestedAmount.String(), rel.StartDate.Format("2006-01-02"))
		}
	}

	prices, err := db.AllMarketPrices(ctx)
	if err != nil {
		return err
	}
	symbols := make([]string, 0, len(prices))
	for symbol := range prices {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	fmt.Fprintln(w, "\n## MARKET PRICES")
	for _, symbol := range symbols {
		fmt.Fprintf(w, "PRICE|%s|%s\n", symbol, prices[symbol].String())
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("unable to flush export file: %w", err)
	}

	zap.L().Info("Export written",
		zap.Int("users", len(users)),
		zap.Int("companies", len(companies)),
		zap.Int("assets", len(assets)))
	return nil
}
