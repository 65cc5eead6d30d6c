package market

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// SymbolPrice is one entry of the markets seed file.
type SymbolPrice struct {
	Symbol string  `yaml:"symbol"`
	Price  float64 `yaml:"price"`
}

type seedFile struct {
	Markets []SymbolPrice `yaml:"markets"`
}

// defaultSeed is used when no seed file is configured or readable.
var defaultSeed = []SymbolPrice{
	{Symbol: "BTC", Price: 60000},
	{Symbol: "ETH", Price: 3000},
	{Symbol: "SOL", Price: 150},
	{Symbol: "ADA", Price: 0.45},
}

// Market is an in-memory symbol-to-price cache. It is deliberately
// independent of the persisted market_prices table; the cache answers "latest
// known price" for the running process only. Guarded for concurrent use even
// though the console shell is single-caller.
type Market struct {
	mu       sync.RWMutex
	prices   map[string]decimal.Decimal
	seedFile string
}

func New(seedFilePath string) *Market {
	return &Market{
		prices:   make(map[string]decimal.Decimal),
		seedFile: seedFilePath,
	}
}

// UpdatePrices seeds or refreshes the cache from the configured seed file,
// falling back to built-in defaults when the file is absent or malformed.
// Symbols not present in the seed keep their previously set prices.
func (m *Market) UpdatePrices() {
	seed := defaultSeed
	if m.seedFile != "" {
		loaded, err := loadSeedFile(m.seedFile)
		if err != nil {
			zap.L().Warn("Falling back to built-in market seed",
				zap.String("seed_file", m.seedFile),
				zap.Error(err))
		} else {
			seed = loaded
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range seed {
		m.prices[entry.Symbol] = decimal.NewFromFloat(entry.Price)
	}
	zap.L().Info("Market prices updated", zap.Int("symbols", len(seed)))
}

// SetPrice stores the latest price for a symbol.
func (m *Market) SetPrice(symbol string, price decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prices[symbol] = price
}

// GetPrice returns the cached price and whether the symbol is known.
func (m *Market) GetPrice(symbol string) (decimal.Decimal, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	price, ok := m.prices[symbol]
	return price, ok
}

// Snapshot returns a copy of the cache contents.
func (m *Market) Snapshot() map[string]decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]decimal.Decimal, len(m.prices))
	for symbol, price := range m.prices {
		out[symbol] = price
	}
	return out
}

func loadSeedFile(path string) ([]SymbolPrice, error) {
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		path = filepath.Join(wd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}

	var parsed seedFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", path, err)
	}

	for i, entry := range parsed.Markets {
		if entry.Symbol == "" {
			return nil, fmt.Errorf("market entry at index %d missing symbol", i)
		}
		if entry.Price <= 0 {
			return nil, fmt.Errorf("market entry %s has non-positive price", entry.Symbol)
		}
	}
	if len(parsed.Markets) == 0 {
		return nil, fmt.Errorf("seed file %s contains no markets", path)
	}

	return parsed.Markets, nil
}
