// Package currency lists the display currencies a user may pick and formats
// amounts in them.
package currency

import (
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

const (
	// DefaultCurrency is the fallback currency code (USD)
	DefaultCurrency = "USD"
	// DefaultDecimals is the default number of decimal places for currencies
	DefaultDecimals = 2
)

// Meta holds currency-specific display metadata.
type Meta struct {
	Decimals int
	Symbol   string
}

// Registry maps ISO 4217 codes to their display metadata.
type Registry struct {
	mu    sync.RWMutex
	items map[string]Meta
}

// NewRegistry creates a registry holding the default currencies.
func NewRegistry() *Registry {
	r := &Registry{items: map[string]Meta{
		"USD": {Decimals: 2, Symbol: "$"},
		"EUR": {Decimals: 2, Symbol: "€"},
		"JPY": {Decimals: 0, Symbol: "¥"},
		"KWD": {Decimals: 3, Symbol: "د.ك"},
		"EGP": {Decimals: 2, Symbol: "E£"},
		"GBP": {Decimals: 2, Symbol: "£"},
		"CAD": {Decimals: 2, Symbol: "C$"},
		"AUD": {Decimals: 2, Symbol: "A$"},
		"CHF": {Decimals: 2, Symbol: "CHF"},
		"CNY": {Decimals: 2, Symbol: "¥"},
		"INR": {Decimals: 2, Symbol: "₹"},
	}}
	return r
}

// Register adds or replaces a currency.
func (r *Registry) Register(code string, meta Meta) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[strings.ToUpper(code)] = meta
}

// Get returns the metadata for code. Unknown codes get the default decimals
// and the code itself as symbol.
func (r *Registry) Get(code string) Meta {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if m, ok := r.items[strings.ToUpper(code)]; ok {
		return m
	}
	return Meta{Decimals: DefaultDecimals, Symbol: code}
}

func (r *Registry) IsSupported(code string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[strings.ToUpper(code)]
	return ok
}

// ListSupported returns the registered codes in alphabetical order.
func (r *Registry) ListSupported() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]string, 0, len(r.items))
	for code := range r.items {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Format renders amount with the currency's symbol and decimal places.
func (r *Registry) Format(amount decimal.Decimal, code string) string {
	m := r.Get(code)
	s := amount.Abs().StringFixed(int32(m.Decimals))
	if amount.IsNegative() {
		return "-" + m.Symbol + s
	}
	return m.Symbol + s
}

var global = NewRegistry()

func Register(code string, meta Meta) { global.Register(code, meta) }

func Get(code string) Meta { return global.Get(code) }

func IsSupported(code string) bool { return global.IsSupported(code) }

func ListSupported() []string { return global.ListSupported() }

func Format(amount decimal.Decimal, code string) string { return global.Format(amount, code) }
