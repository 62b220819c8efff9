// Package dto holds the data transfer objects exchanged between services,
// repositories and the HTTP layer.
package dto

import "github.com/shopspring/decimal"

func init() {
	// Money goes over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}
