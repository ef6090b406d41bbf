package domain

import "github.com/shopspring/decimal"

// UseNumericJSON makes every decimal encode as a plain JSON number, the way
// the storefront sends prices. It sets a process-wide shopspring/decimal
// option, so binaries call it once at startup before serving.
func UseNumericJSON() {
	decimal.MarshalJSONWithoutQuotes = true
}
