package models

// Product is one search result from the catalog. ID is an opaque token: on
// some navigation paths the site exposes a numeric identifier, on others a
// URL slug. Callers must pass it through unchanged.
type Product struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Volume string `json:"volume,omitempty"`
	Price  string `json:"price,omitempty"`
}

// StoreOffer is one store's price for one product. Offers are only
// materialized for in-stock listings with a positive price.
type StoreOffer struct {
	Store   string  `json:"store"`
	Address string  `json:"address"`
	Price   float64 `json:"price"`
}

// Complete reports whether the search result carries the fields required to
// be shown to a user and fed back into a price lookup.
func (p Product) Complete() bool {
	return p.ID != "" && p.Name != ""
}

// Valid reports whether the offer may be recorded.
func (o StoreOffer) Valid() bool {
	return o.Store != "" && o.Price > 0
}
