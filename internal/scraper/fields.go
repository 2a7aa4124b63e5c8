package scraper

import (
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"lentabot/internal/parser"
	"lentabot/internal/selector"
)

// productIDAttrs are tried on the card element before falling back to
// parsing the product hyperlink.
var productIDAttrs = []string{"data-id", "data-product-id", "data-sku"}

// extractProductID resolves the card's identifier: explicit data attributes
// first, then a numeric-or-slug token mined from the product link href. The
// result is opaque to callers either way.
func extractProductID(card playwright.Locator) (string, bool) {
	for _, attr := range productIDAttrs {
		value, err := card.GetAttribute(attr)
		if err == nil && value != "" {
			return value, true
		}
	}

	match, ok := selector.Resolve(selector.LocatorScope(card), selector.ProductLink, 0)
	if !ok {
		return "", false
	}

	href, err := match.Locator.First().GetAttribute("href")
	if err != nil || href == "" {
		return "", false
	}

	return parser.ProductIDFromHref(href)
}

// extractProductName walks the name cascade strategy by strategy until one
// yields non-empty text. Resolution alone is not enough: a matched element
// with blank text must not shadow a later strategy that carries the title.
func extractProductName(card playwright.Locator) (string, bool) {
	scope := selector.LocatorScope(card)

	for _, strategy := range selector.ProductName.Strategies {
		locator := scope.Locator(strategy)

		count, err := locator.Count()
		if err != nil || count == 0 {
			continue
		}

		text, err := locator.First().TextContent()
		if err != nil {
			continue
		}

		if name := strings.TrimSpace(text); name != "" {
			return name, true
		}
	}

	return "", false
}

// extractVolume mines a quantity+unit token out of the card's full text.
func extractVolume(card playwright.Locator) (string, bool) {
	text, err := card.TextContent()
	if err != nil {
		return "", false
	}
	return parser.ParseVolume(text)
}

// extractCardPrice reads a raw price string from within one card. The value
// stays unparsed on the Product record.
func extractCardPrice(card playwright.Locator) (string, bool) {
	match, ok := selector.Resolve(selector.LocatorScope(card), selector.Price, 0)
	if !ok {
		return "", false
	}

	text, err := match.Locator.First().TextContent()
	if err != nil {
		return "", false
	}

	price := strings.TrimSpace(text)
	return price, price != ""
}

// extractPagePrice reads and parses the page-level price region. After a
// store is activated the selected store's price renders here, not inside
// the store entry.
func extractPagePrice(page playwright.Page, timeout time.Duration) (float64, bool) {
	match, ok := selector.Resolve(selector.PageScope(page), selector.Price, timeout)
	if !ok {
		return 0, false
	}

	text, err := match.Locator.First().TextContent()
	if err != nil {
		return 0, false
	}

	return parser.ParsePrice(text)
}

// extractInStock reports availability. The default is in stock; only an
// explicit unavailability marker flips it.
func extractInStock(page playwright.Page) bool {
	_, found := selector.Resolve(selector.PageScope(page), selector.OutOfStock, 0)
	return !found
}
