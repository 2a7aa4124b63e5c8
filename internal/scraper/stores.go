package scraper

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/playwright-community/playwright-go"

	"lentabot/internal/models"
	"lentabot/internal/parser"
	"lentabot/internal/selector"
)

// productURLTemplates are the candidate product-page URL shapes. The id is
// opaque: numeric ids and slugs are both passed through unchanged.
var productURLTemplates = []string{
	"%s/product/%s/",
	"%s/catalog/product/%s/",
	"%s/product/%s",
}

// StoreOffers walks the store-selector widget on the product page and
// harvests one price per store. Same contract as SearchProducts: a slice,
// possibly empty, never an error. Partial results survive a mid-loop
// abort.
func (s *Service) StoreOffers(ctx context.Context, productID string) []models.StoreOffer {
	offers := []models.StoreOffer{}

	s.run(ctx, "store-offers", func(page playwright.Page, log *slog.Logger) error {
		urls := make([]string, 0, len(productURLTemplates))
		for _, tmpl := range productURLTemplates {
			urls = append(urls, fmt.Sprintf(tmpl, s.cfg.BaseURL, productID))
		}

		if err := navigate(page, urls, s.cfg.NavigationTimeout, log); err != nil {
			return err
		}
		page.WaitForTimeout(3000)

		collected, err := s.iterateStores(page, log)
		if err != nil {
			log.Warn("store widget unavailable, falling back to bulk page scan", "error", err)
			collected = s.bulkScanStores(page, log)
		}

		offers = collected
		return nil
	})

	return offers
}

// iterateStores runs the interactive tier: open the widget, and per store
// entry snapshot its text, activate it, wait for the page price to settle,
// re-extract price and stock, reopen the widget for the next entry.
//
// Failure severity is graded. A dead control or an empty store list aborts
// the tier with an error so the bulk fallback can run. A failure on one
// entry skips that entry only. A failed reopen terminates the loop early
// with whatever was already collected: partial results are never
// discarded.
func (s *Service) iterateStores(page playwright.Page, log *slog.Logger) ([]models.StoreOffer, error) {
	control, ok := selector.Resolve(selector.PageScope(page), selector.StoreControl, s.cfg.SelectorTimeout)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSelectorExhausted, selector.StoreControl.Name)
	}

	opener := control.Locator.First()
	if err := opener.Click(); err != nil {
		return nil, fmt.Errorf("%w: open store selector: %v", ErrInteractionFailed, err)
	}
	page.WaitForTimeout(2000)

	items, ok := selector.Resolve(selector.PageScope(page), selector.StoreItems, s.cfg.SelectorTimeout)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSelectorExhausted, selector.StoreItems.Name)
	}

	count := items.Count
	if count > s.cfg.MaxStores {
		count = s.cfg.MaxStores
	}

	log.Info("store entries resolved", "strategy", items.Strategy, "count", items.Count, "examined", count)

	offers := []models.StoreOffer{}

	for i := 0; i < count; i++ {
		entry := items.Locator.Nth(i)

		// Snapshot before clicking: activating the entry may replace the
		// widget DOM and leave the handle stale.
		snapshot, err := entry.TextContent()
		if err != nil {
			log.Debug("store entry text unavailable, skipping", "index", i, "error", err)
			continue
		}
		line := parser.ParseStoreLine(snapshot)

		if err := entry.Click(); err != nil {
			log.Debug("store entry click failed, skipping", "index", i, "error", err)
			continue
		}
		page.WaitForTimeout(float64(s.cfg.SettleDelay.Milliseconds()))

		price, priceOK := extractPagePrice(page, s.cfg.PriceWaitTimeout)
		inStock := extractInStock(page)

		offer := models.StoreOffer{Store: line.Store, Address: line.Address, Price: price}
		if priceOK && inStock && offer.Valid() {
			offers = append(offers, offer)
			log.Debug("offer recorded", "store", offer.Store, "price", offer.Price)
		} else {
			log.Debug("store skipped", "index", i, "store", line.Store,
				"price_found", priceOK, "in_stock", inStock)
		}

		if i < count-1 {
			if err := opener.Click(); err != nil {
				log.Warn("could not reopen store selector, returning partial results",
					"collected", len(offers), "error", err)
				break
			}
			page.WaitForTimeout(1000)
		}
	}

	log.Info("store iteration finished", "offers", len(offers))
	return offers, nil
}

// bulkScanStores is the degraded tier: no widget interaction, just the full
// page text mined for "<store code> <address> <price>₽" triples.
func (s *Service) bulkScanStores(page playwright.Page, log *slog.Logger) []models.StoreOffer {
	html, err := page.Content()
	if err != nil {
		log.Error("could not read page content for bulk scan", "error", err)
		return []models.StoreOffer{}
	}

	offers := parser.ParseStoreOffersFromHTML(html, s.cfg.MaxStores)
	log.Info("bulk scan finished", "offers", len(offers))
	return offers
}
