package scraper

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/playwright-community/playwright-go"

	"lentabot/internal/models"
	"lentabot/internal/selector"
)

// alcoholCategoryPaths are the candidate catalog sections tried before the
// search is typed. Landing in the right section is best effort: missing all
// of them only means the search runs site-wide.
var alcoholCategoryPaths = []string{
	"/catalog/alkogol/",
	"/catalog/alkogolnye-napitki/",
	"/catalog/napitki/alkogol/",
}

// SearchProducts looks the query up in the catalog and returns the products
// in DOM order, capped by config. It never panics and never returns an
// error: any unrecoverable failure yields an empty slice.
func (s *Service) SearchProducts(ctx context.Context, query string) []models.Product {
	products := []models.Product{}

	s.run(ctx, "search", func(page playwright.Page, log *slog.Logger) error {
		found, err := s.searchOnPage(page, query, log)
		if err != nil {
			return err
		}
		products = found
		return nil
	})

	return products
}

func (s *Service) searchOnPage(page playwright.Page, query string, log *slog.Logger) ([]models.Product, error) {
	if err := navigate(page, []string{s.cfg.BaseURL}, s.cfg.NavigationTimeout, log); err != nil {
		return nil, err
	}
	page.WaitForTimeout(3000)

	s.selectMoscowRegion(page, log)
	s.openAlcoholCategory(page, log)

	if err := s.submitSearch(page, query, log); err != nil {
		return nil, err
	}

	return s.collectProducts(page, log)
}

// selectMoscowRegion pins the session to the Moscow region. Purely best
// effort: the region is often preselected and every failure path just
// leaves the current region in place.
func (s *Service) selectMoscowRegion(page playwright.Page, log *slog.Logger) {
	match, ok := selector.Resolve(selector.PageScope(page), selector.RegionControl, s.cfg.SelectorTimeout)
	if !ok {
		log.Debug("region control not found, assuming region preselected")
		return
	}

	if err := match.Locator.First().Click(); err != nil {
		log.Debug("region control click failed", "error", err)
		return
	}
	page.WaitForTimeout(1000)

	option, ok := selector.Resolve(selector.PageScope(page), selector.RegionOption, s.cfg.PriceWaitTimeout)
	if !ok {
		log.Debug("region option not found")
		return
	}

	if err := option.Locator.First().Click(); err != nil {
		log.Debug("region option click failed", "error", err)
		return
	}
	page.WaitForTimeout(1000)

	log.Info("moscow region selected")
}

// openAlcoholCategory walks the candidate category URLs. Failure is logged
// and ignored.
func (s *Service) openAlcoholCategory(page playwright.Page, log *slog.Logger) {
	urls := make([]string, 0, len(alcoholCategoryPaths))
	for _, path := range alcoholCategoryPaths {
		urls = append(urls, s.cfg.BaseURL+path)
	}

	if err := navigate(page, urls, s.cfg.NavigationTimeout/2, log); err != nil {
		log.Warn("could not open alcohol category, searching site-wide", "error", err)
		return
	}
	page.WaitForTimeout(2000)
}

// submitSearch fills the search field and submits with Enter. The field is
// required: without it the operation cannot proceed.
func (s *Service) submitSearch(page playwright.Page, query string, log *slog.Logger) error {
	match, ok := selector.Resolve(selector.PageScope(page), selector.SearchInput, s.cfg.SelectorTimeout)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSelectorExhausted, selector.SearchInput.Name)
	}

	input := match.Locator.First()

	if err := input.Fill(query); err != nil {
		return fmt.Errorf("%w: fill search input: %v", ErrInteractionFailed, err)
	}
	page.WaitForTimeout(1000)

	if err := input.Press("Enter"); err != nil {
		return fmt.Errorf("%w: submit search: %v", ErrInteractionFailed, err)
	}
	page.WaitForTimeout(3000)

	log.Info("search submitted", "query", query)
	return nil
}

// collectProducts resolves the product cards and extracts one Product per
// card. Card-level failures skip that card only; a card without id and name
// is dropped.
func (s *Service) collectProducts(page playwright.Page, log *slog.Logger) ([]models.Product, error) {
	match, ok := selector.Resolve(selector.PageScope(page), selector.ProductCards, s.cfg.SelectorTimeout)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSelectorExhausted, selector.ProductCards.Name)
	}
	page.WaitForTimeout(2000)

	count := match.Count
	if count > s.cfg.MaxSearchResults {
		count = s.cfg.MaxSearchResults
	}

	log.Info("product cards resolved", "strategy", match.Strategy, "count", match.Count, "examined", count)

	products := []models.Product{}

	for i := 0; i < count; i++ {
		card := match.Locator.Nth(i)

		id, okID := extractProductID(card)
		name, okName := extractProductName(card)
		if !okID || !okName {
			log.Debug("card skipped, id or name missing", "index", i)
			continue
		}

		product := models.Product{ID: id, Name: name}
		if volume, ok := extractVolume(card); ok {
			product.Volume = volume
		}
		if price, ok := extractCardPrice(card); ok {
			product.Price = price
		}

		products = append(products, product)
		log.Debug("product extracted", "id", id, "name", name, "volume", product.Volume)
	}

	log.Info("search results collected", "products", len(products))
	return products, nil
}
