package scraper

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"
)

// navigate tries each candidate URL in order and stops at the first one
// whose document-load wait completes. A follow-up network-idle wait is best
// effort: its failure is logged and the page is used as-is. There is no
// backoff between attempts beyond the per-URL timeout itself.
func navigate(page playwright.Page, urls []string, perURLTimeout time.Duration, log *slog.Logger) error {
	var lastErr error

	for _, url := range urls {
		_, err := page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
			Timeout:   playwright.Float(float64(perURLTimeout.Milliseconds())),
		})
		if err != nil {
			log.Debug("candidate URL failed to load", "url", url, "error", err)
			lastErr = err
			continue
		}

		if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
			State:   playwright.LoadStateNetworkidle,
			Timeout: playwright.Float(5000),
		}); err != nil {
			log.Debug("network idle wait failed, proceeding", "url", url, "error", err)
		}

		log.Info("page loaded", "url", url)
		return nil
	}

	if lastErr != nil {
		return fmt.Errorf("%w: last error: %v", ErrNavigationFailed, lastErr)
	}
	return ErrNavigationFailed
}
