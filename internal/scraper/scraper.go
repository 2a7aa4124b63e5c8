// Package scraper drives lenta.com through a real browser session and
// extracts product and per-store price data. The site's DOM has no stable
// contract, so every access point goes through a selector cascade and every
// field extractor tolerates failure. Public operations never return errors
// and never panic: failure is observable only as an empty (or partial)
// result plus diagnostic logging.
package scraper

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	"lentabot/internal/browser"
	"lentabot/internal/config"
	"lentabot/internal/ratelimit"
)

var (
	// ErrNavigationFailed means every candidate URL failed to load.
	ErrNavigationFailed = errors.New("all candidate URLs failed to load")
	// ErrSelectorExhausted means every strategy of a required cascade came
	// up empty.
	ErrSelectorExhausted = errors.New("no selector strategy matched")
	// ErrInteractionFailed means a click or fill on a resolved element
	// failed, usually because the element went stale.
	ErrInteractionFailed = errors.New("interaction with resolved element failed")
)

// sessionFunc acquires a browser session scoped to fn. Swappable so tests
// can hand the scraper a fixture page instead of a live browser.
type sessionFunc func(fn func(page playwright.Page) error) error

type Service struct {
	cfg     config.ScraperConfig
	logger  *slog.Logger
	limiter *ratelimit.Limiter

	withSession sessionFunc
}

func New(cfg *config.Config, logger *slog.Logger) *Service {
	browserOpts := &browser.Options{
		Headless:       cfg.Browser.Headless,
		Timeout:        cfg.Browser.Timeout,
		UserAgent:      cfg.Browser.UserAgent,
		ViewportWidth:  cfg.Browser.ViewportWidth,
		ViewportHeight: cfg.Browser.ViewportHeight,
		AcceptLanguage: cfg.Browser.AcceptLanguage,
		TimezoneID:     cfg.Browser.TimezoneID,
		Locale:         cfg.Browser.Locale,
	}

	log := logger.With("component", "scraper")

	return &Service{
		cfg:     cfg.Scraper,
		logger:  log,
		limiter: ratelimit.New(cfg.Scraper.RateLimitMin, cfg.Scraper.RateLimitMax),
		withSession: func(fn func(page playwright.Page) error) error {
			return browser.WithSession(browserOpts, log, fn)
		},
	}
}

// run brackets one logical operation: rate limiting, a fresh session, an
// operation-scoped logger. fn failures are logged, never propagated.
func (s *Service) run(ctx context.Context, op string, fn func(page playwright.Page, log *slog.Logger) error) {
	log := s.logger.With("op", op, "op_id", uuid.NewString())

	if err := s.limiter.Wait(ctx); err != nil {
		log.Warn("operation cancelled while rate limited", "error", err)
		return
	}

	start := time.Now()
	err := s.withSession(func(page playwright.Page) error {
		return fn(page, log)
	})
	if err != nil {
		log.Error("operation failed", "error", err, "elapsed", time.Since(start))
		return
	}

	log.Info("operation completed", "elapsed", time.Since(start))
}
