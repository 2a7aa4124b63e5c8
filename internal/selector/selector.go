package selector

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Cascade is an ordered list of candidate locating strategies for one
// logical UI target. Order encodes trial priority; the first strategy that
// matches at least one element wins. The target site exposes no stable DOM
// contract, so adding a candidate to a cascade is the designed extension
// point when the site changes.
type Cascade struct {
	Name       string
	Strategies []string
}

// Scope is anything a selector can be evaluated against: a whole page or a
// single element subtree. The indirection keeps Resolve testable against
// fixture scopes.
type Scope interface {
	Locator(selector string) playwright.Locator
}

type pageScope struct {
	page playwright.Page
}

func (s pageScope) Locator(sel string) playwright.Locator {
	return s.page.Locator(sel)
}

type locatorScope struct {
	locator playwright.Locator
}

func (s locatorScope) Locator(sel string) playwright.Locator {
	return s.locator.Locator(sel)
}

// PageScope adapts a page into a resolution scope.
func PageScope(page playwright.Page) Scope {
	return pageScope{page: page}
}

// LocatorScope adapts an already-resolved element into a resolution scope.
func LocatorScope(locator playwright.Locator) Scope {
	return locatorScope{locator: locator}
}

// Match is a successful resolution: the winning locator, the strategy that
// produced it and how many elements it matched.
type Match struct {
	Locator  playwright.Locator
	Strategy string
	Count    int
}

// Resolve tries each strategy of the cascade in order and returns the first
// one matching at least one element. The timeout applies per strategy, not
// to the cascade as a whole. A zero timeout skips the
// attachment wait and only checks the current element count, which suits
// presence probes where nothing new is expected to render.
//
// Resolution failure is an ordinary outcome, not an error: the second
// return is false when every strategy in the cascade came up empty.
func Resolve(scope Scope, cascade Cascade, timeout time.Duration) (Match, bool) {
	for _, strategy := range cascade.Strategies {
		locator := scope.Locator(strategy)

		if timeout > 0 {
			err := locator.First().WaitFor(playwright.LocatorWaitForOptions{
				State:   playwright.WaitForSelectorStateAttached,
				Timeout: playwright.Float(float64(timeout.Milliseconds())),
			})
			if err != nil {
				continue
			}
		}

		count, err := locator.Count()
		if err != nil || count == 0 {
			continue
		}

		return Match{Locator: locator, Strategy: strategy, Count: count}, true
	}

	return Match{}, false
}
