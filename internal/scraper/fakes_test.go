package scraper

import (
	"errors"

	"github.com/playwright-community/playwright-go"
)

// Fixture doubles for playwright pages and locators. They satisfy the
// playwright interfaces via embedding and implement only what the scraper
// touches; anything else panics, which is what a test should do.
//
// The locator interface is embedded through an alias: embedding
// playwright.Locator directly names the field Locator, which collides with
// the fake's own Locator method.
type pwLocator = playwright.Locator

type fakeLoc struct {
	pwLocator

	count   int
	countFn func() int

	text    string
	textFn  func() (string, error)
	textErr error

	attrs    map[string]string
	children map[string]*fakeLoc
	nth      map[int]*fakeLoc

	clickErr error
	onClick  func() error

	fillErr  error
	pressErr error
}

func (f *fakeLoc) resolvedCount() int {
	if f.countFn != nil {
		return f.countFn()
	}
	return f.count
}

func (f *fakeLoc) First() playwright.Locator { return f }

func (f *fakeLoc) WaitFor(options ...playwright.LocatorWaitForOptions) error {
	if f.resolvedCount() == 0 {
		return errors.New("timeout waiting for element")
	}
	return nil
}

func (f *fakeLoc) Count() (int, error) { return f.resolvedCount(), nil }

func (f *fakeLoc) Nth(i int) playwright.Locator {
	if l, ok := f.nth[i]; ok {
		return l
	}
	return &fakeLoc{}
}

func (f *fakeLoc) TextContent(options ...playwright.LocatorTextContentOptions) (string, error) {
	if f.textFn != nil {
		return f.textFn()
	}
	return f.text, f.textErr
}

func (f *fakeLoc) GetAttribute(name string, options ...playwright.LocatorGetAttributeOptions) (string, error) {
	return f.attrs[name], nil
}

func (f *fakeLoc) Click(options ...playwright.LocatorClickOptions) error {
	if f.onClick != nil {
		return f.onClick()
	}
	return f.clickErr
}

func (f *fakeLoc) Fill(value string, options ...playwright.LocatorFillOptions) error {
	return f.fillErr
}

func (f *fakeLoc) Press(key string, options ...playwright.LocatorPressOptions) error {
	return f.pressErr
}

func (f *fakeLoc) Locator(selectorOrLocator interface{}, options ...playwright.LocatorLocatorOptions) playwright.Locator {
	if sel, ok := selectorOrLocator.(string); ok {
		if child, ok := f.children[sel]; ok {
			return child
		}
	}
	return &fakeLoc{}
}

type fakePage struct {
	playwright.Page

	locators map[string]*fakeLoc
	// failURLs lists candidate URLs whose navigation fails; empty means
	// every Goto succeeds. failAll overrides.
	failURLs map[string]bool
	failAll  bool
	content  string
	visited  []string
}

func (p *fakePage) Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error) {
	p.visited = append(p.visited, url)
	if p.failAll || p.failURLs[url] {
		return nil, errors.New("net::ERR_TIMED_OUT")
	}
	return nil, nil
}

func (p *fakePage) WaitForLoadState(options ...playwright.PageWaitForLoadStateOptions) error {
	return nil
}

func (p *fakePage) WaitForTimeout(timeout float64) {}

func (p *fakePage) Locator(sel string, options ...playwright.PageLocatorOptions) playwright.Locator {
	if l, ok := p.locators[sel]; ok {
		return l
	}
	return &fakeLoc{}
}

func (p *fakePage) Content() (string, error) {
	return p.content, nil
}
