// Package parser holds the pure normalization logic for everything the
// scraper reads off the page: prices, volume tokens, store lines and
// product identifiers. Every function returns an explicit found/not-found
// outcome; none of them can fail loudly on malformed text.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	priceRe = regexp.MustCompile(`\d+(?:[.,]\d{1,2})?`)

	// Longer units first: Go alternation is leftmost-first, so "мл" must be
	// tried before "л" or "500 мл" would yield "500 м" + a dangling rune.
	volumeRe = regexp.MustCompile(`(?i)\d+(?:[.,]\d+)?\s*(?:мл|ml|л|l)`)

	storeCodeRe = regexp.MustCompile(`ТК\s*\d+`)

	productIDRe = regexp.MustCompile(`^\d+$`)
)

// ParsePrice pulls a price in currency units out of raw page text such as
// "599 ₽", "599,99 ₽" or "1 234,50 ₽". Spaces, non-breaking spaces and
// currency glyphs are stripped before matching; a decimal comma is
// normalized to a dot. Returns false when no positive amount is present.
func ParsePrice(text string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', ' ', ' ', '\t', '\n', '₽':
			return -1
		}
		return r
	}, text)

	match := priceRe.FindString(cleaned)
	if match == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil || value <= 0 {
		return 0, false
	}

	return value, true
}

// ParseVolume finds a quantity+unit token ("0.5 л", "500 мл", "0,7 l") in
// free-form card text. The token is returned verbatim, original spacing
// included.
func ParseVolume(text string) (string, bool) {
	for _, idx := range volumeRe.FindAllStringIndex(text, -1) {
		match := text[idx[0]:idx[1]]

		// Reject matches that run into a longer word, e.g. "0.5 литра"
		// matching "0.5 л". \b does not understand Cyrillic, so the
		// boundary check is done by hand.
		rest := text[idx[1]:]
		if rest != "" {
			next := []rune(rest)[0]
			if unicode.IsLetter(next) || unicode.IsDigit(next) {
				continue
			}
		}

		return match, true
	}

	return "", false
}

// StoreLine is the parsed form of one store entry's visible text.
type StoreLine struct {
	Store   string
	Address string
}

// ParseStoreLine splits a store entry snapshot into store code and address.
// When a "ТК<число>" token is present it becomes the store code (spaces
// collapsed) and everything after it, trimmed of separators, is the
// address. Without such a token the line splits on the first comma: left
// side store name, right side address.
func ParseStoreLine(text string) StoreLine {
	text = strings.TrimSpace(text)

	if loc := storeCodeRe.FindStringIndex(text); loc != nil {
		store := strings.ReplaceAll(text[loc[0]:loc[1]], " ", "")
		address := strings.TrimFunc(text[loc[1]:], func(r rune) bool {
			return r == ',' || r == '-' || r == '–' || r == '—' || unicode.IsSpace(r)
		})
		return StoreLine{Store: store, Address: address}
	}

	if before, after, found := strings.Cut(text, ","); found {
		return StoreLine{
			Store:   strings.TrimSpace(before),
			Address: strings.TrimSpace(after),
		}
	}

	return StoreLine{Store: text}
}

// ProductIDFromHref digs a product identifier out of a catalog hyperlink.
// A purely numeric path segment wins; otherwise the last meaningful path
// segment is taken as an opaque slug. Either form is passed through to the
// price-lookup URL templates unchanged.
func ProductIDFromHref(href string) (string, bool) {
	trimmed := strings.SplitN(href, "?", 2)[0]
	segments := strings.Split(trimmed, "/")

	for _, segment := range segments {
		if productIDRe.MatchString(segment) {
			return segment, true
		}
	}

	for i := len(segments) - 1; i >= 0; i-- {
		segment := segments[i]
		switch segment {
		case "", "product", "catalog":
			continue
		}
		if strings.Contains(segment, ".") || strings.Contains(segment, ":") {
			continue
		}
		return segment, true
	}

	return "", false
}
