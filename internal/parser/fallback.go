package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"lentabot/internal/models"
)

// bulkOfferRe matches repeated "<store code> <address> <price>₽" triples in
// flattened page text. It trades precision for resilience: the interactive
// store widget is gone, so the page text is all that is left to mine.
var bulkOfferRe = regexp.MustCompile(`(ТК\d+)[^0-9]+(.+?)(\d+(?:[.,]\d{1,2})?)\s*₽`)

// ParseStoreOffersFromText mines store offers directly out of page text.
// At most limit offers are returned, in text order.
func ParseStoreOffersFromText(text string, limit int) []models.StoreOffer {
	offers := []models.StoreOffer{}

	for _, match := range bulkOfferRe.FindAllStringSubmatch(text, -1) {
		if len(offers) >= limit {
			break
		}

		price, err := strconv.ParseFloat(strings.ReplaceAll(match[3], ",", "."), 64)
		if err != nil || price <= 0 {
			continue
		}

		offer := models.StoreOffer{
			Store:   match[1],
			Address: strings.TrimSpace(match[2]),
			Price:   price,
		}
		if offer.Valid() {
			offers = append(offers, offer)
		}
	}

	return offers
}

// ParseStoreOffersFromHTML flattens an HTML document to visible text and
// runs the bulk offer pass over it.
func ParseStoreOffersFromHTML(html string, limit int) []models.StoreOffer {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ParseStoreOffersFromText(html, limit)
	}

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		text = html
	}

	return ParseStoreOffersFromText(text, limit)
}
