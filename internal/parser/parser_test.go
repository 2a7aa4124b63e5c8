package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected float64
		found    bool
	}{
		{name: "plain rubles", text: "599 ₽", expected: 599.00, found: true},
		{name: "decimal comma", text: "599,99 ₽", expected: 599.99, found: true},
		{name: "thousands with space", text: "1 234,50 ₽", expected: 1234.50, found: true},
		{name: "non-breaking space", text: "1 234,50 ₽", expected: 1234.50, found: true},
		{name: "decimal dot", text: "449.90", expected: 449.90, found: true},
		{name: "surrounding text", text: "Цена: 99 ₽ за шт", expected: 99, found: true},
		{name: "empty", text: "", found: false},
		{name: "no digits", text: "нет в наличии", found: false},
		{name: "zero is not a price", text: "0 ₽", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := ParsePrice(tt.text)

			if !tt.found {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.InDelta(t, tt.expected, value, 0.001)
		})
	}
}

func TestParseVolume(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
		found    bool
	}{
		{name: "liters with space", text: "Водка 0.5 л premium", expected: "0.5 л", found: true},
		{name: "milliliters", text: "Настойка сливовая 500 мл", expected: "500 мл", found: true},
		{name: "decimal comma", text: "Вино красное 0,75 л сухое", expected: "0,75 л", found: true},
		{name: "latin unit", text: "Gin 0.7 l London Dry", expected: "0.7 l", found: true},
		{name: "no space before unit", text: "Пиво 450мл", expected: "450мл", found: true},
		{name: "unit inside longer word is skipped", text: "Коньяк 0.5 литра", found: false},
		{name: "no quantity token", text: "Водка особая", found: false},
		{name: "empty", text: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, ok := ParseVolume(tt.text)

			if !tt.found {
				assert.False(t, ok)
				assert.Empty(t, token)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.expected, token)
		})
	}
}

func TestParseStoreLine(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		store   string
		address string
	}{
		{
			name:    "store code with address",
			text:    "ТК124, 7-я Кожуховская 9",
			store:   "ТК124",
			address: "7-я Кожуховская 9",
		},
		{
			name:    "store code with inner space",
			text:    "ТК 77 Пресненская наб. 4",
			store:   "ТК77",
			address: "Пресненская наб. 4",
		},
		{
			name:    "no store code splits on comma",
			text:    "Лента Центр, ул. Мира 1",
			store:   "Лента Центр",
			address: "ул. Мира 1",
		},
		{
			name:    "no store code and no comma",
			text:    "Лента Сокольники",
			store:   "Лента Сокольники",
			address: "",
		},
		{
			name:    "separator noise after code",
			text:    "ТК9 — Ленинский просп. 101",
			store:   "ТК9",
			address: "Ленинский просп. 101",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := ParseStoreLine(tt.text)
			assert.Equal(t, tt.store, line.Store)
			assert.Equal(t, tt.address, line.Address)
		})
	}
}

func TestProductIDFromHref(t *testing.T) {
	tests := []struct {
		name     string
		href     string
		expected string
		found    bool
	}{
		{name: "numeric segment", href: "/product/123456/", expected: "123456", found: true},
		{name: "absolute url", href: "https://lenta.com/catalog/product/98765/", expected: "98765", found: true},
		{name: "slug fallback", href: "/product/vodka-belaya-berezka-05l/", expected: "vodka-belaya-berezka-05l", found: true},
		{name: "query string ignored", href: "/product/4242/?from=search", expected: "4242", found: true},
		{name: "nothing usable", href: "/product/", found: false},
		{name: "empty", href: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ProductIDFromHref(tt.href)

			if !tt.found {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.expected, id)
		})
	}
}
