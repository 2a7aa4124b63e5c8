package selector

// Named cascades for every lenta.com UI target the scraper touches.
// Centralising them makes site-breakage fixes a one-line diff.
var (
	// SearchInput finds the catalog text search field.
	SearchInput = Cascade{
		Name: "search input",
		Strategies: []string{
			"input[type='search']",
			"input[placeholder*='поиск' i]",
			"input[name='q']",
			"input[name='search']",
		},
	}

	// RegionControl opens the city/region chooser on the landing page.
	RegionControl = Cascade{
		Name: "region control",
		Strategies: []string{
			"button:has-text('Москва')",
			"a:has-text('Москва')",
			"[data-testid*='city']",
			"[class*='city']",
			"[class*='region']",
		},
	}

	// RegionOption picks Moscow inside the opened chooser.
	RegionOption = Cascade{
		Name: "region option",
		Strategies: []string{
			"text=/Москва/i",
		},
	}

	// ProductCards finds product-card containers on a search result page.
	ProductCards = Cascade{
		Name: "product cards",
		Strategies: []string{
			"[data-testid*='product']",
			"[class*='product-card']",
			".product",
			"article",
		},
	}

	// ProductLink finds the hyperlink inside one product card. The href is
	// the identifier fallback when no data attribute carries an id.
	ProductLink = Cascade{
		Name: "product link",
		Strategies: []string{
			"a[href*='/product/']",
			"a[href*='/catalog/']",
			"a[href]",
		},
	}

	// ProductName finds the title inside one product card. Heading tags
	// rank above generic class hints.
	ProductName = Cascade{
		Name: "product name",
		Strategies: []string{
			"h2",
			"h3",
			"h4",
			"[class*='title']",
			"[class*='name']",
			"[data-testid*='name']",
		},
	}

	// Price finds the page-level price region of the selected store.
	Price = Cascade{
		Name: "price",
		Strategies: []string{
			"[class*='price']",
			"[data-testid*='price']",
			"span:has-text('₽')",
			"[itemprop='price']",
		},
	}

	// OutOfStock matches explicit unavailability markers. No match means
	// the product counts as in stock.
	OutOfStock = Cascade{
		Name: "out of stock marker",
		Strategies: []string{
			"text=/нет в наличии/i",
			"text=/out of stock/i",
		},
	}

	// StoreControl opens the per-store price selector widget.
	StoreControl = Cascade{
		Name: "store control",
		Strategies: []string{
			"button:has-text('Магазин')",
			"button:has-text('магазин')",
			"[data-testid*='store']",
			"[class*='store-selector']",
			"[class*='shop-selector']",
		},
	}

	// StoreItems enumerates store entries inside the opened widget.
	StoreItems = Cascade{
		Name: "store items",
		Strategies: []string{
			"[data-testid*='store-item']",
			"[class*='store-item']",
			"[class*='shop-item']",
			"li:has-text('ТК')",
			"div:has-text('ТК')",
		},
	}
)
