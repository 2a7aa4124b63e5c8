// lentawatch is a one-shot CLI for checking Lenta prices from the terminal:
// search for products by name, or collect per-store offers for a product id
// and optionally save them as an xlsx report.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"lentabot/internal/config"
	"lentabot/internal/models"
	"lentabot/internal/report"
	"lentabot/internal/scraper"
	"lentabot/pkg/logger"
)

func main() {
	var (
		query     = flag.String("query", "", "search query, e.g. 'пиво светлое'")
		productID = flag.String("product-id", "", "product id to collect per-store prices for")
		name      = flag.String("name", "", "product name used in the report title")
		out       = flag.String("out", "", "write offers to an xlsx file instead of stdout")
		asJSON    = flag.Bool("json", false, "print results as JSON")
	)
	flag.Parse()

	if (*query == "") == (*productID == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -query or -product-id is required")
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	svc := scraper.New(cfg, log)
	ctx := context.Background()

	if *query != "" {
		products := svc.SearchProducts(ctx, *query)
		if err := printProducts(products, *asJSON); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	offers := svc.StoreOffers(ctx, *productID)

	if *out != "" {
		title := *name
		if title == "" {
			title = *productID
		}
		data, err := report.Build(title, offers)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to build report:", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, "failed to write report:", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %d offers to %s\n", len(offers), *out)
		return
	}

	if err := printOffers(offers, *asJSON); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printProducts(products []models.Product, asJSON bool) error {
	if asJSON {
		return printJSON(products)
	}

	if len(products) == 0 {
		fmt.Println("no products found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tVOLUME\tPRICE")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Volume, p.Price)
	}
	return w.Flush()
}

func printOffers(offers []models.StoreOffer, asJSON bool) error {
	if asJSON {
		return printJSON(offers)
	}

	if len(offers) == 0 {
		fmt.Println("no offers found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STORE\tADDRESS\tPRICE")
	for _, o := range offers {
		fmt.Fprintf(w, "%s\t%s\t%.2f\n", o.Store, o.Address, o.Price)
	}
	return w.Flush()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
