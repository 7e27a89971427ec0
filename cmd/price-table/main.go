package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/bonfilet/quoteapi/internal/catalog"
	"github.com/bonfilet/quoteapi/internal/currency"
	"github.com/bonfilet/quoteapi/internal/pricing"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/price-table/main.go <data-dir>")
		fmt.Println("Example: go run cmd/price-table/main.go data")
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	provider := catalog.NewFileProvider(os.Args[1], catalog.NewCache(true), logger)
	cfg, err := provider.PricingConfig(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load pricing: %v\n", err)
		os.Exit(1)
	}

	engine := pricing.NewEngine(currency.NewConverter(), logger)
	rows, err := engine.PriceTable(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build price table: %v\n", err)
		os.Exit(1)
	}

	header := []string{fmt.Sprintf("%-12s", "qty")}
	for _, code := range currency.Supported() {
		header = append(header, fmt.Sprintf("%10s", code))
	}
	fmt.Println(strings.Join(header, ""))

	for _, row := range rows {
		line := []string{fmt.Sprintf("%-12s", fmt.Sprintf("%d-%d", row.Min, row.Max))}
		for _, p := range row.Prices {
			line = append(line, fmt.Sprintf("%10s", p.Unit.StringFixed(currency.Decimals(p.Currency))))
		}
		fmt.Println(strings.Join(line, ""))
	}

	if len(cfg.Options) > 0 {
		fmt.Println("\nOptions (per band, JPY):")
		for id, price := range cfg.Options {
			fmt.Printf("  %-16s %s\n", id, price.StringFixed(0))
		}
	}
}
