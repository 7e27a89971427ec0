package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/bonfilet/quoteapi/internal/cache"
	"github.com/bonfilet/quoteapi/internal/catalog"
	"github.com/bonfilet/quoteapi/internal/currency"
	"github.com/bonfilet/quoteapi/internal/repository"
	"github.com/bonfilet/quoteapi/internal/service"
	"github.com/bonfilet/quoteapi/pkg/errors"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/quote/main.go <data-dir> [request.json]")
		fmt.Println("Example: go run cmd/quote/main.go data request.json")
		fmt.Println("Reads the request from stdin when no file is given.")
		os.Exit(1)
	}

	dataDir := os.Args[1]

	var (
		raw []byte
		err error
	)
	if len(os.Args) > 2 {
		raw, err = os.ReadFile(os.Args[2])
	} else {
		raw, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read request: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	provider := catalog.NewFileProvider(dataDir, catalog.NewCache(true), logger)
	quotes := service.NewQuoteService(provider, currency.NewConverter(), repository.NewNoopRepositories(), cache.NopQuoteCache{}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := quotes.CreateQuote(ctx, raw)
	if err != nil {
		if verr, ok := errors.AsValidation(err); ok {
			fmt.Fprintf(os.Stderr, "Invalid request: %s\n", verr.Message)
			for _, issue := range verr.Issues {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", issue.Field, issue.Message)
			}
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Failed to create quote: %v\n", err)
		os.Exit(1)
	}

	decimals := currency.Decimals(result.Currency)
	fmt.Printf("Quote %s (%s)\n\n", result.ID, result.Currency)
	for _, line := range result.Lines {
		fmt.Printf("  item %d: %d x %s + options %s = %s\n",
			line.Index+1, line.Qty,
			line.UnitPrice.StringFixed(decimals),
			line.OptionsPerUnit.StringFixed(decimals),
			line.LineTotal.StringFixed(decimals))
	}
	fmt.Printf("\n  Subtotal: %s\n", result.Subtotal.StringFixed(decimals))
	fmt.Printf("  Shipping: %s\n", result.Shipping.StringFixed(decimals))
	fmt.Printf("  Tax:      %s\n", result.Tax.StringFixed(decimals))
	fmt.Printf("  Duties:   %s\n", result.Duties.StringFixed(decimals))
	fmt.Printf("  Total:    %s\n\n", result.Total.StringFixed(decimals))
	fmt.Printf("Delivery in %d-%d days\n", result.ETA.Min, result.ETA.Max)

	if result.NeedsReview || len(result.Errors) > 0 {
		flags, _ := json.MarshalIndent(map[string]interface{}{
			"needsReview": result.NeedsReview,
			"errors":      result.Errors,
		}, "", "  ")
		fmt.Printf("\n%s\n", flags)
	}
}
