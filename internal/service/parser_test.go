package service

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/bonfilet/quoteapi/internal/catalog"
	"github.com/bonfilet/quoteapi/internal/domain"
	"github.com/bonfilet/quoteapi/internal/message"
	"github.com/bonfilet/quoteapi/pkg/errors"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	provider := catalog.NewFileProvider("../../data", catalog.NewCache(false), zaptest.NewLogger(t))
	return NewParser(provider, zaptest.NewLogger(t))
}

const validItem = `{
	"productType": "bonfilet",
	"messageText": "TEAM 2024",
	"bodyColor": "black",
	"textColor": "white",
	"finish": "normal",
	"size": "12mm/202mm",
	"qty": 10
}`

func body(items string, extra string) []byte {
	return []byte(`{"items": [` + items + `], "shipTo": {"country": "us"}` + extra + `}`)
}

func withField(key, value string) string {
	return strings.Replace(validItem, `"qty": 10`, `"qty": 10, "`+key+`": `+value, 1)
}

func expectIssue(t *testing.T, err error, field, contains string) {
	t.Helper()
	verr, ok := errors.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Status != 400 {
		t.Fatalf("expected status 400, got %d", verr.Status)
	}
	for _, issue := range verr.Issues {
		if issue.Field == field && strings.Contains(issue.Message, contains) {
			return
		}
	}
	t.Fatalf("expected issue on %q containing %q, got %+v", field, contains, verr.Issues)
}

func TestParse_Valid(t *testing.T) {
	p := newTestParser(t)

	parsed, err := p.Parse(context.Background(), body(validItem, ""))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if parsed.Country != "US" {
		t.Fatalf("expected upper-cased country, got %q", parsed.Country)
	}
	if parsed.Currency != domain.CurrencyJPY {
		t.Fatalf("expected default currency JPY, got %s", parsed.Currency)
	}
	if parsed.NeedsReview || len(parsed.Errors) != 0 {
		t.Fatalf("expected a clean request, got %+v", parsed)
	}
	item := parsed.Items[0]
	if item.BodyHex != "#111827" || item.TextHex != "#FFFFFF" {
		t.Fatalf("unexpected resolved colors %s / %s", item.BodyHex, item.TextHex)
	}
	if item.Qty != 10 || item.Message != "TEAM 2024" {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestParse_Currency(t *testing.T) {
	p := newTestParser(t)

	parsed, err := p.Parse(context.Background(), body(validItem, `, "currency": "usd"`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if parsed.Currency != domain.CurrencyUSD {
		t.Fatalf("expected USD, got %s", parsed.Currency)
	}

	_, err = p.Parse(context.Background(), body(validItem, `, "currency": "CHF"`))
	expectIssue(t, err, "currency", "must be one of JPY")
}

func TestParse_CustomColor(t *testing.T) {
	p := newTestParser(t)

	custom := strings.Replace(validItem, `"bodyColor": "black"`, `"bodyColor": "custom"`, 1)
	_, err := p.Parse(context.Background(), body(custom, ""))
	expectIssue(t, err, "items[0].bodyColorHex", "required")

	bad := strings.Replace(custom, `"qty": 10`, `"qty": 10, "bodyColorHex": "#12345G"`, 1)
	_, err = p.Parse(context.Background(), body(bad, ""))
	expectIssue(t, err, "items[0].bodyColorHex", "6-digit hex")

	ok := strings.Replace(custom, `"qty": 10`, `"qty": 10, "bodyColorHex": "a1b2c3"`, 1)
	parsed, err := p.Parse(context.Background(), body(ok, ""))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := parsed.Items[0].BodyHex; got != "#A1B2C3" {
		t.Fatalf("expected normalized custom hex, got %s", got)
	}
	if !parsed.Items[0].BodyColor.IsCustom() {
		t.Fatalf("expected a custom body color")
	}
}

func TestParse_IncompatibleColors(t *testing.T) {
	p := newTestParser(t)

	item := strings.Replace(validItem, `"textColor": "white"`, `"textColor": "black"`, 1)
	_, err := p.Parse(context.Background(), body(item, ""))
	expectIssue(t, err, "items[0].textColor", "cannot be combined")
}

func TestParse_StructRules(t *testing.T) {
	p := newTestParser(t)

	cases := []struct {
		name     string
		raw      []byte
		field    string
		contains string
	}{
		{"no items", []byte(`{"items": [], "shipTo": {"country": "US"}}`), "items", "No item provided"},
		{"missing items", []byte(`{"shipTo": {"country": "US"}}`), "items", "No item provided"},
		{"product type", body(strings.Replace(validItem, `"bonfilet"`, `"keychain"`, 1), ""), "items[0].productType", "must be bonfilet"},
		{"empty message", body(strings.Replace(validItem, `"TEAM 2024"`, `""`, 1), ""), "items[0].messageText", "between 1 and 40"},
		{"message too long", body(strings.Replace(validItem, `"TEAM 2024"`, `"`+strings.Repeat("x", 41)+`"`, 1), ""), "items[0].messageText", "between 1 and 40"},
		{"unknown color", body(strings.Replace(validItem, `"black"`, `"orange"`, 1), ""), "items[0].bodyColor", "must be one of"},
		{"finish", body(strings.Replace(validItem, `"normal"`, `"glitter"`, 1), ""), "items[0].finish", "must be normal"},
		{"size", body(strings.Replace(validItem, `"12mm/202mm"`, `"15mm"`, 1), ""), "items[0].size", "must be 12mm/202mm"},
		{"qty zero", body(strings.Replace(validItem, `"qty": 10`, `"qty": 0`, 1), ""), "items[0].qty", "between 1 and 99999"},
		{"qty too large", body(strings.Replace(validItem, `"qty": 10`, `"qty": 100000`, 1), ""), "items[0].qty", "between 1 and 99999"},
		{"empty option", body(withField("options", `["gift_box", ""]`), ""), "items[0].options[1]", "required"},
		{"short country", []byte(`{"items": [` + validItem + `], "shipTo": {"country": "U"}}`), "shipTo.country", "at least 2"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Parse(context.Background(), tc.raw)
			expectIssue(t, err, tc.field, tc.contains)
		})
	}
}

func TestParse_DecodeErrors(t *testing.T) {
	p := newTestParser(t)

	cases := []struct {
		name     string
		raw      string
		contains string
	}{
		{"empty", "  ", "Request body is required"},
		{"array", `[1, 2]`, "must be a JSON object"},
		{"malformed", `{"items": [`, "Malformed JSON body"},
		{"fractional qty", string(body(strings.Replace(validItem, `"qty": 10`, `"qty": 1.5`, 1), "")), "must be an integer"},
		{"string qty", string(body(strings.Replace(validItem, `"qty": 10`, `"qty": "10"`, 1), "")), "must be an integer"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Parse(context.Background(), []byte(tc.raw))
			verr, ok := errors.AsValidation(err)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !strings.Contains(verr.Message, tc.contains) {
				t.Fatalf("expected message containing %q, got %q", tc.contains, verr.Message)
			}
		})
	}
}

func TestParse_MessageFlags(t *testing.T) {
	p := newTestParser(t)

	flagged := strings.Replace(validItem, `"TEAM 2024"`, `"Not a SCAM"`, 1)
	long := strings.Replace(validItem, `"TEAM 2024"`, `"`+strings.Repeat("あ", 24)+`"`, 1)

	parsed, err := p.Parse(context.Background(), body(flagged+","+long+","+validItem, ""))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if !parsed.NeedsReview {
		t.Fatalf("expected forbidden word to set needsReview")
	}
	if len(parsed.Errors) != 1 || parsed.Errors[0] != message.ErrTooLong(48) {
		t.Fatalf("expected one length error, got %v", parsed.Errors)
	}
	if len(parsed.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(parsed.Items))
	}
}

func TestParse_Normalization(t *testing.T) {
	p := newTestParser(t)

	item := strings.Replace(validItem, `"TEAM 2024"`, `"  ＴＥＡＭ   ２０２４ "`, 1)
	item = strings.Replace(item, `"qty": 10`, `"qty": 10, "options": ["Gift_Box", "gift_box", "rush"]`, 1)

	parsed, err := p.Parse(context.Background(), body(item, ""))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	got := parsed.Items[0]
	if got.Message != "TEAM 2024" {
		t.Fatalf("expected normalized message, got %q", got.Message)
	}
	if len(got.Options) != 2 || got.Options[0] != "gift_box" || got.Options[1] != "rush" {
		t.Fatalf("expected deduplicated options, got %v", got.Options)
	}
}
