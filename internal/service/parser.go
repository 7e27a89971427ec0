package service

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bonfilet/quoteapi/internal/catalog"
	"github.com/bonfilet/quoteapi/internal/currency"
	"github.com/bonfilet/quoteapi/internal/domain"
	"github.com/bonfilet/quoteapi/internal/message"
	"github.com/bonfilet/quoteapi/pkg/errors"
)

var hexPattern = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// RegisterValidations adds the quote-specific tags to a validator engine.
// It is shared with gin's binding engine.
func RegisterValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"band_color": func(fl validator.FieldLevel) bool {
			return domain.ColorID(fl.Field().String()).IsValid()
		},
		"band_hex": func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || hexPattern.MatchString(s)
		},
		"band_finish": func(fl validator.FieldLevel) bool {
			return domain.FinishID(fl.Field().String()).IsValid()
		},
		"band_size": func(fl validator.FieldLevel) bool {
			return domain.SizeID(fl.Field().String()).IsValid()
		},
		"display_currency": func(fl validator.FieldLevel) bool {
			return currency.IsSupported(domain.Currency(strings.ToUpper(fl.Field().String())))
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	v.RegisterTagNameFunc(jsonFieldName)
	return nil
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// Parser validates raw quote requests into their typed form
type Parser struct {
	provider catalog.Provider
	validate *validator.Validate
	logger   *zap.Logger
}

// NewParser creates a request parser
func NewParser(provider catalog.Provider, logger *zap.Logger) *Parser {
	v := validator.New()
	v.SetTagName("binding")
	if err := RegisterValidations(v); err != nil {
		// tags are static; this only fails on a programming error
		panic(err)
	}
	return &Parser{
		provider: provider,
		validate: v,
		logger:   logger,
	}
}

// Parse decodes and validates a JSON quote request
func (p *Parser) Parse(ctx context.Context, raw []byte) (*domain.ParsedQuoteRequest, error) {
	req, err := DecodeQuoteRequest(raw)
	if err != nil {
		return nil, err
	}
	return p.ParseRequest(ctx, req)
}

// DecodeQuoteRequest turns a JSON body into a QuoteRequest, reporting decode
// problems as validation errors
func DecodeQuoteRequest(raw []byte) (*QuoteRequest, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.NewValidation([]errors.FieldIssue{{Field: "", Message: "Request body is required"}})
	}
	if trimmed[0] != '{' {
		return nil, errors.NewValidation([]errors.FieldIssue{{Field: "", Message: "Request body must be a JSON object"}})
	}

	var req QuoteRequest
	if err := json.Unmarshal(trimmed, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, errors.NewValidation([]errors.FieldIssue{{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("%s %s", typeErr.Field, describeKind(typeErr.Type)),
			}})
		}
		return nil, errors.NewValidation([]errors.FieldIssue{{Field: "", Message: "Malformed JSON body"}})
	}
	return &req, nil
}

func describeKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int64, reflect.Int32:
		return "must be an integer"
	case reflect.String:
		return "must be a string"
	case reflect.Slice:
		return "must be an array"
	case reflect.Struct, reflect.Map:
		return "must be an object"
	default:
		return "has the wrong type"
	}
}

// ParseRequest validates an already decoded request
func (p *Parser) ParseRequest(ctx context.Context, req *QuoteRequest) (*domain.ParsedQuoteRequest, error) {
	if err := p.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &fieldErrs) {
			issues := make([]errors.FieldIssue, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				issues = append(issues, issueFor(fe))
			}
			return nil, errors.NewValidation(issues)
		}
		return nil, fmt.Errorf("validate quote request: %w", err)
	}

	colors, err := p.provider.ColorConfig(ctx)
	if err != nil {
		return nil, err
	}
	words, err := p.provider.ForbiddenWords(ctx)
	if err != nil {
		return nil, err
	}

	parsed := &domain.ParsedQuoteRequest{
		Items:    make([]domain.ParsedItem, 0, len(req.Items)),
		Country:  strings.ToUpper(strings.TrimSpace(req.ShipTo.Country)),
		Currency: domain.BaseCurrency,
		Errors:   []string{},
	}
	if req.Currency != nil {
		parsed.Currency = domain.Currency(strings.ToUpper(*req.Currency))
	}

	var issues []errors.FieldIssue
	for i, in := range req.Items {
		body := toColor(in.BodyColor, in.BodyColorHex)
		text := toColor(in.TextColor, in.TextColorHex)
		if colors.Incompatible(body, text) {
			issues = append(issues, errors.FieldIssue{
				Field:   fmt.Sprintf("items[%d].textColor", i),
				Message: fmt.Sprintf("Text color %s cannot be combined with body color %s", in.TextColor, in.BodyColor),
			})
			continue
		}
		parsed.Items = append(parsed.Items, domain.ParsedItem{
			ProductType: domain.ProductType(in.ProductType),
			Message:     in.MessageText,
			BodyColor:   body,
			TextColor:   text,
			BodyHex:     colors.ResolveHex(catalog.RoleBody, body),
			TextHex:     colors.ResolveHex(catalog.RoleText, text),
			Finish:      domain.FinishID(in.Finish),
			Size:        domain.SizeID(in.Size),
			Qty:         in.Qty,
			Options:     dedupeOptions(in.Options),
		})
	}
	if len(issues) > 0 {
		return nil, errors.NewValidation(issues)
	}

	messages := message.NewValidator(words)
	for i := range parsed.Items {
		res := messages.Validate(parsed.Items[i].Message)
		parsed.Items[i].Message = res.Normalized
		parsed.NeedsReview = parsed.NeedsReview || res.NeedsReview
		parsed.Errors = append(parsed.Errors, res.Errors...)
	}

	if parsed.NeedsReview {
		p.logger.Info("Quote request flagged for review", zap.String("country", parsed.Country))
	}
	return parsed, nil
}

func toColor(id, hex string) domain.Color {
	c := domain.ColorID(id)
	if c == domain.ColorCustom {
		return domain.CustomColor(domain.NormalizeHex(hex))
	}
	return domain.PresetColor(c)
}

func dedupeOptions(options []string) []string {
	seen := make(map[string]bool, len(options))
	out := make([]string, 0, len(options))
	for _, o := range options {
		key := strings.ToLower(strings.TrimSpace(o))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}

func issueFor(fe validator.FieldError) errors.FieldIssue {
	path := fe.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}
	issue := errors.FieldIssue{Field: path}

	switch {
	case path == "items" && (fe.Tag() == "required" || fe.Tag() == "min"):
		issue.Message = "No item provided"
	case fe.Field() == "qty":
		issue.Message = fmt.Sprintf("%s must be an integer between 1 and 99999", path)
	case fe.Field() == "messageText":
		issue.Message = fmt.Sprintf("%s must be between 1 and 40 characters", path)
	default:
		issue.Message = describeTag(path, fe)
	}
	return issue
}

func describeTag(path string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", path)
	case "required_if":
		return fmt.Sprintf("%s is required when the color is custom", path)
	case "eq":
		return fmt.Sprintf("%s must be %s", path, fe.Param())
	case "band_color":
		ids := make([]string, len(domain.ColorIDs))
		for i, id := range domain.ColorIDs {
			ids[i] = string(id)
		}
		return fmt.Sprintf("%s must be one of %s", path, strings.Join(ids, ", "))
	case "band_hex":
		return fmt.Sprintf("%s must be a 6-digit hex color such as #1A2B3C", path)
	case "band_finish":
		return fmt.Sprintf("%s must be %s", path, domain.FinishNormal)
	case "band_size":
		return fmt.Sprintf("%s must be %s", path, domain.Size12x202)
	case "display_currency":
		codes := make([]string, 0, 5)
		for _, c := range currency.Supported() {
			codes = append(codes, string(c))
		}
		return fmt.Sprintf("%s must be one of %s", path, strings.Join(codes, ", "))
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", path, fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at most %s entries", path, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", path, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", path)
	}
}
