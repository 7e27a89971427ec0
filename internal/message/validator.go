package message

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxUnits is the message length limit: 46 half-width or 23 full-width characters
const MaxUnits = 46

const (
	ErrEmpty = "Message cannot be empty."
)

// ErrTooLong is the length error for a message of the given size
func ErrTooLong(units int) string {
	return fmt.Sprintf("Message exceeds %d display units (%d full-width characters); got %d.", MaxUnits, MaxUnits/2, units)
}

// Result is the outcome of validating one message
type Result struct {
	IsValid     bool     `json:"isValid"`
	NeedsReview bool     `json:"needsReview"`
	Errors      []string `json:"errors"`
	Units       int      `json:"units"`
	MaxUnits    int      `json:"maxUnits"`
	Normalized  string   `json:"normalized"`
}

// Validator checks message text against the length and content policy
type Validator struct {
	forbidden []string
}

// NewValidator creates a validator for an already lower-cased forbidden-word list
func NewValidator(forbidden []string) *Validator {
	words := make([]string, 0, len(forbidden))
	for _, w := range forbidden {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, strings.ToLower(w))
		}
	}
	return &Validator{forbidden: words}
}

// Validate normalizes message and applies every rule; errors are cumulative
func (v *Validator) Validate(message string) Result {
	normalized := Normalize(message)
	units := Units(normalized)

	errs := []string{}
	if normalized == "" {
		errs = append(errs, ErrEmpty)
	}
	if units > MaxUnits {
		errs = append(errs, ErrTooLong(units))
	}

	return Result{
		IsValid:     len(errs) == 0,
		NeedsReview: v.containsForbidden(normalized),
		Errors:      errs,
		Units:       units,
		MaxUnits:    MaxUnits,
		Normalized:  normalized,
	}
}

func (v *Validator) containsForbidden(normalized string) bool {
	if normalized == "" {
		return false
	}
	lower := strings.ToLower(normalized)
	for _, w := range v.forbidden {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// Normalize applies NFKC, collapses whitespace, strips control characters and trims
func Normalize(s string) string {
	s = norm.NFKC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		if unicode.IsControl(r) {
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Units counts display units: Latin-1 runes take 1, everything else 2
func Units(s string) int {
	n := 0
	for _, r := range s {
		n += runeUnits(r)
	}
	return n
}

func runeUnits(r rune) int {
	if r <= 0x00FF {
		return 1
	}
	return 2
}
