package cache

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/bonfilet/quoteapi/internal/domain"
)

// Fingerprint identifies a parsed quote request. Requests that normalize to
// the same items, country and currency share a fingerprint.
func Fingerprint(req *domain.ParsedQuoteRequest) (string, error) {
	payload, err := json.Marshal(struct {
		Items    []domain.ParsedItem
		Country  string
		Currency domain.Currency
	}{req.Items, req.Country, req.Currency})
	if err != nil {
		return "", fmt.Errorf("fingerprint quote request: %w", err)
	}
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
