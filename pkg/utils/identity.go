package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewStockID generates an opaque unique identifier for a tracked stock.
func NewStockID() string {
	return uuid.NewString()
}

// NormalizeSymbol trims surrounding whitespace and uppercases a ticker
// symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// SynthesizeEmail maps a login identifier to an email address: a bare
// username gets the domain suffix appended, a full address is used
// verbatim.
func SynthesizeEmail(identifier, domain string) string {
	if strings.Contains(identifier, "@") {
		return identifier
	}
	return identifier + "@" + domain
}

// EmailLocalPart returns the part of an address before the "@", or the
// fallback when the address is empty.
func EmailLocalPart(email, fallback string) string {
	if email == "" {
		return fallback
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
