package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "TCS", NormalizeSymbol("  tcs "))
	assert.Equal(t, "RELIANCE", NormalizeSymbol("Reliance"))
	assert.Equal(t, "", NormalizeSymbol("   "))
}

func TestSynthesizeEmail(t *testing.T) {
	assert.Equal(t, "admin@sttock.app", SynthesizeEmail("admin", "sttock.app"))
	assert.Equal(t, "trader@x.com", SynthesizeEmail("trader@x.com", "sttock.app"))
}

func TestEmailLocalPart(t *testing.T) {
	assert.Equal(t, "trader", EmailLocalPart("trader@x.com", "Trader"))
	assert.Equal(t, "Trader", EmailLocalPart("", "Trader"))
	assert.Equal(t, "no-at-sign", EmailLocalPart("no-at-sign", "Trader"))
}

func TestNewStockID(t *testing.T) {
	assert.NotEmpty(t, NewStockID())
	assert.NotEqual(t, NewStockID(), NewStockID())
}
