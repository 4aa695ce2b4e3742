package repository

import (
	"fmt"
)

// BuildStockNewsPrompt builds the fixed news-summary prompt for a symbol.
// The two-bullet limit is a prompt contract, not structurally enforced.
func BuildStockNewsPrompt(symbol string) string {
	promptTemplate := `Search for the 2 most recent and significant news stories about "%s" from Moneycontrol.

Provide a short description of these events.
Format the output as a concise bulleted list (max 2 bullets).
Focus on the key facts.
Do not add introductory or concluding text, just the bullets.`

	return fmt.Sprintf(promptTemplate, symbol)
}
