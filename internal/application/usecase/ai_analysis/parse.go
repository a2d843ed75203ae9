package aianalysis

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/project-ledger/backend/internal/domain/entity"
)

var jsonObject = regexp.MustCompile(`\{[\s\S]*\}`)

// dateLayouts are tried in order when reading the suggested date.
var dateLayouts = []string{
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

type rawSuggestion struct {
	Date        string          `json:"date"`
	Amount      json.RawMessage `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// ParseSuggestion extracts a suggestion from the model's raw answer. Only the
// shape is checked here; values are validated like manual input afterwards.
// A date or amount that cannot be read is left empty so validation reports it.
func ParseSuggestion(raw string) (*entity.TransactionSuggestion, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	object := jsonObject.FindString(text)
	if object == "" {
		return nil, fmt.Errorf("failed to parse ai response: no json object found")
	}

	var parsed rawSuggestion
	if err := json.Unmarshal([]byte(object), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse ai response: %w", err)
	}

	suggestion := &entity.TransactionSuggestion{
		Type:        entity.TransactionType(strings.ToLower(strings.TrimSpace(parsed.Type))),
		Category:    strings.TrimSpace(parsed.Category),
		Description: strings.TrimSpace(parsed.Description),
	}

	// Models answer with either a number or a quoted number.
	amountText := strings.Trim(strings.TrimSpace(string(parsed.Amount)), `"`)
	if amount, err := decimal.NewFromString(amountText); err == nil {
		suggestion.Amount = amount.Abs()
	}

	suggestion.Date = parseDate(strings.TrimSpace(parsed.Date))

	return suggestion, nil
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
