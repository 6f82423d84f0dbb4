package importers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/quotes"
)

// MaxPayloadSize bounds the size of an import file.
const MaxPayloadSize = 5 << 20

type rawQuote struct {
	Text     *string `json:"text"`
	Category *string `json:"category"`
}

// ParseQuotes decodes a JSON array of {text, category} objects. Anything
// else, including an array with an incomplete entry, is rejected.
func ParseQuotes(data []byte) ([]entities.Quote, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", quotes.ErrMalformedPayload)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", quotes.ErrMalformedPayload, err)
	}

	result := make([]entities.Quote, 0, len(items))
	for i, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return nil, fmt.Errorf("%w: entry %d is not an object", quotes.ErrMalformedPayload, i)
		}

		var raw rawQuote
		if err := json.Unmarshal(item, &raw); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", quotes.ErrMalformedPayload, i, err)
		}
		if raw.Text == nil || raw.Category == nil {
			return nil, fmt.Errorf("%w: entry %d needs text and category", quotes.ErrMalformedPayload, i)
		}

		q := entities.Quote{Text: *raw.Text, Category: *raw.Category}
		if !q.IsComplete() {
			return nil, fmt.Errorf("%w: entry %d has an empty field", quotes.ErrMalformedPayload, i)
		}
		result = append(result, q)
	}

	return result, nil
}

// ReadQuotes reads at most MaxPayloadSize bytes from r and parses them. It
// returns the raw payload alongside the quotes so callers can archive it.
func ReadQuotes(r io.Reader) ([]entities.Quote, []byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxPayloadSize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read payload: %w", err)
	}
	if len(data) > MaxPayloadSize {
		return nil, data[:MaxPayloadSize], fmt.Errorf("%w: payload exceeds %d bytes", quotes.ErrMalformedPayload, MaxPayloadSize)
	}

	parsed, err := ParseQuotes(data)
	return parsed, data, err
}
