package importers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/exporters"
	"github.com/mrlokans/quotebook/internal/quotes"
)

func TestParseQuotes(t *testing.T) {
	t.Run("parses an array in order", func(t *testing.T) {
		got, err := ParseQuotes([]byte(`[
			{"text": "A", "category": "Programming"},
			{"text": "A", "category": "Programming"},
			{"text": "B", "category": "Life", "extra": true}
		]`))

		require.NoError(t, err)
		assert.Equal(t, []entities.Quote{
			{Text: "A", Category: "Programming"},
			{Text: "A", Category: "Programming"},
			{Text: "B", Category: "Life"},
		}, got)
	})

	t.Run("empty array", func(t *testing.T) {
		got, err := ParseQuotes([]byte(" [] "))

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	rejected := map[string]string{
		"object":               `{"text": "A", "category": "B"}`,
		"empty body":           ``,
		"null":                 `null`,
		"string":               `"quotes"`,
		"not json":             `[{"text": "A",`,
		"array of strings":     `["A", "B"]`,
		"null entry":           `[null]`,
		"missing category":     `[{"text": "A"}]`,
		"empty text":           `[{"text": "  ", "category": "B"}]`,
		"numeric text":         `[{"text": 42, "category": "B"}]`,
		"one bad entry of two": `[{"text": "A", "category": "B"}, {"text": "C"}]`,
	}
	for name, payload := range rejected {
		t.Run("rejects "+name, func(t *testing.T) {
			got, err := ParseQuotes([]byte(payload))

			assert.ErrorIs(t, err, quotes.ErrMalformedPayload)
			assert.Nil(t, got)
		})
	}
}

func TestReadQuotes(t *testing.T) {
	t.Run("returns the raw payload", func(t *testing.T) {
		payload := `[{"text": "A", "category": "B"}]`

		got, raw, err := ReadQuotes(strings.NewReader(payload))

		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, payload, string(raw))
	})

	t.Run("rejects oversized payloads", func(t *testing.T) {
		payload := bytes.Repeat([]byte(" "), MaxPayloadSize+10)

		_, _, err := ReadQuotes(bytes.NewReader(payload))

		assert.ErrorIs(t, err, quotes.ErrMalformedPayload)
	})
}

func TestExportImportRoundTrip(t *testing.T) {
	original := []entities.Quote{
		{Text: "A", Category: "Programming"},
		{Text: "B \"quoted\"", Category: "Life"},
		{Text: "A", Category: "Programming"},
		{Text: "Ünïcödé\nline", Category: "Server"},
	}
	var buf bytes.Buffer
	_, err := exporters.NewJSONExporter().Export(&buf, original)
	require.NoError(t, err)

	parsed, err := ParseQuotes(buf.Bytes())
	require.NoError(t, err)

	store := quotes.NewStore()
	store.Load([]entities.Quote{}, true)
	added, err := store.ImportMany(parsed)
	require.NoError(t, err)

	assert.Equal(t, len(original), added)
	assert.Equal(t, original, store.All())
}
