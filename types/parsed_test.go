package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeParsedDocument(t *testing.T) {
	doc := DecodeParsedDocument([]byte(`{
		"texts": [{"text": "a", "prov": [{"page_no": 1}]}],
		"tables": [{"text": "b"}],
		"main_text": "c"
	}`))

	require.Len(t, doc.Texts, 1)
	assert.Equal(t, "a", doc.Texts[0].Text)
	require.Len(t, doc.Texts[0].Prov, 1)
	require.NotNil(t, doc.Texts[0].Prov[0].PageNo)
	assert.Equal(t, 1, *doc.Texts[0].Prov[0].PageNo)
	require.Len(t, doc.Tables, 1)
}

func TestDecodeParsedDocumentDegradesGracefully(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `garbage`},
		{"not an object", `[1, 2, 3]`},
		{"texts not an array", `{"texts": {"text": "x"}}`},
		{"null fields", `{"texts": null, "tables": null, "main_text": null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := DecodeParsedDocument([]byte(tt.raw))
			require.NotNil(t, doc)
			assert.Empty(t, doc.Texts)
			assert.Empty(t, doc.Tables)
		})
	}
}

func TestMainTextString(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"absent", ``, "", false},
		{"null", `null`, "", false},
		{"empty string", `""`, "", false},
		{"string", `"hello\n\nworld"`, "hello\n\nworld", true},
		{"non-string value", `{"k": 1}`, `{"k": 1}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &ParsedDocument{}
			if tt.raw != "" {
				doc.MainText = json.RawMessage(tt.raw)
			}
			got, ok := doc.MainTextString()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
