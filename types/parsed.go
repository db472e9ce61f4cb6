package types

import (
	"bytes"
	"encoding/json"
)

// ParsedDocument is the subset of the Docling payload the extractor
// understands. Everything else in the payload is ignored here but kept
// verbatim on the Document row.
type ParsedDocument struct {
	Texts    []ParsedBlock
	Tables   []ParsedBlock
	MainText json.RawMessage
}

// ParsedBlock is one text or table entry with optional provenance.
type ParsedBlock struct {
	Text string       `json:"text"`
	Prov []Provenance `json:"prov"`
}

type Provenance struct {
	PageNo *int         `json:"page_no"`
	BBox   *BoundingBox `json:"bbox"`
}

// DecodeParsedDocument decodes a raw parser payload best-effort. A payload
// that is not an object, a texts/tables value that is not an array, or an
// entry with an unexpected shape (e.g. a non-string text field) degrades
// to that part being absent; decoding never fails.
func DecodeParsedDocument(raw []byte) *ParsedDocument {
	doc := &ParsedDocument{}
	var outer struct {
		Texts    json.RawMessage `json:"texts"`
		Tables   json.RawMessage `json:"tables"`
		MainText json.RawMessage `json:"main_text"`
	}
	if err := json.Unmarshal(raw, &outer); err != nil {
		return doc
	}
	doc.Texts = decodeBlocks(outer.Texts)
	doc.Tables = decodeBlocks(outer.Tables)
	doc.MainText = outer.MainText
	return doc
}

func decodeBlocks(raw json.RawMessage) []ParsedBlock {
	if len(raw) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	blocks := make([]ParsedBlock, 0, len(items))
	for _, item := range items {
		var block ParsedBlock
		if err := json.Unmarshal(item, &block); err != nil {
			// malformed entry, skip it
			continue
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// MainTextString returns main_text as a string for the paragraph fallback.
// A JSON string is unquoted; any other present value is used in its
// serialized form. Absent, null and empty-string values report false.
func (d *ParsedDocument) MainTextString() (string, bool) {
	raw := d.MainText
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "", false
		}
		return s, true
	}
	return string(raw), true
}
