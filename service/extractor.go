package service

import (
	"regexp"
	"strings"

	"github.com/haiminh/pdf-insight-be/types"
)

var paragraphSplit = regexp.MustCompile(`\n{2,}`)

// ExtractFragments flattens a parsed Docling document into an ordered
// list of content fragments: all text blocks first, then all tables, each
// group in source order. When neither path yields anything, main_text is
// split into paragraphs as a fallback. Shape anomalies never fail the
// call; they only produce fewer fragments.
func ExtractFragments(doc *types.ParsedDocument) []types.Fragment {
	fragments := []types.Fragment{}
	if doc == nil {
		return fragments
	}

	for _, block := range doc.Texts {
		if fragment, ok := blockFragment(block, types.FragmentTypeText); ok {
			fragments = append(fragments, fragment)
		}
	}
	for _, block := range doc.Tables {
		if fragment, ok := blockFragment(block, types.FragmentTypeTable); ok {
			fragments = append(fragments, fragment)
		}
	}

	// Fallback only when the structured path produced nothing at all
	if len(fragments) == 0 {
		fragments = append(fragments, mainTextFragments(doc)...)
	}
	return fragments
}

func blockFragment(block types.ParsedBlock, kind string) (types.Fragment, bool) {
	content := strings.TrimSpace(block.Text)
	if content == "" {
		return types.Fragment{}, false
	}
	metadata := types.FragmentMetadata{Type: kind}
	if len(block.Prov) > 0 {
		// first provenance entry wins when there are several
		metadata.Page = block.Prov[0].PageNo
		metadata.BBox = block.Prov[0].BBox
	}
	return types.Fragment{Content: content, Metadata: metadata}, true
}

func mainTextFragments(doc *types.ParsedDocument) []types.Fragment {
	text, ok := doc.MainTextString()
	if !ok {
		return nil
	}
	var fragments []types.Fragment
	for _, paragraph := range paragraphSplit.Split(text, -1) {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		fragments = append(fragments, types.Fragment{
			Content:  paragraph,
			Metadata: types.FragmentMetadata{Type: types.FragmentTypeText},
		})
	}
	return fragments
}
