// Package highlighter finds syntax spans in code block contents with
// tree-sitter.
package highlighter

import (
	"context"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/quill/internal/highlighter/lang"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/utils"
)

// Span styles [Start, End) of the highlighted source, in UTF-16 code units.
// Style is the tree-sitter capture name, e.g. "keyword" or "string.escape".
type Span struct {
	Start int
	End   int
	Style string
}

// Highlighter service manages parsing and querying syntax trees. It is not
// safe for concurrent use.
type Highlighter struct {
	parser  *sitter.Parser
	queries map[*lang.Language]*sitter.Query
}

// NewHighlighter creates a new highlighter instance.
func NewHighlighter() *Highlighter {
	RegisterLanguages()
	return &Highlighter{
		parser:  sitter.NewParser(),
		queries: make(map[*lang.Language]*sitter.Query),
	}
}

// Supports reports whether code tagged with language can be highlighted.
func (h *Highlighter) Supports(language string) bool {
	return lang.Lookup(language) != nil
}

// Highlight returns the syntax spans of source written in language, ordered
// by start. An unknown language yields no spans and no error. When captures
// overlap, later spans are the more specific ones.
func (h *Highlighter) Highlight(ctx context.Context, source, language string) ([]Span, error) {
	l := lang.Lookup(language)
	if l == nil || source == "" {
		return nil, nil
	}
	query, err := h.query(l)
	if err != nil {
		return nil, err
	}

	h.parser.SetLanguage(l.TreeSitterLang)
	content := []byte(source)
	tree, err := h.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", l.Name, err)
	}
	defer tree.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, tree.RootNode())

	toUTF16 := utils.ByteToUTF16Table(source)
	var spans []Span
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			start, end := int(capture.Node.StartByte()), int(capture.Node.EndByte())
			if end > len(content) {
				end = len(content)
			}
			if end <= start {
				continue // zero-width or error nodes
			}
			spans = append(spans, Span{
				Start: toUTF16[start],
				End:   toUTF16[end],
				Style: query.CaptureNameForId(capture.Index),
			})
		}
	}

	// Outer nodes first so inner ones paint over them.
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End > spans[j].End
	})
	logger.DebugTagf("highlight", "Highlight: %d spans for %d bytes of %s", len(spans), len(content), l.Name)
	return spans, nil
}

// query returns the compiled highlight query for l, compiling it once.
func (h *Highlighter) query(l *lang.Language) (*sitter.Query, error) {
	if q, ok := h.queries[l]; ok {
		return q, nil
	}
	src, err := l.GetQuery()
	if err != nil {
		return nil, err
	}
	q, err := sitter.NewQuery(src, l.TreeSitterLang)
	if err != nil {
		return nil, fmt.Errorf("compiling %s highlight query: %w", l.Name, err)
	}
	h.queries[l] = q
	return q, nil
}

// Close releases the parser and compiled queries.
func (h *Highlighter) Close() {
	for l, q := range h.queries {
		q.Close()
		delete(h.queries, l)
	}
	h.parser.Close()
}
