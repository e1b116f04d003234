// Package markdown lints JavaScript embedded in Markdown. Preprocess
// extracts fenced code blocks tagged as JavaScript; Block.MapProblems moves
// problems reported against a block back onto the Markdown file.
//
// Fixes are dropped during mapping: processed files are never autofixed.
package markdown

import (
	"sort"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/langdetect"
	"github.com/yaklabco/gojslint/pkg/lint"
)

// Flavors understood by New.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Processor extracts code blocks. It is safe for concurrent use.
type Processor struct {
	md goldmark.Markdown

	// DetectUntagged also lints fenced blocks without an info string when
	// their content looks like JavaScript.
	DetectUntagged bool
}

// New returns a processor for the given Markdown flavor. Unknown flavors
// fall back to CommonMark.
func New(flavor string) *Processor {
	var opts []goldmark.Option
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	return &Processor{md: goldmark.New(opts...)}
}

// Block is one JavaScript code block.
type Block struct {
	// Index is the position of the block among the extracted blocks.
	Index int
	Lang  string
	Text  string

	// lineStarts[i] is the Markdown offset of block line i+1 and
	// textStarts[i] the offset of the same line inside Text.
	lineStarts []int
	textStarts []int
}

// Preprocess returns the JavaScript blocks of content in document order.
func (p *Processor) Preprocess(content []byte) []Block {
	doc := p.md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))

	var blocks []Block
	_ = gmast.Walk(doc, func(node gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		fenced, ok := node.(*gmast.FencedCodeBlock)
		if !ok {
			return gmast.WalkContinue, nil
		}

		lang := string(fenced.Language(content))
		block := extract(fenced, content)
		if !p.wants(lang, block.Text) {
			return gmast.WalkSkipChildren, nil
		}
		block.Index = len(blocks)
		block.Lang = lang
		blocks = append(blocks, block)
		return gmast.WalkSkipChildren, nil
	})
	return blocks
}

func (p *Processor) wants(lang, body string) bool {
	if lang == "" {
		return p.DetectUntagged && langdetect.Detect([]byte(body)) == "javascript"
	}
	return langdetect.IsJavaScriptTag(lang)
}

func extract(fenced *gmast.FencedCodeBlock, content []byte) Block {
	lines := fenced.Lines()
	block := Block{
		lineStarts: make([]int, 0, lines.Len()),
		textStarts: make([]int, 0, lines.Len()),
	}
	var buf []byte
	for idx := range lines.Len() {
		seg := lines.At(idx)
		block.lineStarts = append(block.lineStarts, seg.Start-seg.Padding)
		block.textStarts = append(block.textStarts, len(buf))
		buf = append(buf, seg.Value(content)...)
	}
	block.Text = string(buf)
	return block
}

// Offset maps a byte offset in Text to the Markdown source.
func (b Block) Offset(offset int) int {
	if len(b.textStarts) == 0 {
		return 0
	}
	line := sort.Search(len(b.textStarts), func(i int) bool { return b.textStarts[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return b.lineStarts[line] + offset - b.textStarts[line]
}

// MapProblems rewrites problems reported against the block so that ranges
// and positions refer to src, the whole Markdown file. Fixes are removed.
func (b Block) MapProblems(src *ast.Source, problems []lint.Problem) []lint.Problem {
	out := make([]lint.Problem, 0, len(problems))
	for _, problem := range problems {
		problem.Range = ast.Range{Start: b.Offset(problem.Range.Start), End: b.Offset(problem.Range.End)}
		start := src.Position(problem.Range.Start)
		problem.Line, problem.Column = start.Line, start.Column
		if problem.EndLine > 0 {
			end := src.Position(problem.Range.End)
			problem.EndLine, problem.EndColumn = end.Line, end.Column
		}
		problem.Fix = nil
		out = append(out, problem)
	}
	return out
}
