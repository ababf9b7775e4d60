package refactor

import (
	"go/ast"
	"go/format"
	"go/token"
	"sort"

	"github.com/casttools/cast/pkg/analysis"
	"github.com/casttools/cast/pkg/types"
)

// edit is one byte-range replacement. Text-based operations splice the
// original content instead of reprinting the AST, so untouched formatting
// and comments survive verbatim.
type edit struct {
	start, end int
	text       string
}

// applyEdits splices edits into content. Edits must not overlap; they are
// applied back to front so earlier offsets stay valid.
func applyEdits(content []byte, edits []edit) []byte {
	sorted := append([]edit(nil), edits...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start > sorted[j].start })

	out := append([]byte(nil), content...)
	for _, e := range sorted {
		out = append(out[:e.start], append([]byte(e.text), out[e.end:]...)...)
	}
	return out
}

// gofmt formats source, translating a formatting failure (which means the
// operation produced invalid Go) into an engine error.
func gofmt(src []byte) ([]byte, error) {
	out, err := format.Source(src)
	if err != nil {
		return nil, &types.EngineError{Kind: types.ParseError, Message: "operation produced invalid source", Cause: err}
	}
	return out, nil
}

// renderFile prints the (possibly rewritten) AST back to source.
func renderFile(sf *analysis.SourceFile) ([]byte, error) {
	var buf []byte
	w := &sliceWriter{buf: &buf}
	if err := format.Node(w, sf.Fset, sf.File); err != nil {
		return nil, &types.EngineError{Kind: types.ParseError, Message: "render " + sf.Path, Cause: err}
	}
	return buf, nil
}

type sliceWriter struct{ buf *[]byte }

func (w *sliceWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}

// offsetOf converts a token.Pos into a byte offset within sf.Content.
func offsetOf(sf *analysis.SourceFile, pos token.Pos) int {
	return sf.TokenFile().Offset(pos)
}

// nodeText returns the source bytes of node, verbatim.
func nodeText(sf *analysis.SourceFile, node ast.Node) string {
	return string(sf.Content[offsetOf(sf, node.Pos()):offsetOf(sf, node.End())])
}

// posAt converts a 1-based line and 0-based column into a token.Pos.
func posAt(sf *analysis.SourceFile, line, col int) (token.Pos, error) {
	tf := sf.TokenFile()
	if line < 1 || line > tf.LineCount() {
		return token.NoPos, types.NewEngineError(types.InvalidOperation,
			"line %d is out of range (file has %d lines)", line, tf.LineCount())
	}
	pos := tf.LineStart(line) + token.Pos(col)
	if off := tf.Offset(tf.LineStart(line)) + col; off > tf.Size() {
		return token.NoPos, types.NewEngineError(types.InvalidOperation,
			"column %d is out of range on line %d", col, line)
	}
	return pos, nil
}

// lineStartOffset returns the byte offset of the start of a 1-based line.
func lineStartOffset(sf *analysis.SourceFile, line int) int {
	tf := sf.TokenFile()
	return tf.Offset(tf.LineStart(line))
}

// lineEndOffset returns the byte offset just past line's trailing newline
// (or the end of the file for the last line).
func lineEndOffset(sf *analysis.SourceFile, line int) int {
	tf := sf.TokenFile()
	if line >= tf.LineCount() {
		return len(sf.Content)
	}
	return tf.Offset(tf.LineStart(line + 1))
}

// indentOf returns the leading whitespace of the line starting at off.
func indentOf(content []byte, off int) string {
	end := off
	for end < len(content) && (content[end] == ' ' || content[end] == '\t') {
		end++
	}
	return string(content[off:end])
}

// lineOf returns the 1-based line of pos.
func lineOf(sf *analysis.SourceFile, pos token.Pos) int {
	return sf.TokenFile().Line(pos)
}
