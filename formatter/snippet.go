package formatter

import (
	"strings"

	"github.com/oxlift/oxlift/internal"
	tt "github.com/oxlift/oxlift/internal/types"
)

// TargetSnippet returns the source lines an assist is anchored on.
func TargetSnippet(a tt.Assist, snippet *internal.SourceCode) string {
	startLine := a.Start.Line - 1
	if startLine < 0 {
		startLine = 0
	}
	endLine := a.End.Line
	if endLine > len(snippet.Lines) {
		endLine = len(snippet.Lines)
	}
	if startLine >= endLine {
		return ""
	}
	return strings.Join(snippet.Lines[startLine:endLine], "\n")
}
