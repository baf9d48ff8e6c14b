package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"github.com/fatih/color"

	"github.com/oxlift/oxlift/internal"
	tt "github.com/oxlift/oxlift/internal/types"
)

const tabWidth = 8

// assist set
const (
	MergeMatchArms  = "merge-match-arms"
	UnmergeMatchArm = "unmerge-match-arm"
)

var (
	assistStyle      = color.New(color.FgHiGreen, color.Bold)
	idStyle          = color.New(color.FgYellow, color.Bold)
	fileStyle        = color.New(color.FgCyan, color.Bold)
	lineStyle        = color.New(color.FgHiBlue, color.Bold)
	labelStyle       = color.New(color.FgHiMagenta, color.Bold)
	replacementStyle = color.New(color.FgGreen, color.Bold)
)

// assistFormatter is the interface that wraps the AssistTemplate method.
// Implementations of this interface are responsible for rendering specific
// kinds of assists.
type assistFormatter interface {
	AssistTemplate() string
}

// getAssistFormatter is a factory function that returns the appropriate
// formatter for the given assist ID.
// Unknown IDs fall back to the GeneralAssistFormatter, which renders the
// location and the label but no replacement preview.
func getAssistFormatter(id string) assistFormatter {
	switch id {
	case MergeMatchArms, UnmergeMatchArm:
		return &RewriteAssistFormatter{}
	default:
		return &GeneralAssistFormatter{}
	}
}

// GenerateFormattedAssists formats a slice of assists into a human-readable
// string. It uses the appropriate formatter for each assist based on its ID.
func GenerateFormattedAssists(found []tt.Assist, snippet *internal.SourceCode) string {
	var builder strings.Builder
	for _, a := range found {
		formatter := getAssistFormatter(a.ID)
		builder.WriteString(buildAssist(a, snippet, formatter))
	}
	return builder.String()
}

/***** Assist Formatter Builder *****/

type AssistData struct {
	ID              string
	Label           string
	Filename        string
	Padding         string
	StartLine       int
	StartColumn     int
	EndLine         int
	EndColumn       int
	MaxLineNumWidth int
	Replacement     string
	SnippetLines    []string
	CommonIndent    string
}

func buildAssist(a tt.Assist, snippet *internal.SourceCode, formatter assistFormatter) string {
	startLine := a.Start.Line
	endLine := a.End.Line
	maxLineNumWidth := calculateMaxLineNumWidth(endLine)
	padding := strings.Repeat(" ", maxLineNumWidth+1)

	var commonIndent string
	if startLine-1 < 0 || endLine > len(snippet.Lines) || startLine > endLine {
		commonIndent = ""
	} else {
		commonIndent = findCommonIndent(snippet.Lines[startLine-1 : endLine])
	}

	data := AssistData{
		ID:              a.ID,
		Label:           a.Label,
		Filename:        a.Filename,
		StartLine:       a.Start.Line,
		StartColumn:     a.Start.Column,
		EndLine:         a.End.Line,
		EndColumn:       a.End.Column,
		Replacement:     a.Edit.NewText,
		MaxLineNumWidth: maxLineNumWidth,
		Padding:         padding,
		CommonIndent:    commonIndent,
		SnippetLines:    snippet.Lines,
	}

	funcMap := template.FuncMap{
		"header":            header,
		"snippet":           codeSnippet,
		"underlineAndLabel": underlineAndLabel,
		"replacement":       replacement,
	}

	assistTemplate := formatter.AssistTemplate()
	tmpl := template.Must(template.New("assist").Funcs(funcMap).Parse(assistTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting assist: %v", err)
	}
	return buf.String()
}

// utils functions used in the text templates

func header(id string, maxLineNumWidth int, filename string, startLine int, startColumn int) string {
	endString := assistStyle.Sprint("assist: ")
	endString += idStyle.Sprintf("%s\n", id)

	padding := strings.Repeat(" ", maxLineNumWidth)
	endString += lineStyle.Sprintf("%s--> ", padding)
	endString += fileStyle.Sprintf("%s:%d:%d\n", filename, startLine, startColumn)

	return endString
}

func codeSnippet(snippetLines []string, startLine int, endLine int, maxLineNumWidth int, commonIndent string, padding string) string {
	var endString string
	endString = lineStyle.Sprintf("%s|\n", padding)

	for i := startLine; i <= endLine; i++ {
		if i-1 < 0 || i-1 >= len(snippetLines) {
			continue
		}

		line := snippetLines[i-1]
		line = strings.TrimPrefix(line, commonIndent)
		lineNum := fmt.Sprintf("%*d", maxLineNumWidth, i)

		endString += lineStyle.Sprintf("%s | %s\n", lineNum, line)
	}

	return endString
}

func underlineAndLabel(label string, padding string, startLine int, endLine int, startColumn int, endColumn int, snippetLines []string, commonIndent string) string {
	var endString string
	endString = lineStyle.Sprintf("%s| ", padding)

	if !isValidLineRange(startLine, endLine, snippetLines) {
		endString += labelStyle.Sprintf("%s\n", label)
		return endString
	}

	commonIndentWidth := calculateVisualColumn(commonIndent, len(commonIndent)+1)

	// calculate underline start position
	underlineStart := calculateVisualColumn(snippetLines[startLine-1], startColumn) - commonIndentWidth
	if underlineStart < 0 {
		underlineStart = 0
	}

	// calculate underline end position
	underlineEnd := calculateVisualColumn(snippetLines[endLine-1], endColumn) - commonIndentWidth
	underlineLength := underlineEnd - underlineStart + 1
	if underlineLength < 1 {
		underlineLength = 1
	}

	endString += fmt.Sprint(strings.Repeat(" ", underlineStart))
	endString += labelStyle.Sprintf("%s\n", strings.Repeat("~", underlineLength))

	endString += lineStyle.Sprintf("%s= ", padding)
	endString += labelStyle.Sprintf("%s\n", label)

	return endString
}

func replacement(replacement string, padding string, maxLineNumWidth int, startLine int) string {
	if replacement == "" {
		return ""
	}

	var endString string
	endString = replacementStyle.Sprint("Replacement:\n")
	endString += lineStyle.Sprintf("%s|\n", padding)

	replacementLines := strings.Split(replacement, "\n")
	for i, line := range replacementLines {
		lineNum := fmt.Sprintf("%*d", maxLineNumWidth, startLine+i)
		endString += lineStyle.Sprintf("%s | %s\n", lineNum, line)
	}

	endString += lineStyle.Sprintf("%s|\n", padding)
	return endString
}

func isValidLineRange(startLine int, endLine int, snippetLines []string) bool {
	return startLine > 0 &&
		endLine > 0 &&
		startLine <= endLine &&
		startLine <= len(snippetLines) &&
		endLine <= len(snippetLines)
}

func calculateMaxLineNumWidth(endLine int) int {
	return len(fmt.Sprintf("%d", endLine))
}

// calculateVisualColumn calculates the visual column position
// in a string. taking into account tab characters.
func calculateVisualColumn(line string, column int) int {
	if column < 0 {
		return 0
	}
	visualColumn := 0
	for i, ch := range line {
		if i+1 == column {
			break
		}
		if ch == '\t' {
			visualColumn += tabWidth - (visualColumn % tabWidth)
		} else {
			visualColumn++
		}
	}
	return visualColumn
}

// findCommonIndent finds the common indent in the code snippet.
func findCommonIndent(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	// find first non-empty line's indent
	firstIndent := make([]rune, 0)
	for _, line := range lines {
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		if trimmed != "" {
			firstIndent = []rune(line[:len(line)-len(trimmed)])
			break
		}
	}

	if len(firstIndent) == 0 {
		return ""
	}

	// search common indent for all non-empty lines
	for _, line := range lines {
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		if trimmed == "" {
			continue
		}

		currentIndent := []rune(line[:len(line)-len(trimmed)])
		firstIndent = commonPrefix(firstIndent, currentIndent)

		if len(firstIndent) == 0 {
			break
		}
	}

	return string(firstIndent)
}

// commonPrefix finds the common prefix of two strings.
func commonPrefix(a, b []rune) []rune {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:minLen]
}
