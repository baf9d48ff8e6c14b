package types

// AssistKind groups assists the way editors group code actions.
type AssistKind string

const (
	QuickFix        AssistKind = "quickfix"
	RefactorRewrite AssistKind = "refactor.rewrite"
	RefactorExtract AssistKind = "refactor.extract"
	RefactorInline  AssistKind = "refactor.inline"
)

// Position is a location in a source file. Offset is a byte offset from the
// start of the file, Line and Column are 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

// TextRange is a half-open [Start, End) byte range into a source file.
type TextRange struct {
	Start uint32
	End   uint32
}

// Len returns the number of bytes the range covers.
func (r TextRange) Len() uint32 {
	return r.End - r.Start
}

// Contains reports whether off falls inside the range.
func (r TextRange) Contains(off uint32) bool {
	return r.Start <= off && off < r.End
}

// TextEdit replaces the bytes covered by Range with NewText.
type TextEdit struct {
	Range   TextRange
	NewText string
}

// Assist represents a single applicable code action found in a source file.
// Target is the node the assist is anchored on; Edit describes the full
// replacement, which may cover a wider range than the anchor.
type Assist struct {
	ID       string
	Kind     AssistKind
	Label    string
	Filename string
	Start    Position
	End      Position
	Target   TextRange
	Edit     TextEdit
}

// ConfigAssist holds the per-assist settings from the configuration file.
type ConfigAssist struct {
	Disabled bool `yaml:"disabled"`
}
