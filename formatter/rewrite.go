package formatter

// RewriteAssistFormatter renders assists that carry a full replacement for
// their target range. The replacement is shown as its own numbered block so
// the user can see the rewritten arms before applying anything.
type RewriteAssistFormatter struct{}

func (f *RewriteAssistFormatter) AssistTemplate() string {
	return `{{header .ID .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndLabel .Label .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent}}
{{replacement .Replacement .Padding .MaxLineNumWidth .StartLine}}
`
}
