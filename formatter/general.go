package formatter

type GeneralAssistFormatter struct{}

func (f *GeneralAssistFormatter) AssistTemplate() string {
	return `{{header .ID .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndLabel .Label .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent}}
`
}
