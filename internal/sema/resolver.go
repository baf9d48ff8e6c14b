// Package sema resolves static types of match patterns. It is deliberately
// shallow: it indexes the enum declarations of one file, knows Result and
// Option, and answers nil for everything it cannot prove. Callers must
// treat nil as unknown, never as a mismatch.
package sema

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxlift/oxlift/internal/syntax"
)

// Resolver answers static type queries about pattern nodes.
type Resolver interface {
	// TypeOfPat returns the static type of a pattern, or nil when it
	// cannot be determined.
	TypeOfPat(pat *sitter.Node) *Type
}

// enumInfo is one indexed enum declaration: its type parameter names and,
// per variant, the declared tuple field types in order.
type enumInfo struct {
	params   []string
	variants map[string][]string
}

// FileResolver resolves tuple struct pattern fields against the enum
// declarations of a single file. Generic parameters resolve only when a
// turbofish spells the arguments out, either on the pattern path itself or
// on the match scrutinee.
type FileResolver struct {
	src   []byte
	enums map[string]enumInfo
}

// NewFileResolver indexes the enum declarations reachable from root.
// Declarations shadow the built-in Result and Option by name.
func NewFileResolver(root *sitter.Node, src []byte) *FileResolver {
	r := &FileResolver{src: src, enums: builtinEnums()}
	r.indexEnums(root)
	return r
}

func builtinEnums() map[string]enumInfo {
	return map[string]enumInfo{
		"Result": {
			params:   []string{"T", "E"},
			variants: map[string][]string{"Ok": {"T"}, "Err": {"E"}},
		},
		"Option": {
			params:   []string{"T"},
			variants: map[string][]string{"Some": {"T"}, "None": {}},
		},
	}
}

func (r *FileResolver) indexEnums(root *sitter.Node) {
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "enum_item" {
			r.indexEnum(n)
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	if root != nil {
		walk(root)
	}
}

func (r *FileResolver) indexEnum(item *sitter.Node) {
	nameNode := item.ChildByFieldName("name")
	body := item.ChildByFieldName("body")
	if nameNode == nil || body == nil {
		return
	}
	info := enumInfo{variants: make(map[string][]string)}
	if tp := item.ChildByFieldName("type_parameters"); tp != nil {
		info.params = typeParamNames(tp, r.src)
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		variant := body.NamedChild(i)
		if variant.Type() != "enum_variant" {
			continue
		}
		vname := variant.ChildByFieldName("name")
		if vname == nil {
			continue
		}
		info.variants[vname.Content(r.src)] = variantFieldTypes(variant, r.src)
	}
	r.enums[nameNode.Content(r.src)] = info
}

// variantFieldTypes returns the declared field types of a tuple variant in
// order. Unit and struct variants yield nothing.
func variantFieldTypes(variant *sitter.Node, src []byte) []string {
	body := variant.ChildByFieldName("body")
	if body == nil || body.Type() != "ordered_field_declaration_list" {
		return nil
	}
	var fieldTypes []string
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() == "attribute_item" || child.Type() == "visibility_modifier" {
			continue
		}
		fieldTypes = append(fieldTypes, child.Content(src))
	}
	return fieldTypes
}

// typeParamNames extracts the type parameter names, bounds and defaults
// stripped. Lifetimes and const parameters never bind a field type on
// their own, so they are skipped.
func typeParamNames(tp *sitter.Node, src []byte) []string {
	var names []string
	appendIdent := func(n *sitter.Node) {
		if n != nil && n.Type() == "type_identifier" {
			names = append(names, n.Content(src))
		}
	}
	for i := 0; i < int(tp.NamedChildCount()); i++ {
		child := tp.NamedChild(i)
		switch child.Type() {
		case "type_identifier":
			appendIdent(child)
		case "constrained_type_parameter":
			appendIdent(child.ChildByFieldName("left"))
		case "optional_type_parameter":
			name := child.ChildByFieldName("name")
			if name != nil && name.Type() == "constrained_type_parameter" {
				name = name.ChildByFieldName("left")
			}
			appendIdent(name)
		}
	}
	return names
}

// TypeOfPat resolves the static type of one positional field of a tuple
// struct pattern. Any other pattern is unknown.
func (r *FileResolver) TypeOfPat(pat *sitter.Node) *Type {
	if pat == nil || pat.Parent() == nil || pat.Parent().Type() != "tuple_struct_pattern" {
		return nil
	}
	tuple := pat.Parent()
	_, fields, ok := syntax.TupleStructFields(tuple)
	if !ok {
		return nil
	}
	for i := range fields {
		if syntax.SameNode(fields[i], pat) {
			return r.fieldType(tuple, i)
		}
	}
	return nil
}

// fieldType resolves the declared type of the idx-th field of a tuple
// struct pattern.
func (r *FileResolver) fieldType(tuple *sitter.Node, idx int) *Type {
	pathNode := tuple.ChildByFieldName("type")
	if pathNode == nil {
		return nil
	}
	segments, patArgs := splitPath(pathNode.Content(r.src))
	if len(segments) == 0 {
		return nil
	}
	variant := segments[len(segments)-1]
	qualifier := ""
	if len(segments) >= 2 {
		qualifier = segments[len(segments)-2]
	}

	name, info, ok := r.lookupEnum(qualifier, variant)
	if !ok {
		return nil
	}
	templates := info.variants[variant]
	if idx >= len(templates) {
		return nil
	}
	template := templates[idx]
	if !mentionsAny(template, info.params) {
		return NewType(template)
	}

	args := patArgs
	if len(args) == 0 {
		args = r.scrutineeArgs(tuple, name, variant)
	}
	if len(args) != len(info.params) {
		return nil
	}
	return NewType(substituteParams(template, info.params, args))
}

// lookupEnum finds the enum a pattern path refers to. A qualifier that
// names a known enum wins; otherwise the bare variant is searched across
// every known enum and the lookup fails on ambiguity.
func (r *FileResolver) lookupEnum(qualifier, variant string) (string, enumInfo, bool) {
	if info, ok := r.enums[qualifier]; ok {
		if _, ok := info.variants[variant]; !ok {
			return "", enumInfo{}, false
		}
		return qualifier, info, true
	}
	found := ""
	var foundInfo enumInfo
	for name, info := range r.enums {
		if _, ok := info.variants[variant]; !ok {
			continue
		}
		if found != "" {
			return "", enumInfo{}, false
		}
		found, foundInfo = name, info
	}
	if found == "" {
		return "", enumInfo{}, false
	}
	return found, foundInfo, true
}

// scrutineeArgs pulls turbofish arguments for the matched enum out of the
// match scrutinee, as in match Result::<f64, f32>::Ok(v) { ... }. The
// turbofish must hang off the enum or one of its variants; anything else
// in the scrutinee is left alone.
func (r *FileResolver) scrutineeArgs(tuple *sitter.Node, enumName, variant string) []string {
	matchExpr := syntax.Ancestor(tuple, "match_expression")
	if matchExpr == nil {
		return nil
	}
	value := matchExpr.ChildByFieldName("value")
	if value == nil {
		return nil
	}
	text := value.Content(r.src)
	idx := strings.Index(text, "::<")
	if idx < 0 {
		return nil
	}
	owner := identBefore(text, idx)
	if owner != enumName && owner != variant {
		return nil
	}
	end := matchAngle(text, idx+2)
	if end < 0 {
		return nil
	}
	return splitTopLevel(text[idx+3 : end])
}

// splitPath breaks a pattern constructor path into its :: separated
// segments, extracting turbofish generic arguments when present.
// "Result::<f64, f32>::Ok" yields ["Result", "Ok"] and ["f64", "f32"].
func splitPath(text string) (segments []string, args []string) {
	var cur strings.Builder
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			segments = append(segments, s)
		}
		cur.Reset()
	}
	for i := 0; i < len(text); {
		switch {
		case strings.HasPrefix(text[i:], "::"):
			flush()
			i += 2
		case text[i] == '<':
			end := matchAngle(text, i)
			if end < 0 {
				return nil, nil
			}
			args = splitTopLevel(text[i+1 : end])
			i = end + 1
		default:
			cur.WriteByte(text[i])
			i++
		}
	}
	flush()
	return segments, args
}

// matchAngle returns the index of the > closing the < at start, or -1.
func matchAngle(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits a generic argument list on the commas outside any
// nesting. Lifetime arguments are dropped.
func splitTopLevel(text string) []string {
	var args []string
	depth := 0
	var cur strings.Builder
	flush := func() {
		s := strings.TrimSpace(cur.String())
		if s != "" && !strings.HasPrefix(s, "'") {
			args = append(args, s)
		}
		cur.Reset()
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			depth--
		case ',':
			if depth == 0 {
				flush()
				continue
			}
		}
		cur.WriteByte(c)
	}
	flush()
	return args
}

// identBefore returns the identifier ending right before idx, if any.
func identBefore(text string, idx int) string {
	end := idx
	start := end
	for start > 0 && isIdentPart(text[start-1]) {
		start--
	}
	return text[start:end]
}

// substituteParams rewrites whole-word occurrences of the enum's type
// parameters with the matching arguments.
func substituteParams(template string, params, args []string) string {
	bindings := make(map[string]string, len(params))
	for i := range params {
		bindings[params[i]] = args[i]
	}
	var b strings.Builder
	for i := 0; i < len(template); {
		if isIdentStart(template[i]) {
			j := i + 1
			for j < len(template) && isIdentPart(template[j]) {
				j++
			}
			word := template[i:j]
			if repl, ok := bindings[word]; ok {
				b.WriteString(repl)
			} else {
				b.WriteString(word)
			}
			i = j
			continue
		}
		b.WriteByte(template[i])
		i++
	}
	return b.String()
}

// mentionsAny reports whether the template uses any of the names as a
// whole word.
func mentionsAny(template string, names []string) bool {
	if len(names) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	for i := 0; i < len(template); {
		if isIdentStart(template[i]) {
			j := i + 1
			for j < len(template) && isIdentPart(template[j]) {
				j++
			}
			if _, ok := set[template[i:j]]; ok {
				return true
			}
			i = j
			continue
		}
		i++
	}
	return false
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}
