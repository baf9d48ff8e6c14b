package assists

import (
	"fmt"
	"strings"

	"github.com/oxlift/oxlift/internal/sema"
	"github.com/oxlift/oxlift/internal/syntax"
	tt "github.com/oxlift/oxlift/internal/types"
)

// MergeMatchArms merges the match arm under the cursor with the arms that
// immediately follow it, as long as each has the same body text and binds
// fields of the same static types. The run of arms collapses into one arm
// whose patterns are joined with |, or into a single wildcard arm when any
// member already matches everything. Guards block merging: a guarded
// anchor yields nothing and a guarded follower ends the run.
func MergeMatchArms(ctx *Context) ([]tt.Assist, error) {
	arms, idx, ok := syntax.ArmAt(ctx.Root, ctx.Offset)
	if !ok {
		return nil, nil
	}
	anchor := arms[idx]
	if anchor.Guard != nil || anchor.Body == nil || anchor.Pattern == nil {
		return nil, nil
	}
	body := ctx.Text(anchor.Body)
	anchorTypes := armFieldTypes(ctx, anchor)

	// Only forward neighbors are considered. Scanning stops at the first
	// arm that differs; arms past a rejected one never rejoin the run.
	run := []syntax.MatchArm{anchor}
	for i := idx + 1; i < len(arms); i++ {
		cand := arms[i]
		if cand.Guard != nil || cand.Body == nil || cand.Pattern == nil {
			break
		}
		if ctx.Text(cand.Body) != body {
			break
		}
		if !typesCompatible(anchorTypes, armFieldTypes(ctx, cand)) {
			break
		}
		run = append(run, cand)
	}
	if len(run) < 2 {
		return nil, nil
	}

	newText := fmt.Sprintf("%s => %s,", mergedPattern(ctx, run), body)
	start := run[0].Node.StartByte()
	end := run[len(run)-1].Node.EndByte()
	return []tt.Assist{
		ctx.assist("merge-match-arms", "Merge match arms", tt.RefactorRewrite, start, end, newText),
	}, nil
}

// mergedPattern joins the run's patterns with |. A wildcard anywhere in
// the run subsumes the rest, so the wildcard alone is the result.
func mergedPattern(ctx *Context, run []syntax.MatchArm) string {
	for _, arm := range run {
		if arm.IsWildcard(ctx.Src) {
			return "_"
		}
	}
	parts := make([]string, 0, len(run))
	for _, arm := range run {
		parts = append(parts, arm.PatternText(ctx.Src))
	}
	return strings.Join(parts, " | ")
}

// armFieldTypes resolves the static type of each positional field bound by
// the arm's pattern. Non-destructuring patterns have no fields; fields the
// resolver cannot prove stay nil.
func armFieldTypes(ctx *Context, arm syntax.MatchArm) []*sema.Type {
	_, fields, ok := syntax.TupleStructFields(arm.Pattern)
	if !ok {
		return nil
	}
	fieldTypes := make([]*sema.Type, len(fields))
	for i, f := range fields {
		fieldTypes[i] = ctx.Types.TypeOfPat(f)
	}
	return fieldTypes
}

// typesCompatible compares two arms' field types position by position. A
// pair where both sides resolved must agree exactly; a side that did not
// resolve never disqualifies. Arms without destructured fields are always
// compatible on this axis since body text already had to agree.
func typesCompatible(anchor, cand []*sema.Type) bool {
	n := len(anchor)
	if len(cand) < n {
		n = len(cand)
	}
	for i := 0; i < n; i++ {
		if anchor[i] == nil || cand[i] == nil {
			continue
		}
		if !anchor[i].Equal(cand[i]) {
			return false
		}
	}
	return true
}
