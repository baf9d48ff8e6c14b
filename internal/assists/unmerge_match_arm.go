package assists

import (
	"fmt"

	"github.com/oxlift/oxlift/internal/syntax"
	tt "github.com/oxlift/oxlift/internal/types"
)

// UnmergeMatchArm splits the last alternative off an or-pattern arm into
// its own arm with a copy of the body. It is the inverse of merging: the
// new arm sits directly below the original and keeps any guard, so match
// semantics are unchanged.
func UnmergeMatchArm(ctx *Context) ([]tt.Assist, error) {
	arms, idx, ok := syntax.ArmAt(ctx.Root, ctx.Offset)
	if !ok {
		return nil, nil
	}
	arm := arms[idx]
	if arm.Body == nil || arm.Pattern == nil {
		return nil, nil
	}
	rest, last, ok := syntax.SplitLastAlternative(arm.Pattern, ctx.Src)
	if !ok {
		return nil, nil
	}

	guard := ""
	if arm.Guard != nil {
		guard = " if " + ctx.Text(arm.Guard)
	}
	body := ctx.Text(arm.Body)
	indent := ctx.lineIndent(arm.Node.StartByte())
	newText := fmt.Sprintf("%s%s => %s,\n%s%s%s => %s,",
		rest, guard, body, indent, last, guard, body)

	start := arm.Node.StartByte()
	end := arm.Node.EndByte()
	return []tt.Assist{
		ctx.assist("unmerge-match-arm", "Unmerge match arm", tt.RefactorRewrite, start, end, newText),
	}, nil
}
