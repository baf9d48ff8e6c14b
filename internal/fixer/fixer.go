package fixer

import (
	"fmt"
	"os"
	"sort"

	tt "github.com/oxlift/oxlift/internal/types"
)

type Fixer struct {
	DryRun bool
}

func New(dryRun bool) *Fixer {
	return &Fixer{DryRun: dryRun}
}

// Fix applies the assists' edits to filename and writes the result back.
// In dry-run mode the planned replacements are printed instead.
func (f *Fixer) Fix(filename string, assists []tt.Assist) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if f.DryRun {
		for _, a := range assists {
			fmt.Printf("Would apply %s in %s at line %d: %s\n", a.ID, filename, a.Start.Line, a.Label)
			fmt.Printf("Replacement:\n%s\n", a.Edit.NewText)
		}
		return nil
	}

	fixed, err := FixSource(content, assists)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, fixed, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Printf("Applied %d fixes in %s\n", len(assists), filename)
	return nil
}

// FixSource applies the assists' edits to src. Edits are applied back to
// front so earlier offsets stay valid; an edit overlapping one already
// applied is skipped.
func FixSource(src []byte, assists []tt.Assist) ([]byte, error) {
	sorted := make([]tt.Assist, len(assists))
	copy(sorted, assists)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Edit.Range.Start != sorted[j].Edit.Range.Start {
			return sorted[i].Edit.Range.Start > sorted[j].Edit.Range.Start
		}
		return sorted[i].Edit.Range.End > sorted[j].Edit.Range.End
	})

	out := src
	applied := uint32(len(src))
	for _, a := range sorted {
		r := a.Edit.Range
		if r.End < r.Start || int(r.End) > len(src) {
			return nil, fmt.Errorf("edit %d..%d out of bounds for %d byte source", r.Start, r.End, len(src))
		}
		if r.End > applied {
			continue
		}
		out = append(out[:r.Start], append([]byte(a.Edit.NewText), out[r.End:]...)...)
		applied = r.Start
	}
	return out, nil
}
