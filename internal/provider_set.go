package internal

import (
	"github.com/oxlift/oxlift/internal/assists"
	tt "github.com/oxlift/oxlift/internal/types"
)

/*
* Implement each assist provider as a separate struct
 */

// AssistProvider defines the interface for all assist providers.
type AssistProvider interface {
	// Collect runs the provider at the context's position and returns the
	// assists it offers there.
	Collect(ctx *assists.Context) ([]tt.Assist, error)

	// Name returns the identifier of the assist provider.
	Name() string
}

type MergeMatchArmsProvider struct{}

func NewMergeMatchArmsProvider() AssistProvider {
	return &MergeMatchArmsProvider{}
}

func (p *MergeMatchArmsProvider) Collect(ctx *assists.Context) ([]tt.Assist, error) {
	return assists.MergeMatchArms(ctx)
}

func (p *MergeMatchArmsProvider) Name() string {
	return "merge-match-arms"
}

type UnmergeMatchArmProvider struct{}

func NewUnmergeMatchArmProvider() AssistProvider {
	return &UnmergeMatchArmProvider{}
}

func (p *UnmergeMatchArmProvider) Collect(ctx *assists.Context) ([]tt.Assist, error) {
	return assists.UnmergeMatchArm(ctx)
}

func (p *UnmergeMatchArmProvider) Name() string {
	return "unmerge-match-arm"
}
