package infer

import (
	"github.com/candlelang/candle/internal/log"
)

var logger = log.DefaultLogger.With("section", "fixation")

// CompletionMode says whether the current call stands alone or is nested
// inside an outer call whose expected type is not fully known yet.
type CompletionMode uint8

const (
	ModeFull CompletionMode = iota
	ModePartial
)

func (m CompletionMode) String() string {
	if m == ModePartial {
		return "PARTIAL"
	}
	return "FULL"
}

// VariableForFixation is the finder's verdict for one solver round: the
// variable to fix next, plus how much the completion loop can trust its
// constraints. Constructed fresh per call and consumed immediately.
type VariableForFixation struct {
	Variable *TypeVariable

	// HasProperConstraint is false when the loop should fall back to
	// defaulting logic instead of fixing against a constraint.
	HasProperConstraint bool

	// HasOnlyTrivialProperConstraint means every usable constraint is a
	// defaultable one, e.g. Nothing <: T.
	HasOnlyTrivialProperConstraint bool
}

// FixationFinder decides, once per solver iteration, which single type
// variable should next be committed to a concrete type. It never mutates the
// constraint store; repeated calls on identical state return identical
// results.
type FixationFinder struct {
	oracle TrivialConstraintOracle
}

// NewFixationFinder builds a finder with the given oracle; a nil oracle means
// the default one.
func NewFixationFinder(oracle TrivialConstraintOracle) *FixationFinder {
	if oracle == nil {
		oracle = DefaultTrivialOracle()
	}
	return &FixationFinder{oracle: oracle}
}

// FindFirstVariableForFixation ranks every candidate and returns the readiest
// one, or nil when no variable may be fixed this round.
//
// topLevelType is only consulted in ModePartial, where variables related to it
// must not be fixed before the outer call supplies more context; pass nil in
// ModeFull. Ties resolve to the first occurrence in candidates, which is what
// makes inference reproducible: callers must present candidates in a stable
// order.
func (f *FixationFinder) FindFirstVariableForFixation(
	ctx Context,
	candidates []*TypeVariable,
	postponed []*PostponedAtom,
	mode CompletionMode,
	topLevelType SimpleType,
) *VariableForFixation {
	if len(candidates) == 0 {
		return nil
	}
	if mode != ModePartial {
		topLevelType = nil
	}
	deps := newDependencyProvider(ctx, postponed, topLevelType)

	best := candidates[0]
	bestReadiness := f.readiness(ctx, best, deps)
	for _, v := range candidates[1:] {
		r := f.readiness(ctx, v, deps)
		if r > bestReadiness {
			best, bestReadiness = v, r
		}
	}
	logger.Debug("selected fixation candidate",
		"variable", best, "readiness", bestReadiness, "mode", mode)

	switch bestReadiness {
	case ReadinessForbidden:
		return nil
	case ReadinessWithoutProperConstraint:
		return &VariableForFixation{Variable: best}
	case ReadinessWithTrivialOrNonProperConstraints:
		return &VariableForFixation{
			Variable:                       best,
			HasProperConstraint:            true,
			HasOnlyTrivialProperConstraint: true,
		}
	default:
		return &VariableForFixation{Variable: best, HasProperConstraint: true}
	}
}

// HasProperConstraint answers, for one variable in isolation, whether it
// currently has anything usable to fix against: no postponed atoms, no
// top-level type, unconditional mode. Callers use it to decide whether
// defaulting logic is needed without running full candidate selection.
func (f *FixationFinder) HasProperConstraint(ctx Context, v *TypeVariable) bool {
	deps := newDependencyProvider(ctx, nil, nil)
	switch f.readiness(ctx, v, deps) {
	case ReadinessForbidden, ReadinessWithoutProperConstraint:
		return false
	default:
		return true
	}
}
