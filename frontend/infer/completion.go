package infer

// StopReason tells the caller why a completion loop ended. A nil result from
// the finder has two distinct causes and they demand different follow-ups.
type StopReason uint8

const (
	// StopAllFixed: the candidate list ran out, the session is complete.
	StopAllFixed StopReason = iota
	// StopStuck: candidates remain but every one is forbidden. Expected in
	// ModePartial (retry once the outer expected type is known); in ModeFull
	// it is an under-constrained inference the diagnostics layer must report.
	StopStuck
)

func (r StopReason) String() string {
	if r == StopStuck {
		return "stuck"
	}
	return "all variables fixed"
}

// FixationStep records one round of a completion loop.
type FixationStep struct {
	Result  *VariableForFixation
	FixedTo SimpleType
}

// Fixer commits a concrete type for the chosen variable. It is supplied by
// the caller because choosing the result type (and defaulting when no proper
// constraint exists) belongs to the surrounding resolution machinery, not to
// the fixation engine.
type Fixer func(result *VariableForFixation) SimpleType

// RunToFixpoint drives the classic fixed-point iteration: ask the finder for
// the next variable, fix it, repeat until the finder returns nil. It exists
// for tooling and tests; production callers own their loop so they can
// interleave postponed-atom analysis between rounds.
func RunToFixpoint(
	cs *ConstraintSystem,
	finder *FixationFinder,
	postponed []*PostponedAtom,
	mode CompletionMode,
	topLevelType SimpleType,
	fix Fixer,
) ([]FixationStep, StopReason) {
	var steps []FixationStep
	for {
		candidates := cs.Candidates()
		result := finder.FindFirstVariableForFixation(cs, candidates, postponed, mode, topLevelType)
		if result == nil {
			if len(candidates) == 0 {
				return steps, StopAllFixed
			}
			return steps, StopStuck
		}
		to := fix(result)
		if err := cs.Fix(result.Variable, to); err != nil {
			// the finder only ever proposes pool members; a failure here
			// means the caller's fixer mutated the store mid-round
			logger.Error("completion loop could not fix variable", "variable", result.Variable, "err", err)
			return steps, StopStuck
		}
		steps = append(steps, FixationStep{Result: result, FixedTo: to})
	}
}

// DefaultFixer picks a representative type from the variable's constraints:
// an equality constraint wins, then the first upper bound, then the first
// lower bound; without a proper constraint the variable defaults to the
// bottom type. It predates any real subtyping machinery and is only meant for
// the trace tooling.
func DefaultFixer(cs *ConstraintSystem) Fixer {
	return func(result *VariableForFixation) SimpleType {
		if !result.HasProperConstraint {
			return BottomType
		}
		vwc, ok := cs.NotFixedTypeVariables()[result.Variable.ID()]
		if !ok {
			return BottomType
		}
		var upper, lower SimpleType
		for _, c := range vwc.Constraints() {
			if c.NullabilityOnly {
				continue
			}
			switch c.Kind {
			case ConstraintEquality:
				return c.Type
			case ConstraintUpper:
				if upper == nil {
					upper = c.Type
				}
			case ConstraintLower:
				if lower == nil {
					lower = c.Type
				}
			}
		}
		if upper != nil {
			return upper
		}
		if lower != nil {
			return lower
		}
		return BottomType
	}
}
