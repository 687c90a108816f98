package infer

// FixationReadiness ranks how ready a type variable is to be committed to a
// concrete type. Higher is readier; the finder picks the maximum.
type FixationReadiness int

const (
	// ReadinessForbidden: the variable is not in the not-fixed pool, or it is
	// related to a top-level expected type that is not fully known yet.
	ReadinessForbidden FixationReadiness = iota
	// ReadinessWithoutProperConstraint: nothing usable to fix against.
	ReadinessWithoutProperConstraint
	// ReadinessWithComplexDependency: some constraint would bake another
	// still-unfixed variable into the fixed type.
	ReadinessWithComplexDependency
	// ReadinessWithTrivialOrNonProperConstraints: only defaultable or
	// improper information is available.
	ReadinessWithTrivialOrNonProperConstraints
	// ReadinessRelatedToAnyOutputType: usage in an output position carries
	// real signal, so this outranks bound-only information.
	ReadinessRelatedToAnyOutputType
	// ReadinessFromDeclaredUpperBound: only the parameter's own declared
	// bound is known. Better than nothing.
	ReadinessFromDeclaredUpperBound
	// ReadinessReadyForFixation: a genuine, non-trivial, non-dependent proper
	// constraint exists.
	ReadinessReadyForFixation
	// ReadinessReadyForFixationReified: ready and reified; reified parameters
	// must be fixed as early as possible.
	ReadinessReadyForFixationReified
)

func (r FixationReadiness) String() string {
	switch r {
	case ReadinessForbidden:
		return "FORBIDDEN"
	case ReadinessWithoutProperConstraint:
		return "WITHOUT_PROPER_ARGUMENT_CONSTRAINT"
	case ReadinessWithComplexDependency:
		return "WITH_COMPLEX_DEPENDENCY"
	case ReadinessWithTrivialOrNonProperConstraints:
		return "WITH_TRIVIAL_OR_NON_PROPER_CONSTRAINTS"
	case ReadinessRelatedToAnyOutputType:
		return "RELATED_TO_ANY_OUTPUT_TYPE"
	case ReadinessFromDeclaredUpperBound:
		return "FROM_INCORPORATION_OF_DECLARED_UPPER_BOUND"
	case ReadinessReadyForFixation:
		return "READY_FOR_FIXATION"
	case ReadinessReadyForFixationReified:
		return "READY_FOR_FIXATION_REIFIED"
	default:
		return "UNKNOWN"
	}
}

// readiness classifies one candidate. Every candidate lands in exactly one
// tier; the first matching condition wins.
//
// The complex-dependency condition is checked before the no-proper-constraint
// one: a variable whose only information drags in another unfixed variable is
// reported as blocked on that dependency rather than as having nothing at all,
// which is also what keeps it from being fixed to a half-known type by
// defaulting logic.
func (f *FixationFinder) readiness(ctx Context, v *TypeVariable, deps *dependencyProvider) FixationReadiness {
	notFixed := ctx.NotFixedTypeVariables()
	vwc, inPool := notFixed[v.id]
	switch {
	case !inPool || deps.isVariableRelatedToTopLevelType(v):
		return ReadinessForbidden
	case hasDependencyToOtherTypeVariables(notFixed, vwc):
		return ReadinessWithComplexDependency
	case !hasProperConstraint(notFixed, vwc):
		return ReadinessWithoutProperConstraint
	case f.hasTrivialOrNonProperConstraintsOnly(notFixed, vwc):
		return ReadinessWithTrivialOrNonProperConstraints
	case deps.isVariableRelatedToAnyOutputType(v):
		return ReadinessRelatedToAnyOutputType
	case hasOnlyDeclaredUpperBoundProperConstraints(notFixed, vwc):
		return ReadinessFromDeclaredUpperBound
	case ctx.IsReified(v):
		return ReadinessReadyForFixationReified
	default:
		return ReadinessReadyForFixation
	}
}

// hasDependencyToOtherTypeVariables reports whether fixing now would bake an
// incomplete nested type into the result: some constraint's type, decomposed
// to its lower bound if flexible, is a constructor application that
// transitively mentions a different still-unfixed variable.
func hasDependencyToOtherTypeVariables(notFixed map[TypeVarID]*VariableWithConstraints, vwc *VariableWithConstraints) bool {
	for _, c := range vwc.constraints {
		if argumentsCount(lowerBoundIfFlexible(c.Type)) == 0 {
			continue
		}
		if containsNotFixedVariable(notFixed, c.Type, vwc.variable) {
			return true
		}
	}
	return false
}

func hasProperConstraint(notFixed map[TypeVarID]*VariableWithConstraints, vwc *VariableWithConstraints) bool {
	for _, c := range vwc.constraints {
		if isProperConstraint(notFixed, c, vwc.variable) {
			return true
		}
	}
	return false
}

// hasTrivialOrNonProperConstraintsOnly: every constraint is either a proper
// constraint the oracle considers uninteresting, or not proper at all. At
// least one proper constraint exists by the time this runs.
func (f *FixationFinder) hasTrivialOrNonProperConstraintsOnly(notFixed map[TypeVarID]*VariableWithConstraints, vwc *VariableWithConstraints) bool {
	for _, c := range vwc.constraints {
		if !isProperConstraint(notFixed, c, vwc.variable) {
			continue
		}
		if !f.oracle.IsNotInterestingConstraint(c) {
			return false
		}
	}
	return true
}

// hasOnlyDeclaredUpperBoundProperConstraints: every proper constraint traces
// back to the declared upper bound, so only default information is available.
func hasOnlyDeclaredUpperBoundProperConstraints(notFixed map[TypeVarID]*VariableWithConstraints, vwc *VariableWithConstraints) bool {
	sawProper := false
	for _, c := range vwc.constraints {
		if !isProperConstraint(notFixed, c, vwc.variable) {
			continue
		}
		if !c.Position.FromDeclaredUpperBound {
			return false
		}
		sawProper = true
	}
	return sawProper
}
