package infer

// A constraint is proper when the type it relates the variable to is fully
// known already: fixing against an improper constraint would bake another
// still-unfixed variable into the result.
//
// Occurrences of the constrained variable itself do not make a constraint
// improper. Self-referential bounds such as T <: Comparable<T> describe the
// variable in terms of itself, not in terms of pending inference work; the
// cross-variable case is what hasDependencyToOtherTypeVariables polices.

// containsNotFixedVariable reports whether t transitively mentions a variable
// from the not-fixed pool other than self. self may be nil to forbid every
// not-fixed variable.
func containsNotFixedVariable(notFixed map[TypeVarID]*VariableWithConstraints, t SimpleType, self *TypeVariable) bool {
	return typeContains(t, func(u SimpleType) bool {
		tv, isVar := u.(*TypeVariable)
		if !isVar {
			return false
		}
		if self != nil && tv.id == self.id {
			return false
		}
		_, stillNotFixed := notFixed[tv.id]
		return stillNotFixed
	})
}

// isProperType reports whether t is safe to fix self against: no still-unfixed
// variable may be reachable, neither directly nor through a captured
// projection.
//
// Captured types need the extra pass because plain containment stops at a
// capture: a captured `out T` silently carries T through the variance
// wildcard. A star projection has no projected type and is always proper.
func isProperType(notFixed map[TypeVarID]*VariableWithConstraints, t SimpleType, self *TypeVariable) bool {
	if containsNotFixedVariable(notFixed, t, self) {
		return false
	}
	for _, captured := range extractCapturedTypes(t) {
		if captured.kind == ProjectionStar {
			continue
		}
		if containsNotFixedVariable(notFixed, captured.projected, self) {
			return false
		}
	}
	return true
}

// isProperConstraint is isProperType plus the exclusion of pure nullability
// constraints, which carry no type-shape information to fix against.
func isProperConstraint(notFixed map[TypeVarID]*VariableWithConstraints, c *Constraint, self *TypeVariable) bool {
	return !c.NullabilityOnly && isProperType(notFixed, c.Type, self)
}

// isProperArgumentConstraint further requires call-site provenance: a
// declared-upper-bound constraint is proper but is default information, not an
// argument of this call.
func isProperArgumentConstraint(notFixed map[TypeVarID]*VariableWithConstraints, c *Constraint, self *TypeVariable) bool {
	return isProperConstraint(notFixed, c, self) && !c.Position.FromDeclaredUpperBound
}
