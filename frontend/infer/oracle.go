package infer

// TrivialConstraintOracle classifies constraints as "not interesting": facts
// every variable satisfies anyway, which should not count as real inference
// signal. Supplied once at engine construction; implementations must be pure.
type TrivialConstraintOracle interface {
	IsNotInterestingConstraint(c *Constraint) bool
}

// DefaultTrivialOracle flags lower-bound constraints by the bottom type
// (Nothing <: T, Nothing? <: T): the bottom type is a subtype of everything,
// so such a constraint cannot narrow the variable.
func DefaultTrivialOracle() TrivialConstraintOracle {
	return defaultTrivialOracle{}
}

type defaultTrivialOracle struct{}

func (defaultTrivialOracle) IsNotInterestingConstraint(c *Constraint) bool {
	if c.Kind != ConstraintLower {
		return false
	}
	return isBottomLike(c.Type)
}

func isBottomLike(t SimpleType) bool {
	if nullable, isNullable := t.(*nullableType); isNullable {
		return isBottomLike(nullable.inner)
	}
	extreme, isExtreme := t.(*extremeType)
	return isExtreme && extreme.polarity
}
