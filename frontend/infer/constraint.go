package infer

import (
	"fmt"
	"slices"
)

// ConstraintKind relates a type variable to the constraint's type.
type ConstraintKind uint8

const (
	// ConstraintEquality requires the variable to be exactly the type.
	ConstraintEquality ConstraintKind = iota
	// ConstraintUpper requires variable <: type.
	ConstraintUpper
	// ConstraintLower requires type <: variable.
	ConstraintLower
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintEquality:
		return "="
	case ConstraintUpper:
		return "<:"
	default:
		return ":>"
	}
}

// PositionKind is the provenance of a constraint.
type PositionKind uint8

const (
	// PositionArgument marks constraints derived from call arguments.
	PositionArgument PositionKind = iota
	// PositionExpectedType marks constraints derived from the expected type.
	PositionExpectedType
	// PositionDeclaredUpperBound marks the default constraint injected from
	// the generic parameter's own declared bound.
	PositionDeclaredUpperBound
)

// ConstraintPosition records where a constraint came from.
//
// FromDeclaredUpperBound is true both for the declared-upper-bound constraint
// itself and for every constraint whose incorporation chain started at one, so
// the fixation engine can tell "only the default bound is known" apart from
// genuine call-site information even after incorporation has rewritten
// positions.
type ConstraintPosition struct {
	Kind                   PositionKind
	FromDeclaredUpperBound bool
}

func ArgumentPosition() ConstraintPosition {
	return ConstraintPosition{Kind: PositionArgument}
}

func ExpectedTypePosition() ConstraintPosition {
	return ConstraintPosition{Kind: PositionExpectedType}
}

func DeclaredUpperBoundPosition() ConstraintPosition {
	return ConstraintPosition{Kind: PositionDeclaredUpperBound, FromDeclaredUpperBound: true}
}

// Constraint is one immutable fact about a type variable. The fixation engine
// only ever reads constraints; the incorporation machinery owns their growth.
type Constraint struct {
	Kind     ConstraintKind
	Type     SimpleType
	Position ConstraintPosition

	// NullabilityOnly marks constraints synthesized purely to track
	// nullability; they carry no type-shape information.
	NullabilityOnly bool
}

func (c *Constraint) String() string {
	return fmt.Sprintf("%s %s", c.Kind, c.Type)
}

// VariableWithConstraints aggregates everything currently known about one
// not-yet-fixed variable. Owned by the constraint store, read here.
type VariableWithConstraints struct {
	variable    *TypeVariable
	constraints []*Constraint
}

func (v *VariableWithConstraints) Variable() *TypeVariable { return v.variable }

func (v *VariableWithConstraints) Constraints() []*Constraint { return v.constraints }

// Context is the capability surface the fixation engine needs from a
// constraint store. Implementations own one inference session each and must
// never re-add a variable once it has been fixed.
type Context interface {
	// NotFixedTypeVariables maps every variable still awaiting a type to its
	// current constraints.
	NotFixedTypeVariables() map[TypeVarID]*VariableWithConstraints
	// PostponedTypeVariables lists variables owned by postponed atoms (for
	// example a lambda's own parameter and return variables).
	PostponedTypeVariables() []*TypeVariable
	// IsReified reports whether the variable stands for a reified type
	// parameter.
	IsReified(v *TypeVariable) bool
}

// PostponedAtom is a deferred inference unit (an unanalyzed lambda body or a
// callable reference) whose resolution is blocked on other variables. The
// fixation engine only reads its input and output types to derive relational
// information.
type PostponedAtom struct {
	InputTypes []SimpleType
	OutputType SimpleType // nil when the output type is not yet known
}

// ConstraintSystem is a concrete session-owned constraint store. One inference
// session (one call, or one group of interdependent calls) owns exactly one
// ConstraintSystem for its whole duration; it is not safe for concurrent use.
type ConstraintSystem struct {
	order     []*TypeVariable // registration order, the candidate tie-break order
	notFixed  map[TypeVarID]*VariableWithConstraints
	fixed     map[TypeVarID]SimpleType
	postponed []*TypeVariable
}

var _ Context = (*ConstraintSystem)(nil)

func NewConstraintSystem() *ConstraintSystem {
	return &ConstraintSystem{
		notFixed: make(map[TypeVarID]*VariableWithConstraints),
		fixed:    make(map[TypeVarID]SimpleType),
	}
}

// RegisterVariable adds a variable to the not-fixed pool. Registering the same
// variable twice, or a variable that was already fixed, is an error: within a
// session a variable enters the pool exactly once.
func (cs *ConstraintSystem) RegisterVariable(v *TypeVariable) error {
	if _, isFixed := cs.fixed[v.id]; isFixed {
		return fmt.Errorf("cannot re-register fixed variable %s", v)
	}
	if _, exists := cs.notFixed[v.id]; exists {
		return fmt.Errorf("variable %s is already registered", v)
	}
	cs.order = append(cs.order, v)
	cs.notFixed[v.id] = &VariableWithConstraints{variable: v}
	return nil
}

// AddConstraint records a new fact about a not-fixed variable.
func (cs *ConstraintSystem) AddConstraint(v *TypeVariable, c *Constraint) error {
	vwc, ok := cs.notFixed[v.id]
	if !ok {
		return fmt.Errorf("cannot constrain %s: not in the not-fixed pool", v)
	}
	vwc.constraints = append(vwc.constraints, c)
	return nil
}

// MarkPostponed flags a variable as owned by a postponed atom.
func (cs *ConstraintSystem) MarkPostponed(v *TypeVariable) {
	cs.postponed = append(cs.postponed, v)
}

// Fix commits a variable to a concrete type, removing it from the not-fixed
// pool. A fixed variable can never return to the pool.
func (cs *ConstraintSystem) Fix(v *TypeVariable, to SimpleType) error {
	if _, ok := cs.notFixed[v.id]; !ok {
		return fmt.Errorf("cannot fix %s: not in the not-fixed pool", v)
	}
	delete(cs.notFixed, v.id)
	cs.fixed[v.id] = to
	return nil
}

// Candidates returns the variables still awaiting fixation, in registration
// order. The order is what makes repeated runs reproducible.
func (cs *ConstraintSystem) Candidates() []*TypeVariable {
	candidates := make([]*TypeVariable, 0, len(cs.notFixed))
	for _, v := range cs.order {
		if _, ok := cs.notFixed[v.id]; ok {
			candidates = append(candidates, v)
		}
	}
	return candidates
}

// FixedType returns the type a variable was fixed to, if it was.
func (cs *ConstraintSystem) FixedType(v *TypeVariable) (SimpleType, bool) {
	t, ok := cs.fixed[v.id]
	return t, ok
}

func (cs *ConstraintSystem) NotFixedTypeVariables() map[TypeVarID]*VariableWithConstraints {
	return cs.notFixed
}

func (cs *ConstraintSystem) PostponedTypeVariables() []*TypeVariable {
	return slices.Clone(cs.postponed)
}

func (cs *ConstraintSystem) IsReified(v *TypeVariable) bool {
	return v.reified
}
