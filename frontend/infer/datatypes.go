package infer

import (
	"fmt"
	"hash/fnv"
	"iter"
	"slices"
	"strconv"

	"github.com/candlelang/candle/util"
	set "github.com/hashicorp/go-set/v3"
)

// TypeVarID identifies a type variable within one inference session.
type TypeVarID uint64

// SimpleType is a type as seen by the solver: no universal quantification,
// type variables stand for the types still being inferred.
type SimpleType interface {
	fmt.Stringer
	Hash() uint64
	children() iter.Seq[SimpleType]
}

var (
	_ SimpleType = (*TypeVariable)(nil)
	_ SimpleType = (*typeRef)(nil)
	_ SimpleType = (*extremeType)(nil)
	_ SimpleType = (*flexibleType)(nil)
	_ SimpleType = (*capturedType)(nil)
	_ SimpleType = (*nullableType)(nil)
)

func emptySeqSimpleType(func(SimpleType) bool) {}

// TypeVariable stands for an as-yet-unknown type within one inference session.
// Variables are compared by identity, never structurally.
type TypeVariable struct {
	id       TypeVarID
	nameHint string
	reified  bool
}

// NewTypeVariable creates a variable with a fresh identity. nameHint may be ""
// when the variable has no source-level name.
func NewTypeVariable(id TypeVarID, nameHint string) *TypeVariable {
	return &TypeVariable{id: id, nameHint: nameHint}
}

// NewReifiedTypeVariable is NewTypeVariable for a reified type parameter, which
// must be committed to a runtime-representable type as early as possible.
func NewReifiedTypeVariable(id TypeVarID, nameHint string) *TypeVariable {
	return &TypeVariable{id: id, nameHint: nameHint, reified: true}
}

func (t *TypeVariable) ID() TypeVarID { return t.id }

func (t *TypeVariable) Reified() bool { return t.reified }

func (t *TypeVariable) String() string {
	name := t.nameHint
	if name == "" {
		name = "α"
	}
	return name + strconv.FormatUint(uint64(t.id), 10)
}

func (t *TypeVariable) Hash() uint64 {
	return uint64(t.id)*31 + 7
}

func (t *TypeVariable) children() iter.Seq[SimpleType] {
	return emptySeqSimpleType
}

// typeRef is an application of a named type constructor, possibly with
// arguments: Int, List<T>, Comparable<String>.
type typeRef struct {
	defName string
	args    []SimpleType
}

// NewTypeRef builds a reference to a named type constructor.
func NewTypeRef(defName string, args ...SimpleType) SimpleType {
	return &typeRef{defName: defName, args: args}
}

func (t *typeRef) String() string {
	if len(t.args) == 0 {
		return t.defName
	}
	return t.defName + "<" + util.JoinString(t.args, ", ") + ">"
}

func (t *typeRef) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(t.defName))
	hash := h.Sum64()
	for _, arg := range t.args {
		hash = 31*hash ^ arg.Hash()
	}
	return hash
}

func (t *typeRef) children() iter.Seq[SimpleType] {
	return slices.Values(t.args)
}

// extremeType is a lattice extreme: the bottom type when polarity is true,
// the top type otherwise.
type extremeType struct {
	polarity bool
}

var (
	// BottomType is the type with no values, a subtype of every type.
	BottomType SimpleType = &extremeType{polarity: true}
	// TopType is the supertype of every type.
	TopType SimpleType = &extremeType{polarity: false}
)

func (t *extremeType) String() string {
	if t.polarity {
		return "Nothing"
	}
	return "Any"
}

func (t *extremeType) Hash() uint64 {
	if t.polarity {
		return 2
	}
	return 3
}

func (t *extremeType) children() iter.Seq[SimpleType] {
	return emptySeqSimpleType
}

// flexibleType is a pair of bounds standing for any type between them, as
// produced when loading types from a language without explicit nullability.
// The solver decomposes it to its lower bound before inspecting arguments.
type flexibleType struct {
	lower, upper SimpleType
}

func NewFlexibleType(lower, upper SimpleType) SimpleType {
	return &flexibleType{lower: lower, upper: upper}
}

func (t *flexibleType) String() string {
	return t.lower.String() + ".." + t.upper.String()
}

func (t *flexibleType) Hash() uint64 {
	return 31*t.lower.Hash() ^ t.upper.Hash()
}

func (t *flexibleType) children() iter.Seq[SimpleType] {
	return util.ConcatIter(util.SingleIter(t.lower), util.SingleIter(t.upper))
}

// ProjectionKind is the variance of a captured type argument projection.
type ProjectionKind uint8

const (
	ProjectionStar ProjectionKind = iota
	ProjectionIn
	ProjectionOut
	ProjectionInvariant
)

func (k ProjectionKind) String() string {
	switch k {
	case ProjectionStar:
		return "*"
	case ProjectionIn:
		return "in"
	case ProjectionOut:
		return "out"
	default:
		return "inv"
	}
}

// capturedType is the existential produced by capturing a variance or star
// projection of a generic argument during subtyping.
//
// Its projection is deliberately NOT part of children(): plain containment
// walks must not see through a capture, which is exactly why properness checks
// recurse into projections explicitly (see properness.go).
type capturedType struct {
	kind      ProjectionKind
	projected SimpleType // nil when kind is ProjectionStar
}

// NewCapturedType captures a variance projection. projected must be non-nil
// unless kind is ProjectionStar.
func NewCapturedType(kind ProjectionKind, projected SimpleType) SimpleType {
	return &capturedType{kind: kind, projected: projected}
}

// NewStarCapture captures a star projection.
func NewStarCapture() SimpleType {
	return &capturedType{kind: ProjectionStar}
}

func (t *capturedType) String() string {
	if t.kind == ProjectionStar {
		return "captured(*)"
	}
	return "captured(" + t.kind.String() + " " + t.projected.String() + ")"
}

func (t *capturedType) Hash() uint64 {
	hash := uint64(t.kind) + 13
	if t.projected != nil {
		hash = 31*hash ^ t.projected.Hash()
	}
	return hash
}

func (t *capturedType) children() iter.Seq[SimpleType] {
	return emptySeqSimpleType
}

// nullableType marks its inner type as admitting null.
type nullableType struct {
	inner SimpleType
}

func NewNullable(inner SimpleType) SimpleType {
	return &nullableType{inner: inner}
}

func (t *nullableType) String() string {
	return t.inner.String() + "?"
}

func (t *nullableType) Hash() uint64 {
	return 31*t.inner.Hash() + 5
}

func (t *nullableType) children() iter.Seq[SimpleType] {
	return util.SingleIter(t.inner)
}

// lowerBoundIfFlexible decomposes a flexible type to its lower bound and
// leaves any other type untouched.
func lowerBoundIfFlexible(t SimpleType) SimpleType {
	if flex, isFlex := t.(*flexibleType); isFlex {
		return flex.lower
	}
	return t
}

// argumentsCount is the number of type constructor arguments after
// decomposition; zero for anything that is not a constructor application.
func argumentsCount(t SimpleType) int {
	if ref, isRef := t.(*typeRef); isRef {
		return len(ref.args)
	}
	return 0
}

// typeContains reports whether pred holds for t or any type transitively
// reachable through children(). Captured projections are not reachable this
// way; callers that need them use extractCapturedTypes.
func typeContains(t SimpleType, pred func(SimpleType) bool) bool {
	seen := set.New[SimpleType](4)
	remaining := &util.Stack[SimpleType]{}
	remaining.Push(t)
	for {
		current, ok := remaining.Pop()
		if !ok {
			return false
		}
		if !seen.Insert(current) {
			continue
		}
		if pred(current) {
			return true
		}
		remaining.Push(slices.Collect(current.children())...)
	}
}

// extractCapturedTypes collects every captured type nested anywhere inside t,
// including captures hidden inside other captures' projections.
func extractCapturedTypes(t SimpleType) []*capturedType {
	var found []*capturedType
	seen := set.New[SimpleType](4)
	remaining := &util.Stack[SimpleType]{}
	remaining.Push(t)
	for {
		current, ok := remaining.Pop()
		if !ok {
			return found
		}
		if !seen.Insert(current) {
			continue
		}
		if captured, isCaptured := current.(*capturedType); isCaptured {
			found = append(found, captured)
			if captured.projected != nil {
				remaining.Push(captured.projected)
			}
			continue
		}
		remaining.Push(slices.Collect(current.children())...)
	}
}
