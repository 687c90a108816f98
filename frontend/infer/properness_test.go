package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func poolOf(vars ...*TypeVariable) map[TypeVarID]*VariableWithConstraints {
	pool := make(map[TypeVarID]*VariableWithConstraints, len(vars))
	for _, v := range vars {
		pool[v.id] = &VariableWithConstraints{variable: v}
	}
	return pool
}

func TestIsProperType(t *testing.T) {
	tv := NewTypeVariable(1, "T")
	sv := NewTypeVariable(2, "S")
	intType := NewTypeRef("Int")

	testCases := []struct {
		name   string
		pool   map[TypeVarID]*VariableWithConstraints
		typ    SimpleType
		self   *TypeVariable
		proper bool
	}{
		{
			name:   "concrete type",
			pool:   poolOf(tv, sv),
			typ:    NewTypeRef("List", intType),
			self:   tv,
			proper: true,
		},
		{
			name:   "mentions another unfixed variable",
			pool:   poolOf(tv, sv),
			typ:    NewTypeRef("List", sv),
			self:   tv,
			proper: false,
		},
		{
			name:   "mentions it deeply nested",
			pool:   poolOf(tv, sv),
			typ:    NewTypeRef("Map", intType, NewTypeRef("List", NewNullable(sv))),
			self:   tv,
			proper: false,
		},
		{
			name:   "self occurrence is allowed",
			pool:   poolOf(tv, sv),
			typ:    NewTypeRef("Comparable", tv),
			self:   tv,
			proper: true,
		},
		{
			name:   "self occurrence next to a foreign one is not",
			pool:   poolOf(tv, sv),
			typ:    NewTypeRef("Map", tv, sv),
			self:   tv,
			proper: false,
		},
		{
			name:   "a fixed variable no longer taints",
			pool:   poolOf(tv),
			typ:    NewTypeRef("List", sv),
			self:   tv,
			proper: true,
		},
		{
			name:   "flexible type with an unfixed upper bound",
			pool:   poolOf(tv, sv),
			typ:    NewFlexibleType(intType, NewNullable(sv)),
			self:   tv,
			proper: false,
		},
		{
			name:   "star capture carries nothing",
			pool:   poolOf(tv, sv),
			typ:    NewTypeRef("Box", NewStarCapture()),
			self:   tv,
			proper: true,
		},
		{
			name:   "out capture of an unfixed variable",
			pool:   poolOf(tv, sv),
			typ:    NewTypeRef("Box", NewCapturedType(ProjectionOut, sv)),
			self:   tv,
			proper: false,
		},
		{
			name:   "in capture of a concrete type",
			pool:   poolOf(tv, sv),
			typ:    NewTypeRef("Box", NewCapturedType(ProjectionIn, intType)),
			self:   tv,
			proper: true,
		},
		{
			name:   "capture nested inside a capture",
			pool:   poolOf(tv, sv),
			typ:    NewCapturedType(ProjectionOut, NewTypeRef("Box", NewCapturedType(ProjectionInvariant, sv))),
			self:   tv,
			proper: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.proper, isProperType(tc.pool, tc.typ, tc.self))
		})
	}
}

func TestIsProperConstraint(t *testing.T) {
	tv := NewTypeVariable(1, "T")
	pool := poolOf(tv)
	intType := NewTypeRef("Int")

	t.Run("nullability-only constraints are never proper", func(t *testing.T) {
		c := &Constraint{Kind: ConstraintUpper, Type: intType, Position: ArgumentPosition(), NullabilityOnly: true}
		assert.False(t, isProperConstraint(pool, c, tv))
	})

	t.Run("provenance does not matter for plain properness", func(t *testing.T) {
		c := &Constraint{Kind: ConstraintUpper, Type: intType, Position: DeclaredUpperBoundPosition()}
		assert.True(t, isProperConstraint(pool, c, tv))
	})

	t.Run("argument properness excludes declared bounds", func(t *testing.T) {
		fromBound := &Constraint{Kind: ConstraintUpper, Type: intType, Position: DeclaredUpperBoundPosition()}
		fromCall := &Constraint{Kind: ConstraintUpper, Type: intType, Position: ArgumentPosition()}
		assert.False(t, isProperArgumentConstraint(pool, fromBound, tv))
		assert.True(t, isProperArgumentConstraint(pool, fromCall, tv))
	})
}

func TestTypeContains(t *testing.T) {
	tv := NewTypeVariable(1, "T")
	isVariable := func(u SimpleType) bool {
		_, ok := u.(*TypeVariable)
		return ok
	}

	assert.True(t, typeContains(NewTypeRef("List", NewNullable(tv)), isVariable))
	assert.False(t, typeContains(NewTypeRef("List", NewTypeRef("Int")), isVariable))

	// captures are opaque to plain containment
	assert.False(t, typeContains(NewTypeRef("Box", NewCapturedType(ProjectionOut, tv)), isVariable))
}

func TestExtractCapturedTypes(t *testing.T) {
	tv := NewTypeVariable(1, "T")
	inner := NewCapturedType(ProjectionInvariant, tv)
	outer := NewCapturedType(ProjectionOut, NewTypeRef("Box", inner))
	typ := NewTypeRef("Pair", outer, NewStarCapture())

	found := extractCapturedTypes(typ)
	assert.Len(t, found, 3)
}

func TestTypeDecomposition(t *testing.T) {
	intType := NewTypeRef("Int")
	listOfInt := NewTypeRef("List", intType)

	assert.Equal(t, listOfInt, lowerBoundIfFlexible(NewFlexibleType(listOfInt, NewNullable(listOfInt))))
	assert.Equal(t, intType, lowerBoundIfFlexible(intType))

	assert.Equal(t, 1, argumentsCount(listOfInt))
	assert.Equal(t, 0, argumentsCount(intType))
	assert.Equal(t, 0, argumentsCount(NewNullable(listOfInt)))
	assert.Equal(t, 0, argumentsCount(BottomType))
}

func TestTypeStrings(t *testing.T) {
	tv := NewTypeVariable(3, "T")
	anon := NewTypeVariable(7, "")

	assert.Equal(t, "T3", tv.String())
	assert.Equal(t, "α7", anon.String())
	assert.Equal(t, "Nothing", BottomType.String())
	assert.Equal(t, "Any", TopType.String())
	assert.Equal(t, "Map<Int, List<T3>>",
		NewTypeRef("Map", NewTypeRef("Int"), NewTypeRef("List", tv)).String())
	assert.Equal(t, "Int?", NewNullable(NewTypeRef("Int")).String())
	assert.Equal(t, "Int..Int?",
		NewFlexibleType(NewTypeRef("Int"), NewNullable(NewTypeRef("Int"))).String())
	assert.Equal(t, "captured(*)", NewStarCapture().String())
	assert.Equal(t, "captured(out T3)", NewCapturedType(ProjectionOut, tv).String())
}
