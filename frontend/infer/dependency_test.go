package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDependencyProviderRelatedness(t *testing.T) {
	intType := NewTypeRef("Int")

	t.Run("top-level relation is transitive over constraints", func(t *testing.T) {
		// top level mentions A; A's constraint mentions B; B's mentions C.
		// D is an island.
		cs := NewConstraintSystem()
		a := NewTypeVariable(1, "A")
		b := NewTypeVariable(2, "B")
		c := NewTypeVariable(3, "C")
		d := NewTypeVariable(4, "D")
		mustRegister(t, cs, a, b, c, d)
		mustConstrain(t, cs, a, upperBound(NewTypeRef("List", b)))
		mustConstrain(t, cs, b, upperBound(NewTypeRef("List", c)))
		mustConstrain(t, cs, d, upperBound(intType))

		deps := newDependencyProvider(cs, nil, NewTypeRef("Func", a))
		assert.True(t, deps.isVariableRelatedToTopLevelType(a))
		assert.True(t, deps.isVariableRelatedToTopLevelType(b))
		assert.True(t, deps.isVariableRelatedToTopLevelType(c))
		assert.False(t, deps.isVariableRelatedToTopLevelType(d))
	})

	t.Run("relation is symmetric", func(t *testing.T) {
		// only B's constraint mentions A, yet reachability from A finds B
		cs := NewConstraintSystem()
		a := NewTypeVariable(1, "A")
		b := NewTypeVariable(2, "B")
		mustRegister(t, cs, a, b)
		mustConstrain(t, cs, b, upperBound(NewTypeRef("List", a)))

		deps := newDependencyProvider(cs, nil, a)
		assert.True(t, deps.isVariableRelatedToTopLevelType(b))
	})

	t.Run("nil top-level type relates nothing", func(t *testing.T) {
		cs := NewConstraintSystem()
		a := NewTypeVariable(1, "A")
		mustRegister(t, cs, a)
		mustConstrain(t, cs, a, upperBound(intType))

		deps := newDependencyProvider(cs, nil, nil)
		assert.False(t, deps.isVariableRelatedToTopLevelType(a))
		assert.False(t, deps.isVariableRelatedToAnyOutputType(a))
	})

	t.Run("relatedness sees through captured projections", func(t *testing.T) {
		// properness treats the capture as opaque, relatedness must not
		cs := NewConstraintSystem()
		a := NewTypeVariable(1, "A")
		b := NewTypeVariable(2, "B")
		mustRegister(t, cs, a, b)
		mustConstrain(t, cs, a, upperBound(NewTypeRef("Box", NewCapturedType(ProjectionOut, b))))

		deps := newDependencyProvider(cs, nil, b)
		assert.True(t, deps.isVariableRelatedToTopLevelType(a))
	})

	t.Run("output relation covers atom inputs' closure but not strangers", func(t *testing.T) {
		cs := NewConstraintSystem()
		ret := NewTypeVariable(1, "R")
		tied := NewTypeVariable(2, "T")
		loose := NewTypeVariable(3, "U")
		mustRegister(t, cs, ret, tied, loose)
		mustConstrain(t, cs, tied, upperBound(NewTypeRef("Func", ret)))
		mustConstrain(t, cs, loose, upperBound(intType))
		atom := &PostponedAtom{
			InputTypes: []SimpleType{intType},
			OutputType: NewTypeRef("List", ret),
		}

		deps := newDependencyProvider(cs, []*PostponedAtom{atom}, nil)
		assert.True(t, deps.isVariableRelatedToAnyOutputType(ret))
		assert.True(t, deps.isVariableRelatedToAnyOutputType(tied))
		assert.False(t, deps.isVariableRelatedToAnyOutputType(loose))
	})

	t.Run("atoms without a known output type contribute nothing", func(t *testing.T) {
		cs := NewConstraintSystem()
		a := NewTypeVariable(1, "A")
		mustRegister(t, cs, a)
		mustConstrain(t, cs, a, upperBound(intType))
		atom := &PostponedAtom{InputTypes: []SimpleType{a}}

		deps := newDependencyProvider(cs, []*PostponedAtom{atom}, nil)
		assert.False(t, deps.isVariableRelatedToAnyOutputType(a))
	})
}
