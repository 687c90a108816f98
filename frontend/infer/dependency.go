package infer

import (
	"github.com/candlelang/candle/util"
	set "github.com/hashicorp/go-set/v3"
)

// dependencyProvider answers the two relational queries the readiness
// classifier needs: is a variable tied to the outer call's expected type, and
// does it feed an output-position type.
//
// The excerpt this engine descends from leaves the exact derivation open, so
// this is our own, computed once per finder invocation:
//
//   - two variables are related when a constraint of one mentions the other
//     (the relation is kept symmetric);
//   - a variable is related to the top-level type when it is reachable, over
//     that relation, from any variable occurring in the top-level type;
//   - a variable is related to an output type when it is reachable from any
//     variable occurring in a postponed atom's output type, or from a
//     postponed atom's own (postponed) type variables.
//
// Results are computed eagerly into a relatednessCache and frozen, so lookups
// during classification are reads of an immutable snapshot.
type dependencyProvider struct {
	relatedToTopLevel *relatednessCache
	relatedToOutput   *relatednessCache
}

func newDependencyProvider(ctx Context, postponed []*PostponedAtom, topLevelType SimpleType) *dependencyProvider {
	notFixed := ctx.NotFixedTypeVariables()
	adjacency := relationEdges(notFixed)

	var topSeeds []TypeVarID
	if topLevelType != nil {
		topSeeds = notFixedVariableIDs(notFixed, topLevelType)
	}

	var outSeeds []TypeVarID
	for _, atom := range postponed {
		if atom.OutputType != nil {
			outSeeds = append(outSeeds, notFixedVariableIDs(notFixed, atom.OutputType)...)
		}
	}
	for _, v := range ctx.PostponedTypeVariables() {
		if _, inPool := notFixed[v.id]; inPool {
			outSeeds = append(outSeeds, v.id)
		}
	}

	return &dependencyProvider{
		relatedToTopLevel: closure(notFixed, adjacency, topSeeds),
		relatedToOutput:   closure(notFixed, adjacency, outSeeds),
	}
}

func (p *dependencyProvider) isVariableRelatedToTopLevelType(v *TypeVariable) bool {
	return p.relatedToTopLevel.get(v.id)
}

func (p *dependencyProvider) isVariableRelatedToAnyOutputType(v *TypeVariable) bool {
	return p.relatedToOutput.get(v.id)
}

// relationEdges builds the symmetric variable relation from the current
// constraint graph.
func relationEdges(notFixed map[TypeVarID]*VariableWithConstraints) map[TypeVarID]*set.Set[TypeVarID] {
	adjacency := make(map[TypeVarID]*set.Set[TypeVarID], len(notFixed))
	neighboursOf := func(id TypeVarID) *set.Set[TypeVarID] {
		neighbours, ok := adjacency[id]
		if !ok {
			neighbours = set.New[TypeVarID](4)
			adjacency[id] = neighbours
		}
		return neighbours
	}
	for id, vwc := range notFixed {
		for _, c := range vwc.constraints {
			for _, other := range notFixedVariableIDs(notFixed, c.Type) {
				if other == id {
					continue
				}
				neighboursOf(id).Insert(other)
				neighboursOf(other).Insert(id)
			}
		}
	}
	return adjacency
}

// notFixedVariableIDs collects the still-unfixed variables mentioned anywhere
// in t. Unlike plain containment this looks through captured projections:
// relatedness is about information flow, and a capture still ties the
// variables it hides.
func notFixedVariableIDs(notFixed map[TypeVarID]*VariableWithConstraints, t SimpleType) []TypeVarID {
	var ids []TypeVarID
	collect := func(u SimpleType) bool {
		if tv, isVar := u.(*TypeVariable); isVar {
			if _, inPool := notFixed[tv.id]; inPool {
				ids = append(ids, tv.id)
			}
		}
		return false // never stop early, we want every occurrence
	}
	typeContains(t, collect)
	for _, captured := range extractCapturedTypes(t) {
		if captured.projected != nil {
			typeContains(captured.projected, collect)
		}
	}
	return ids
}

// closure walks the relation breadth-first from seeds and records the
// reachable set, then freezes it.
func closure(notFixed map[TypeVarID]*VariableWithConstraints, adjacency map[TypeVarID]*set.Set[TypeVarID], seeds []TypeVarID) *relatednessCache {
	cache := newRelatednessCache()
	reached := set.New[TypeVarID](len(seeds))
	pending := &util.Stack[TypeVarID]{}
	pending.Push(seeds...)
	for {
		id, ok := pending.Pop()
		if !ok {
			break
		}
		if !reached.Insert(id) {
			continue
		}
		if neighbours := adjacency[id]; neighbours != nil {
			pending.Push(neighbours.Slice()...)
		}
	}
	for id := range notFixed {
		cache.put(id, reached.Contains(id))
	}
	return cache.freeze()
}
