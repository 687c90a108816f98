// Package scenario decodes textual descriptions of an inference session into
// a constraint system, for the fixation trace CLI and for end-to-end tests.
package scenario

import (
	"fmt"
	"io"

	"github.com/candlelang/candle/frontend/infer"
	"gopkg.in/yaml.v3"
)

type File struct {
	// Mode is "full" (default) or "partial".
	Mode         string         `yaml:"mode"`
	TopLevelType string         `yaml:"topLevelType"`
	Variables    []VariableDecl `yaml:"variables"`
	Postponed    []AtomDecl     `yaml:"postponedAtoms"`
}

type VariableDecl struct {
	Name        string           `yaml:"name"`
	Reified     bool             `yaml:"reified"`
	Postponed   bool             `yaml:"postponed"`
	Constraints []ConstraintDecl `yaml:"constraints"`
}

type ConstraintDecl struct {
	// Kind is "upper" (variable <: type), "lower" (type <: variable) or
	// "equal".
	Kind string `yaml:"kind"`
	Type string `yaml:"type"`
	// Position is "argument" (default), "expectedType" or
	// "declaredUpperBound".
	Position        string `yaml:"position"`
	NullabilityOnly bool   `yaml:"nullabilityOnly"`
}

type AtomDecl struct {
	Inputs []string `yaml:"inputs"`
	Output string   `yaml:"output"`
}

// Scenario is a fully materialized inference session ready to run.
type Scenario struct {
	System       *infer.ConstraintSystem
	Mode         infer.CompletionMode
	TopLevelType infer.SimpleType
	Postponed    []*infer.PostponedAtom
	Variables    map[string]*infer.TypeVariable
}

// Decode reads a YAML scenario and builds the session it describes.
func Decode(r io.Reader) (*Scenario, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("could not decode scenario yaml: %w", err)
	}
	return build(&file)
}

func build(file *File) (*Scenario, error) {
	sc := &Scenario{
		System:    infer.NewConstraintSystem(),
		Variables: make(map[string]*infer.TypeVariable, len(file.Variables)),
	}

	switch file.Mode {
	case "", "full":
		sc.Mode = infer.ModeFull
	case "partial":
		sc.Mode = infer.ModePartial
	default:
		return nil, fmt.Errorf("unknown completion mode %q", file.Mode)
	}

	// declare every variable before parsing any type so constraints may
	// mention variables declared later in the file
	for i, decl := range file.Variables {
		if decl.Name == "" {
			return nil, fmt.Errorf("variable %d has no name", i)
		}
		if _, dup := sc.Variables[decl.Name]; dup {
			return nil, fmt.Errorf("duplicate variable %q", decl.Name)
		}
		id := infer.TypeVarID(i + 1)
		var v *infer.TypeVariable
		if decl.Reified {
			v = infer.NewReifiedTypeVariable(id, decl.Name)
		} else {
			v = infer.NewTypeVariable(id, decl.Name)
		}
		sc.Variables[decl.Name] = v
		if err := sc.System.RegisterVariable(v); err != nil {
			return nil, fmt.Errorf("could not register variable %q: %w", decl.Name, err)
		}
		if decl.Postponed {
			sc.System.MarkPostponed(v)
		}
	}

	for _, decl := range file.Variables {
		v := sc.Variables[decl.Name]
		for i, cdecl := range decl.Constraints {
			c, err := sc.buildConstraint(&cdecl)
			if err != nil {
				return nil, fmt.Errorf("constraint %d of variable %q: %w", i, decl.Name, err)
			}
			if err := sc.System.AddConstraint(v, c); err != nil {
				return nil, fmt.Errorf("constraint %d of variable %q: %w", i, decl.Name, err)
			}
		}
	}

	if file.TopLevelType != "" {
		t, err := ParseType(file.TopLevelType, sc.Variables)
		if err != nil {
			return nil, fmt.Errorf("top-level type: %w", err)
		}
		sc.TopLevelType = t
	}

	for i, decl := range file.Postponed {
		atom := &infer.PostponedAtom{}
		for _, input := range decl.Inputs {
			t, err := ParseType(input, sc.Variables)
			if err != nil {
				return nil, fmt.Errorf("postponed atom %d input: %w", i, err)
			}
			atom.InputTypes = append(atom.InputTypes, t)
		}
		if decl.Output != "" {
			t, err := ParseType(decl.Output, sc.Variables)
			if err != nil {
				return nil, fmt.Errorf("postponed atom %d output: %w", i, err)
			}
			atom.OutputType = t
		}
		sc.Postponed = append(sc.Postponed, atom)
	}

	return sc, nil
}

func (sc *Scenario) buildConstraint(decl *ConstraintDecl) (*infer.Constraint, error) {
	t, err := ParseType(decl.Type, sc.Variables)
	if err != nil {
		return nil, err
	}

	var kind infer.ConstraintKind
	switch decl.Kind {
	case "upper":
		kind = infer.ConstraintUpper
	case "lower":
		kind = infer.ConstraintLower
	case "equal":
		kind = infer.ConstraintEquality
	default:
		return nil, fmt.Errorf("unknown constraint kind %q", decl.Kind)
	}

	var position infer.ConstraintPosition
	switch decl.Position {
	case "", "argument":
		position = infer.ArgumentPosition()
	case "expectedType":
		position = infer.ExpectedTypePosition()
	case "declaredUpperBound":
		position = infer.DeclaredUpperBoundPosition()
	default:
		return nil, fmt.Errorf("unknown constraint position %q", decl.Position)
	}

	return &infer.Constraint{
		Kind:            kind,
		Type:            t,
		Position:        position,
		NullabilityOnly: decl.NullabilityOnly,
	}, nil
}
