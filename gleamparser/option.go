package gleamparser

import (
	"github.com/abs0luty/gloss/errors"
	"github.com/abs0luty/gloss/gleam"
)

// optionAvailability records how gleam/option's Option type is
// reachable in one file.
type optionAvailability struct {
	// aliases holds every qualifier referring to gleam/option.
	aliases map[string]bool
	// unqualified is set when a bare Option means gleam/option's.
	unqualified bool
}

// computeOptionAvailability inspects a module's imports. A bare Option
// defaults to the prelude's gleam/option type unless some other module
// exposes an Option unqualified; exposing Option from both gleam/option
// and another module is an error.
func computeOptionAvailability(m *gleam.Module) (optionAvailability, error) {
	av := optionAvailability{aliases: map[string]bool{}}
	otherSources := false

	for _, imp := range m.Imports {
		if imp.Module == "gleam/option" {
			av.aliases[imp.Alias] = true
		}
		for _, name := range imp.Exposed {
			if name != "Option" {
				continue
			}
			if imp.Module == "gleam/option" {
				av.unqualified = true
			} else {
				otherSources = true
			}
		}
	}

	if av.unqualified && otherSources {
		return av, errors.Generationf(
			"conflicting imports for `Option` in %s: gloss requires `Option` to come from `gleam/option` when using optional fields", m.Path)
	}
	if !av.unqualified && !otherSources {
		av.unqualified = true
	}

	return av, nil
}

// resolveOptionReferences rewrites every Option reference that points
// at gleam/option to carry the full module path, so later passes can
// identify optional fields with a plain comparison.
func resolveOptionReferences(m *gleam.Module) error {
	av, err := computeOptionAvailability(m)
	if err != nil {
		return err
	}

	for _, decl := range m.Types {
		for _, ctor := range decl.Constructors {
			for _, field := range ctor.Fields {
				resolveOptionExpr(field.Type, av)
			}
		}
	}
	return nil
}

func resolveOptionExpr(expr gleam.TypeExpr, av optionAvailability) {
	switch t := expr.(type) {
	case *gleam.NamedType:
		if t.Name == "Option" {
			if t.Module == "" && av.unqualified {
				t.Module = "gleam/option"
			} else if t.Module != "" && av.aliases[t.Module] {
				t.Module = "gleam/option"
			}
		}
		for _, a := range t.Args {
			resolveOptionExpr(a, av)
		}
	case *gleam.TupleType:
		for _, e := range t.Elems {
			resolveOptionExpr(e, av)
		}
	case *gleam.FunctionType:
		for _, p := range t.Params {
			resolveOptionExpr(p, av)
		}
		if t.Return != nil {
			resolveOptionExpr(t.Return, av)
		}
	}
}
