package codegen

import (
	"fmt"
	"strings"

	"github.com/abs0luty/gloss/gleam"
)

// defaultValueForType synthesizes the zero-value expression used by
// decode.failure: the first constructor applied to the default value
// of each of its fields. A visited set guards recursive shapes; when
// no default can be built, a runtime panic placeholder is emitted so
// generation itself never fails on a cyclic type.
func (g *genContext) defaultValueForType(decl *gleam.TypeDecl, usesOption *bool) string {
	visited := map[string]bool{}
	if expr, ok := g.buildDefaultForCustomType(g.modulePath, decl.Name, visited, usesOption); ok {
		return expr
	}
	return panicDefault(decl.Name)
}

func (g *genContext) buildDefaultForCustomType(targetModule, typeName string, visited map[string]bool, usesOption *bool) (string, bool) {
	key := targetModule + "\x00" + typeName
	if visited[key] {
		return "", false
	}
	visited[key] = true
	defer delete(visited, key)

	entry := g.registry.Get(targetModule, typeName)
	if entry == nil || entry.Decl == nil || len(entry.Decl.Constructors) == 0 {
		return "", false
	}
	return g.buildConstructorExpression(entry.Decl.Constructors[0], entry.ModulePath, visited, usesOption), true
}

func (g *genContext) buildConstructorExpression(ctor *gleam.Constructor, constructorModule string, visited map[string]bool, usesOption *bool) string {
	prefix := ctor.Name
	if constructorModule != g.modulePath {
		alias := g.ensureImport(constructorModule)
		prefix = alias + "." + ctor.Name
	}

	if len(ctor.Fields) == 0 {
		return prefix
	}

	values := make([]string, len(ctor.Fields))
	for i, f := range ctor.Fields {
		value := g.defaultValueForExpr(f.Type, constructorModule, visited, usesOption)
		if strings.HasPrefix(f.Label, "_unlabeled") {
			values[i] = value
		} else {
			values[i] = f.Label + ": " + value
		}
	}
	return fmt.Sprintf("%s(%s)", prefix, strings.Join(values, ", "))
}

func (g *genContext) defaultValueForExpr(expr gleam.TypeExpr, currentModule string, visited map[string]bool, usesOption *bool) string {
	switch t := expr.(type) {
	case *gleam.NamedType:
		switch {
		case t.Name == "String" && t.Module == "":
			return `""`
		case t.Name == "Int" && t.Module == "":
			return "0"
		case t.Name == "Float" && t.Module == "":
			return "0.0"
		case t.Name == "Bool" && t.Module == "":
			return "False"
		case t.Name == "List" && len(t.Args) == 1:
			return "[]"
		case gleam.IsOption(t):
			*usesOption = true
			return "option.None"
		}

		if entry := g.registry.Find(t.Module, t.Name, currentModule); entry != nil {
			if value, ok := g.buildDefaultForCustomType(entry.ModulePath, t.Name, visited, usesOption); ok {
				return value
			}
		}

		display := t.Name
		if t.Module != "" && t.Module != g.modulePath {
			display = strings.ReplaceAll(t.Module, "/", ".") + "." + t.Name
		}
		return panicDefault(display)

	case *gleam.TupleType:
		values := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			values[i] = g.defaultValueForExpr(e, currentModule, visited, usesOption)
		}
		return fmt.Sprintf("#(%s)", strings.Join(values, ", "))

	case *gleam.FunctionType:
		return panicDefault("function")
	case *gleam.VarType:
		return panicDefault("type variable")
	default:
		return panicDefault("type hole")
	}
}

func panicDefault(subject string) string {
	return fmt.Sprintf("panic(\"%s\")", escapeGleamString("No default value for "+subject))
}
