package gleam

import "testing"

func TestTypeExprString(t *testing.T) {
	t.Parallel()

	str := &NamedType{Name: "String"}
	cases := []struct {
		expr TypeExpr
		want string
	}{
		{str, "String"},
		{&NamedType{Name: "List", Args: []TypeExpr{str}}, "List(String)"},
		{&NamedType{Module: "option", Name: "Option", Args: []TypeExpr{str}}, "option.Option(String)"},
		{&TupleType{Elems: []TypeExpr{&NamedType{Name: "Int"}, str}}, "#(Int, String)"},
		{&FunctionType{Params: []TypeExpr{&NamedType{Name: "Int"}}, Return: &NamedType{Name: "Bool"}}, "fn(Int) -> Bool"},
		{&VarType{Name: "a"}, "a"},
		{&HoleType{Name: "_ignored"}, "_ignored"},
		{&HoleType{}, "_"},
	}
	for _, tc := range cases {
		if got := tc.expr.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestIsOption(t *testing.T) {
	t.Parallel()

	str := &NamedType{Name: "String"}
	if !IsOption(&NamedType{Module: "gleam/option", Name: "Option", Args: []TypeExpr{str}}) {
		t.Error("normalized Option reference not recognized")
	}
	if IsOption(&NamedType{Module: "my/maybe", Name: "Option", Args: []TypeExpr{str}}) {
		t.Error("foreign Option must not count")
	}
	if IsOption(&NamedType{Module: "gleam/option", Name: "Option"}) {
		t.Error("bare Option without a type argument must not count")
	}
}
