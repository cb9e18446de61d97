package generator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testMapping(namespace, name string) *Mapping {
	return &Mapping{
		Decl:      &Declaration{Kind: KindClass, Name: name, Module: namespace},
		Target:    name,
		Namespace: namespace,
	}
}

func TestRenderType(t *testing.T) {
	ctx := genContext{namespace: "Sample", indent: defaultIndent}
	a := testMapping("Sample", "A")
	b := testMapping("Sample", "B")
	foreign := testMapping("Other", "C")

	tests := []struct {
		name string
		expr TypeExpr
		want string
	}{
		{"primitive string", &PrimitiveType{Name: "String"}, "str"},
		{"primitive int", &PrimitiveType{Name: "Int"}, "int"},
		{"primitive boolean", &PrimitiveType{Name: "Boolean"}, "bool"},
		{"primitive duration", &PrimitiveType{Name: "Duration"}, "pkl.Duration"},
		{"nullable string", &NullableType{Inner: &PrimitiveType{Name: "String"}}, "Optional[str]"},
		{
			"union of declared",
			&UnionType{Members: []TypeExpr{&DeclaredType{Ref: a}, &DeclaredType{Ref: b}}},
			"Union[A, B]",
		},
		{"declared same namespace", &DeclaredType{Ref: a}, "A"},
		{"declared foreign namespace", &DeclaredType{Ref: foreign}, "Other.C"},
		{"string literal", &StringLiteralType{Value: "x"}, `Literal["x"]`},
		{"string literal with quote", &StringLiteralType{Value: `a"b`}, `Literal["a\"b"]`},
		{
			"generic list of declared",
			&GenericType{Base: &PrimitiveType{Name: "List"}, Args: []TypeExpr{&DeclaredType{Ref: a}}},
			"List[A]",
		},
		{
			"generic mapping",
			&GenericType{
				Base: &PrimitiveType{Name: "Mapping"},
				Args: []TypeExpr{&PrimitiveType{Name: "String"}, &PrimitiveType{Name: "Int"}},
			},
			"Dict[str, int]",
		},
		{
			"function",
			&FunctionType{
				Params: []TypeExpr{&PrimitiveType{Name: "String"}, &PrimitiveType{Name: "Int"}},
				Result: &PrimitiveType{Name: "Boolean"},
			},
			"Callable[[str, int], bool]",
		},
		{
			"nested nullable union",
			&NullableType{Inner: &UnionType{Members: []TypeExpr{
				&StringLiteralType{Value: "on"},
				&StringLiteralType{Value: "off"},
			}}},
			`Optional[Union[Literal["on"], Literal["off"]]]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderType(ctx, tt.expr, SourceLocation{})
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRenderTypeUnsupported(t *testing.T) {
	ctx := genContext{namespace: "Sample", indent: defaultIndent}

	t.Run("unknown primitive", func(t *testing.T) {
		at := SourceLocation{File: "sample.pkl", Line: 7}
		_, err := renderType(ctx, &PrimitiveType{Name: "Bogus"}, at)
		require.Error(t, err)
		var ute *UnsupportedTypeError
		require.ErrorAs(t, err, &ute)
		require.Equal(t, "Bogus", ute.Display)
		require.Equal(t, at, ute.Location)
	})

	t.Run("unknown shape keeps its own location", func(t *testing.T) {
		loc := SourceLocation{File: "sample.pkl", Line: 12}
		_, err := renderType(ctx, &UnknownType{Tag: "varargs", Location: loc}, SourceLocation{File: "other.pkl", Line: 1})
		var ute *UnsupportedTypeError
		require.ErrorAs(t, err, &ute)
		require.Equal(t, "varargs", ute.Display)
		require.Equal(t, loc, ute.Location)
	})

	t.Run("nested unsupported fails whole rendering", func(t *testing.T) {
		expr := &GenericType{
			Base: &PrimitiveType{Name: "List"},
			Args: []TypeExpr{&UnknownType{Tag: "mystery"}},
		}
		_, err := renderType(ctx, expr, SourceLocation{File: "sample.pkl", Line: 3})
		var ute *UnsupportedTypeError
		require.ErrorAs(t, err, &ute)
		require.Equal(t, "mystery", ute.Display)
	})
}
