package generator

import (
	"fmt"
	"strconv"
	"strings"
)

// pythonPrimitives maps schema primitive names to their Python spelling.
// Container primitives double as generic bases (Listing<Int> -> List[int]).
var pythonPrimitives = map[string]string{
	"String":   "str",
	"Int":      "int",
	"Int8":     "int",
	"Int16":    "int",
	"Int32":    "int",
	"UInt":     "int",
	"UInt8":    "int",
	"UInt16":   "int",
	"UInt32":   "int",
	"Float":    "float",
	"Number":   "Union[int, float]",
	"Boolean":  "bool",
	"Any":      "Any",
	"Null":     "None",
	"Duration": "pkl.Duration",
	"DataSize": "pkl.DataSize",
	"Dynamic":  "Dict[str, Any]",
	"List":     "List",
	"Listing":  "List",
	"Map":      "Dict",
	"Mapping":  "Dict",
	"Set":      "Set",
	"Pair":     "Tuple",
	"Regex":    "str",
	"Uri":      "str",
}

// UnsupportedTypeError reports a type expression the renderer cannot
// translate into Python. It is fatal for the whole run; there is no partial
// or best-effort rendering.
type UnsupportedTypeError struct {
	Display  string
	Location SourceLocation
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type %s at %s", e.Display, e.Location)
}

// unsupported builds the error for an expression the switch cannot handle,
// preferring the expression's own location when the decoder recorded one.
func unsupported(expr TypeExpr, at SourceLocation) *UnsupportedTypeError {
	if u, ok := expr.(*UnknownType); ok && u.Location != (SourceLocation{}) {
		at = u.Location
	}
	return &UnsupportedTypeError{Display: expr.Display(), Location: at}
}

// renderType converts a type expression into Python type syntax. Declared
// references outside ctx.namespace are qualified with their namespace name.
// Pure: identical inputs always produce identical text.
func renderType(ctx genContext, expr TypeExpr, at SourceLocation) (string, error) {
	switch t := expr.(type) {
	case *PrimitiveType:
		if py, ok := pythonPrimitives[t.Name]; ok {
			return py, nil
		}
		return "", unsupported(t, at)
	case *NullableType:
		inner, err := renderType(ctx, t.Inner, at)
		if err != nil {
			return "", err
		}
		return "Optional[" + inner + "]", nil
	case *UnionType:
		parts := make([]string, 0, len(t.Members))
		for _, m := range t.Members {
			s, err := renderType(ctx, m, at)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return "Union[" + strings.Join(parts, ", ") + "]", nil
	case *DeclaredType:
		if t.Ref.Namespace != ctx.namespace {
			return t.Ref.Namespace + "." + t.Ref.Target, nil
		}
		return t.Ref.Target, nil
	case *StringLiteralType:
		return "Literal[" + strconv.Quote(t.Value) + "]", nil
	case *GenericType:
		base, err := renderType(ctx, t.Base, at)
		if err != nil {
			return "", err
		}
		args := make([]string, 0, len(t.Args))
		for _, a := range t.Args {
			s, err := renderType(ctx, a, at)
			if err != nil {
				return "", err
			}
			args = append(args, s)
		}
		return base + "[" + strings.Join(args, ", ") + "]", nil
	case *FunctionType:
		params := make([]string, 0, len(t.Params))
		for _, p := range t.Params {
			s, err := renderType(ctx, p, at)
			if err != nil {
				return "", err
			}
			params = append(params, s)
		}
		result, err := renderType(ctx, t.Result, at)
		if err != nil {
			return "", err
		}
		return "Callable[[" + strings.Join(params, ", ") + "], " + result + "]", nil
	default:
		return "", unsupported(expr, at)
	}
}
