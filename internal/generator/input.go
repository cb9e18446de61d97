package generator

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// Decoding of the reflected module description. The evaluator's reflection
// facility emits a JSON document: modules, each with declarations whose
// target identifiers were already resolved upstream (rename annotations
// applied). Unrecognized type-expression shapes decode into UnknownType so
// the failure surfaces at render time with the original spelling and
// location.

type reflectedDocument struct {
	Modules []reflectedModule `json:"modules"`
}

type reflectedModule struct {
	Name         string                 `json:"name"`
	Declarations []reflectedDeclaration `json:"declarations"`
}

type reflectedDeclaration struct {
	Kind       string              `json:"kind"` // class | enum | typealias
	Name       string              `json:"name"`
	Target     string              `json:"pythonName,omitempty"`
	Location   reflectedLocation   `json:"location"`
	ModuleRoot bool                `json:"moduleRoot,omitempty"`
	Superclass string              `json:"superclass,omitempty"` // Name or Module#Name
	Properties []reflectedProperty `json:"properties,omitempty"`
	Cases      []string            `json:"cases,omitempty"`
	Alias      json.RawMessage     `json:"alias,omitempty"`
}

type reflectedProperty struct {
	Name     string            `json:"name"`
	Type     json.RawMessage   `json:"type"`
	Location reflectedLocation `json:"location"`
}

type reflectedLocation struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

func (l reflectedLocation) source() SourceLocation {
	return SourceLocation{File: l.File, Line: l.Line}
}

// reflectedType is the tagged wire form of one type-expression node.
type reflectedType struct {
	Kind     string             `json:"kind"`
	Name     string             `json:"name,omitempty"`    // primitive, declared
	Inner    json.RawMessage    `json:"inner,omitempty"`   // nullable
	Members  []json.RawMessage  `json:"members,omitempty"` // union
	Module   string             `json:"module,omitempty"`  // declared
	Value    string             `json:"value,omitempty"`   // literal
	Base     json.RawMessage    `json:"base,omitempty"`    // generic
	Args     []json.RawMessage  `json:"args,omitempty"`    // generic
	Params   []json.RawMessage  `json:"params,omitempty"`  // function
	Result   json.RawMessage    `json:"result,omitempty"`  // function
	Location *reflectedLocation `json:"location,omitempty"`
}

// loadReflected reads and decodes the reflected module description from a
// file path, or from stdin when the path is "-".
func loadReflected(input string) ([]*ModuleInfo, error) {
	var data []byte
	var err error
	if input == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading reflected module description %s", input)
	}
	return decodeReflected(data)
}

// decodeReflected builds the declaration and mapping tables in two passes:
// shells plus mappings first (so declared-type references can resolve), then
// type expressions and superclass links.
func decodeReflected(data []byte) ([]*ModuleInfo, error) {
	var doc reflectedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decoding reflected module description")
	}

	type declKey struct{ module, name string }
	index := map[declKey]*Mapping{}
	modules := make([]*ModuleInfo, 0, len(doc.Modules))
	for _, rm := range doc.Modules {
		mod := &ModuleInfo{Name: rm.Name}
		for _, rd := range rm.Declarations {
			kind, err := parseDeclKind(rd.Kind)
			if err != nil {
				return nil, errors.Wrapf(err, "declaration %s in module %s", rd.Name, rm.Name)
			}
			decl := &Declaration{
				Kind:         kind,
				Name:         rd.Name,
				Module:       rm.Name,
				Location:     rd.Location.source(),
				IsModuleRoot: rd.ModuleRoot,
				Cases:        rd.Cases,
			}
			target := rd.Target
			if target == "" {
				target = rd.Name
			}
			mapping := &Mapping{Decl: decl, Target: target, Namespace: rm.Name}
			index[declKey{rm.Name, rd.Name}] = mapping
			mod.Mappings = append(mod.Mappings, mapping)
		}
		modules = append(modules, mod)
	}

	resolve := func(module, name string) (*Mapping, error) {
		if m, ok := index[declKey{module, name}]; ok {
			return m, nil
		}
		return nil, errors.Newf("unresolved type reference %s#%s", module, name)
	}
	for mi, rm := range doc.Modules {
		for di, rd := range rm.Declarations {
			decl := modules[mi].Mappings[di].Decl
			if rd.Superclass != "" {
				supModule, supName := splitRef(rd.Superclass, rm.Name)
				sup, err := resolve(supModule, supName)
				if err != nil {
					return nil, errors.Wrapf(err, "superclass of %s", decl.QualifiedName())
				}
				decl.Superclass = sup
			}
			for _, rp := range rd.Properties {
				loc := rp.Location.source()
				expr, err := decodeTypeExpr(rp.Type, rm.Name, loc, resolve)
				if err != nil {
					return nil, errors.Wrapf(err, "property %s of %s", rp.Name, decl.QualifiedName())
				}
				decl.Properties = append(decl.Properties, Property{Name: rp.Name, Type: expr, Location: loc})
			}
			if len(rd.Alias) > 0 {
				expr, err := decodeTypeExpr(rd.Alias, rm.Name, decl.Location, resolve)
				if err != nil {
					return nil, errors.Wrapf(err, "aliased type of %s", decl.QualifiedName())
				}
				decl.Aliased = expr
			}
		}
	}
	return modules, nil
}

func parseDeclKind(kind string) (DeclKind, error) {
	switch kind {
	case "class":
		return KindClass, nil
	case "enum":
		return KindEnum, nil
	case "typealias":
		return KindTypeAlias, nil
	}
	return 0, errors.Newf("unknown declaration kind %q", kind)
}

// splitRef splits a declaration reference of the form Module#Name; a bare
// name refers to the current module.
func splitRef(ref, currentModule string) (module, name string) {
	if i := strings.IndexByte(ref, '#'); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return currentModule, ref
}

// decodeTypeExpr decodes one type-expression node. The node's own location,
// when present, replaces the inherited one for itself and its children.
func decodeTypeExpr(raw json.RawMessage, module string, at SourceLocation, resolve func(module, name string) (*Mapping, error)) (TypeExpr, error) {
	var rt reflectedType
	if err := json.Unmarshal(raw, &rt); err != nil {
		return nil, errors.Wrap(err, "decoding type expression")
	}
	if rt.Location != nil {
		at = rt.Location.source()
	}
	switch rt.Kind {
	case "primitive":
		return &PrimitiveType{Name: rt.Name}, nil
	case "nullable":
		inner, err := decodeTypeExpr(rt.Inner, module, at, resolve)
		if err != nil {
			return nil, err
		}
		return &NullableType{Inner: inner}, nil
	case "union":
		members := make([]TypeExpr, 0, len(rt.Members))
		for _, m := range rt.Members {
			expr, err := decodeTypeExpr(m, module, at, resolve)
			if err != nil {
				return nil, err
			}
			members = append(members, expr)
		}
		return &UnionType{Members: members}, nil
	case "declared":
		refModule := rt.Module
		if refModule == "" {
			refModule = module
		}
		ref, err := resolve(refModule, rt.Name)
		if err != nil {
			return nil, err
		}
		return &DeclaredType{Ref: ref}, nil
	case "literal":
		return &StringLiteralType{Value: rt.Value}, nil
	case "generic":
		base, err := decodeTypeExpr(rt.Base, module, at, resolve)
		if err != nil {
			return nil, err
		}
		args := make([]TypeExpr, 0, len(rt.Args))
		for _, a := range rt.Args {
			expr, err := decodeTypeExpr(a, module, at, resolve)
			if err != nil {
				return nil, err
			}
			args = append(args, expr)
		}
		return &GenericType{Base: base, Args: args}, nil
	case "function":
		params := make([]TypeExpr, 0, len(rt.Params))
		for _, p := range rt.Params {
			expr, err := decodeTypeExpr(p, module, at, resolve)
			if err != nil {
				return nil, err
			}
			params = append(params, expr)
		}
		result, err := decodeTypeExpr(rt.Result, module, at, resolve)
		if err != nil {
			return nil, err
		}
		return &FunctionType{Params: params, Result: result}, nil
	default:
		return &UnknownType{Tag: rt.Kind, Location: at}, nil
	}
}
