package generator

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Per-declaration body generator collaborators. Each builds the template
// model for one declaration kind, renders member types through renderType,
// and executes the matching body template.

// classModel is the template model for a class body.
type classModel struct {
	Name         string
	Parent       string
	Props        []propModel
	RegisteredID string
	Ind          string
}

type propModel struct {
	Name string
	Type string
}

// enumModel is the template model for an enum body.
type enumModel struct {
	Name  string
	Cases []caseModel
	Ind   string
}

type caseModel struct {
	Ident string
	Value string
}

// aliasModel is the template model for a type-alias body.
type aliasModel struct {
	Name     string
	Rendered string
}

// enumAuxImport is contributed once per namespace by the first enum member.
const enumAuxImport = "from enum import Enum"

// pythonKeywords guards generated attribute names; a keyword gets a trailing
// underscore, matching the upstream binding's convention.
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

func toPythonIdent(name string) string {
	if pythonKeywords[name] {
		return name + "_"
	}
	return name
}

// toEnumCaseIdent derives the SCREAMING_SNAKE_CASE member name for an enum
// case value.
func toEnumCaseIdent(value string) string {
	var sb strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
			sb.WriteRune(r - 'a' + 'A')
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	s := sb.String()
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		s = "_" + s
	}
	return s
}

// buildMember dispatches to the body generator for the declaration's kind.
func (g *generator) buildMember(ctx genContext, m *Mapping, index int) (*generatedMember, error) {
	switch m.Decl.Kind {
	case KindClass:
		return buildClassMember(ctx, m, index)
	case KindEnum:
		return buildEnumMember(ctx, m, index)
	case KindTypeAlias:
		return buildAliasMember(ctx, m, index)
	}
	return nil, errors.AssertionFailedf("unknown declaration kind %v", m.Decl.Kind)
}

// buildClassMember generates a dataclass body for a class declaration.
func buildClassMember(ctx genContext, m *Mapping, index int) (*generatedMember, error) {
	decl := m.Decl
	model := classModel{
		Name:         m.Target,
		RegisteredID: decl.QualifiedName(),
		Ind:          ctx.indent,
	}
	if sup := decl.Superclass; sup != nil {
		if sup.Namespace != ctx.namespace {
			model.Parent = sup.Namespace + "." + sup.Target
		} else {
			model.Parent = sup.Target
		}
	}
	for _, p := range decl.Properties {
		rendered, err := renderType(ctx, p.Type, p.Location)
		if err != nil {
			return nil, err
		}
		model.Props = append(model.Props, propModel{Name: toPythonIdent(p.Name), Type: rendered})
	}
	body, err := execTemplate(tmplClass, model)
	if err != nil {
		return nil, err
	}
	return &generatedMember{
		Name:         m.Target,
		Kind:         KindClass,
		Body:         body,
		IsModuleRoot: decl.IsModuleRoot,
		index:        index,
	}, nil
}

// buildEnumMember generates a str-backed Enum body for an enum declaration.
// It contributes the enum import as once-per-namespace auxiliary text.
func buildEnumMember(ctx genContext, m *Mapping, index int) (*generatedMember, error) {
	model := enumModel{Name: m.Target, Ind: ctx.indent}
	for _, c := range m.Decl.Cases {
		model.Cases = append(model.Cases, caseModel{Ident: toEnumCaseIdent(c), Value: c})
	}
	body, err := execTemplate(tmplEnum, model)
	if err != nil {
		return nil, err
	}
	return &generatedMember{
		Name:        m.Target,
		Kind:        KindEnum,
		Body:        body,
		TopLevelAux: enumAuxImport,
		index:       index,
	}, nil
}

// buildAliasMember generates an assignment body for a type alias.
func buildAliasMember(ctx genContext, m *Mapping, index int) (*generatedMember, error) {
	rendered, err := renderType(ctx, m.Decl.Aliased, m.Decl.Location)
	if err != nil {
		return nil, err
	}
	body, err := execTemplate(tmplAlias, aliasModel{Name: m.Target, Rendered: rendered})
	if err != nil {
		return nil, err
	}
	return &generatedMember{
		Name:  m.Target,
		Kind:  KindTypeAlias,
		Body:  body,
		index: index,
	}, nil
}
