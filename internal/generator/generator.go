package generator

import "github.com/cockroachdb/errors"

// generator holds transient state while producing one namespace's document.
type generator struct {
	members map[*Mapping]*generatedMember
}

func newGenerator() *generator {
	return &generator{members: make(map[*Mapping]*generatedMember)}
}

// Run loads the reflected module description and produces one document per
// namespace. Generation is all-or-nothing: the first collision or unsupported
// type aborts the run with no partial results. Callers decide persistence.
func Run(cfg Config) ([]Generated, error) {
	modules, err := loadReflected(cfg.Input)
	if err != nil {
		return nil, err
	}
	return generateModules(modules, cfg.Indent)
}

// generateModules runs the per-namespace pipeline over already-decoded
// modules; identical input yields byte-identical documents.
func generateModules(modules []*ModuleInfo, indent string) ([]Generated, error) {
	if indent == "" {
		indent = defaultIndent
	}
	out := make([]Generated, 0, len(modules))
	for _, mod := range modules {
		ctx := genContext{namespace: mod.Name, mappings: mod.Mappings, indent: indent}
		text, err := newGenerator().generateNamespace(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, Generated{
			Namespace: mod.Name,
			FileName:  outputFileName(mod.Name),
			Document:  text,
		})
	}
	return out, nil
}

// generateNamespace runs one namespace through the pipeline: uniqueness
// check, body generation, superclass linking, emission ordering, assembly.
func (g *generator) generateNamespace(ctx genContext) (string, error) {
	if err := checkUnique(ctx); err != nil {
		var nce *NameCollisionError
		if errors.As(err, &nce) && len(nce.Collisions) > 0 {
			return "", errors.WithHint(err, renameHint(nce.Collisions[0]))
		}
		return "", err
	}

	members := make([]*generatedMember, 0, len(ctx.mappings))
	for i, m := range ctx.mappings {
		gm, err := g.buildMember(ctx, m, i)
		if err != nil {
			return "", err
		}
		g.members[m] = gm
		members = append(members, gm)
	}
	// link superclass members; cross-namespace parents stay unlinked, they
	// impose no ordering constraint here
	for _, m := range ctx.mappings {
		if sup := m.Decl.Superclass; sup != nil && sup.Namespace == ctx.namespace {
			g.members[m].Superclass = g.members[sup]
		}
	}

	ordered, err := orderMembers(members)
	if err != nil {
		return "", err
	}
	header, err := execTemplate(tmplHeader, headerModel{ModuleName: ctx.namespace})
	if err != nil {
		return "", err
	}
	return assemble(ctx, header, ordered)
}
