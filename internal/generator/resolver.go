package generator

import (
	"fmt"
	"strings"
)

// Conflict identifies one declaration involved in a name collision.
type Conflict struct {
	Kind          DeclKind
	QualifiedName string
	Location      SourceLocation
}

// Collision is one group of declarations mapped to the same target
// identifier.
type Collision struct {
	Target    string
	Conflicts []Conflict
}

// NameCollisionError reports every target identifier claimed by more than one
// declaration within a single namespace.
type NameCollisionError struct {
	Namespace  string
	Collisions []Collision
}

func (e *NameCollisionError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "conflicting declarations in namespace %s:", e.Namespace)
	for _, c := range e.Collisions {
		fmt.Fprintf(&sb, "\n  %q is claimed by:", c.Target)
		for _, d := range c.Conflicts {
			fmt.Fprintf(&sb, "\n    %s %s (%s)", d.Kind, d.QualifiedName, d.Location)
		}
	}
	return sb.String()
}

// renameHint shows how a rename annotation resolves a collision; attached to
// the error as a user-facing hint.
func renameHint(c Collision) string {
	return fmt.Sprintf(
		"rename one of the conflicting declarations with an annotation, e.g.\n\n    @python.Name { value = %q }\n    class %s",
		c.Target+"2", c.Conflicts[len(c.Conflicts)-1].QualifiedName)
}

// checkUnique verifies that target identifiers are pairwise distinct within
// one namespace. It runs before any body is emitted; a single collision
// aborts emission for the whole namespace with no partial output.
func checkUnique(ctx genContext) error {
	groups := map[string][]*Mapping{}
	var order []string
	for _, m := range ctx.mappings {
		if _, seen := groups[m.Target]; !seen {
			order = append(order, m.Target)
		}
		groups[m.Target] = append(groups[m.Target], m)
	}
	var collisions []Collision
	for _, target := range order {
		ms := groups[target]
		if len(ms) < 2 {
			continue
		}
		c := Collision{Target: target}
		for _, m := range ms {
			c.Conflicts = append(c.Conflicts, Conflict{
				Kind:          m.Decl.Kind,
				QualifiedName: m.Decl.QualifiedName(),
				Location:      m.Decl.Location,
			})
		}
		collisions = append(collisions, c)
	}
	if len(collisions) == 0 {
		return nil
	}
	return &NameCollisionError{Namespace: ctx.namespace, Collisions: collisions}
}
