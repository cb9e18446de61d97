package generator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mappingAt(kind DeclKind, namespace, name, target, file string, line int) *Mapping {
	return &Mapping{
		Decl: &Declaration{
			Kind:     kind,
			Name:     name,
			Module:   namespace,
			Location: SourceLocation{File: file, Line: line},
		},
		Target:    target,
		Namespace: namespace,
	}
}

func TestCheckUnique(t *testing.T) {
	t.Run("distinct targets pass", func(t *testing.T) {
		ctx := genContext{namespace: "N", mappings: []*Mapping{
			mappingAt(KindClass, "N", "A", "A", "n.pkl", 1),
			mappingAt(KindClass, "N", "B", "B", "n.pkl", 2),
			mappingAt(KindTypeAlias, "N", "C", "C", "n.pkl", 3),
		}}
		require.NoError(t, checkUnique(ctx))
	})

	t.Run("collision names every conflicting declaration", func(t *testing.T) {
		first := mappingAt(KindClass, "N", "Foo", "Foo", "n.pkl", 4)
		second := mappingAt(KindTypeAlias, "N", "foo", "Foo", "n.pkl", 9)
		ctx := genContext{namespace: "N", mappings: []*Mapping{
			mappingAt(KindClass, "N", "Ok", "Ok", "n.pkl", 1),
			first,
			second,
		}}
		err := checkUnique(ctx)
		require.Error(t, err)

		var nce *NameCollisionError
		require.ErrorAs(t, err, &nce)
		require.Equal(t, "N", nce.Namespace)
		require.Len(t, nce.Collisions, 1)
		c := nce.Collisions[0]
		require.Equal(t, "Foo", c.Target)
		require.Equal(t, []Conflict{
			{Kind: KindClass, QualifiedName: "N#Foo", Location: SourceLocation{File: "n.pkl", Line: 4}},
			{Kind: KindTypeAlias, QualifiedName: "N#foo", Location: SourceLocation{File: "n.pkl", Line: 9}},
		}, c.Conflicts)

		require.Contains(t, err.Error(), "n.pkl:4")
		require.Contains(t, err.Error(), "n.pkl:9")
		require.Contains(t, err.Error(), `"Foo"`)
	})

	t.Run("multiple collision groups reported together", func(t *testing.T) {
		ctx := genContext{namespace: "N", mappings: []*Mapping{
			mappingAt(KindClass, "N", "A1", "A", "n.pkl", 1),
			mappingAt(KindClass, "N", "A2", "A", "n.pkl", 2),
			mappingAt(KindEnum, "N", "B1", "B", "n.pkl", 3),
			mappingAt(KindEnum, "N", "B2", "B", "n.pkl", 4),
		}}
		err := checkUnique(ctx)
		var nce *NameCollisionError
		require.ErrorAs(t, err, &nce)
		require.Len(t, nce.Collisions, 2)
		require.Equal(t, "A", nce.Collisions[0].Target)
		require.Equal(t, "B", nce.Collisions[1].Target)
	})

	t.Run("same target in different namespaces is fine", func(t *testing.T) {
		// checkUnique scopes to one namespace; a sibling namespace reusing
		// the identifier never reaches the same call
		ctx := genContext{namespace: "N", mappings: []*Mapping{
			mappingAt(KindClass, "N", "Foo", "Foo", "n.pkl", 1),
		}}
		require.NoError(t, checkUnique(ctx))
	})
}

func TestRenameHint(t *testing.T) {
	c := Collision{
		Target: "Foo",
		Conflicts: []Conflict{
			{Kind: KindClass, QualifiedName: "N#Foo"},
			{Kind: KindTypeAlias, QualifiedName: "N#foo"},
		},
	}
	hint := renameHint(c)
	require.Contains(t, hint, "@python.Name")
	require.Contains(t, hint, `"Foo2"`)
}
