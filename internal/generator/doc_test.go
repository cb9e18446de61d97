package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPyDoc(t *testing.T) {
	t.Run("indent levels", func(t *testing.T) {
		d := newPyDoc("    ")
		d.Line(0, "class X:")
		d.Line(1, "a: int")
		d.Line(2, "nested")
		require.Equal(t, "class X:\n    a: int\n        nested\n", d.String())
	})

	t.Run("blank lines carry no indentation", func(t *testing.T) {
		d := newPyDoc("    ")
		d.Line(0, "a")
		d.Blank()
		d.Line(1, "b")
		require.Equal(t, "a\n\n    b\n", d.String())
	})

	t.Run("block splits and indents pre-rendered text", func(t *testing.T) {
		d := newPyDoc("  ")
		d.Block(1, "a\n\nb\n")
		require.Equal(t, "  a\n\n  b\n", d.String())
	})

	t.Run("exactly one trailing newline", func(t *testing.T) {
		d := newPyDoc("    ")
		d.Line(0, "x")
		d.Blank()
		d.Blank()
		out := d.String()
		require.True(t, strings.HasSuffix(out, "x\n"))
		require.False(t, strings.HasSuffix(out, "\n\n"))
	})

	t.Run("empty document renders empty", func(t *testing.T) {
		require.Equal(t, "", newPyDoc("    ").String())
	})
}
