package generator

import "github.com/cockroachdb/errors"

// preambleLines are the fixed imports every generated document starts with.
var preambleLines = []string{
	"from __future__ import annotations",
	"from typing import Any, Callable, Dict, List, Literal, Optional, Set, Union",
	"from dataclasses import dataclass",
	"import pkl",
}

// headerModel parameterizes the header comment block.
type headerModel struct {
	ModuleName string
}

// loaderModel parameterizes the convenience loader stub: the namespace's
// module type name and the configured indentation string, nothing else.
type loaderModel struct {
	ModuleName string
	Ind        string
}

// outputFileName derives the generated file name for a namespace.
func outputFileName(namespace string) string {
	return namespace + "_pkl.py"
}

// assemble concatenates the header block, fixed preamble, deduplicated
// top-level auxiliary text, the ordered member bodies (exactly one blank line
// between members), and the loader stub into the final document. The loader
// is indented one level so it lands inside the module-root class, which the
// orderer guarantees is the last emitted class/enum body. The result is the
// complete artifact; no later pass mutates it.
func assemble(ctx genContext, header string, ordered []*generatedMember) (string, error) {
	doc := newPyDoc(ctx.indent)
	doc.Block(0, header)
	for _, ln := range preambleLines {
		doc.Line(0, ln)
	}

	// auxiliary text: first occurrence wins, first-occurrence order preserved
	seenAux := map[string]bool{}
	for _, m := range ordered {
		if m.TopLevelAux == "" || seenAux[m.TopLevelAux] {
			continue
		}
		seenAux[m.TopLevelAux] = true
		doc.Line(0, m.TopLevelAux)
	}

	var root *generatedMember
	for i, m := range ordered {
		if i == 0 {
			doc.Blank()
			doc.Blank()
		} else {
			doc.Blank()
		}
		doc.Block(0, m.Body)
		if m.IsModuleRoot {
			root = m
		}
	}
	if root == nil {
		return "", errors.AssertionFailedf("namespace %s has no module-root member", ctx.namespace)
	}

	stub, err := execTemplate(tmplLoader, loaderModel{ModuleName: ctx.namespace, Ind: ctx.indent})
	if err != nil {
		return "", err
	}
	doc.Blank()
	doc.Block(0, stub)
	return doc.String(), nil
}
