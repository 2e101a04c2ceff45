// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package topology

import (
	"fmt"
	"strings"
)

// DOT renders the dependency graph as Graphviz DOT text. An edge from A
// to B means B must be realised before A. Only descriptor names and
// types appear in the rendering; output values never do.
func (t *Topology) DOT() string {
	var b strings.Builder
	b.WriteString("digraph topology {\n")
	b.WriteString("  rankdir=LR;\n")

	aliases := make(map[string]string, len(t.descriptors))
	for i, d := range t.descriptors {
		alias := fmt.Sprintf("n%d", i)
		aliases[d.Name] = alias
		label := escapeDOT(d.Name)
		if d.Type != "" {
			label += "\\n(" + escapeDOT(d.Type) + ")"
		}
		fmt.Fprintf(&b, "  %s [label=\"%s\"];\n", alias, label)
	}
	for _, d := range t.descriptors {
		for _, dep := range d.dependencies() {
			from, okFrom := aliases[d.Name]
			to, okTo := aliases[dep]
			if !okFrom || !okTo {
				continue
			}
			fmt.Fprintf(&b, "  %s -> %s;\n", from, to)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

func escapeDOT(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
