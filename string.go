package treeclock

import (
	"fmt"
	"strings"
)

// Debug renderers. The text form is for humans and logs only; it is not
// part of the wire contract and may change between releases.

// String renders the id tree: "0" and "1" for leaves, "(l, r)" for nodes.
func (i ID) String() string {
	var sb strings.Builder
	writeIDTree(&sb, i.idTree())
	return sb.String()
}

func writeIDTree(sb *strings.Builder, t *idTree) {
	if t.isLeaf() {
		if t.owns {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
		return
	}
	sb.WriteByte('(')
	writeIDTree(sb, t.left)
	sb.WriteString(", ")
	writeIDTree(sb, t.right)
	sb.WriteByte(')')
}

// String renders the event tree: a bare counter for leaves,
// "(n, l, r)" for nodes.
func (e Event) String() string {
	var sb strings.Builder
	writeEventTree(&sb, e.evTree())
	return sb.String()
}

func writeEventTree(sb *strings.Builder, t *eventTree) {
	if t.isLeaf() {
		fmt.Fprintf(sb, "%d", t.n)
		return
	}
	fmt.Fprintf(sb, "(%d, ", t.n)
	writeEventTree(sb, t.left)
	sb.WriteString(", ")
	writeEventTree(sb, t.right)
	sb.WriteByte(')')
}

// String renders the stamp as "{id; event}". The seed stamp renders as
// "{1; 0}".
func (s Stamp) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	writeIDTree(&sb, s.idTree())
	sb.WriteString("; ")
	writeEventTree(&sb, s.evTree())
	sb.WriteByte('}')
	return sb.String()
}
