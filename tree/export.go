package tree

import (
	"fmt"
	"hash/crc32"
	"strconv"
	"strings"
)

// MaxFeatureNameLength is the length beyond which feature names are
// truncated with an ellipsis on graphviz labels.
const MaxFeatureNameLength = 30

/*
ExportGraphviz takes an optional slice of feature names indexed by
column and an optional maximum render depth and returns a Graphviz dot
document describing the tree, or ErrBareTree if the tree has not been
grown.

The document holds one node statement per visited tree node and one
edge statement linking it to its parent. The root's two outgoing edges
carry "True" and "False" head labels matching its binary test; deeper
edges are unlabeled. When maxDepth is greater than 0, nodes at that
depth render as an ellipsis placeholder instead of expanding further.
Leaves with a categorical outcome are filled with a color hashed from
the outcome value, with the font color chosen to contrast with its
brightness, so same-class leaves group visually; numeric outcomes use a
fixed neutral fill.
*/
func (t *Tree) ExportGraphviz(featureNames []string, maxDepth int) (string, error) {
	if t.Bare() {
		return "", ErrBareTree
	}
	var sb strings.Builder
	sb.WriteString("digraph Tree {\n")
	sb.WriteString("  node [shape=box, fontname=helvetica];\n")
	sb.WriteString("  edge [fontname=helvetica];\n")
	counter := 0
	t.exportNode(&sb, &counter, t.root, featureNames, maxDepth, -1, 0)
	sb.WriteString("}")
	return sb.String(), nil
}

// exportNode is a preorder walk bounded by maxDepth. It is purely
// presentational; growth and traversal stay iterative.
func (t *Tree) exportNode(sb *strings.Builder, counter *int, node Node, featureNames []string, maxDepth, parentID, depth int) {
	thisID := *counter
	*counter++
	depth++

	if maxDepth > 0 && depth >= maxDepth {
		fmt.Fprintf(sb, "  N%d [label=\"...\"];\n", thisID)
		t.exportEdge(sb, parentID, thisID)
		return
	}

	switch n := node.(type) {
	case *Split:
		name := fmt.Sprintf("Column %d", n.Column)
		if n.Column < len(featureNames) {
			name = featureNames[n.Column]
			if len(name) > MaxFeatureNameLength {
				name = name[:MaxFeatureNameLength] + "..."
			}
		}
		operator := "<="
		if _, ok := n.Value.(string); ok {
			operator = "=="
		}
		fmt.Fprintf(sb, "  N%d [label=\"%s %s %s\"];\n", thisID, name, operator, formatValue(n.Value))
		t.exportEdge(sb, parentID, thisID)
		if n.Left != nil {
			t.exportNode(sb, counter, n.Left, featureNames, maxDepth, thisID, depth)
		}
		if n.Right != nil {
			t.exportNode(sb, counter, n.Right, featureNames, maxDepth, thisID, depth)
		}
	case *Outcome:
		fillColor, fontColor := outcomeColors(n.Value)
		fmt.Fprintf(sb, "  N%d [label=\"%s\\nImpurity: %s\", style=\"rounded,filled\", fontcolor=%s, fillcolor=\"%s\"];\n",
			thisID, formatValue(n.Value), strconv.FormatFloat(n.Impurity, 'g', -1, 64), fontColor, fillColor)
		t.exportEdge(sb, parentID, thisID)
	}
}

func (t *Tree) exportEdge(sb *strings.Builder, parentID, thisID int) {
	if parentID < 0 {
		return
	}
	fmt.Fprintf(sb, "  N%d -> N%d", parentID, thisID)
	if parentID == 0 {
		if thisID == 1 {
			sb.WriteString(" [labeldistance=2.5, labelangle=45, headlabel=\"True\"]")
		} else {
			sb.WriteString(" [labeldistance=2.5, labelangle=-45, headlabel=\"False\"]")
		}
	}
	sb.WriteString(";\n")
}

// outcomeColors derives a deterministic fill color from a categorical
// outcome and picks a contrasting font color from its brightness.
// Numeric outcomes share a fixed neutral fill.
func outcomeColors(outcome interface{}) (fill, font string) {
	s, ok := outcome.(string)
	if !ok {
		return "#e5e5e5", "black"
	}
	sum := crc32.ChecksumIEEE([]byte(s))
	r := (sum >> 16) & 0xff
	g := (sum >> 8) & 0xff
	b := sum & 0xff
	brightness := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255.0
	font = "white"
	if brightness > 0.5 {
		font = "black"
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b), font
}

func formatValue(value interface{}) string {
	if f, ok := value.(float64); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return fmt.Sprintf("%v", value)
}
