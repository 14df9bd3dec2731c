package tree

import (
	"fmt"
	"strings"
)

func (t *Tree) String() string {
	if t.root == nil {
		return "[bare tree]\n"
	}
	return t.nodeString(t.root)
}

func (t *Tree) nodeString(n Node) string {
	var result string
	switch node := n.(type) {
	case *Split:
		operator := "<="
		if _, ok := node.Value.(string); ok {
			operator = "=="
		}
		result = fmt.Sprintf("{ column %d %s %s }\n|\n", node.Column, operator, formatValue(node.Value))
	case *Outcome:
		result = fmt.Sprintf("{ %s (impurity %s) }\n \n", formatValue(node.Value), formatValue(node.Impurity))
	}
	children := n.Children()
	for i, child := range children {
		for j, line := range strings.Split(t.nodeString(child), "\n") {
			if len(line) == 0 {
				continue
			}
			if j == 0 {
				result = fmt.Sprintf("%s|__%s\n", result, line)
			} else if i == len(children)-1 {
				result = fmt.Sprintf("%s   %s\n", result, line)
			} else {
				result = fmt.Sprintf("%s|  %s\n", result, line)
			}
		}
	}
	return result
}
