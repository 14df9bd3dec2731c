/*
Package json serializes grown trees to JSON and deserializes them back,
so trees can be written to files or model stores and later reloaded for
prediction, importance reporting and export.
*/
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Textualization/ML/tree"
)

type jsonTree struct {
	FeatureCount int       `json:"featureCount"`
	Root         *jsonNode `json:"root"`
}

type jsonNode struct {
	Kind           string      `json:"kind"`
	Column         int         `json:"column,omitempty"`
	Value          interface{} `json:"value"`
	Impurity       float64     `json:"impurity"`
	PurityIncrease float64     `json:"purityIncrease,omitempty"`
	Left           *jsonNode   `json:"left,omitempty"`
	Right          *jsonNode   `json:"right,omitempty"`
}

const (
	splitKind   = "split"
	outcomeKind = "outcome"
)

/*
WriteTree takes a grown tree and an io.Writer and serializes the tree
as JSON onto the writer: an object with a "featureCount" property and a
"root" property holding the node graph, each node an object with a
"kind" of either "split" or "outcome" and the fields of that node kind.
It returns tree.ErrBareTree for a bare tree or an error if the tree
cannot be written.
*/
func WriteTree(t *tree.Tree, w io.Writer) error {
	if t.Bare() {
		return tree.ErrBareTree
	}
	jt := &jsonTree{
		FeatureCount: t.FeatureCount(),
		Root:         encodeNode(t.Root()),
	}
	return json.NewEncoder(w).Encode(jt)
}

/*
ReadTree takes an io.Reader holding a tree serialized by WriteTree and
returns the restored tree or an error if the JSON cannot be decoded or
describes no valid node graph.
*/
func ReadTree(r io.Reader) (*tree.Tree, error) {
	jt := &jsonTree{}
	if err := json.NewDecoder(r).Decode(jt); err != nil {
		return nil, fmt.Errorf("decoding tree: %v", err)
	}
	if jt.Root == nil {
		return nil, fmt.Errorf("decoding tree: no root node")
	}
	root, err := jt.Root.node()
	if err != nil {
		return nil, fmt.Errorf("decoding tree: %v", err)
	}
	return tree.Restore(root, jt.FeatureCount), nil
}

func encodeNode(n tree.Node) *jsonNode {
	switch node := n.(type) {
	case *tree.Split:
		jn := &jsonNode{
			Kind:           splitKind,
			Column:         node.Column,
			Value:          node.Value,
			Impurity:       node.Impurity,
			PurityIncrease: node.PurityIncrease,
		}
		if node.Left != nil {
			jn.Left = encodeNode(node.Left)
		}
		if node.Right != nil {
			jn.Right = encodeNode(node.Right)
		}
		return jn
	case *tree.Outcome:
		return &jsonNode{
			Kind:     outcomeKind,
			Value:    node.Value,
			Impurity: node.Impurity,
		}
	}
	return nil
}

func (jn *jsonNode) node() (tree.Node, error) {
	switch jn.Kind {
	case splitKind:
		split := &tree.Split{
			Column:         jn.Column,
			Value:          jn.Value,
			Impurity:       jn.Impurity,
			PurityIncrease: jn.PurityIncrease,
		}
		if jn.Left != nil {
			left, err := jn.Left.node()
			if err != nil {
				return nil, err
			}
			split.AttachLeft(left)
		}
		if jn.Right != nil {
			right, err := jn.Right.node()
			if err != nil {
				return nil, err
			}
			split.AttachRight(right)
		}
		return split, nil
	case outcomeKind:
		return tree.NewOutcome(jn.Value, jn.Impurity), nil
	}
	return nil, fmt.Errorf("unknown node kind '%s'", jn.Kind)
}
