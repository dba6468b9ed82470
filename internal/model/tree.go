package model

import "fmt"

// Node is a binary decision tree node. Internal nodes route a row left when
// row[Feature] <= Threshold, else right. Leaves carry a Class.
type Node struct {
	Feature   string  `yaml:"feature,omitempty"`
	Threshold float64 `yaml:"threshold,omitempty"`
	Left      *Node   `yaml:"left,omitempty"`
	Right     *Node   `yaml:"right,omitempty"`
	Class     string  `yaml:"class,omitempty"`

	index int
}

func (n *Node) leaf() bool {
	return n.Left == nil && n.Right == nil
}

type tree struct {
	features []string
	root     *Node
}

func newTree(features, classes []string, root *Node) (*tree, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: tree root missing", ErrInvalidArtifact)
	}

	index := make(map[string]int, len(features))
	for i, f := range features {
		index[f] = i
	}
	known := make(map[string]bool, len(classes))
	for _, c := range classes {
		known[c] = true
	}

	if err := bind(root, index, known, "root"); err != nil {
		return nil, err
	}

	return &tree{features: features, root: root}, nil
}

func bind(n *Node, index map[string]int, classes map[string]bool, path string) error {
	if n.leaf() {
		if !classes[n.Class] {
			return fmt.Errorf("%w: %s: unknown class %q", ErrInvalidArtifact, path, n.Class)
		}
		return nil
	}

	if n.Left == nil || n.Right == nil {
		return fmt.Errorf("%w: %s: split requires both branches", ErrInvalidArtifact, path)
	}
	i, ok := index[n.Feature]
	if !ok {
		return fmt.Errorf("%w: %s: unknown feature %q", ErrInvalidArtifact, path, n.Feature)
	}
	n.index = i

	if err := bind(n.Left, index, classes, path+".left"); err != nil {
		return err
	}
	return bind(n.Right, index, classes, path+".right")
}

func (t *tree) Features() []string {
	return t.features
}

func (t *tree) Predict(frame Frame) ([]string, error) {
	if err := frame.check(t.features); err != nil {
		return nil, err
	}

	labels := make([]string, len(frame.Rows))
	for i, row := range frame.Rows {
		n := t.root
		for !n.leaf() {
			if row[n.index] <= n.Threshold {
				n = n.Left
			} else {
				n = n.Right
			}
		}
		labels[i] = n.Class
	}
	return labels, nil
}
