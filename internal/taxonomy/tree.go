package taxonomy

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

var (
	ErrDuplicateNode = errors.New("duplicate taxonomy node")
	ErrMissingParent = errors.New("taxonomy parent not found")
	ErrCycle         = errors.New("taxonomy contains a cycle")
	ErrNodeNotFound  = errors.New("taxonomy node not found")
)

// Node is one term of a classification tree. Names are keyed by language code.
type Node struct {
	ID          string
	ParentID    string
	Code        string
	URI         string
	OrderNumber int
	Names       map[string]string
}

// Tree keeps nodes in a flat slice. Parent and child relations are index
// lookups into it.
type Tree struct {
	nodes    []Node
	index    map[string]int
	parent   []int
	children [][]int
	roots    []int
}

// Build validates nodes and indexes them. Siblings are ordered by order
// number, then code.
func Build(nodes []Node) (*Tree, error) {
	t := &Tree{
		nodes:    make([]Node, len(nodes)),
		index:    make(map[string]int, len(nodes)),
		parent:   make([]int, len(nodes)),
		children: make([][]int, len(nodes)),
	}
	copy(t.nodes, nodes)

	for i, n := range t.nodes {
		if _, ok := t.index[n.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID)
		}
		t.index[n.ID] = i
	}

	for i, n := range t.nodes {
		if n.ParentID == "" {
			t.parent[i] = -1
			t.roots = append(t.roots, i)
			continue
		}
		p, ok := t.index[n.ParentID]
		if !ok {
			return nil, fmt.Errorf("%w: %s of %s", ErrMissingParent, n.ParentID, n.ID)
		}
		t.parent[i] = p
		t.children[p] = append(t.children[p], i)
	}

	// every node reachable from a root is acyclic, the rest sit on a cycle
	reached := 0
	queue := slices.Clone(t.roots)
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		reached++
		queue = append(queue, t.children[i]...)
	}
	if reached != len(t.nodes) {
		return nil, fmt.Errorf("%w: %d nodes unreachable from a root", ErrCycle, len(t.nodes)-reached)
	}

	t.sort(t.roots)
	for i := range t.children {
		t.sort(t.children[i])
	}
	return t, nil
}

func (t *Tree) sort(ids []int) {
	slices.SortStableFunc(ids, func(a, b int) int {
		na, nb := &t.nodes[a], &t.nodes[b]
		if na.OrderNumber != nb.OrderNumber {
			return na.OrderNumber - nb.OrderNumber
		}
		return strings.Compare(na.Code, nb.Code)
	})
}

func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) Get(id string) (*Node, bool) {
	i, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return &t.nodes[i], true
}

func (t *Tree) Contains(id string) bool {
	_, ok := t.index[id]
	return ok
}

func (t *Tree) Roots() []*Node {
	return t.collect(t.roots)
}

func (t *Tree) Children(id string) []*Node {
	i, ok := t.index[id]
	if !ok {
		return nil
	}
	return t.collect(t.children[i])
}

// Ancestors returns the path from the root down to the parent of id.
func (t *Tree) Ancestors(id string) ([]*Node, error) {
	i, ok := t.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	var path []int
	for p := t.parent[i]; p >= 0; p = t.parent[p] {
		path = append(path, p)
	}
	slices.Reverse(path)
	return t.collect(path), nil
}

// Descendants returns every node below id, breadth first.
func (t *Tree) Descendants(id string) ([]*Node, error) {
	i, ok := t.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	var out []int
	queue := slices.Clone(t.children[i])
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		out = append(out, n)
		queue = append(queue, t.children[n]...)
	}
	return t.collect(out), nil
}

// Depth is 0 for roots.
func (t *Tree) Depth(id string) (int, error) {
	ancestors, err := t.Ancestors(id)
	if err != nil {
		return 0, err
	}
	return len(ancestors), nil
}

func (t *Tree) FindByCode(code string) (*Node, bool) {
	for i := range t.nodes {
		if t.nodes[i].Code == code {
			return &t.nodes[i], true
		}
	}
	return nil, false
}

// Name returns the name of id in the first language that has one.
func (t *Tree) Name(id string, language string, fallbacks ...string) (string, bool) {
	n, ok := t.Get(id)
	if !ok {
		return "", false
	}
	for _, lang := range append([]string{language}, fallbacks...) {
		if name, ok := n.Names[lang]; ok && name != "" {
			return name, true
		}
	}
	return "", false
}

// Walk visits the tree depth first in sibling order. Returning false from fn
// skips the children of the node.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	var visit func(i, depth int)
	visit = func(i, depth int) {
		if !fn(&t.nodes[i], depth) {
			return
		}
		for _, c := range t.children[i] {
			visit(c, depth+1)
		}
	}
	for _, r := range t.roots {
		visit(r, 0)
	}
}

// Missing returns the ids that are not part of the tree.
func (t *Tree) Missing(ids []string) []string {
	missing := mapset.NewSet[string]()
	for _, id := range ids {
		if !t.Contains(id) {
			missing.Add(id)
		}
	}
	out := missing.ToSlice()
	slices.Sort(out)
	return out
}

// Nodes returns every node, parents before children.
func (t *Tree) Nodes() []*Node {
	out := make([]*Node, 0, len(t.nodes))
	t.Walk(func(n *Node, _ int) bool {
		out = append(out, n)
		return true
	})
	return out
}

func (t *Tree) collect(ids []int) []*Node {
	out := make([]*Node, 0, len(ids))
	for _, i := range ids {
		out = append(out, &t.nodes[i])
	}
	return out
}
