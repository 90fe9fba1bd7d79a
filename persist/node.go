// Package persist provides the ordered key/value tree used for saved state,
// along with its YAML encoding.
package persist

import (
	"fmt"
	"strconv"
)

// Value is a single key/value entry of a Node.
type Value struct {
	Key   string
	Value string
}

// Node is a named tree of ordered key/value entries and child nodes.
// Value keys are unique within a node; child names may repeat.
type Node struct {
	Name     string
	values   []Value
	children []*Node
}

// NewNode creates an empty node.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// SetValue sets key to value, keeping the key's original position if it exists.
func (n *Node) SetValue(key, value string) {
	for i := range n.values {
		if n.values[i].Key == key {
			n.values[i].Value = value
			return
		}
	}
	n.values = append(n.values, Value{Key: key, Value: value})
}

// SetFloat stores a float with the shortest exact representation.
func (n *Node) SetFloat(key string, v float64) {
	n.SetValue(key, strconv.FormatFloat(v, 'g', -1, 64))
}

// SetBool stores a bool as "true" or "false".
func (n *Node) SetBool(key string, v bool) {
	n.SetValue(key, strconv.FormatBool(v))
}

// Value returns the raw value for key.
func (n *Node) Value(key string) (string, bool) {
	for _, v := range n.values {
		if v.Key == key {
			return v.Value, true
		}
	}
	return "", false
}

// HasValue reports whether key is present.
func (n *Node) HasValue(key string) bool {
	_, ok := n.Value(key)
	return ok
}

// Get returns the value for key, or def when absent.
func (n *Node) Get(key, def string) string {
	if v, ok := n.Value(key); ok {
		return v
	}
	return def
}

// Float returns the value for key parsed as a float, or def when absent.
func (n *Node) Float(key string, def float64) (float64, error) {
	raw, ok := n.Value(key)
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def, fmt.Errorf("%s.%s: %w", n.Name, key, err)
	}
	return v, nil
}

// Bool returns the value for key parsed as a bool, or def when absent.
func (n *Node) Bool(key string, def bool) (bool, error) {
	raw, ok := n.Value(key)
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def, fmt.Errorf("%s.%s: %w", n.Name, key, err)
	}
	return v, nil
}

// Values returns a copy of the node's entries in insertion order.
func (n *Node) Values() []Value {
	out := make([]Value, len(n.values))
	copy(out, n.values)
	return out
}

// AddNode appends a child node and returns it.
func (n *Node) AddNode(child *Node) *Node {
	n.children = append(n.children, child)
	return child
}

// Nodes returns the children with the given name in insertion order.
func (n *Node) Nodes(name string) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Children returns all child nodes in insertion order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}
