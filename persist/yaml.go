package persist

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// A node is written as a single-key mapping of its name to its body. The body
// maps value keys to scalars and child names to a sequence of child bodies:
//
//	KerbalHealthScenario:
//	  version: "1"
//	  KerbalHealthStatus:
//	    - name: Jebediah
//	      health: 87.5

// MarshalYAML implements yaml.Marshaler.
func (n *Node) MarshalYAML() (interface{}, error) {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			scalar(n.Name),
			n.body(),
		},
	}, nil
}

func (n *Node) body() *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, v := range n.values {
		m.Content = append(m.Content, scalar(v.Key), scalar(v.Value))
	}

	// Group children by name, keeping first-seen order of names
	var order []string
	groups := make(map[string][]*Node)
	for _, c := range n.children {
		if _, seen := groups[c.Name]; !seen {
			order = append(order, c.Name)
		}
		groups[c.Name] = append(groups[c.Name], c)
	}
	for _, name := range order {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, c := range groups[name] {
			seq.Content = append(seq.Content, c.body())
		}
		m.Content = append(m.Content, scalar(name), seq)
	}
	return m
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: s}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode || len(value.Content) != 2 {
		return fmt.Errorf("line %d: expected a single-key mapping for a node", value.Line)
	}
	name := value.Content[0].Value
	parsed, err := parseBody(name, value.Content[1])
	if err != nil {
		return err
	}
	*n = *parsed
	return nil
}

func parseBody(name string, body *yaml.Node) (*Node, error) {
	n := NewNode(name)
	// A node with no values and no children may be written as `name:` (null)
	if body.Kind == yaml.ScalarNode && body.Value == "" {
		return n, nil
	}
	if body.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: node %q body must be a mapping", body.Line, name)
	}

	for i := 0; i+1 < len(body.Content); i += 2 {
		key := body.Content[i].Value
		val := body.Content[i+1]
		switch val.Kind {
		case yaml.ScalarNode:
			n.values = append(n.values, Value{Key: key, Value: val.Value})
		case yaml.SequenceNode:
			for _, item := range val.Content {
				child, err := parseBody(key, item)
				if err != nil {
					return nil, err
				}
				n.children = append(n.children, child)
			}
		case yaml.MappingNode:
			child, err := parseBody(key, val)
			if err != nil {
				return nil, err
			}
			n.children = append(n.children, child)
		default:
			return nil, fmt.Errorf("line %d: unsupported value for %s.%s", val.Line, name, key)
		}
	}
	return n, nil
}

// Marshal encodes a node as YAML.
func Marshal(n *Node) ([]byte, error) {
	data, err := yaml.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("marshal node %q: %w", n.Name, err)
	}
	return data, nil
}

// Unmarshal decodes a node from YAML.
func Unmarshal(data []byte) (*Node, error) {
	var n Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("unmarshal node: %w", err)
	}
	return &n, nil
}

// WriteFile writes a node to disk as YAML.
func WriteFile(path string, n *Node) error {
	data, err := Marshal(n)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadFile reads a YAML node from disk.
func ReadFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
