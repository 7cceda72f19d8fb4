package linkedhashmap

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	_ yaml.Marshaler   = &Map[int, any]{}
	_ yaml.Unmarshaler = &Map[int, any]{}
)

// MarshalYAML implements the yaml.Marshaler interface: the map is encoded as
// a YAML mapping whose entries appear in insertion order.
func (m *Map[K, V]) MarshalYAML() (any, error) {
	if m == nil || m.list == nil {
		return nil, nil
	}

	node := yaml.Node{
		Kind: yaml.MappingNode,
	}

	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		key, value := new(yaml.Node), new(yaml.Node)

		if err := key.Encode(pair.Key); err != nil {
			return nil, err
		}
		if err := value.Encode(pair.Value); err != nil {
			return nil, err
		}

		node.Content = append(node.Content, key, value)
	}

	return &node, nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface: mapping entries
// are inserted in the order they appear in the document. Duplicate keys keep
// their first position and their last value, per Set's semantics.
func (m *Map[K, V]) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("cannot unmarshal %v into an insertion-ordered map: expecting a YAML mapping", value.Kind)
	}

	if m.list == nil {
		m.initialize(0)
	}

	for index := 0; index < len(value.Content); index += 2 {
		var key K
		var val V

		if err := value.Content[index].Decode(&key); err != nil {
			return err
		}
		if err := value.Content[index+1].Decode(&val); err != nil {
			return err
		}

		m.Set(key, val)
	}

	return nil
}
