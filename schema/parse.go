package schema

import (
	"encoding/json"
	"fmt"
)

// The schema-emitting tools changed their JSON shape across versions: older
// avro output nests the map value type under "values" and the array item
// type under "items", newer Spark output uses "valueType" and "elementType".
// Both are accepted, checked in this fixed priority order.
var (
	mapValueAliases  = []string{"values", "valueType"}
	arrayItemAliases = []string{"items", "elementType"}
)

// ParseDocument parses a raw embedded schema (a JSON object whose top level
// carries a "fields" list of {name, type} descriptors) into the top-level
// fields of the dataset.
func ParseDocument(raw []byte) ([]Field, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing schema document: %w", err)
	}

	list, ok := doc["fields"].([]any)
	if !ok {
		return nil, fmt.Errorf("schema document has no fields list")
	}

	fields := make([]Field, 0, len(list))
	for i, entry := range list {
		field, err := parseField(entry)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		fields = append(fields, field)
	}

	return fields, nil
}

func parseField(v any) (Field, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return Field{}, fmt.Errorf("expected object, got %T", v)
	}

	name, ok := m["name"].(string)
	if !ok || name == "" {
		return Field{}, fmt.Errorf("missing field name")
	}

	node, err := parseNode(m["type"])
	if err != nil {
		return Field{}, fmt.Errorf("field %s: %w", name, err)
	}

	return Field{Name: name, Type: node}, nil
}

// parseNode turns one decoded JSON value into a Node, validating its shape
// once so the translator can work over a closed union.
func parseNode(v any) (*Node, error) {
	switch val := v.(type) {
	case string:
		return parseScalar(val), nil

	case []any:
		variants := make([]*Node, 0, len(val))
		for _, item := range val {
			node, err := parseNode(item)
			if err != nil {
				return nil, err
			}
			variants = append(variants, node)
		}
		return &Node{Kind: KindUnion, Variants: variants}, nil

	case map[string]any:
		return parseComposite(val)

	default:
		return nil, fmt.Errorf("unsupported schema element %v", v)
	}
}

func parseScalar(name string) *Node {
	if name == "null" {
		return &Node{Kind: KindNull}
	}
	if _, ok := hiveTypes[name]; ok {
		return &Node{Kind: KindPrimitive, Primitive: name}
	}
	// Not a known scalar: a reference to a named type declared elsewhere
	// in the same schema.
	return &Node{Kind: KindReference, Name: name}
}

func parseComposite(m map[string]any) (*Node, error) {
	// Logical types annotate a physical scalar with the intended one.
	if lt, ok := m["logicalType"].(string); ok {
		switch lt {
		case "date":
			return &Node{Kind: KindPrimitive, Primitive: "date"}, nil
		case "timestamp-millis", "timestamp-micros":
			return &Node{Kind: KindPrimitive, Primitive: "timestamp"}, nil
		}
	}

	kind, ok := m["type"].(string)
	if !ok {
		// A wrapper whose "type" is itself a nested object or union.
		if nested, present := m["type"]; present {
			return parseNode(nested)
		}
		return nil, fmt.Errorf("schema object has no type")
	}

	switch kind {
	case "record", "struct":
		name, _ := m["name"].(string)
		list, ok := m["fields"].([]any)
		if !ok {
			return nil, fmt.Errorf("record %s has no fields list", name)
		}
		fields := make([]Field, 0, len(list))
		for _, entry := range list {
			field, err := parseField(entry)
			if err != nil {
				return nil, err
			}
			fields = append(fields, field)
		}
		return &Node{Kind: KindRecord, Name: name, Fields: fields}, nil

	case "map":
		value, err := parseAliased(m, mapValueAliases)
		if err != nil {
			return nil, fmt.Errorf("map: %w", err)
		}
		return &Node{Kind: KindMap, Value: value}, nil

	case "array":
		item, err := parseAliased(m, arrayItemAliases)
		if err != nil {
			return nil, fmt.Errorf("array: %w", err)
		}
		return &Node{Kind: KindArray, Item: item}, nil

	default:
		// e.g. {"type": "string"}: a scalar in object clothing.
		return parseScalar(kind), nil
	}
}

func parseAliased(m map[string]any, aliases []string) (*Node, error) {
	for _, alias := range aliases {
		if sub, ok := m[alias]; ok {
			return parseNode(sub)
		}
	}
	return nil, fmt.Errorf("none of %v present", aliases)
}
