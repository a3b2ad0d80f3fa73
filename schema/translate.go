package schema

import (
	"fmt"
	"strings"
)

// hiveTypes maps scalar type names from the embedded schema to Hive column
// types.
var hiveTypes = map[string]string{
	"string":    "string",
	"int":       "int",
	"integer":   "int",
	"long":      "bigint",
	"float":     "float",
	"double":    "double",
	"boolean":   "boolean",
	"date":      "date",
	"timestamp": "timestamp",
	"binary":    "binary",
}

// UnknownTypeError reports a scalar or reference the translator cannot
// resolve.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type %q", e.Name)
}

// UnsupportedUnionError reports a union that is not of the form [null, T].
type UnsupportedUnionError struct {
	Reason string
}

func (e *UnsupportedUnionError) Error() string {
	return "unsupported union: " + e.Reason
}

// Translator renders schema nodes as Hive column-type expressions. Named
// record types are registered as they are translated so later references to
// the same name resolve to the expanded declaration; the registry is scoped
// to one Translator, one per extracted sample.
type Translator struct {
	registry map[string]string
}

func NewTranslator() *Translator {
	return &Translator{registry: make(map[string]string)}
}

func (t *Translator) Translate(n *Node) (string, error) {
	switch n.Kind {
	case KindPrimitive:
		hive, ok := hiveTypes[n.Primitive]
		if !ok {
			return "", &UnknownTypeError{Name: n.Primitive}
		}
		return hive, nil

	case KindMap:
		value, err := t.Translate(n.Value)
		if err != nil {
			return "", err
		}
		// Map keys are always string in this scheme.
		return "map<string," + value + ">", nil

	case KindArray:
		item, err := t.Translate(n.Item)
		if err != nil {
			return "", err
		}
		return "array<" + item + ">", nil

	case KindRecord:
		return t.translateRecord(n)

	case KindUnion:
		variant, err := nonNullVariant(n)
		if err != nil {
			return "", err
		}
		return t.Translate(variant)

	case KindReference:
		expanded, ok := t.registry[n.Name]
		if !ok {
			return "", &UnknownTypeError{Name: n.Name}
		}
		return expanded, nil

	case KindNull:
		return "", &UnknownTypeError{Name: "null"}

	default:
		return "", fmt.Errorf("unhandled schema node kind %d", n.Kind)
	}
}

func (t *Translator) translateRecord(n *Node) (string, error) {
	parts := make([]string, 0, len(n.Fields))
	for _, field := range n.Fields {
		hive, err := t.Translate(field.Type)
		if err != nil {
			return "", err
		}
		parts = append(parts, field.Name+": "+hive)
	}

	rendered := "struct<" + strings.Join(parts, ", ") + ">"
	if n.Name != "" {
		t.registry[n.Name] = rendered
	}
	return rendered, nil
}

// nonNullVariant selects the usable side of a nullable union. Only binary
// [null, T] unions are supported; anything else fails rather than silently
// picking a variant.
func nonNullVariant(n *Node) (*Node, error) {
	if len(n.Variants) != 2 {
		return nil, &UnsupportedUnionError{
			Reason: fmt.Sprintf("%d variants, want 2", len(n.Variants)),
		}
	}

	first, second := n.Variants[0], n.Variants[1]
	switch {
	case first.Kind == KindNull && second.Kind != KindNull:
		return second, nil
	case second.Kind == KindNull && first.Kind != KindNull:
		return first, nil
	default:
		return nil, &UnsupportedUnionError{Reason: "exactly one variant must be null"}
	}
}
