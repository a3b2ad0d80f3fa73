package schema

// Kind discriminates the closed set of schema node shapes the translator
// understands.
type Kind int

const (
	KindPrimitive Kind = iota
	KindNull
	KindRecord
	KindArray
	KindMap
	KindUnion
	KindReference
)

// Node is one element of a parsed schema tree. Exactly the fields relevant
// to its Kind are populated; a Node is immutable once built by Parse.
type Node struct {
	Kind      Kind
	Primitive string  // KindPrimitive: scalar type name
	Name      string  // KindRecord: record name; KindReference: referenced name
	Fields    []Field // KindRecord
	Item      *Node   // KindArray
	Value     *Node   // KindMap; keys are always string
	Variants  []*Node // KindUnion
}

// Field is one named member of a record.
type Field struct {
	Name string
	Type *Node
}
