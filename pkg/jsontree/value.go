// Package jsontree builds an annotated, immutable tree from a generic JSON
// value.
//
// Every node in the tree carries its concrete kind (string, number, bool,
// null, list, object) and a path string that uniquely identifies its position
// relative to the root. Paths are assembled from two accessor kinds:
//
//	[i]    list element at index i
//	.name  object field "name"
//
// The root has the empty path. A list element at index 2 inside the object
// field "items" therefore has the path ".items[2]". Paths depend only on
// structural position, so re-parsing identical input always yields identical
// paths. Renderers and the collapse state store use paths as the sole node
// identity.
//
// # Usage
//
//	node, err := jsontree.ParseText(`{"age": 42, "name": "Arnold"}`)
//	if err != nil {
//	    return err
//	}
//	obj := node.Value.(jsontree.Object)
//	obj["age"].Path // ".age"
package jsontree

// Kind identifies the concrete shape of a JSON value.
type Kind int

// Supported JSON value kinds.
const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindNull
	KindList
	KindObject
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// IsContainer reports whether the kind holds child nodes.
func (k Kind) IsContainer() bool {
	return k == KindList || k == KindObject
}

// Value is the tagged representation of a JSON value. Exactly six types
// implement it: String, Number, Bool, Null, List, and Object.
type Value interface {
	Kind() Kind
	isValue()
}

// String is a JSON string value.
type String string

// Number is a JSON number. All numeric input is decoded as 64-bit floating
// point; the integer/float distinction of the source text is not preserved.
type Number float64

// Bool is a JSON boolean value.
type Bool bool

// Null is the JSON null value.
type Null struct{}

// List is an ordered sequence of child nodes.
type List []Node

// Object maps field names to child nodes. Iteration order carries no
// meaning; paths are derived from field names, never from position.
type Object map[string]Node

// Kind implements Value.
func (String) Kind() Kind { return KindString }

// Kind implements Value.
func (Number) Kind() Kind { return KindNumber }

// Kind implements Value.
func (Bool) Kind() Kind { return KindBool }

// Kind implements Value.
func (Null) Kind() Kind { return KindNull }

// Kind implements Value.
func (List) Kind() Kind { return KindList }

// Kind implements Value.
func (Object) Kind() Kind { return KindObject }

func (String) isValue() {}
func (Number) isValue() {}
func (Bool) isValue()   {}
func (Null) isValue()   {}
func (List) isValue()   {}
func (Object) isValue() {}
