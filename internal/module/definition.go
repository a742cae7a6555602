package module

import (
	"fmt"

	"github.com/golangsnmp/asngen/internal/types"
)

// Kind classifies a definition node.
type Kind int

const (
	KindAlias       Kind = iota // top-level Name ::= OtherType
	KindReference               // member whose type is a named reference
	KindBoolean                 // BOOLEAN
	KindNull                    // NULL
	KindInteger                 // INTEGER
	KindBitString               // BIT STRING
	KindOctetString             // OCTET STRING
	KindEnumerated              // ENUMERATED
	KindEnumerator              // one item of an ENUMERATED list
	KindSequence                // SEQUENCE { ... }
	KindSequenceOf              // SEQUENCE OF T
	KindChoice                  // CHOICE { ... }
	KindConstant                // name Type ::= value
)

var kindNames = [...]string{
	KindAlias:       "alias",
	KindReference:   "reference",
	KindBoolean:     "boolean",
	KindNull:        "null",
	KindInteger:     "integer",
	KindBitString:   "bit-string",
	KindOctetString: "octet-string",
	KindEnumerated:  "enumerated",
	KindEnumerator:  "enumerator",
	KindSequence:    "sequence",
	KindSequenceOf:  "sequence-of",
	KindChoice:      "choice",
	KindConstant:    "constant",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalYAML renders the kind by name.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// IsScalar reports whether the kind accepts a numeric range or size
// constraint.
func (k Kind) IsScalar() bool {
	return k == KindInteger || k == KindBitString || k == KindOctetString
}

// IsStructural reports whether the kind carries a member list.
func (k Kind) IsStructural() bool {
	return k == KindSequence || k == KindChoice || k == KindSequenceOf
}

// IsNamedRef reports whether the node stands for a type named elsewhere.
func (k Kind) IsNamedRef() bool {
	return k == KindAlias || k == KindReference
}

// RuntimeType returns the runtime library type a kind maps to. base selects
// the unconstrained variant of a scalar.
func (k Kind) RuntimeType(base bool) string {
	var name string
	switch k {
	case KindBoolean:
		return "Boolean"
	case KindNull:
		return "Null"
	case KindInteger:
		name = "Integer"
	case KindBitString:
		name = "BitString"
	case KindOctetString:
		name = "OctetString"
	case KindEnumerated:
		return "Enumerated"
	case KindSequence:
		return "Sequence"
	case KindSequenceOf:
		return "SequenceOf"
	case KindChoice:
		return "Choice"
	default:
		return ""
	}
	if base {
		name += "Base"
	}
	return name
}

// ConstraintKind describes how a node is constrained.
type ConstraintKind int

const (
	ConstraintNone          ConstraintKind = iota
	ConstraintConstant                     // value assignment
	ConstraintUnconstrained                // no bounds
	ConstraintConstrained                  // closed bounds or value list
	ConstraintExtensible                   // bounds or list followed by "..."
)

// String returns the runtime library's spelling of the constraint kind.
func (c ConstraintKind) String() string {
	switch c {
	case ConstraintNone:
		return "NONE"
	case ConstraintConstant:
		return "CONSTANT"
	case ConstraintUnconstrained:
		return "UNCONSTRAINED"
	case ConstraintConstrained:
		return "CONSTRAINED"
	case ConstraintExtensible:
		return "EXTCONSTRAINED"
	default:
		return fmt.Sprintf("ConstraintKind(%d)", int(c))
	}
}

// MarshalYAML renders the constraint kind by name.
func (c ConstraintKind) MarshalYAML() (any, error) {
	return c.String(), nil
}

// Definition is one node of the IR forest.
type Definition struct {
	Kind Kind `yaml:"kind"`

	// Name is the output identifier, local to Scope.
	Name string `yaml:"name"`

	// Scope qualifies Name with the enclosing definition's qualified name
	// for members declared inline inside a SEQUENCE or CHOICE. Empty for
	// top-level definitions, references and enumerators.
	Scope string `yaml:"scope,omitempty"`

	// Ref is the referenced type name for KindAlias and KindReference.
	Ref string `yaml:"ref,omitempty"`

	Constraint ConstraintKind `yaml:"constraint"`
	Lower      string         `yaml:"lower,omitempty"`
	Upper      string         `yaml:"upper,omitempty"`

	// Value is the literal of a KindConstant node.
	Value int64 `yaml:"value,omitempty"`

	// Optional is set for OPTIONAL and DEFAULT members.
	Optional bool `yaml:"optional,omitempty"`

	// Extension is set for members after the extensibility marker.
	Extension bool `yaml:"extension,omitempty"`

	// Base marks an unconstrained scalar, emitted as a plain alias.
	Base bool `yaml:"base,omitempty"`

	Children []*Definition `yaml:"children,omitempty"`
	Span     types.Span    `yaml:"-"`
}

// QualifiedName is the name the node is declared under.
func (d *Definition) QualifiedName() string {
	return d.Scope + d.Name
}

// TypeName is the C++ type a parent uses to refer to this node.
func (d *Definition) TypeName() string {
	if d.Kind.IsNamedRef() {
		return d.Ref
	}
	return d.QualifiedName()
}

// Walk visits d and its descendants depth-first. Returning false from fn
// skips the node's children.
func (d *Definition) Walk(fn func(*Definition) bool) {
	if !fn(d) {
		return
	}
	for _, c := range d.Children {
		c.Walk(fn)
	}
}

// References returns the names of every type the node depends on through
// named references, in first-use order.
func (d *Definition) References() []string {
	var refs []string
	seen := make(map[string]struct{})
	d.Walk(func(n *Definition) bool {
		if n.Kind.IsNamedRef() && n.Ref != "" {
			if _, ok := seen[n.Ref]; !ok {
				seen[n.Ref] = struct{}{}
				refs = append(refs, n.Ref)
			}
		}
		return true
	})
	return refs
}

// Check returns a description of every structural invariant the node or
// its descendants violate.
func (d *Definition) Check() []string {
	var problems []string
	d.Walk(func(n *Definition) bool {
		switch {
		case n.Kind.IsScalar() || n.Kind == KindBoolean || n.Kind == KindNull ||
			n.Kind == KindEnumerator || n.Kind.IsNamedRef():
			if len(n.Children) != 0 {
				problems = append(problems, fmt.Sprintf("%s: %s node has children", n.QualifiedName(), n.Kind))
			}
		case n.Kind == KindSequenceOf:
			if len(n.Children) != 1 {
				problems = append(problems, fmt.Sprintf("%s: sequence-of has %d children", n.QualifiedName(), len(n.Children)))
			}
		}
		if n.Constraint == ConstraintConstant {
			if n.Kind != KindConstant || len(n.Children) != 0 {
				problems = append(problems, fmt.Sprintf("%s: constant constraint on %s node", n.QualifiedName(), n.Kind))
			}
		}
		if n.Name == "" {
			problems = append(problems, fmt.Sprintf("%s node without a name", n.Kind))
		}
		return true
	})
	return problems
}
