package emitter

import (
	"fmt"
	"strings"

	"github.com/golangsnmp/asngen/internal/module"
	"github.com/golangsnmp/asngen/internal/naming"
)

// fragment is the code produced for one declared type: a declaration for
// the header artifact and an optional definition for the source artifact.
type fragment struct {
	header string
	source string
}

// runtimeTypes are the type names the runtime library provides.
var runtimeTypes = map[string]struct{}{
	"Boolean":         {},
	"BitString":       {},
	"BitStringBase":   {},
	"Choice":          {},
	"Enumerated":      {},
	"EnumeratedBase":  {},
	"Integer":         {},
	"IntegerBase":     {},
	"Null":            {},
	"OctetString":     {},
	"OctetStringBase": {},
	"Sequence":        {},
	"SequenceOf":      {},
}

// IsRuntimeType reports whether name is provided by the runtime library.
func IsRuntimeType(name string) bool {
	_, ok := runtimeTypes[name]
	return ok
}

// fragmentFor renders the template for def's kind. Dependencies must
// already be declared.
func fragmentFor(def *module.Definition) (fragment, bool) {
	switch def.Kind {
	case module.KindAlias, module.KindReference:
		return aliasFragment(def.Ref, def.QualifiedName()), true
	case module.KindBoolean, module.KindNull:
		return aliasFragment(def.Kind.RuntimeType(false), def.QualifiedName()), true
	case module.KindConstant:
		return constantFragment(def), true
	case module.KindInteger, module.KindBitString, module.KindOctetString:
		return scalarFragment(def), true
	case module.KindEnumerated:
		return enumeratedFragment(def), true
	case module.KindSequence:
		return sequenceFragment(def), true
	case module.KindSequenceOf:
		return sequenceOfFragment(def), true
	case module.KindChoice:
		return choiceFragment(def), true
	}
	return fragment{}, false
}

func aliasFragment(target, name string) fragment {
	return fragment{header: fmt.Sprintf("typedef %s %s;\n", target, name)}
}

func constantFragment(def *module.Definition) fragment {
	return fragment{header: fmt.Sprintf("#define %s %d\n", def.QualifiedName(), def.Value)}
}

// scalarFragment renders INTEGER, BIT STRING and OCTET STRING. Only the
// bounds that are present are passed to the template.
func scalarFragment(def *module.Definition) fragment {
	name := def.QualifiedName()
	if def.Constraint == module.ConstraintUnconstrained || def.Constraint == module.ConstraintNone {
		return aliasFragment(def.Kind.RuntimeType(def.Base), name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "typedef %s<%s", def.Kind.RuntimeType(false), def.Constraint)
	if def.Lower != "" {
		fmt.Fprintf(&b, ", %s", def.Lower)
	}
	if def.Upper != "" {
		fmt.Fprintf(&b, ", %s", def.Upper)
	}
	fmt.Fprintf(&b, "> %s;\n", name)
	return fragment{header: b.String()}
}

// enumeratedFragment numbers enumerators by position, in list order.
func enumeratedFragment(def *module.Definition) fragment {
	name := def.QualifiedName()

	var b strings.Builder
	fmt.Fprintf(&b, "enum %sValues {\n", name)
	for i, e := range def.Children {
		fmt.Fprintf(&b, "\t%s_%s = %d,\n", e.Name, name, i)
	}
	b.WriteString("};\n")
	fmt.Fprintf(&b, "typedef Enumerated<%s, %d> %s;\n", def.Constraint, len(def.Children)-1, name)
	return fragment{header: b.String()}
}

func sequenceFragment(def *module.Definition) fragment {
	name := def.QualifiedName()
	n := len(def.Children)

	var h strings.Builder
	fmt.Fprintf(&h, "class %s : public Sequence {\n", name)
	h.WriteString("private:\n")
	fmt.Fprintf(&h, "\tstatic const void *itemsInfo[%d];\n", n)
	fmt.Fprintf(&h, "\tstatic bool itemsPres[%d];\n", n)
	h.WriteString("public:\n")
	h.WriteString("\tstatic const Info theInfo;\n")
	fmt.Fprintf(&h, "\t%s(): Sequence(&theInfo) {}\n\n", name)
	for i, m := range def.Children {
		typ := m.TypeName()
		arg := naming.Accessor(m.Name)
		fmt.Fprintf(&h, "\tvoid set%s(const %s& %s) { *static_cast<%s*>(items[%d]) = %s; }\n",
			m.Name, typ, arg, typ, i, arg)
	}
	h.WriteString("};\n")

	var s strings.Builder
	fmt.Fprintf(&s, "const void *%s::itemsInfo[%d] = {\n", name, n)
	for _, m := range def.Children {
		fmt.Fprintf(&s, "\t&%s::theInfo,\n", m.TypeName())
	}
	s.WriteString("};\n")

	optional := 0
	fmt.Fprintf(&s, "bool %s::itemsPres[%d] = {\n", name, n)
	for _, m := range def.Children {
		if m.Optional {
			s.WriteString("\t0,\n")
			optional++
		} else {
			s.WriteString("\t1,\n")
		}
	}
	s.WriteString("};\n")

	writeInfoHeader(&s, name, "SEQUENCE", def.Constraint)
	s.WriteString("\titemsInfo,\n")
	s.WriteString("\titemsPres,\n")
	// Extension members are not counted separately.
	fmt.Fprintf(&s, "\t%d, %d, %d\n", n, optional, 0)
	s.WriteString("};\n\n")

	return fragment{header: h.String(), source: s.String()}
}

// sequenceOfFragment renders SEQUENCE OF. Missing bounds are written as 0.
func sequenceOfFragment(def *module.Definition) fragment {
	lower, upper := def.Lower, def.Upper
	if lower == "" {
		lower = "0"
	}
	if upper == "" {
		upper = "0"
	}
	item := def.Children[0].TypeName()
	return fragment{header: fmt.Sprintf("typedef SequenceOf<%s, %s, %s, %s> %s;\n",
		item, def.Constraint, lower, upper, def.QualifiedName())}
}

func choiceFragment(def *module.Definition) fragment {
	name := def.QualifiedName()
	n := len(def.Children)

	var h strings.Builder
	fmt.Fprintf(&h, "class %s : public Choice {\n", name)
	h.WriteString("private:\n")
	fmt.Fprintf(&h, "\tstatic const void *choicesInfo[%d];\n", n)
	h.WriteString("public:\n")
	fmt.Fprintf(&h, "\tenum %sChoices {\n", name)
	for i, c := range def.Children {
		fmt.Fprintf(&h, "\t\t%s = %d,\n", naming.Accessor(c.Name), i)
	}
	h.WriteString("\t};\n")
	h.WriteString("\tstatic const Info theInfo;\n")
	fmt.Fprintf(&h, "\t%s(): Choice(&theInfo) {}\n", name)
	h.WriteString("};\n")

	var s strings.Builder
	fmt.Fprintf(&s, "const void *%s::choicesInfo[%d] = {\n", name, n)
	for _, c := range def.Children {
		fmt.Fprintf(&s, "\t&%s::theInfo,\n", c.TypeName())
	}
	s.WriteString("};\n")
	writeInfoHeader(&s, name, "CHOICE", def.Constraint)
	s.WriteString("\tchoicesInfo,\n")
	fmt.Fprintf(&s, "\t%d\n", n-1)
	s.WriteString("};\n\n")

	return fragment{header: h.String(), source: s.String()}
}

// writeInfoHeader writes the leading fields of a theInfo table, up to and
// including the extensibility flag.
func writeInfoHeader(b *strings.Builder, name, tag string, ct module.ConstraintKind) {
	fmt.Fprintf(b, "const %s::Info %s::theInfo = {\n", name, name)
	fmt.Fprintf(b, "\t%s::create,\n", name)
	fmt.Fprintf(b, "\t%s,\n", tag)
	b.WriteString("\t0,\n")
	fmt.Fprintf(b, "\t%t,\n", ct == module.ConstraintExtensible)
}
