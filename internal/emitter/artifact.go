package emitter

import (
	"fmt"
	"strings"

	"github.com/golangsnmp/asngen/internal/naming"
)

// artifacts wraps the collected fragments into the module's two files.
func (m *moduleEmitter) artifacts() *Artifacts {
	h := m.mod.Header
	ns := m.cfg.Namespace
	if ns == "" {
		ns = strings.ToLower(h.FileBase)
	}

	a := &Artifacts{
		Module:    h.Name,
		FileBase:  h.FileBase,
		Namespace: ns,
		Declared:  m.declared,
	}

	var hdr strings.Builder
	writeBanner(&hdr, m.cfg.Banner)
	guard := naming.GuardMacro(h.FileBase)
	fmt.Fprintf(&hdr, "#ifndef %s\n", guard)
	fmt.Fprintf(&hdr, "#define %s\n\n", guard)
	fmt.Fprintf(&hdr, "#include \"%s\"\n", m.cfg.RuntimeHeader)
	for _, inc := range h.Includes {
		fmt.Fprintf(&hdr, "#include \"%s.h\"\n", inc.File)
	}
	hdr.WriteString("\n")
	fmt.Fprintf(&hdr, "namespace %s {\n\n", ns)
	hdr.WriteString(m.header.String())
	hdr.WriteString("}\n\n")
	fmt.Fprintf(&hdr, "#endif /* %s */\n", guard)
	a.Header = hdr.String()

	var src strings.Builder
	writeBanner(&src, m.cfg.Banner)
	fmt.Fprintf(&src, "#include \"%s\"\n\n", a.HeaderFile())
	fmt.Fprintf(&src, "namespace %s {\n\n", ns)
	src.WriteString(m.source.String())
	src.WriteString("}\n")
	a.Source = src.String()

	for _, d := range m.diagnostics {
		a.Diagnostics = append(a.Diagnostics, d.Locate(h.Name, m.mod.LineTable))
	}
	return a
}

// writeBanner writes banner as a block of // comment lines followed by a
// blank line.
func writeBanner(b *strings.Builder, banner string) {
	if banner == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(banner, "\n"), "\n") {
		if line == "" {
			b.WriteString("//\n")
			continue
		}
		fmt.Fprintf(b, "// %s\n", line)
	}
	b.WriteString("\n")
}
