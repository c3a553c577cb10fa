package core

import (
	"fmt"
	"strings"

	"fatpack/internal/types"
)

// TrampolineDeclaration renders the forward declaration for one
// trampoline.
func TrampolineDeclaration(ident string) string {
	return fmt.Sprintf("void %s(void);", ident)
}

// TrampolineDefinition renders the inert definition appended to a
// mutated source unit.  The bootstrap emitter duplicates this text
// verbatim; both sides render through this one function, so the two
// copies cannot drift.
func TrampolineDefinition(ident string) string {
	return fmt.Sprintf("void %s(void) {}", ident)
}

// MutationBlock is the full text appended to a forced-linkage source
// unit: a marker line, the declaration, and the definition.  The block
// is append-only so line numbers in the original range stay valid for
// any tooling pointing at them.
func MutationBlock(ident string) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("/* appended by fatpack; removed on restore */\n")
	b.WriteString(TrampolineDeclaration(ident))
	b.WriteString("\n")
	b.WriteString(TrampolineDefinition(ident))
	b.WriteString("\n")
	return b.String()
}

// BootstrapUnit renders the companion compilation unit: one definition
// per trampoline plus a driver referencing each, so linking the unit
// pins every enclosing source unit past dead-code elimination.
func BootstrapUnit(packageName string, trampolines []types.Trampoline) string {
	var b strings.Builder
	b.WriteString("/* generated by fatpack; do not edit */\n\n")
	for _, t := range trampolines {
		b.WriteString(TrampolineDeclaration(t.Identifier))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "void %s_force_link(void) {\n", sanitizeName(packageName))
	for _, t := range trampolines {
		fmt.Fprintf(&b, "    %s();\n", t.Identifier)
	}
	b.WriteString("}\n")
	return b.String()
}

func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
