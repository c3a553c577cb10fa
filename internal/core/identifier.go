package core

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"fatpack/internal/types"
)

const identifierPrefix = "fatpack_keep_"

// DeriveIdentifier maps a source-unit path to the trampoline identifier
// appended to it.  The function is pure and total: every input yields
// an identifier, and equal base names always yield equal identifiers.
// Collisions between distinct files are therefore a configuration
// matter, detected eagerly by DeriveTrampolines.
func DeriveIdentifier(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	ident := b.String()
	if ident == "" || ident[0] >= '0' && ident[0] <= '9' {
		ident = "_" + ident
	}
	return identifierPrefix + ident
}

// DeriveTrampolines derives one trampoline per forced-linkage source
// unit.  Two listed units that would share an identifier are a fatal
// configuration error, never silently suffixed: the bootstrap unit
// would otherwise define the same symbol twice.
func DeriveTrampolines(paths []string) ([]types.Trampoline, error) {
	seen := map[string]string{}
	trampolines := make([]types.Trampoline, 0, len(paths))
	for _, path := range paths {
		ident := DeriveIdentifier(path)
		if previous, ok := seen[ident]; ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("duplicate trampoline identifier %s derived from %s and %s", ident, previous, path))
		}
		seen[ident] = path
		trampolines = append(trampolines, types.Trampoline{SourcePath: path, Identifier: ident})
	}
	return trampolines, nil
}
