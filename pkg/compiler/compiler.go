package compiler

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"

	"github.com/justanotheranonymoususer/goscript/pkg/vm/value"
	"go.uber.org/zap"
)

// Compile parses src (in the manner of go/parser.ParseFile: a string,
// []byte, or io.Reader, or nil to read filename from disk) as a single
// file forming a complete, self-contained package, and lowers it to a
// ByteCode artifact. A syntax error from the parser is returned directly;
// a semantic problem recognised during code generation (an undefined
// name, an unsupported construct, an assignment arity mismatch) is
// reported through the returned *ErrorList instead, and the ByteCode
// return value is nil in that case -- a file is either compiled whole or
// not at all, per the design's all-or-nothing diagnostics contract.
func Compile(fset *token.FileSet, filename string, src interface{}) (*value.ByteCode, *ErrorList, error) {
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, nil, err
	}
	return CompileFile(fset, file)
}

// CompileFile lowers an already-parsed file. Exposed separately from
// Compile so callers that already hold an *ast.File (for instance, a
// driver compiling several files that re-uses one FileSet) skip a
// redundant parse.
func CompileFile(fset *token.FileSet, file *ast.File) (*value.ByteCode, *ErrorList, error) {
	errs := &ErrorList{}
	c := newCodegen(fset, errs)

	pkgName := file.Name.Name
	pkgKey, err := c.genPackage(file, pkgName)
	if err != nil {
		return nil, errs, nil
	}
	c.packageIndices[pkgName] = int16(len(c.packages))
	c.packages = append(c.packages, pkgKey)

	entryKey, err := c.genEntry(pkgKey)
	if err != nil {
		return nil, errs, nil
	}

	return &value.ByteCode{
		Objects:        c.objects,
		PackageIndices: c.packageIndices,
		Packages:       c.packages,
		Entry:          entryKey,
	}, errs, nil
}

// LoadParseGen reads path from disk and compiles it, the entry point used
// by the compile CLI command (6.5 of the design). When trace is true, a
// one-line summary of the generated program is printed to stderr.
func LoadParseGen(path string, trace bool) (*value.ByteCode, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	fset := token.NewFileSet()
	bc, errs, err := Compile(fset, path, src)
	if err != nil {
		return nil, err
	}
	if errs.Len() > 0 {
		return nil, errs
	}
	if trace {
		logger := newTraceLogger()
		defer logger.Sync() //nolint:errcheck
		logger.Info("compiled",
			zap.String("path", path),
			zap.Int("packages", len(bc.Packages)),
			zap.Int("functions", len(bc.Objects.Functions)),
		)
	}
	return bc, nil
}
