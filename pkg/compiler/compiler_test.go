package compiler_test

import (
	"context"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/nyxlang/nyxc/pkg/compiler"
	"github.com/stretchr/testify/require"
)

func TestCompile_WellTypedProgramProducesIR(t *testing.T) {
	r := require.New(t)
	logger := slogt.New(t)

	c, err := compiler.New(logger, compiler.Config{
		Path:   "add.nyx",
		Source: `fun add(a: Int, b: Int): Int { return a + b }`,
	})
	r.NoError(err)

	mod, err := c.Compile(context.Background())
	r.NoError(err)
	r.Contains(mod.Dump(), "define i32 @add(i32 %a, i32 %b)")
}

func TestCompile_SemanticErrorsAreFormatted(t *testing.T) {
	r := require.New(t)
	logger := slogt.New(t)

	c, err := compiler.New(logger, compiler.Config{
		Path:   "bad.nyx",
		Source: `fun main() { val x = 1; x = 2 }`,
	})
	r.NoError(err)

	mod, err := c.Compile(context.Background())
	r.Nil(mod)
	r.Error(err)

	var semErr *compiler.SemanticError
	r.ErrorAs(err, &semErr)
	r.Contains(semErr.Error(), "Semantic Errors:\n")
	r.Contains(semErr.Error(), "Cannot reassign 'val'")
}

func TestCompile_ParseErrorIsWrapped(t *testing.T) {
	r := require.New(t)
	logger := slogt.New(t)

	c, err := compiler.New(logger, compiler.Config{
		Path:   "broken.nyx",
		Source: `fun main( {`,
	})
	r.NoError(err)

	_, err = c.Compile(context.Background())
	r.Error(err)
}

func TestNew_RejectsEmptySource(t *testing.T) {
	r := require.New(t)
	logger := slogt.New(t)

	_, err := compiler.New(logger, compiler.Config{Path: "empty.nyx"})
	r.Error(err)
}

func TestUnimplementedBackend_FailsLoudly(t *testing.T) {
	r := require.New(t)

	var b compiler.Backend = compiler.UnimplementedBackend{}
	err := b.Lower(context.Background(), nil, nil)
	r.Error(err)
	r.Contains(err.Error(), "no backend configured")
}
