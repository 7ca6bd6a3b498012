package formatter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draconic/internal/formatter"
	"draconic/internal/parser"
)

func format(t *testing.T, src string) string {
	t.Helper()
	stmts, err := parser.Parse(src, "<test>")
	require.NoError(t, err)
	out, err := formatter.Format(stmts)
	require.NoError(t, err)
	return out
}

func TestFormatNormalizesOperatorSpacing(t *testing.T) {
	out := format(t, "x=1+2*3\n")
	assert.Equal(t, "x = 1 + 2 * 3\n", out)
}

func TestFormatIfElif(t *testing.T) {
	src := "if x:\n    a = 1\nelif y:\n    a = 2\nelse:\n    a = 3\n"
	out := format(t, src)
	assert.Equal(t, "if x:\n    a = 1\nelif y:\n    a = 2\nelse:\n    a = 3\n", out)
}

func TestFormatIsIdempotent(t *testing.T) {
	src := "def f(a, b=1):\n    return a + b\nwhile f(1, 2) < 10:\n    x = [i for i in range(3) if i]\n"
	once := format(t, src)
	twice := format(t, once)
	assert.Equal(t, once, twice)
}

func TestFormatStringQuoting(t *testing.T) {
	out := format(t, "s = 'hi'\n")
	assert.Equal(t, "s = \"hi\"\n", out)
}
