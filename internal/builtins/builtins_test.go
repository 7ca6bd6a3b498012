package builtins_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draconic/internal/config"
	"draconic/internal/interp"
	"draconic/internal/repr"
)

func eval(t *testing.T, src string) string {
	t.Helper()
	it := interp.New(config.Defaults())
	v, err := it.Evaluate(context.Background(), src)
	require.NoError(t, err)
	return repr.Repr(v)
}

func TestCoreBuiltins(t *testing.T) {
	assert.Equal(t, "3", eval(t, "len([1, 2, 3])"))
	assert.Equal(t, "6", eval(t, "sum([1, 2, 3])"))
	assert.Equal(t, "1", eval(t, "min(3, 1, 2)"))
	assert.Equal(t, "3", eval(t, "max(3, 1, 2)"))
	assert.Equal(t, "[1, 2, 3]", eval(t, "sorted([3, 1, 2])"))
	assert.Equal(t, "[3, 2, 1]", eval(t, "sorted([3, 1, 2], True)"))
	assert.Equal(t, "\"'3'\"", eval(t, "repr(str(3))"))
}

func TestMathPackage(t *testing.T) {
	assert.Equal(t, "4.0", eval(t, "math.sqrt(16)"))
	assert.Equal(t, "3.141592653589793", eval(t, "math.pi()"))
}

func TestStringPackage(t *testing.T) {
	assert.Equal(t, "\"'HI'\"", eval(t, "repr(string.upper('hi'))"))
	assert.Equal(t, "['a', 'b']", eval(t, "string.split('a,b', ',')"))
}

func TestFunctionalPackageAppliesScriptCallable(t *testing.T) {
	it := interp.New(config.Defaults())
	v, err := it.Execute(context.Background(), "def double(x):\n    return x * 2\nfunctional.map(double, [1, 2, 3])\n")
	require.NoError(t, err)
	assert.Equal(t, "[2, 4, 6]", repr.Repr(v))
}
