package environment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"draconic/internal/environment"
	"draconic/internal/values"
)

func TestResolvePrefersLocalsOverOuterAndBuiltins(t *testing.T) {
	builtins := map[string]values.Value{"x": values.NewInt(1)}
	root := environment.NewRoot(builtins)
	root.Define("x", values.NewInt(2))

	v, tier, _ := root.Resolve("x")
	assert.Equal(t, environment.TierLocal, tier)
	assert.Equal(t, values.NewInt(2), v)
}

func TestResolveWalksOuterChainBeforeBuiltins(t *testing.T) {
	builtins := map[string]values.Value{"x": values.NewInt(1)}
	root := environment.NewRoot(builtins)
	root.Define("x", values.NewInt(2))
	child := environment.NewChild(root)

	v, tier, owner := child.Resolve("x")
	assert.Equal(t, environment.TierOuter, tier)
	assert.Equal(t, values.NewInt(2), v)
	assert.Same(t, root, owner)
}

func TestResolveFallsBackToBuiltinsWhenNoLocalBindingExists(t *testing.T) {
	builtins := map[string]values.Value{"x": values.NewInt(1)}
	root := environment.NewRoot(builtins)
	child := environment.NewChild(root)

	v, tier, owner := child.Resolve("x")
	assert.Equal(t, environment.TierBuiltin, tier)
	assert.Equal(t, values.NewInt(1), v)
	assert.Nil(t, owner)
}

func TestResolveUndefinedNameReportsTierUndefined(t *testing.T) {
	root := environment.NewRoot(nil)
	_, tier, _ := root.Resolve("missing")
	assert.Equal(t, environment.TierUndefined, tier)
}

func TestDefineAlwaysTargetsCurrentFrameNotOuter(t *testing.T) {
	root := environment.NewRoot(nil)
	root.Define("x", values.NewInt(1))
	child := environment.NewChild(root)

	child.Define("x", values.NewInt(2))

	rootV, _ := root.Get("x")
	childV, _ := child.Get("x")
	assert.Equal(t, values.NewInt(1), rootV)
	assert.Equal(t, values.NewInt(2), childV)
}

func TestNamesReturnsACopyNotALiveView(t *testing.T) {
	root := environment.NewRoot(nil)
	root.Define("x", values.NewInt(1))

	snapshot := root.Names()
	root.Define("y", values.NewInt(2))

	_, ok := snapshot["y"]
	assert.False(t, ok, "Names should snapshot at call time")
}
