package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draconic/internal/config"
	"draconic/internal/container"
	"draconic/internal/errors"
	"draconic/internal/values"
)

func cfg10(t *testing.T) *config.Config {
	t.Helper()
	c, err := config.New(config.WithMaxConstLen(10))
	require.NoError(t, err)
	return c
}

func rangeOfInts(n int) []values.Value {
	out := make([]values.Value, n)
	for i := range out {
		out[i] = values.NewInt(int64(i))
	}
	return out
}

func TestNewSafeListRejectsOversizedInput(t *testing.T) {
	c := cfg10(t)
	_, err := container.NewSafeList(c, rangeOfInts(11))
	require.Error(t, err)
	var de *errors.DraconicError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.IterableTooLong, de.Kind)
}

func TestSafeListAppendAtLimitRaises(t *testing.T) {
	c := cfg10(t)
	l, err := container.NewSafeList(c, rangeOfInts(10))
	require.NoError(t, err)
	err = l.Append(values.NewInt(99))
	require.Error(t, err)
	var de *errors.DraconicError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.IterableTooLong, de.Kind)
}

func TestSafeListExtendWithSelfDoublesAndRaisesOverLimit(t *testing.T) {
	c := cfg10(t)
	l, err := container.NewSafeList(c, rangeOfInts(6))
	require.NoError(t, err)
	err = l.Extend(l)
	require.Error(t, err)
	var de *errors.DraconicError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.IterableTooLong, de.Kind)
}

func TestSafeListDeleteNeverChecksLength(t *testing.T) {
	c := cfg10(t)
	l, err := container.NewSafeList(c, rangeOfInts(10))
	require.NoError(t, err)
	require.NoError(t, l.Delete(0))
	assert.Equal(t, 9, l.Len())
}

func TestSafeSetAddAtLimitRaises(t *testing.T) {
	c := cfg10(t)
	s, err := container.NewSafeSet(c, rangeOfInts(10))
	require.NoError(t, err)
	err = s.Add(values.NewInt(99))
	require.Error(t, err)
	var de *errors.DraconicError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.IterableTooLong, de.Kind)
}

func TestSafeSetAddOfExistingMemberNeverRaises(t *testing.T) {
	c := cfg10(t)
	s, err := container.NewSafeSet(c, rangeOfInts(10))
	require.NoError(t, err)
	require.NoError(t, s.Add(values.NewInt(0)))
	assert.Equal(t, 10, s.Len())
}

func TestSafeSetUpdateChecksUnionSizeBeforeCommitting(t *testing.T) {
	c := cfg10(t)
	s, err := container.NewSafeSet(c, rangeOfInts(8))
	require.NoError(t, err)
	other, err := container.NewSafeSet(c, []values.Value{values.NewInt(100), values.NewInt(101), values.NewInt(102)})
	require.NoError(t, err)
	err = s.Update(other)
	require.Error(t, err)
	var de *errors.DraconicError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.IterableTooLong, de.Kind)
	assert.Equal(t, 8, s.Len(), "a rejected update must not partially commit")
}

func TestSafeDictSetNewKeyAtLimitRaises(t *testing.T) {
	c := cfg10(t)
	d, err := container.NewSafeDict(c, nil)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		require.NoError(t, d.Set(values.NewInt(int64(i)), values.NewInt(int64(i))))
	}
	err = d.Set(values.NewInt(999), values.NewInt(999))
	require.Error(t, err)
	var de *errors.DraconicError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.IterableTooLong, de.Kind)
}

func TestSafeDictSetExistingKeyNeverRaises(t *testing.T) {
	c := cfg10(t)
	d, err := container.NewSafeDict(c, nil)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		require.NoError(t, d.Set(values.NewInt(int64(i)), values.NewInt(int64(i))))
	}
	require.NoError(t, d.Set(values.NewInt(0), values.NewInt(-1)))
	assert.Equal(t, 10, d.Len())
}
