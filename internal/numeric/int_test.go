package numeric_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draconic/internal/config"
	"draconic/internal/errors"
	"draconic/internal/numeric"
	"draconic/internal/values"
)

func cfg32(t *testing.T) *config.Config {
	t.Helper()
	c, err := config.New(config.WithMaxIntSize(32))
	require.NoError(t, err)
	return c
}

func TestAddWithinBoundsSucceeds(t *testing.T) {
	c := cfg32(t)
	r, err := numeric.Add(c, values.NewInt(2147483646), values.NewInt(1), errors.Location{})
	require.NoError(t, err)
	assert.Equal(t, int64(2147483647), r.Int64())
}

func TestAddAtUpperBoundOverflows(t *testing.T) {
	c := cfg32(t)
	_, err := numeric.Add(c, values.NewInt(2147483647), values.NewInt(1), errors.Location{})
	require.Error(t, err)
	var de *errors.DraconicError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.NumberTooHigh, de.Kind)
}

func TestSubAtLowerBoundOverflows(t *testing.T) {
	c := cfg32(t)
	_, err := numeric.Sub(c, values.NewInt(-2147483648), values.NewInt(1), errors.Location{})
	require.Error(t, err)
	var de *errors.DraconicError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.NumberTooHigh, de.Kind)
}

func TestAlreadyOutOfRangeOperandIsTheFaultEvenIfResultWouldFit(t *testing.T) {
	c := cfg32(t)
	over := values.NewIntFromBig(big.NewInt(2147483648))
	_, err := numeric.Sub(c, over, values.NewInt(1), errors.Location{})
	require.Error(t, err)
	var de *errors.DraconicError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.NumberTooHigh, de.Kind)
}

func TestShlRejectsBeforeMaterializingHugeIntermediate(t *testing.T) {
	c := cfg32(t)
	_, err := numeric.Shl(c, values.NewInt(1), values.NewInt(31), errors.Location{})
	require.Error(t, err)
	var de *errors.DraconicError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.NumberTooHigh, de.Kind)

	_, err = numeric.Shl(c, values.NewInt(1), values.NewInt(1_000_000_000), errors.Location{})
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.NumberTooHigh, de.Kind)
}

func TestPowExceedingBoundRaisesWithoutDivergingOnHugeExponents(t *testing.T) {
	c := cfg32(t)
	_, err := numeric.Pow(c, values.NewInt(2), values.NewInt(31), errors.Location{})
	require.Error(t, err)
	var de *errors.DraconicError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.NumberTooHigh, de.Kind)

	_, err = numeric.Pow(c, values.NewInt(2), values.NewInt(2147483647), errors.Location{})
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.NumberTooHigh, de.Kind)
}

func TestFloorDivRoundsTowardNegativeInfinity(t *testing.T) {
	c := cfg32(t)
	r, err := numeric.FloorDiv(c, values.NewInt(-7), values.NewInt(2), errors.Location{})
	require.NoError(t, err)
	assert.Equal(t, int64(-4), r.Int64())
}

func TestModTakesDivisorsSign(t *testing.T) {
	c := cfg32(t)
	r, err := numeric.Mod(c, values.NewInt(-7), values.NewInt(2), errors.Location{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), r.Int64())
}

func TestDivisionByZeroIsRuntimeTypeError(t *testing.T) {
	c := cfg32(t)
	_, err := numeric.FloorDiv(c, values.NewInt(1), values.NewInt(0), errors.Location{})
	require.Error(t, err)
	var de *errors.DraconicError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.RuntimeTypeError, de.Kind)
}
