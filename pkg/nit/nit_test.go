package nit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/huevos-kikes-scm/pkg/nit"
)

func TestCheckDigit(t *testing.T) {
	dv, err := nit.CheckDigit("800.197.268")
	require.NoError(t, err)
	assert.Equal(t, byte('4'), dv)

	dv, err = nit.CheckDigit("900123456")
	require.NoError(t, err)
	assert.Equal(t, byte('8'), dv)

	_, err = nit.CheckDigit("1234")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, nit.Validate("800197268-4"))
	assert.Error(t, nit.Validate("800197268-5"))
	assert.Error(t, nit.Validate("800197268"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "900123456-8", nit.Format("900123456"))
	assert.Equal(t, "901000000-9", nit.Format("901.000.000-9"))
	assert.Equal(t, "CC-123", nit.Format("CC-123"))
}

func TestHasCheckDigit(t *testing.T) {
	assert.True(t, nit.HasCheckDigit("900.123.456-8"))
	assert.False(t, nit.HasCheckDigit("900123456"))
}
