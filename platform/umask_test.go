package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMask_Octal(t *testing.T) {
	mask, err := ParseMask("022", 0)
	require.NoError(t, err)
	assert.Equal(t, 0o022, mask)

	mask, err = ParseMask("0777", 0)
	require.NoError(t, err)
	assert.Equal(t, 0o777, mask)

	_, err = ParseMask("9", 0)
	assert.Error(t, err)
}

func TestParseMask_Symbolic(t *testing.T) {
	// u=rwx,g=rx,o=rx equivale à máscara 022
	mask, err := ParseMask("u=rwx,g=rx,o=rx", 0)
	require.NoError(t, err)
	assert.Equal(t, 0o022, mask)

	// o= remove todas as permissões de outros
	mask, err = ParseMask("u=rwx,g=,o=", 0)
	require.NoError(t, err)
	assert.Equal(t, 0o077, mask)

	// +/- operam sobre a máscara vigente
	mask, err = ParseMask("g-w", 0o002)
	require.NoError(t, err)
	assert.Equal(t, 0o022, mask)
}

func TestParseMask_Invalid(t *testing.T) {
	_, err := ParseMask("", 0)
	assert.Error(t, err)

	_, err = ParseMask("u*rwx", 0)
	assert.Error(t, err)

	_, err = ParseMask("u=rwq", 0)
	assert.Error(t, err)
}
