package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptServiceHashAndCompare(t *testing.T) {
	svc := NewBcryptService(4)

	hash, err := svc.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, svc.Compare(hash, "correct horse battery staple"))
	assert.Error(t, svc.Compare(hash, "wrong password"))
}

func TestBcryptServiceClampsInvalidCost(t *testing.T) {
	svc := NewBcryptService(99)
	hash, err := svc.Hash("password-123")
	require.NoError(t, err)
	assert.NoError(t, svc.Compare(hash, "password-123"))
}
