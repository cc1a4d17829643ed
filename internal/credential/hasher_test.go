package credential

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashAndVerify(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	digest, err := h.Hash("pw1")
	require.NoError(t, err)
	assert.NotEmpty(t, digest)
	assert.NotEqual(t, "pw1", digest)

	assert.True(t, h.Verify("pw1", digest))
	assert.False(t, h.Verify("pw2", digest))
	assert.False(t, h.Verify("", digest))
}

func TestBcrypt_SaltedPerCall(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	first, err := h.Hash("same secret")
	require.NoError(t, err)
	second, err := h.Hash("same secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("same secret", first))
	assert.True(t, h.Verify("same secret", second))
}

func TestBcrypt_VerifyMalformedDigest(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	assert.False(t, h.Verify("pw", ""))
	assert.False(t, h.Verify("pw", "not-a-bcrypt-hash"))
}

func TestBcrypt_CostFallback(t *testing.T) {
	cases := []struct {
		name string
		cost int
		want int
	}{
		{"zero", 0, bcrypt.DefaultCost},
		{"too high", bcrypt.MaxCost + 1, bcrypt.DefaultCost},
		{"min", bcrypt.MinCost, bcrypt.MinCost},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewBcrypt(tc.cost).(*bcryptHasher)
			assert.Equal(t, tc.want, h.cost)
		})
	}
}

func TestBcrypt_RejectsOverlongSecret(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("a", MaxSecretBytes+1))
	assert.ErrorIs(t, err, ErrSecretTooLong)

	_, err = h.Hash(strings.Repeat("a", MaxSecretBytes))
	assert.NoError(t, err)
}

func TestBcrypt_VerifyRejectsSecretExtendingStoredOne(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)
	secret := strings.Repeat("a", MaxSecretBytes)

	digest, err := h.Hash(secret)
	require.NoError(t, err)

	assert.True(t, h.Verify(secret, digest))
	assert.False(t, h.Verify(secret+"X-not-the-secret", digest))
}
