package hasher

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashNeverEqualsPlaintext(t *testing.T) {
	h := New(bcrypt.MinCost)

	hash, err := h.Hash(context.Background(), "secret1")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", hash)
	assert.NoError(t, h.Compare(hash, "secret1"))
}

func TestHashIsSalted(t *testing.T) {
	h := New(bcrypt.MinCost)

	first, err := h.Hash(context.Background(), "secret1")
	require.NoError(t, err)
	second, err := h.Hash(context.Background(), "secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, h.Compare(first, "secret1"))
	assert.NoError(t, h.Compare(second, "secret1"))
}

func TestCompareRejectsWrongPassword(t *testing.T) {
	h := New(bcrypt.MinCost)

	hash, err := h.Hash(context.Background(), "secret1")
	require.NoError(t, err)

	assert.Error(t, h.Compare(hash, "secret2"))
}

func TestDefaultCostIsTen(t *testing.T) {
	h := New(0)
	assert.Equal(t, 10, h.Cost())

	hash, err := h.Hash(context.Background(), "secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}

func TestHashRejectsOverlongPassword(t *testing.T) {
	h := New(bcrypt.MinCost)

	_, err := h.Hash(context.Background(), strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestHashHonoursCancelledContext(t *testing.T) {
	h := New(bcrypt.MinCost)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Hash(ctx, "secret1")
	assert.ErrorIs(t, err, context.Canceled)
}
