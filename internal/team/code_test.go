package team

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	taken     map[string]bool
	takeAll   bool
	callCount int
}

func (f *fakeChecker) CodeExists(ctx context.Context, code string) (bool, error) {
	f.callCount++
	if f.takeAll {
		return true, nil
	}
	return f.taken[code], nil
}

func TestRandomCode_ShapeAndAlphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := randomCode()
		require.Len(t, code, codeLength)
		for _, r := range code {
			assert.Contains(t, codeAlphabet, string(r), "code %q uses a character outside the alphabet", code)
		}
	}
}

func TestRandomCode_NoAmbiguousCharacters(t *testing.T) {
	for _, forbidden := range []string{"I", "O", "0", "1"} {
		assert.NotContains(t, codeAlphabet, forbidden)
	}
}

func TestGenerateUniqueCode_FirstFreeCodeWins(t *testing.T) {
	checker := &fakeChecker{taken: map[string]bool{}}

	code, err := generateUniqueCode(context.Background(), checker)
	require.NoError(t, err)
	assert.Len(t, code, codeLength)
	assert.Equal(t, 1, checker.callCount)
}

func TestGenerateUniqueCode_FallsBackAfterExhaustion(t *testing.T) {
	checker := &fakeChecker{takeAll: true}

	code, err := generateUniqueCode(context.Background(), checker)
	require.NoError(t, err)
	assert.Equal(t, maxCodeAttempts, checker.callCount)
	assert.Len(t, code, codeLength)
	// The fallback derives from the Unix timestamp, so it is numeric.
	assert.Equal(t, "", strings.TrimLeft(code, "0123456789"))
}
