package token

import (
	"strings"
	"testing"
	"time"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueValidateRoundTrip(t *testing.T) {
	codec := NewCodec("secret-1", time.Hour)
	bookingID := uuid.New()

	tok, err := codec.Issue(bookingID, "aina@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	gotID, gotEmail, err := codec.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, bookingID, gotID)
	assert.Equal(t, "aina@example.com", gotEmail)
}

func TestValidateExpiredToken(t *testing.T) {
	codec := NewCodec("secret-1", -time.Minute)

	tok, err := codec.Issue(uuid.New(), "aina@example.com")
	require.NoError(t, err)

	_, _, err = codec.Validate(tok)
	assert.ErrorIs(t, err, entity.ErrInvalidToken)
}

func TestValidateTamperedToken(t *testing.T) {
	codec := NewCodec("secret-1", time.Hour)

	tok, err := codec.Issue(uuid.New(), "aina@example.com")
	require.NoError(t, err)

	// Flip a character in the payload segment.
	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, _, err = codec.Validate(tampered)
	assert.ErrorIs(t, err, entity.ErrInvalidToken)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewCodec("secret-1", time.Hour)
	verifier := NewCodec("secret-2", time.Hour)

	tok, err := issuer.Issue(uuid.New(), "aina@example.com")
	require.NoError(t, err)

	_, _, err = verifier.Validate(tok)
	assert.ErrorIs(t, err, entity.ErrInvalidToken)
}

func TestValidateGarbage(t *testing.T) {
	codec := NewCodec("secret-1", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, _, err := codec.Validate(tok)
		assert.ErrorIs(t, err, entity.ErrInvalidToken)
	}
}
