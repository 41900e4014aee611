package randx

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionIDCandidateShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		candidate, err := ConnectionIDCandidate()
		require.NoError(t, err)
		assert.Regexp(t, `^\d{3}$`, candidate)
	}
}

func TestSessionIDIsUUID(t *testing.T) {
	id := SessionID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	assert.NotEqual(t, id, SessionID())
}

func TestMessageIDIsUUID(t *testing.T) {
	id := MessageID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	assert.NotEqual(t, id, MessageID())
}
