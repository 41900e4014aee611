package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndFind(t *testing.T) {
	s := NewStore()

	err := s.Create(User{
		ConnectionID: "101",
		Name:         "Alice",
		SessionID:    "sess-1",
		Status:       StatusOnline,
		RegisteredAt: time.Now(),
	})
	require.NoError(t, err)

	byID, ok := s.FindByConnectionID("101")
	require.True(t, ok)
	assert.Equal(t, "Alice", byID.Name)

	bySession, ok := s.FindBySession("sess-1")
	require.True(t, ok)
	assert.Equal(t, "101", bySession.ConnectionID)
}

func TestCreateDuplicateConnectionID(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Create(User{ConnectionID: "101", Name: "Alice"}))

	err := s.Create(User{ConnectionID: "101", Name: "Mallory"})
	require.ErrorIs(t, err, ErrConnectionIDTaken)

	u, _ := s.FindByConnectionID("101")
	assert.Equal(t, "Alice", u.Name)
}

func TestCreateWithoutSessionNotIndexed(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Create(User{ConnectionID: "101", Name: "Alice"}))

	_, ok := s.FindBySession("")
	assert.False(t, ok)
}

func TestUpdateSessionReindexes(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Create(User{ConnectionID: "101", Name: "Alice", SessionID: "sess-old"}))

	require.True(t, s.UpdateSession("101", "sess-new"))

	_, ok := s.FindBySession("sess-old")
	assert.False(t, ok, "stale session must not resolve")

	u, ok := s.FindBySession("sess-new")
	require.True(t, ok)
	assert.Equal(t, "101", u.ConnectionID)
}

func TestUpdateSessionClearsBinding(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Create(User{ConnectionID: "101", Name: "Alice", SessionID: "sess-1"}))

	require.True(t, s.UpdateSession("101", ""))

	u, _ := s.FindByConnectionID("101")
	assert.Empty(t, u.SessionID)

	_, ok := s.FindBySession("sess-1")
	assert.False(t, ok)
}

func TestUpdatesOnUnknownConnectionID(t *testing.T) {
	s := NewStore()

	assert.False(t, s.UpdateStatus("999", StatusOnline))
	assert.False(t, s.UpdateSession("999", "sess-x"))
	assert.False(t, s.UpdatePartner("999", "101"))
}

func TestUpdateStatusAndPartner(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Create(User{ConnectionID: "101", Name: "Alice", Status: StatusOnline}))

	require.True(t, s.UpdateStatus("101", StatusInChat))
	require.True(t, s.UpdatePartner("101", "202"))

	u, _ := s.FindByConnectionID("101")
	assert.Equal(t, StatusInChat, u.Status)
	assert.Equal(t, "202", u.PartnerID)

	require.True(t, s.UpdatePartner("101", ""))
	u, _ = s.FindByConnectionID("101")
	assert.Empty(t, u.PartnerID)
}

// Find results are copies: mutating a returned record must not leak into the
// store.
func TestFindReturnsCopy(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Create(User{ConnectionID: "101", Name: "Alice", Status: StatusOnline}))

	u, _ := s.FindByConnectionID("101")
	u.Name = "Mallory"
	u.Status = StatusInChat

	stored, _ := s.FindByConnectionID("101")
	assert.Equal(t, "Alice", stored.Name)
	assert.Equal(t, StatusOnline, stored.Status)
}
