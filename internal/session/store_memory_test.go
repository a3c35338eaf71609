package session

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) TestRoundTrip() {
	user := Profile{ID: "u-1", Email: "admin@obec.example", Role: RoleAdmin}
	s.store.Save(user, "tok")

	got := s.store.Read()
	s.Require().NotNil(got)
	s.Equal("tok", got.Token)
	s.Equal(user, got.User)
	s.True(s.store.HasSession())
}

func (s *InMemoryStoreSuite) TestPartialStateReadsAbsent() {
	s.store.Save(Profile{ID: "u-1"}, "tok")
	s.store.Corrupt()

	s.True(s.store.HasSession()) // token-only check stays cheap
	s.Nil(s.store.Read())        // full read sanitizes to absent
}

func (s *InMemoryStoreSuite) TestClear() {
	s.store.Save(Profile{ID: "u-1"}, "tok")
	s.store.SetRemember(true)

	s.store.Clear()
	s.store.Clear()
	s.False(s.store.HasSession())
	s.False(s.store.Remembered())
	s.Nil(s.store.Read())
}
