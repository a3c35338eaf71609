package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type FileStoreSuite struct {
	suite.Suite
	store *FileStore
	dir   string
}

func (s *FileStoreSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.store = NewFileStore(s.dir)
}

func TestFileStoreSuite(t *testing.T) {
	suite.Run(t, new(FileStoreSuite))
}

func (s *FileStoreSuite) testProfile() Profile {
	return Profile{
		ID:         "u-1001",
		Email:      "planner@obec.example",
		Role:       RoleDepartment,
		FirstName:  "Anong",
		LastName:   "Srisuk",
		Department: "นโยบายและแผน",
		Position:   "นักวิเคราะห์นโยบายและแผน",
		Permissions: map[string][]string{
			"projects":   {"read", "create", "update"},
			"strategies": {"read"},
		},
	}
}

func (s *FileStoreSuite) TestRoundTrip() {
	user := s.testProfile()
	s.store.Save(user, "tok-abc")

	got := s.store.Read()
	s.Require().NotNil(got)
	s.Equal("tok-abc", got.Token)
	s.Equal(user, got.User)
}

func (s *FileStoreSuite) TestReadAbsent() {
	s.Nil(s.store.Read())
	s.False(s.store.HasSession())
}

func (s *FileStoreSuite) TestReadSanitizesPartialState() {
	s.Run("token without profile", func() {
		require.NoError(s.T(), os.WriteFile(filepath.Join(s.dir, tokenFile), []byte("tok"), 0o600))
		s.Nil(s.store.Read())
	})

	s.Run("corrupt profile", func() {
		require.NoError(s.T(), os.WriteFile(filepath.Join(s.dir, profileFile), []byte("{not json"), 0o600))
		s.Nil(s.store.Read())
	})

	s.Run("profile without id", func() {
		require.NoError(s.T(), os.WriteFile(filepath.Join(s.dir, profileFile), []byte(`{"email":"x@y"}`), 0o600))
		s.Nil(s.store.Read())
	})
}

func (s *FileStoreSuite) TestClearIsIdempotent() {
	s.store.Save(s.testProfile(), "tok")
	s.store.SetRemember(true)

	s.store.Clear()
	s.False(s.store.HasSession())
	s.False(s.store.Remembered())
	s.Nil(s.store.Read())

	// A second clear observes the same state.
	s.store.Clear()
	s.False(s.store.HasSession())
	s.Nil(s.store.Read())
}

func (s *FileStoreSuite) TestHasSessionChecksTokenOnly() {
	require.NoError(s.T(), os.WriteFile(filepath.Join(s.dir, tokenFile), []byte("tok"), 0o600))
	s.True(s.store.HasSession())
	s.Nil(s.store.Read()) // full read still sanitizes to absent
}

func (s *FileStoreSuite) TestSaveUnavailableStorageIsNoOp() {
	store := NewFileStore("")
	store.Save(s.testProfile(), "tok") // must not panic
	s.Nil(store.Read())
}

func (s *FileStoreSuite) TestRemember() {
	s.store.SetRemember(true)
	s.True(s.store.Remembered())
	s.store.SetRemember(false)
	s.False(s.store.Remembered())
}
