package resource

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"esplan/internal/notify"
	"esplan/internal/session"
	"esplan/internal/transport/rest"
	dErrors "esplan/pkg/domain-errors"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (i item) EntityID() string { return i.ID }

type fakeSource struct {
	mu       sync.Mutex
	listFn   func(ctx context.Context, filter url.Values) (rest.List[item], error)
	createFn func(ctx context.Context, e item) (item, error)
	updateFn func(ctx context.Context, id string, patch any) (item, error)
	deleteFn func(ctx context.Context, id string) error
	lists    int
}

func (f *fakeSource) List(ctx context.Context, filter url.Values) (rest.List[item], error) {
	f.mu.Lock()
	f.lists++
	fn := f.listFn
	f.mu.Unlock()
	return fn(ctx, filter)
}

func (f *fakeSource) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

func (f *fakeSource) Create(ctx context.Context, e item) (item, error) {
	return f.createFn(ctx, e)
}

func (f *fakeSource) Update(ctx context.Context, id string, patch any) (item, error) {
	return f.updateFn(ctx, id, patch)
}

func (f *fakeSource) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func listOf(items ...item) rest.List[item] {
	return rest.List[item]{
		Items:      items,
		Pagination: rest.Pagination{Total: len(items), Limit: 20, Pages: 1},
	}
}

type CollectionSuite struct {
	suite.Suite
	authorized *fakeSource
	public     *fakeSource
	store      *session.InMemoryStore
	recorder   *notify.Recorder
	coll       *Collection[item]
}

func (s *CollectionSuite) SetupTest() {
	s.authorized = &fakeSource{
		listFn: func(context.Context, url.Values) (rest.List[item], error) {
			return listOf(item{ID: "p-1", Name: "one"}, item{ID: "p-2", Name: "two"}), nil
		},
	}
	s.public = &fakeSource{
		listFn: func(context.Context, url.Values) (rest.List[item], error) {
			return listOf(item{ID: "p-1"}), nil
		},
	}
	s.store = session.NewInMemoryStore()
	s.recorder = &notify.Recorder{}
	s.coll = NewCollection[item](s.authorized, s.public, s.store, s.recorder, Messages{
		List:   "โหลดข้อมูลไม่สำเร็จ",
		Create: "สร้างรายการไม่สำเร็จ",
		Update: "แก้ไขรายการไม่สำเร็จ",
		Delete: "ลบรายการไม่สำเร็จ",
	})
}

func TestCollectionSuite(t *testing.T) {
	suite.Run(t, new(CollectionSuite))
}

func (s *CollectionSuite) login() {
	s.store.Save(session.Profile{ID: "u-1", Role: session.RoleAdmin}, "tok")
}

func (s *CollectionSuite) TestFetchUsesPublicSourceWithoutSession() {
	s.Require().NoError(s.coll.Fetch(context.Background(), nil))
	s.Equal(1, s.public.listCalls())
	s.Equal(0, s.authorized.listCalls())
	s.Len(s.coll.Items(), 1)
}

func (s *CollectionSuite) TestFetchUsesAuthorizedSourceWithSession() {
	s.login()
	s.Require().NoError(s.coll.Fetch(context.Background(), nil))
	s.Equal(0, s.public.listCalls())
	s.Equal(1, s.authorized.listCalls())
	s.Len(s.coll.Items(), 2)
	s.False(s.coll.Loading())
	s.Empty(s.coll.Err())
}

func (s *CollectionSuite) TestFetchFailurePreservesPreviousList() {
	s.login()
	s.Require().NoError(s.coll.Fetch(context.Background(), nil))

	s.authorized.listFn = func(context.Context, url.Values) (rest.List[item], error) {
		return rest.List[item]{}, dErrors.New(dErrors.CodeNetwork, "")
	}
	err := s.coll.Fetch(context.Background(), nil)
	s.Require().Error(err)
	s.Len(s.coll.Items(), 2) // stale data stays visible
	s.Equal("โหลดข้อมูลไม่สำเร็จ", s.coll.Err())
	s.False(s.coll.Loading())
}

func (s *CollectionSuite) TestFetchSuccessClearsPriorError() {
	s.login()
	s.authorized.listFn = func(context.Context, url.Values) (rest.List[item], error) {
		return rest.List[item]{}, dErrors.New(dErrors.CodeNetwork, "")
	}
	_ = s.coll.Fetch(context.Background(), nil)
	s.NotEmpty(s.coll.Err())

	s.authorized.listFn = func(context.Context, url.Values) (rest.List[item], error) {
		return listOf(item{ID: "p-9"}), nil
	}
	s.Require().NoError(s.coll.Fetch(context.Background(), nil))
	s.Empty(s.coll.Err())
	s.Equal("p-9", s.coll.Items()[0].ID)
}

func (s *CollectionSuite) TestGenerationGuardDropsStaleResponse() {
	s.login()
	release := make(chan struct{})
	done := make(chan struct{})

	s.authorized.listFn = func(_ context.Context, filter url.Values) (rest.List[item], error) {
		if filter.Get("q") == "old" {
			<-release // the first fetch stalls until released
			return listOf(item{ID: "stale"}), nil
		}
		return listOf(item{ID: "fresh"}), nil
	}
	go func() {
		_ = s.coll.Fetch(context.Background(), url.Values{"q": {"old"}})
		close(done)
	}()

	// Wait until the slow fetch has claimed its generation.
	s.Require().Eventually(func() bool { return s.coll.Loading() }, 2*time.Second, 5*time.Millisecond)

	s.Require().NoError(s.coll.Fetch(context.Background(), url.Values{"q": {"new"}}))

	close(release)
	<-done

	s.Equal("fresh", s.coll.Items()[0].ID) // stale resolution was dropped
	s.False(s.coll.Loading())
}

func (s *CollectionSuite) TestCreateRefreshesList() {
	s.login()
	s.Require().NoError(s.coll.Fetch(context.Background(), nil))

	s.authorized.createFn = func(_ context.Context, e item) (item, error) {
		e.ID = "p-3"
		return e, nil
	}
	s.authorized.listFn = func(context.Context, url.Values) (rest.List[item], error) {
		return listOf(item{ID: "p-1"}, item{ID: "p-2"}, item{ID: "p-3"}), nil
	}

	created, err := s.coll.Create(context.Background(), item{Name: "three"})
	s.Require().NoError(err)
	s.Equal("p-3", created.ID)
	s.Len(s.coll.Items(), 3) // full refresh reflects server ordering
}

func (s *CollectionSuite) TestCreateFailureRecordsServerMessage() {
	s.login()
	s.Require().NoError(s.coll.Fetch(context.Background(), nil))

	s.authorized.createFn = func(context.Context, item) (item, error) {
		return item{}, dErrors.New(dErrors.CodeValidation, "ชื่อโครงการซ้ำ")
	}
	created, err := s.coll.Create(context.Background(), item{Name: "dup"})
	s.Nil(created)
	s.Require().Error(err)
	s.Equal("ชื่อโครงการซ้ำ", s.coll.Err())
	s.Len(s.coll.Items(), 2) // list unchanged in length and content
	s.Equal("p-1", s.coll.Items()[0].ID)

	events := s.recorder.Events()
	s.Require().Len(events, 2)
	s.Equal("pending", events[0].Kind)
	s.Equal("failure", events[1].Kind)
	s.Equal("ชื่อโครงการซ้ำ", events[1].Message)
}

func (s *CollectionSuite) TestUpdateReplacesInPlace() {
	s.login()
	s.Require().NoError(s.coll.Fetch(context.Background(), nil))

	s.authorized.updateFn = func(_ context.Context, id string, _ any) (item, error) {
		return item{ID: id, Name: "renamed"}, nil
	}
	updated, err := s.coll.Update(context.Background(), "p-2", map[string]string{"name": "renamed"})
	s.Require().NoError(err)
	s.Equal("renamed", updated.Name)

	items := s.coll.Items()
	s.Len(items, 2) // no refetch, length unchanged
	s.Equal("renamed", items[1].Name)
	s.Equal(1, s.authorized.listCalls()) // only the initial fetch
}

func (s *CollectionSuite) TestUpdateFailureLeavesListUntouched() {
	s.login()
	s.Require().NoError(s.coll.Fetch(context.Background(), nil))

	s.authorized.updateFn = func(context.Context, string, any) (item, error) {
		return item{}, dErrors.New(dErrors.CodeValidation, "bad patch")
	}
	_, err := s.coll.Update(context.Background(), "p-2", nil)
	s.Require().Error(err)
	s.Equal("two", s.coll.Items()[1].Name)
}

func (s *CollectionSuite) TestDeleteRemovesById() {
	s.login()
	s.Require().NoError(s.coll.Fetch(context.Background(), nil))

	s.authorized.deleteFn = func(context.Context, string) error { return nil }
	s.Require().NoError(s.coll.Delete(context.Background(), "p-1"))

	items := s.coll.Items()
	s.Len(items, 1)
	s.Equal("p-2", items[0].ID)
	s.Equal(1, s.coll.Pagination().Total)
}

func (s *CollectionSuite) TestDeleteFailureLeavesListUntouched() {
	s.login()
	s.Require().NoError(s.coll.Fetch(context.Background(), nil))

	s.authorized.deleteFn = func(context.Context, string) error {
		return dErrors.New(dErrors.CodeForbidden, "")
	}
	s.Require().Error(s.coll.Delete(context.Background(), "p-1"))
	s.Len(s.coll.Items(), 2)
}
