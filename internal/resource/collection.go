package resource

import (
	"context"
	"net/url"
	"sync"

	"esplan/internal/notify"
	"esplan/internal/session"
	"esplan/internal/transport/rest"
)

// Entity is anything the API identifies by a stable id.
type Entity interface {
	EntityID() string
}

// Messages holds the per-operation fallback messages shown when the server
// supplies none. Families localize these.
type Messages struct {
	List   string
	Create string
	Update string
	Delete string
}

// Collection holds the client-side view of one entity family: the last
// fetched page, a loading flag, a single error message, and pagination
// metadata. It is the unit that combines fetch, local cache, and mutation
// functions.
//
// Reads go through a session-dependent source choice; mutations always use
// the authorized source and rely on the transport's 401 policy when no
// session exists.
type Collection[T Entity] struct {
	mu         sync.Mutex
	authorized Source[T]
	public     ReadSource[T]
	store      session.Store
	notifier   notify.Notifier
	msgs       Messages

	items      []T
	loading    bool
	errMsg     string
	pagination rest.Pagination
	lastFilter url.Values
	generation uint64
}

// NewCollection wires a collection. public may be nil for families without a
// public fallback (user management is admin-only).
func NewCollection[T Entity](authorized Source[T], public ReadSource[T], store session.Store, notifier notify.Notifier, msgs Messages) *Collection[T] {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Collection[T]{
		authorized: authorized,
		public:     public,
		store:      store,
		notifier:   notifier,
		msgs:       msgs,
	}
}

// pickRead selects the data source for one read: the authorized endpoint
// when a session is present, otherwise the public read-only fallback. The
// choice is made once per request, not re-examined mid-flight.
func (c *Collection[T]) pickRead() ReadSource[T] {
	if c.store.HasSession() || c.public == nil {
		return c.authorized
	}
	return c.public
}

// Fetch loads the list matching filter. Stale data stays visible while the
// request is in flight; success replaces list and pagination atomically and
// clears any prior error; failure preserves the previous list and records a
// single user-facing message.
//
// Each fetch carries a generation number. A resolution that is no longer
// the latest is dropped, so a slow response can never overwrite a newer
// one's result.
func (c *Collection[T]) Fetch(ctx context.Context, filter url.Values) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.loading = true
	c.lastFilter = cloneValues(filter)
	src := c.pickRead()
	c.mu.Unlock()

	list, err := src.List(ctx, filter)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		// A newer fetch owns the state now.
		return nil
	}
	c.loading = false
	if err != nil {
		c.errMsg = rest.ErrMessage(err, c.msgs.List)
		return err
	}
	c.items = list.Items
	c.pagination = list.Pagination
	c.errMsg = ""
	return nil
}

// Refresh re-runs the last fetch, used after creates so server-computed
// fields and ordering are reflected.
func (c *Collection[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	filter := cloneValues(c.lastFilter)
	c.mu.Unlock()
	return c.Fetch(ctx, filter)
}

// Create posts a new entity. Success triggers a full list refresh and
// returns the created entity; failure returns nil, records the error, and
// leaves the local list untouched.
func (c *Collection[T]) Create(ctx context.Context, entity T) (*T, error) {
	c.notifier.Pending("create", c.msgs.Create)
	created, err := c.authorized.Create(ctx, entity)
	if err != nil {
		msg := rest.ErrMessage(err, c.msgs.Create)
		c.setError(msg)
		c.notifier.Failure("create", msg)
		return nil, err
	}
	c.notifier.Success("create", c.msgs.Create)
	_ = c.Refresh(ctx)
	return &created, nil
}

// Update puts the changed fields. Success replaces the matching entity in
// the local list by id without a refetch; failure leaves the list untouched.
func (c *Collection[T]) Update(ctx context.Context, id string, patch any) (*T, error) {
	c.notifier.Pending("update", c.msgs.Update)
	updated, err := c.authorized.Update(ctx, id, patch)
	if err != nil {
		msg := rest.ErrMessage(err, c.msgs.Update)
		c.setError(msg)
		c.notifier.Failure("update", msg)
		return nil, err
	}

	c.mu.Lock()
	for i := range c.items {
		if c.items[i].EntityID() == id {
			c.items[i] = updated
			break
		}
	}
	c.mu.Unlock()
	c.notifier.Success("update", c.msgs.Update)
	return &updated, nil
}

// Delete removes the entity server-side, then from the local list by id.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	c.notifier.Pending("delete", c.msgs.Delete)
	if err := c.authorized.Delete(ctx, id); err != nil {
		msg := rest.ErrMessage(err, c.msgs.Delete)
		c.setError(msg)
		c.notifier.Failure("delete", msg)
		return err
	}

	c.mu.Lock()
	kept := c.items[:0]
	for _, item := range c.items {
		if item.EntityID() != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
	c.pagination.Total = max(0, c.pagination.Total-1)
	c.mu.Unlock()
	c.notifier.Success("delete", c.msgs.Delete)
	return nil
}

// Items returns a copy of the current list.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Loading reports whether the latest fetch is still in flight.
func (c *Collection[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the current error message, empty when the last operation
// succeeded.
func (c *Collection[T]) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Pagination returns the metadata of the last successful fetch.
func (c *Collection[T]) Pagination() rest.Pagination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pagination
}

func (c *Collection[T]) setError(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = msg
}

func cloneValues(v url.Values) url.Values {
	if v == nil {
		return nil
	}
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
