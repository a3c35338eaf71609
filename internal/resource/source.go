package resource

import (
	"context"
	"net/http"
	"net/url"

	"esplan/internal/transport/rest"
)

// API is the request boundary sources talk through; rest.Client satisfies it.
type API interface {
	Do(ctx context.Context, op, method, path string, body, out any) error
}

// ReadSource lists entities. The public fallback implements only this.
type ReadSource[T Entity] interface {
	List(ctx context.Context, filter url.Values) (rest.List[T], error)
}

// Source is the full authorized surface for one entity family.
type Source[T Entity] interface {
	ReadSource[T]
	Create(ctx context.Context, entity T) (T, error)
	Update(ctx context.Context, id string, patch any) (T, error)
	Delete(ctx context.Context, id string) error
}

// APISource serves one family from the authorized REST endpoints.
type APISource[T Entity] struct {
	api    API
	family string // operation prefix for metrics/traces, e.g. "projects"
	base   string // resource path, e.g. "/projects"
}

// NewAPISource constructs the authorized source for a family.
func NewAPISource[T Entity](api API, family, base string) *APISource[T] {
	return &APISource[T]{api: api, family: family, base: base}
}

func (s *APISource[T]) List(ctx context.Context, filter url.Values) (rest.List[T], error) {
	var list rest.List[T]
	err := s.api.Do(ctx, s.family+".list", http.MethodGet, withQuery(s.base, filter), nil, &list)
	return list, err
}

func (s *APISource[T]) Create(ctx context.Context, entity T) (T, error) {
	var created T
	err := s.api.Do(ctx, s.family+".create", http.MethodPost, s.base, entity, &created)
	return created, err
}

func (s *APISource[T]) Update(ctx context.Context, id string, patch any) (T, error) {
	var updated T
	err := s.api.Do(ctx, s.family+".update", http.MethodPut, s.base+"/"+id, patch, &updated)
	return updated, err
}

func (s *APISource[T]) Delete(ctx context.Context, id string) error {
	return s.api.Do(ctx, s.family+".delete", http.MethodDelete, s.base+"/"+id, nil, nil)
}

// PublicSource serves the reduced read-only view available without a
// session. A narrower field set may be returned - callers must not assume
// parity with the authorized endpoints.
type PublicSource[T Entity] struct {
	api    API
	family string
	base   string
}

// NewPublicSource constructs the public fallback for a family.
func NewPublicSource[T Entity](api API, family, base string) *PublicSource[T] {
	return &PublicSource[T]{api: api, family: family, base: base}
}

func (s *PublicSource[T]) List(ctx context.Context, filter url.Values) (rest.List[T], error) {
	var list rest.List[T]
	err := s.api.Do(ctx, s.family+".list.public", http.MethodGet, withQuery(s.base+"/public", filter), nil, &list)
	return list, err
}

func withQuery(path string, filter url.Values) string {
	if len(filter) == 0 {
		return path
	}
	return path + "?" + filter.Encode()
}
