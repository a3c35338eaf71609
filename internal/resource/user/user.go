// Package user holds the client-side collection for user management. The
// whole family is admin-only; there is no public fallback, and the stats
// surface degrades to a zeroed shape for everyone else.
package user

import (
	"context"
	"net/http"
	"time"

	"esplan/internal/auth"
	"esplan/internal/notify"
	"esplan/internal/resource"
	"esplan/internal/session"
)

// User is a flat record mirroring the API's user resource.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Department string    `json:"department,omitempty"`
	Position   string    `json:"position,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at,omitzero"`
	UpdatedAt  time.Time `json:"updated_at,omitzero"`
}

// EntityID implements resource.Entity.
func (u User) EntityID() string { return u.ID }

// Stats is the shape of the user stats surface.
type Stats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Admins   int `json:"admins"`
}

const basePath = "/users"

// NewCollection wires the user collection. No public fallback exists.
func NewCollection(api resource.API, store session.Store, notifier notify.Notifier) *resource.Collection[User] {
	return resource.NewCollection[User](
		resource.NewAPISource[User](api, "users", basePath),
		nil,
		store,
		notifier,
		resource.Messages{
			List:   "ไม่สามารถโหลดข้อมูลผู้ใช้ได้",
			Create: "ไม่สามารถสร้างผู้ใช้ได้",
			Update: "ไม่สามารถแก้ไขผู้ใช้ได้",
			Delete: "ไม่สามารถลบผู้ใช้ได้",
		},
	)
}

// FetchStats reads the user stats. Callers without an admin session get the
// zeroed fallback shape without the protected endpoint ever being called.
func FetchStats(ctx context.Context, api resource.API, store session.Store) (Stats, error) {
	sess := store.Read()
	if !auth.HasPermission(sess, "users", "read") {
		return Stats{}, nil
	}
	var stats Stats
	err := api.Do(ctx, "users.stats", http.MethodGet, basePath+"/stats", nil, &stats)
	return stats, err
}

type createRequest struct {
	User
	Password string `json:"password"`
}

// CreateWithPassword creates an account with its initial password. Goes
// through the collection-free path because the password is not part of the
// user record.
func CreateWithPassword(ctx context.Context, api resource.API, u User, password string) (User, error) {
	var created User
	err := api.Do(ctx, "users.create", http.MethodPost, basePath, createRequest{User: u, Password: password}, &created)
	return created, err
}

// Activate re-enables a deactivated account.
func Activate(ctx context.Context, api resource.API, id string) error {
	return api.Do(ctx, "users.activate", http.MethodPut, basePath+"/"+id+"/activate", nil, nil)
}

// Deactivate disables an account without deleting its audit trail.
func Deactivate(ctx context.Context, api resource.API, id string) error {
	return api.Do(ctx, "users.deactivate", http.MethodPut, basePath+"/"+id+"/deactivate", nil, nil)
}

type changePasswordRequest struct {
	Password string `json:"password"`
}

// ChangePassword sets a new password for the account.
func ChangePassword(ctx context.Context, api resource.API, id, password string) error {
	return api.Do(ctx, "users.change-password", http.MethodPut, basePath+"/"+id+"/change-password", changePasswordRequest{Password: password}, nil)
}
