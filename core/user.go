package core

import "context"

type User struct {
	ID     string `json:"id,omitempty"`
	Handle string `json:"handle,omitempty"`
}

type UserStore interface {
	Find(ctx context.Context, id string) (*User, error)
	FindHandle(ctx context.Context, handle string) (*User, error)
}
