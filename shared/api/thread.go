package api

import (
	"github.com/unforum-dev/unforum/shared/domain"
)

// Request DTOs

type CreateThreadRequest struct {
	Title      string   `json:"title" validate:"required,max=300"`
	Content    string   `json:"content" validate:"required"`
	CategoryId string   `json:"categoryId" validate:"required"`
	Tags       []string `json:"tags,omitempty" validate:"max=10,dive,max=40"`
	Anonymous  bool     `json:"anonymous,omitempty"`
}

// Response DTOs

type CreateThreadResponse struct {
	Id domain.ThreadId `json:"id"`
}

type ThreadsResponse struct {
	Threads []domain.Thread `json:"threads"`
}

type ThreadResponse struct {
	domain.Thread
}

// CounterResponse reports a counter after an increment: the optimistic value
// the client may show immediately and the value read back from the store.
type CounterResponse struct {
	ThreadId   domain.ThreadId `json:"threadId"`
	Field      string          `json:"field"`
	Optimistic int             `json:"optimistic"`
	Confirmed  *int            `json:"confirmed,omitempty"`
	Duplicate  bool            `json:"duplicate,omitempty"`
}
