package api

import (
	"github.com/unforum-dev/unforum/shared/domain"
	"github.com/unforum-dev/unforum/shared/identity"
)

type SessionResponse struct {
	User    *identity.User `json:"user"`
	IsAdmin bool           `json:"isAdmin"`
	// admin mode page is available
	LocalOverride bool `json:"localOverride"`
}

type CategoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}

type OperationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type StatsResponse struct {
	Threads    int                         `json:"threads"`
	Posts      int                         `json:"posts"`
	Likes      int                         `json:"likes"`
	Views      int                         `json:"views"`
	ByCategory map[domain.CategoryType]int `json:"byCategory"`
}
