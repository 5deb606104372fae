package api

import "github.com/unforum-dev/unforum/shared/domain"

type CreatePostRequest struct {
	Content string `json:"content" validate:"required"`
}

type CreatePostResponse struct {
	Id domain.PostId `json:"id"`
}

type PostsResponse struct {
	Posts []domain.Post `json:"posts"`
}
