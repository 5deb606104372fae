package domain

import "time"

type PostCreationData struct {
	ThreadId ThreadId
	Content  Content
	Author   Author
	Likes    int
}

type PostDocument struct {
	Id        PostId
	ThreadId  ThreadId
	Content   Content
	AuthorId  UserId
	Author    Author
	Likes     int
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

type Post struct {
	Id        PostId   `json:"id"`
	ThreadId  ThreadId `json:"threadId"`
	Content   Content  `json:"content"`
	AuthorId  UserId   `json:"authorId"`
	Author    Author   `json:"author"`
	Likes     int      `json:"likes"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}
