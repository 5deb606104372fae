package domain

import "time"

// CounterField names a numeric thread field that is only changed through
// the store's atomic increment.
type CounterField string

const (
	FieldReplyCount CounterField = "replyCount"
	FieldViewCount  CounterField = "viewCount"
	FieldLikes      CounterField = "likes"
)

func (f CounterField) Valid() bool {
	switch f {
	case FieldReplyCount, FieldViewCount, FieldLikes:
		return true
	}
	return false
}

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Title    ThreadTitle
	Content  Content
	Author   Author
	Category Category
	Tags     Tags
}

// ThreadDocument is the stored shape of a thread.
type ThreadDocument struct {
	Id         ThreadId
	Title      ThreadTitle
	Content    Content
	AuthorId   UserId
	Author     Author
	CategoryId CategoryId
	Category   Category
	Tags       Tags
	ReplyCount int
	ViewCount  int
	Likes      int
	CreatedAt  *time.Time
	UpdatedAt  *time.Time
}

type Thread struct {
	Id         ThreadId    `json:"id"`
	Title      ThreadTitle `json:"title"`
	Content    Content     `json:"content"`
	AuthorId   UserId      `json:"authorId"`
	Author     Author      `json:"author"`
	CategoryId CategoryId  `json:"categoryId"`
	Category   Category    `json:"category"`
	Tags       Tags        `json:"tags"`
	ReplyCount int         `json:"replyCount"`
	ViewCount  int         `json:"viewCount"`
	Likes      int         `json:"likes"`
	CreatedAt  string      `json:"createdAt"`
	UpdatedAt  string      `json:"updatedAt"`
}

func (t *Thread) OwnedBy(uid UserId) bool {
	return uid != "" && t.AuthorId == uid
}

// ThreadFilter narrows a thread scan. Zero value matches every thread.
type ThreadFilter struct {
	AuthorId UserId
}
