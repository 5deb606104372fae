package domain

type (
	ThreadId   = string
	PostId     = string
	UserId     = string
	CategoryId = string

	ThreadTitle = string
	Content     = string
	Tags        = []string
)
