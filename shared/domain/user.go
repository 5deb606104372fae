package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

const (
	GuestId       UserId = "guest"
	GuestName            = "Anonymous User"
	DefaultAvatar        = "https://github.com/shadcn.png"
)

// Author is a copy of the writer's identity taken at write time. It is never
// re-synced with the identity provider.
type Author struct {
	Id       UserId `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	Avatar   string `json:"avatar" bson:"avatar"`
	Role     Role   `json:"role,omitempty" bson:"role,omitempty"`
	JoinedAt string `json:"joinedAt,omitempty" bson:"joinedAt,omitempty"`
}

func GuestAuthor(now time.Time) Author {
	return Author{
		Id:       GuestId,
		Name:     GuestName,
		Avatar:   DefaultAvatar,
		Role:     RoleUser,
		JoinedAt: FormatTimestamp(now),
	}
}
