package frontend_domain

import (
	"html/template"

	"github.com/unforum-dev/unforum/frontend/internal/view"
	"github.com/unforum-dev/unforum/shared/api"
	"github.com/unforum-dev/unforum/shared/domain"
)

type IndexPageData struct {
	Heading  string
	Subtitle string
	ShowAll  bool
	Threads  []view.ThreadCard
	Empty    string
}

type ThreadPageData struct {
	Thread    view.ThreadCard
	Body      template.HTML
	Likes     view.Counter
	Views     view.Counter
	Posts     view.PostWindow
	CanDelete bool
	CanReply  bool
	SignIn    string
}

type YourThreadsPageData struct {
	SignedIn bool
	Threads  []view.ThreadCard
	Empty    string
	SignIn   string
}

type NewThreadPageData struct {
	Categories []domain.Category
	Title      string
	Content    string
	CategoryId string
	Tags       string
	Anonymous  bool
}

type ToolsPageData struct {
	Stats    api.StatsResponse
	Layouts  []domain.CategoryType
	StatsErr string
}

type AdminEnablePageData struct {
	Active bool
}
