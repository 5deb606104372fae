package domain

// CategoryType selects the presentation layout of a thread.
type CategoryType string

const (
	CategoryForum   CategoryType = "forum"
	CategoryJob     CategoryType = "job"
	CategoryStory   CategoryType = "story"
	CategoryQA      CategoryType = "qa"
	CategoryRoadmap CategoryType = "roadmap"
)

var CategoryTypes = []CategoryType{CategoryForum, CategoryJob, CategoryStory, CategoryQA, CategoryRoadmap}

// ParseCategoryType maps a raw tag to one of the known types. Missing or
// unknown tags fall back to forum.
func ParseCategoryType(raw string) CategoryType {
	t := CategoryType(raw)
	if t.Valid() {
		return t
	}
	return CategoryForum
}

func (t CategoryType) Valid() bool {
	switch t {
	case CategoryForum, CategoryJob, CategoryStory, CategoryQA, CategoryRoadmap:
		return true
	}
	return false
}

// Category is embedded into threads as a snapshot.
type Category struct {
	Id   CategoryId   `json:"id" bson:"id"`
	Name string       `json:"name" bson:"name"`
	Slug string       `json:"slug" bson:"slug"`
	Type CategoryType `json:"type,omitempty" bson:"type,omitempty"`
}

// Layout is the resolved presentation type, never empty.
func (c Category) Layout() CategoryType {
	return ParseCategoryType(string(c.Type))
}

var Categories = []Category{
	{Id: "c1", Name: "Films & Cinema", Slug: "films"},
	{Id: "c2", Name: "Cricket", Slug: "cricket"},
	{Id: "c3", Name: "Tech & Startups", Slug: "tech"},
	{Id: "c4", Name: "Food & Dining", Slug: "food"},
	{Id: "c5", Name: "Travel India", Slug: "travel"},
	{Id: "c6", Name: "Education & Career", Slug: "education"},
	{Id: "c7", Name: "Automobiles", Slug: "auto"},
	{Id: "c8", Name: "Finance & Investing", Slug: "finance"},
	{Id: "c9", Name: "Politics & News", Slug: "politics"},
	{Id: "c10", Name: "Memes & Humor", Slug: "memes"},
	{Id: "jobs", Name: "Job Board", Slug: "jobs", Type: CategoryJob},
	{Id: "stories", Name: "Story Circle", Slug: "stories", Type: CategoryStory},
	{Id: "qa", Name: "Questions & Answers", Slug: "qa", Type: CategoryQA},
	{Id: "roadmap", Name: "Product Roadmap", Slug: "roadmap", Type: CategoryRoadmap},
}

func FindCategory(id CategoryId) (Category, bool) {
	for _, c := range Categories {
		if c.Id == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryOfType returns the first catalog entry whose layout is t.
func CategoryOfType(t CategoryType) Category {
	for _, c := range Categories {
		if c.Layout() == t {
			return c
		}
	}
	return Categories[0]
}
