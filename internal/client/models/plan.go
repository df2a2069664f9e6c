package models

type PlanType string

const (
	PlanOrganic PlanType = "organic"
	PlanBrand   PlanType = "brand"
)

// QuarterlyPlan owns its months, which own their weeks, which own the daily
// ideas and stories. Nothing is shared between plans.
type QuarterlyPlan struct {
	ID               string        `json:"id"`
	Type             PlanType      `json:"type"`
	BrandID          string        `json:"brandId,omitempty"`
	Quarter          string        `json:"quarter"`
	BrandPositioning string        `json:"brandPositioning"`
	CoreThemes       []string      `json:"coreThemes"`
	VisualDirection  string        `json:"visualDirection"`
	Months           []MonthlyPlan `json:"months"`
}

func (p QuarterlyPlan) Identity() string { return p.ID }

type MonthlyPlan struct {
	ID          string       `json:"id"`
	MonthName   string       `json:"monthName"`
	Campaigns   []string     `json:"campaigns"`
	FocusTopics []string     `json:"focusTopics"`
	Weeks       []WeeklyPlan `json:"weeks"`
}

type WeeklyPlan struct {
	ID               string          `json:"id"`
	WeekNumber       int             `json:"weekNumber"`
	PostingFrequency int             `json:"postingFrequency"`
	EmotionalIntent  string          `json:"emotionalIntent"`
	DailyIdeas       []DailyPostIdea `json:"dailyIdeas"`
	DailyStories     []DailyStory    `json:"dailyStories,omitempty"`
}

type DailyStory struct {
	ID         string       `json:"id"`
	Day        string       `json:"day"`
	Concept    string       `json:"concept"`
	Frames     []StoryFrame `json:"frames"`
	IsSelected bool         `json:"isSelected,omitempty"`
}

type DailyPostIdea struct {
	Day         string      `json:"day"`
	ContentType ContentType `json:"contentType"`
	Hook        string      `json:"hook"`
	Concept     string      `json:"concept"`
	CTA         string      `json:"cta"`
	Hashtags    []string    `json:"hashtags"`

	LocationName       string `json:"locationName,omitempty"`
	LocationType       string `json:"locationType,omitempty"`
	IsLocationSpecific bool   `json:"isLocationSpecific,omitempty"`

	IsSponsored bool   `json:"isSponsored,omitempty"`
	BrandID     string `json:"brandId,omitempty"`
	BrandName   string `json:"brandName,omitempty"`

	IsSelected bool `json:"isSelected,omitempty"`
}

// PostCount is the number of daily ideas across the whole plan.
func (p QuarterlyPlan) PostCount() int {
	n := 0
	for _, m := range p.Months {
		for _, w := range m.Weeks {
			n += len(w.DailyIdeas)
		}
	}
	return n
}
