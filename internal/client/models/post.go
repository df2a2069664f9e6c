package models

type PostStatus string

const (
	PostStatusPlanned         PostStatus = "PLANNED"
	PostStatusGenerated       PostStatus = "GENERATED"
	PostStatusWaitingApproval PostStatus = "WAITING_APPROVAL"
	PostStatusApproved        PostStatus = "APPROVED"
	PostStatusRejected        PostStatus = "REJECTED"
	PostStatusPublished       PostStatus = "PUBLISHED"
)

// Valid reports whether s is one of the known statuses.
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusPlanned, PostStatusGenerated, PostStatusWaitingApproval,
		PostStatusApproved, PostStatusRejected, PostStatusPublished:
		return true
	}
	return false
}

type ContentType string

const (
	ContentFeedPost ContentType = "feed_post"
	ContentCarousel ContentType = "carousel"
	ContentStory    ContentType = "story"
)

type CarouselSlide struct {
	SlideNumber int    `json:"slideNumber"`
	ImagePrompt string `json:"imagePrompt"`
	ImageURL    string `json:"imageUrl,omitempty"`
	TextOverlay string `json:"textOverlay,omitempty"`
}

type InteractionType string

const (
	InteractionPoll     InteractionType = "poll"
	InteractionQuestion InteractionType = "question"
	InteractionSlider   InteractionType = "slider"
	InteractionNone     InteractionType = "none"
)

type StoryFrame struct {
	ID                string          `json:"id"`
	SequenceNumber    int             `json:"sequenceNumber"`
	ImagePrompt       string          `json:"imagePrompt"`
	TextOverlay       string          `json:"textOverlay,omitempty"`
	InteractionType   InteractionType `json:"interactionType,omitempty"`
	InteractionPrompt string          `json:"interactionPrompt,omitempty"`
	ImageURL          string          `json:"imageUrl,omitempty"`
}

// Post is one schedulable content unit.
type Post struct {
	ID        string     `json:"id"`
	Status    PostStatus `json:"status"`
	CreatedAt int64      `json:"createdAt"`

	ScheduledDate string `json:"scheduledDate,omitempty"` // YYYY-MM-DD
	ScheduledTime string `json:"scheduledTime,omitempty"` // HH:mm

	PlanID         string `json:"planId,omitempty"`
	StrategyItemID string `json:"strategyItemId,omitempty"`

	Type ContentType `json:"type"`

	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
	Hook     string   `json:"hook"`

	LocationName string `json:"locationName,omitempty"`
	BaseCity     string `json:"baseCity,omitempty"`

	IsSponsored       bool     `json:"isSponsored,omitempty"`
	BrandID           string   `json:"brandId,omitempty"`
	BrandName         string   `json:"brandName,omitempty"`
	CampaignObjective string   `json:"campaignObjective,omitempty"`
	ProductName       string   `json:"productName,omitempty"`
	ProductImageIDs   []string `json:"productImageIds,omitempty"`

	ImagePrompt string `json:"imagePrompt,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`

	CarouselSlides []CarouselSlide `json:"carouselSlides,omitempty"`
	StoryFrames    []StoryFrame    `json:"storyFrames,omitempty"`

	RejectionReason string `json:"rejectionReason,omitempty"`
	PublishLog      string `json:"publishLog,omitempty"`
}

func (p Post) Identity() string { return p.ID }
