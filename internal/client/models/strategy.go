package models

type StrategyType string

const (
	StrategyOrganicFeed  StrategyType = "organic_feed"
	StrategyOrganicStory StrategyType = "organic_story"
	StrategyOrganicReel  StrategyType = "organic_reel"
	StrategyBrandFeed    StrategyType = "brand_feed"
	StrategyBrandStory   StrategyType = "brand_story"
	StrategyBrandReel    StrategyType = "brand_reel"
)

// ContentType maps the strategy to the post format it becomes when pushed.
// Reels have no post format of their own and are scheduled as feed posts.
func (t StrategyType) ContentType() ContentType {
	switch t {
	case StrategyOrganicStory, StrategyBrandStory:
		return ContentStory
	default:
		return ContentFeedPost
	}
}

func (t StrategyType) IsBrand() bool {
	return t == StrategyBrandFeed || t == StrategyBrandStory || t == StrategyBrandReel
}

type StrategySource string

const (
	SourceAuto         StrategySource = "auto"
	SourceManual       StrategySource = "manual"
	SourceIntelligence StrategySource = "intelligence"
)

// StrategyCard is an atomic content idea that may later be pushed into a
// post.
type StrategyCard struct {
	ID        string         `json:"id"`
	Type      StrategyType   `json:"type"`
	CreatedAt int64          `json:"createdAt"`
	Source    StrategySource `json:"source,omitempty"`

	VisualIdea       string `json:"visualIdea"`
	Scene            string `json:"scene"`
	Mood             string `json:"mood"`
	Story            string `json:"story"`
	CaptionDirection string `json:"captionDirection"`
	SuggestedDate    string `json:"suggestedDate,omitempty"`

	CameraStyle      string `json:"cameraStyle,omitempty"`
	ReferenceImageID string `json:"referenceImageId,omitempty"`

	BrandID           string   `json:"brandId,omitempty"`
	BrandName         string   `json:"brandName,omitempty"`
	ProductName       string   `json:"productName,omitempty"`
	ProductContext    string   `json:"productContext,omitempty"`
	MandatoryMentions []string `json:"mandatoryMentions,omitempty"`

	IsPushed bool `json:"isPushed,omitempty"`
}

func (s StrategyCard) Identity() string { return s.ID }
