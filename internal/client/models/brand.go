package models

type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ImageIDs    []string `json:"imageIds"`
	IsPrimary   bool     `json:"isPrimary"`
}

func (p Product) Identity() string { return p.ID }

// Brand is a sponsor with its campaign brief and product catalogue.
// ProductName and ProductDescription predate Products and are kept for
// older documents.
type Brand struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Industry           string `json:"industry"`
	ProductName        string `json:"productName"`
	ProductDescription string `json:"productDescription"`

	Products []Product `json:"products"`

	WebsiteURL        string        `json:"websiteUrl,omitempty"`
	InstagramHandle   string        `json:"instagramHandle,omitempty"`
	Tone              string        `json:"tone"`
	KeySellingPoints  []string      `json:"keySellingPoints"`
	TargetAudience    string        `json:"targetAudience"`
	CampaignObjective string        `json:"campaignObjective"`
	MandatoryMentions []string      `json:"mandatoryMentions"`
	Dos               []string      `json:"dos"`
	Donts             []string      `json:"donts"`
	ContentTypes      []ContentType `json:"contentTypes"`
	PostingFrequency  string        `json:"postingFrequency"`

	StartDate      string `json:"startDate,omitempty"` // YYYY-MM-DD
	EndDate        string `json:"endDate,omitempty"`
	PreferredWeeks []int  `json:"preferredWeeks,omitempty"`

	CreatedAt int64 `json:"createdAt"`
}

func (b Brand) Identity() string { return b.ID }

// PrimaryProduct returns the product flagged primary, or the first one.
func (b Brand) PrimaryProduct() (Product, bool) {
	for _, p := range b.Products {
		if p.IsPrimary {
			return p, true
		}
	}
	if len(b.Products) > 0 {
		return b.Products[0], true
	}
	return Product{}, false
}
