// Package models defines the planner's persisted entities. JSON field names
// follow the stored document format so existing workspaces load unchanged.
package models

// Influencer is a persona profile and the namespace of its documents.
type Influencer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Handle    string `json:"handle"`
	CreatedAt int64  `json:"createdAt"`
}

func (i Influencer) Identity() string { return i.ID }

// Session is the single active login record kept in the key-value tier.
// ExpiresAt is unix milliseconds.
type Session struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	ExpiresAt int64  `json:"expiresAt"`
}
