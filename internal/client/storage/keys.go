// Package storage is the planner's two-tier persistence layer. KVStore fronts
// the small budgeted tier guarded by Guard; DocumentStore holds the larger
// per-influencer documents.
package storage

import "strings"

const (
	UsersKey         = "ai_influencer_users_v1"
	SessionKey       = "ai_influencer_session_v1"
	SessionSecretKey = "ai_influencer_session_secret_v1"

	influencerListPrefix = "ai_influencer_"
	influencerListSuffix = "_influencer_list"
)

// Document categories stored per influencer.
const (
	CategoryPersona    = "persona"
	CategoryPlans      = "plans"
	CategoryPosts      = "posts"
	CategoryBrands     = "brands"
	CategoryStrategies = "strategies"
)

// Categories lists every per-influencer document category.
var Categories = []string{CategoryPersona, CategoryPlans, CategoryPosts, CategoryBrands, CategoryStrategies}

// InfluencerListKey is the key of user's influencer directory.
func InfluencerListKey(user string) string {
	return influencerListPrefix + user + influencerListSuffix
}

// influencerListOwner extracts the username from an influencer list key.
func influencerListOwner(key string) (string, bool) {
	if !strings.HasPrefix(key, influencerListPrefix) || !strings.HasSuffix(key, influencerListSuffix) {
		return "", false
	}
	user := key[len(influencerListPrefix) : len(key)-len(influencerListSuffix)]
	if user == "" {
		return "", false
	}
	return user, true
}

// DocumentKey is the key of one category document of an influencer.
func DocumentKey(influencerID, category string) string {
	return NamespacePrefix(influencerID) + category
}

// NamespacePrefix is the common prefix of every document of an influencer.
func NamespacePrefix(influencerID string) string {
	return "data_" + influencerID + "_"
}
