package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func posts(ids ...string) []Post {
	out := make([]Post, 0, len(ids))
	for _, id := range ids {
		out = append(out, Post{ID: id, Status: PostStatusPlanned})
	}
	return out
}

func ids[T Identified](list []T) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		out = append(out, v.Identity())
	}
	return out
}

func TestPrepend(t *testing.T) {
	list := posts("a", "b")

	got := Prepend(list, Post{ID: "c"})
	assert.Equal(t, []string{"c", "a", "b"}, ids(got))
	assert.Equal(t, []string{"a", "b"}, ids(list))

	again := Prepend(got, Post{ID: "a", Caption: "edited"})
	assert.Equal(t, []string{"c", "a", "b"}, ids(again))
	assert.Equal(t, "edited", again[1].Caption)
}

func TestReplace(t *testing.T) {
	list := posts("a", "b")

	got := Replace(list, Post{ID: "b", Status: PostStatusApproved})
	assert.Equal(t, PostStatusApproved, got[1].Status)
	assert.Equal(t, PostStatusPlanned, list[1].Status)

	same := Replace(list, Post{ID: "zzz"})
	assert.Equal(t, list, same)
}

func TestRemove(t *testing.T) {
	list := posts("a", "b", "c")

	got := Remove(list, "b")
	assert.Equal(t, []string{"a", "c"}, ids(got))

	got = Remove(got, "b")
	assert.Equal(t, []string{"a", "c"}, ids(got))
}

func TestFind(t *testing.T) {
	cards := []StrategyCard{{ID: "s1", Type: StrategyBrandReel}, {ID: "s2"}}

	c, ok := Find(cards, "s1")
	assert.True(t, ok)
	assert.True(t, c.Type.IsBrand())

	_, ok = Find(cards, "nope")
	assert.False(t, ok)
}

func TestPostStatusValid(t *testing.T) {
	assert.True(t, PostStatusPublished.Valid())
	assert.False(t, PostStatus("DRAFT").Valid())
}

func TestStrategyTypeContentType(t *testing.T) {
	assert.Equal(t, ContentStory, StrategyBrandStory.ContentType())
	assert.Equal(t, ContentFeedPost, StrategyOrganicReel.ContentType())
	assert.Equal(t, ContentFeedPost, StrategyOrganicFeed.ContentType())
}

func TestQuarterlyPlanPostCount(t *testing.T) {
	p := QuarterlyPlan{Months: []MonthlyPlan{
		{Weeks: []WeeklyPlan{{DailyIdeas: make([]DailyPostIdea, 3)}, {DailyIdeas: make([]DailyPostIdea, 2)}}},
		{Weeks: []WeeklyPlan{{DailyIdeas: make([]DailyPostIdea, 1)}}},
	}}
	assert.Equal(t, 6, p.PostCount())
}

func TestBrandPrimaryProduct(t *testing.T) {
	b := Brand{Products: []Product{{ID: "p1"}, {ID: "p2", IsPrimary: true}}}
	p, ok := b.PrimaryProduct()
	assert.True(t, ok)
	assert.Equal(t, "p2", p.ID)

	_, ok = Brand{}.PrimaryProduct()
	assert.False(t, ok)
}
