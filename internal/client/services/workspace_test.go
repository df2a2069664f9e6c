package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/personadesk/internal/client/models"
	"github.com/dmitrijs2005/personadesk/internal/client/repositories/documents"
	"github.com/dmitrijs2005/personadesk/internal/client/storage"
	"github.com/dmitrijs2005/personadesk/internal/common"
	"github.com/dmitrijs2005/personadesk/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingDocs wraps a documents.Repository and counts puts per key.
type countingDocs struct {
	documents.Repository
	puts map[string]int
}

func (c *countingDocs) Put(ctx context.Context, key string, value []byte) error {
	c.puts[key]++
	return c.Repository.Put(ctx, key, value)
}

type workspaceFixture struct {
	*env
	dir  *Influencers
	inf  models.Influencer
	puts map[string]int
	ws   *Workspace
}

func newWorkspaceFixture(t *testing.T) *workspaceFixture {
	t.Helper()
	e := newEnv(t)
	counting := &countingDocs{Repository: documents.NewSQLiteRepository(e.db), puts: map[string]int{}}
	e.docs = storage.NewDocumentStore(counting, logging.Nop())

	dir := e.influencers()
	inf, err := dir.Create(context.Background(), "alice", "Nova", "@nova")
	require.NoError(t, err)

	f := &workspaceFixture{env: e, dir: dir, inf: inf, puts: counting.puts}
	f.ws = f.open()
	return f
}

func (f *workspaceFixture) open() *Workspace {
	ws := NewWorkspace("alice", f.inf, f.docs, f.dir, f.notices, logging.Nop())
	ws.now = f.clock.Now
	ws.newID = sequentialIDs("id")
	return ws
}

func TestWorkspace_RejectsMutationWhileLoading(t *testing.T) {
	f := newWorkspaceFixture(t)
	ctx := context.Background()

	assert.True(t, f.ws.Loading())
	require.ErrorIs(t, f.ws.AddPost(ctx, models.Post{ID: "p1"}), common.ErrWorkspaceLoading)
	require.ErrorIs(t, f.ws.SetPersona(ctx, models.DefaultPersona()), common.ErrWorkspaceLoading)
	assert.Empty(t, f.puts)
}

func TestWorkspace_FirstLoadDefaultsWithoutSaving(t *testing.T) {
	f := newWorkspaceFixture(t)
	ctx := context.Background()

	require.NoError(t, f.ws.Load(ctx))
	assert.False(t, f.ws.Loading())

	p := f.ws.Persona()
	assert.Equal(t, "Nova", p.Name)
	assert.Equal(t, models.DefaultPersona().Donts, p.Donts)
	assert.Empty(t, f.ws.Posts())
	assert.Empty(t, f.puts, "loading must not write anything back")
}

func TestWorkspace_EachMutationSavesOnlyItsCategory(t *testing.T) {
	f := newWorkspaceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ws.Load(ctx))

	require.NoError(t, f.ws.AddPost(ctx, models.Post{Caption: "first"}))
	assert.Equal(t, map[string]int{storage.DocumentKey(f.inf.ID, storage.CategoryPosts): 1}, f.puts)

	require.NoError(t, f.ws.AddBrand(ctx, models.Brand{Name: "Chai Co"}))
	require.NoError(t, f.ws.AddPlan(ctx, models.QuarterlyPlan{Quarter: "Q3 2025"}))
	require.NoError(t, f.ws.AddStrategyCard(ctx, models.StrategyCard{VisualIdea: "rooftop"}))

	for _, c := range []string{storage.CategoryPosts, storage.CategoryBrands, storage.CategoryPlans, storage.CategoryStrategies} {
		assert.Equal(t, 1, f.puts[storage.DocumentKey(f.inf.ID, c)], c)
	}
	assert.Zero(t, f.puts[storage.DocumentKey(f.inf.ID, storage.CategoryPersona)])
}

func TestWorkspace_ListTransformsPersistAndReload(t *testing.T) {
	f := newWorkspaceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ws.Load(ctx))

	require.NoError(t, f.ws.AddPost(ctx, models.Post{ID: "a", Caption: "a"}))
	require.NoError(t, f.ws.AddPost(ctx, models.Post{ID: "b", Caption: "b"}))
	require.NoError(t, f.ws.UpdatePost(ctx, models.Post{ID: "a", Caption: "a2"}))
	require.NoError(t, f.ws.DeletePost(ctx, "missing"))
	require.NoError(t, f.ws.AddPost(ctx, models.Post{ID: "a", Caption: "a3"}))

	posts := f.ws.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, "b", posts[0].ID, "newest first")
	assert.Equal(t, "a3", posts[1].Caption, "re-adding an id replaces in place")

	require.NoError(t, f.ws.DeletePost(ctx, "b"))
	require.NoError(t, f.ws.DeletePost(ctx, "b"))

	reopened := f.open()
	require.NoError(t, reopened.Load(ctx))
	got := reopened.Posts()
	require.Len(t, got, 1)
	assert.Equal(t, "a3", got[0].Caption)
}

func TestWorkspace_PersonaMergedOnReloadAndRenamePropagates(t *testing.T) {
	f := newWorkspaceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ws.Load(ctx))

	p := f.ws.Persona()
	p.Name = "Nova Prime"
	p.Donts = nil
	require.NoError(t, f.ws.SetPersona(ctx, p))

	inf, err := f.dir.Get(ctx, "alice", f.inf.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nova Prime", inf.Name)
	assert.Equal(t, "Nova Prime", f.ws.Influencer().Name)

	f.inf = inf
	reopened := f.open()
	require.NoError(t, reopened.Load(ctx))
	got := reopened.Persona()
	assert.Equal(t, "Nova Prime", got.Name)
	assert.Equal(t, models.DefaultPersona().Donts, got.Donts, "absent list falls back to the baseline")
}

func TestWorkspace_VisualIdentityLock(t *testing.T) {
	f := newWorkspaceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ws.Load(ctx))

	require.Error(t, f.ws.InitializeVisualIdentity(ctx, " ", nil))
	require.NoError(t, f.ws.InitializeVisualIdentity(ctx, "oval face, nose stud", []string{"front.png"}))
	require.ErrorIs(t, f.ws.InitializeVisualIdentity(ctx, "other", nil), common.ErrVisualIdentityLocked)

	p := f.ws.Persona()
	assert.True(t, p.VisualIdentityInitialized)

	p.CommunicationTone = "Calmer"
	require.NoError(t, f.ws.SetPersona(ctx, p), "other fields stay editable")

	p.FaceDescriptorBlock = "new face"
	require.ErrorIs(t, f.ws.SetPersona(ctx, p), common.ErrVisualIdentityLocked)
	assert.Equal(t, "oval face, nose stud", f.ws.Persona().FaceDescriptorBlock)
}

func TestWorkspace_PushStrategyCard(t *testing.T) {
	f := newWorkspaceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ws.Load(ctx))

	card := models.StrategyCard{
		ID:               "s1",
		Type:             models.StrategyBrandStory,
		VisualIdea:       "Chai at sunrise",
		Scene:            "Marine Drive",
		Mood:             "calm",
		CaptionDirection: "Morning ritual",
		SuggestedDate:    "2025-06-10",
		BrandID:          "b1",
		BrandName:        "Chai Co",
	}
	require.NoError(t, f.ws.AddStrategyCard(ctx, card))

	post, err := f.ws.PushStrategyCard(ctx, "s1", "")
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusPlanned, post.Status)
	assert.Equal(t, models.ContentStory, post.Type)
	assert.Equal(t, "2025-06-10", post.ScheduledDate)
	assert.Equal(t, "s1", post.StrategyItemID)
	assert.True(t, post.IsSponsored)
	assert.Equal(t, "Marine Drive. calm", post.ImagePrompt)
	assert.Equal(t, "Mumbai", post.BaseCity)

	cards := f.ws.StrategyCards()
	assert.True(t, cards[0].IsPushed)
	assert.Equal(t, post.ID, f.ws.Posts()[0].ID)

	_, err = f.ws.PushStrategyCard(ctx, "s1", "2025-07-01")
	require.ErrorIs(t, err, common.ErrCardPushed)
	assert.Len(t, f.ws.Posts(), 1)

	_, err = f.ws.PushStrategyCard(ctx, "missing", "")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestWorkspace_SetPostStatus(t *testing.T) {
	f := newWorkspaceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ws.Load(ctx))
	require.NoError(t, f.ws.AddPost(ctx, models.Post{ID: "p1", Status: models.PostStatusWaitingApproval}))

	require.ErrorIs(t, f.ws.SetPostStatus(ctx, "p1", "DRAFT", ""), common.ErrUnknownStatus)
	require.ErrorIs(t, f.ws.SetPostStatus(ctx, "nope", models.PostStatusApproved, ""), common.ErrorNotFound)

	require.NoError(t, f.ws.SetPostStatus(ctx, "p1", models.PostStatusRejected, "off brand"))
	assert.Equal(t, "off brand", f.ws.Posts()[0].RejectionReason)

	require.NoError(t, f.ws.SetPostStatus(ctx, "p1", models.PostStatusPublished, ""))
	p := f.ws.Posts()[0]
	assert.Equal(t, models.PostStatusPublished, p.Status)
	assert.Contains(t, p.PublishLog, "2025-06-01T09:00:00Z")
}

func TestWorkspace_CorruptCategoryWarnsAndDefaults(t *testing.T) {
	f := newWorkspaceFixture(t)
	ctx := context.Background()

	raw := documents.NewSQLiteRepository(f.db)
	require.NoError(t, raw.Put(ctx, storage.DocumentKey(f.inf.ID, storage.CategoryBrands), []byte("{not json")))
	require.NoError(t, f.docs.Save(ctx, storage.DocumentKey(f.inf.ID, storage.CategoryPosts), []models.Post{{ID: "kept"}}))

	require.NoError(t, f.ws.Load(ctx))
	assert.Empty(t, f.ws.Brands())
	assert.Len(t, f.ws.Posts(), 1)
	assert.Equal(t, []string{"Failed to load brands from database."}, f.notices.Drain())
}

func TestWorkspace_TypeMismatchLoadsNothingFromCategory(t *testing.T) {
	f := newWorkspaceFixture(t)
	ctx := context.Background()

	raw := documents.NewSQLiteRepository(f.db)
	key := storage.DocumentKey(f.inf.ID, storage.CategoryPosts)
	original := []byte(`[{"id":"a","status":"PLANNED"},{"id":5}]`)
	require.NoError(t, raw.Put(ctx, key, original))

	require.NoError(t, f.ws.Load(ctx))
	assert.Empty(t, f.ws.Posts())
	assert.Equal(t, []string{"Failed to load posts from database."}, f.notices.Drain())

	stored, ok, err := raw.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, original, stored, "load must not rewrite the document")
}
