package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/personadesk/internal/client/models"
	"github.com/dmitrijs2005/personadesk/internal/client/storage"
	"github.com/dmitrijs2005/personadesk/internal/common"
	"github.com/dmitrijs2005/personadesk/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Workspace is the open state of one influencer: persona, plans, posts,
// brands and strategy cards. It starts in the loading state and rejects
// mutations until Load returns. Every mutation saves only the category it
// changed.
type Workspace struct {
	user    string
	docs    *storage.DocumentStore
	dir     *Influencers
	notices *Notices
	now     func() time.Time
	newID   func() string
	log     logging.Logger

	mu         sync.Mutex
	loaded     bool
	influencer models.Influencer
	persona    models.Persona
	plans      []models.QuarterlyPlan
	posts      []models.Post
	brands     []models.Brand
	strategies []models.StrategyCard
}

func NewWorkspace(user string, inf models.Influencer, docs *storage.DocumentStore, dir *Influencers, notices *Notices, log logging.Logger) *Workspace {
	return &Workspace{
		user:       user,
		docs:       docs,
		dir:        dir,
		notices:    notices,
		now:        time.Now,
		newID:      uuid.NewString,
		log:        log.With("module", "workspace", "influencer", inf.ID),
		influencer: inf,
		persona:    models.DefaultPersona(),
	}
}

func (w *Workspace) key(category string) string {
	return storage.DocumentKey(w.influencer.ID, category)
}

// Load reads all five categories concurrently. A category that cannot be
// read starts from its default and raises a warning; Load itself only
// fails when ctx is done.
func (w *Workspace) Load(ctx context.Context) error {
	var (
		saved      models.PersonaPatch
		hasPersona bool
		plans      []models.QuarterlyPlan
		posts      []models.Post
		brands     []models.Brand
		strategies []models.StrategyCard
	)

	g, gctx := errgroup.WithContext(ctx)
	load := func(category string, dst any, found *bool) {
		g.Go(func() error {
			ok, err := w.docs.LoadInto(gctx, w.key(category), dst)
			if err != nil {
				w.log.Warn(gctx, "category load failed", "category", category, "error", err)
				w.notices.Push(fmt.Sprintf("Failed to load %s from database.", category))
				ok = false
			}
			if found != nil {
				*found = ok
			}
			return gctx.Err()
		})
	}
	load(storage.CategoryPersona, &saved, &hasPersona)
	load(storage.CategoryPlans, &plans, nil)
	load(storage.CategoryPosts, &posts, nil)
	load(storage.CategoryBrands, &brands, nil)
	load(storage.CategoryStrategies, &strategies, nil)
	if err := g.Wait(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if hasPersona {
		w.persona = models.MergePersona(models.DefaultPersona(), &saved)
	} else {
		w.persona = models.DefaultPersona()
		w.persona.Name = w.influencer.Name
	}
	w.plans = orEmpty(plans)
	w.posts = orEmpty(posts)
	w.brands = orEmpty(brands)
	w.strategies = orEmpty(strategies)
	w.loaded = true

	w.syncInfluencerName(ctx)
	w.log.Debug(ctx, "workspace loaded", "plans", len(w.plans), "posts", len(w.posts), "brands", len(w.brands), "strategies", len(w.strategies))
	return nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Loading reports whether Load has not completed yet.
func (w *Workspace) Loading() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.loaded
}

func (w *Workspace) Influencer() models.Influencer {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.influencer
}

func (w *Workspace) Persona() models.Persona {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.persona.Clone()
}

func (w *Workspace) Plans() []models.QuarterlyPlan {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.QuarterlyPlan(nil), w.plans...)
}

func (w *Workspace) Posts() []models.Post {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.Post(nil), w.posts...)
}

func (w *Workspace) Brands() []models.Brand {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.Brand(nil), w.brands...)
}

func (w *Workspace) StrategyCards() []models.StrategyCard {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.StrategyCard(nil), w.strategies...)
}

// mutate runs fn under the lock once the workspace is loaded and saves the
// returned categories. State changes stay applied when a save fails; the
// failure raises a warning and is returned.
func (w *Workspace) mutate(ctx context.Context, fn func() ([]string, error)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.loaded {
		return common.ErrWorkspaceLoading
	}
	changed, err := fn()
	if err != nil {
		return err
	}

	var first error
	for _, c := range changed {
		if err := w.docs.Save(ctx, w.key(c), w.document(c)); err != nil {
			w.notices.Push(fmt.Sprintf("Failed to save %s.", c))
			if first == nil {
				first = err
			}
		}
	}
	return first
}

func (w *Workspace) document(category string) any {
	switch category {
	case storage.CategoryPersona:
		return w.persona
	case storage.CategoryPlans:
		return w.plans
	case storage.CategoryPosts:
		return w.posts
	case storage.CategoryBrands:
		return w.brands
	case storage.CategoryStrategies:
		return w.strategies
	}
	panic("unknown category " + category)
}

// SetPersona replaces the persona. Once the visual identity is initialized
// its flag, face descriptor and reference images can no longer change. A
// new name is propagated to the influencer directory.
func (w *Workspace) SetPersona(ctx context.Context, p models.Persona) error {
	return w.mutate(ctx, func() ([]string, error) {
		cur := w.persona
		if cur.VisualIdentityInitialized {
			if !p.VisualIdentityInitialized || p.FaceDescriptorBlock != cur.FaceDescriptorBlock ||
				!slices.Equal(p.VisualReferenceImages, cur.VisualReferenceImages) {
				return nil, common.ErrVisualIdentityLocked
			}
		}
		w.persona = p.Clone()
		w.syncInfluencerName(ctx)
		return []string{storage.CategoryPersona}, nil
	})
}

// InitializeVisualIdentity locks the persona's face descriptor and
// reference images. It can run once.
func (w *Workspace) InitializeVisualIdentity(ctx context.Context, faceDescriptor string, references []string) error {
	return w.mutate(ctx, func() ([]string, error) {
		if w.persona.VisualIdentityInitialized {
			return nil, common.ErrVisualIdentityLocked
		}
		if strings.TrimSpace(faceDescriptor) == "" {
			return nil, fmt.Errorf("face descriptor is required")
		}
		w.persona.FaceDescriptorBlock = faceDescriptor
		w.persona.VisualReferenceImages = append([]string{}, references...)
		w.persona.VisualIdentityInitialized = true
		return []string{storage.CategoryPersona}, nil
	})
}

// syncInfluencerName must be called with w.mu held.
func (w *Workspace) syncInfluencerName(ctx context.Context) {
	if w.persona.Name == "" || w.persona.Name == w.influencer.Name {
		return
	}
	updated := w.influencer
	updated.Name = w.persona.Name
	if err := w.dir.Update(ctx, w.user, updated); err != nil {
		w.log.Warn(ctx, "influencer rename not saved", "error", err)
		return
	}
	w.influencer = updated
}

func (w *Workspace) AddPost(ctx context.Context, p models.Post) error {
	return w.mutate(ctx, func() ([]string, error) {
		if p.ID == "" {
			p.ID = w.newID()
		}
		if p.CreatedAt == 0 {
			p.CreatedAt = w.now().UnixMilli()
		}
		w.posts = models.Prepend(w.posts, p)
		return []string{storage.CategoryPosts}, nil
	})
}

func (w *Workspace) UpdatePost(ctx context.Context, p models.Post) error {
	return w.mutate(ctx, func() ([]string, error) {
		w.posts = models.Replace(w.posts, p)
		return []string{storage.CategoryPosts}, nil
	})
}

func (w *Workspace) DeletePost(ctx context.Context, id string) error {
	return w.mutate(ctx, func() ([]string, error) {
		w.posts = models.Remove(w.posts, id)
		return []string{storage.CategoryPosts}, nil
	})
}

// SetPostStatus moves a post through the approval workflow. note becomes
// the rejection reason for REJECTED and the publish log for PUBLISHED.
func (w *Workspace) SetPostStatus(ctx context.Context, id string, status models.PostStatus, note string) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", common.ErrUnknownStatus, status)
	}
	return w.mutate(ctx, func() ([]string, error) {
		p, ok := models.Find(w.posts, id)
		if !ok {
			return nil, common.ErrorNotFound
		}
		p.Status = status
		switch status {
		case models.PostStatusRejected:
			p.RejectionReason = note
		case models.PostStatusPublished:
			if note == "" {
				note = "Published " + w.now().UTC().Format(time.RFC3339)
			}
			p.PublishLog = note
		}
		w.posts = models.Replace(w.posts, p)
		return []string{storage.CategoryPosts}, nil
	})
}

func (w *Workspace) AddPlan(ctx context.Context, p models.QuarterlyPlan) error {
	return w.mutate(ctx, func() ([]string, error) {
		if p.ID == "" {
			p.ID = w.newID()
		}
		w.plans = models.Prepend(w.plans, p)
		return []string{storage.CategoryPlans}, nil
	})
}

func (w *Workspace) UpdatePlan(ctx context.Context, p models.QuarterlyPlan) error {
	return w.mutate(ctx, func() ([]string, error) {
		w.plans = models.Replace(w.plans, p)
		return []string{storage.CategoryPlans}, nil
	})
}

func (w *Workspace) DeletePlan(ctx context.Context, id string) error {
	return w.mutate(ctx, func() ([]string, error) {
		w.plans = models.Remove(w.plans, id)
		return []string{storage.CategoryPlans}, nil
	})
}

func (w *Workspace) AddBrand(ctx context.Context, b models.Brand) error {
	return w.mutate(ctx, func() ([]string, error) {
		if b.ID == "" {
			b.ID = w.newID()
		}
		if b.CreatedAt == 0 {
			b.CreatedAt = w.now().UnixMilli()
		}
		w.brands = models.Prepend(w.brands, b)
		return []string{storage.CategoryBrands}, nil
	})
}

func (w *Workspace) UpdateBrand(ctx context.Context, b models.Brand) error {
	return w.mutate(ctx, func() ([]string, error) {
		w.brands = models.Replace(w.brands, b)
		return []string{storage.CategoryBrands}, nil
	})
}

func (w *Workspace) DeleteBrand(ctx context.Context, id string) error {
	return w.mutate(ctx, func() ([]string, error) {
		w.brands = models.Remove(w.brands, id)
		return []string{storage.CategoryBrands}, nil
	})
}

func (w *Workspace) AddStrategyCard(ctx context.Context, c models.StrategyCard) error {
	return w.mutate(ctx, func() ([]string, error) {
		if c.ID == "" {
			c.ID = w.newID()
		}
		if c.CreatedAt == 0 {
			c.CreatedAt = w.now().UnixMilli()
		}
		w.strategies = models.Prepend(w.strategies, c)
		return []string{storage.CategoryStrategies}, nil
	})
}

func (w *Workspace) UpdateStrategyCard(ctx context.Context, c models.StrategyCard) error {
	return w.mutate(ctx, func() ([]string, error) {
		w.strategies = models.Replace(w.strategies, c)
		return []string{storage.CategoryStrategies}, nil
	})
}

func (w *Workspace) DeleteStrategyCard(ctx context.Context, id string) error {
	return w.mutate(ctx, func() ([]string, error) {
		w.strategies = models.Remove(w.strategies, id)
		return []string{storage.CategoryStrategies}, nil
	})
}

// PushStrategyCard turns a strategy card into a planned post scheduled on
// date (YYYY-MM-DD; empty uses the card's suggested date) and marks the
// card pushed. Both categories are saved. A card is pushed at most once.
func (w *Workspace) PushStrategyCard(ctx context.Context, id, date string) (models.Post, error) {
	var post models.Post
	err := w.mutate(ctx, func() ([]string, error) {
		c, ok := models.Find(w.strategies, id)
		if !ok {
			return nil, common.ErrorNotFound
		}
		if c.IsPushed {
			return nil, common.ErrCardPushed
		}
		if date == "" {
			date = c.SuggestedDate
		}
		post = postFromCard(c, w.newID(), date, w.now().UnixMilli())
		post.BaseCity = w.persona.BaseCity

		c.IsPushed = true
		w.strategies = models.Replace(w.strategies, c)
		w.posts = models.Prepend(w.posts, post)
		return []string{storage.CategoryPosts, storage.CategoryStrategies}, nil
	})
	return post, err
}

func postFromCard(c models.StrategyCard, id, date string, now int64) models.Post {
	p := models.Post{
		ID:             id,
		Status:         models.PostStatusPlanned,
		CreatedAt:      now,
		ScheduledDate:  date,
		StrategyItemID: c.ID,
		Type:           c.Type.ContentType(),
		Caption:        c.CaptionDirection,
		Hashtags:       []string{},
		Hook:           c.VisualIdea,
		ImagePrompt:    strings.TrimSpace(strings.Join(nonEmpty(c.Scene, c.Mood, c.CameraStyle), ". ")),
	}
	if c.Type.IsBrand() || c.BrandID != "" {
		p.IsSponsored = true
		p.BrandID = c.BrandID
		p.BrandName = c.BrandName
		p.ProductName = c.ProductName
	}
	return p
}

func nonEmpty(s ...string) []string {
	out := make([]string, 0, len(s))
	for _, v := range s {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
