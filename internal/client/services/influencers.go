package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/personadesk/internal/client/models"
	"github.com/dmitrijs2005/personadesk/internal/client/storage"
	"github.com/dmitrijs2005/personadesk/internal/common"
	"github.com/dmitrijs2005/personadesk/internal/logging"
	"github.com/google/uuid"
)

// Influencers manages each user's influencer list, kept in the key-value
// tier. Deleting an influencer also deletes its documents.
type Influencers struct {
	kv    *storage.KVStore
	docs  *storage.DocumentStore
	now   func() time.Time
	newID func() string
	log   logging.Logger
}

func NewInfluencers(kv *storage.KVStore, docs *storage.DocumentStore, log logging.Logger) *Influencers {
	return &Influencers{
		kv:    kv,
		docs:  docs,
		now:   time.Now,
		newID: uuid.NewString,
		log:   log.With("module", "influencers"),
	}
}

// List returns user's influencers in creation order. A missing or
// unreadable list is empty.
func (d *Influencers) List(ctx context.Context, user string) []models.Influencer {
	var list []models.Influencer
	if !d.kv.GetJSON(ctx, storage.InfluencerListKey(user), &list) || list == nil {
		return []models.Influencer{}
	}
	return list
}

func (d *Influencers) Create(ctx context.Context, user, name, handle string) (models.Influencer, error) {
	if user == "" {
		return models.Influencer{}, common.ErrNotLoggedIn
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Influencer{}, fmt.Errorf("influencer name is required")
	}

	inf := models.Influencer{
		ID:        d.newID(),
		Name:      name,
		Handle:    normalizeHandle(handle),
		CreatedAt: d.now().UnixMilli(),
	}
	list := append(d.List(ctx, user), inf)
	if err := d.save(ctx, user, list); err != nil {
		return models.Influencer{}, err
	}
	d.log.Info(ctx, "influencer created", "user", user, "id", inf.ID)
	return inf, nil
}

func (d *Influencers) Get(ctx context.Context, user, id string) (models.Influencer, error) {
	inf, ok := models.Find(d.List(ctx, user), id)
	if !ok {
		return models.Influencer{}, common.ErrorNotFound
	}
	return inf, nil
}

// Update replaces the stored record with the same id.
func (d *Influencers) Update(ctx context.Context, user string, inf models.Influencer) error {
	if user == "" {
		return common.ErrNotLoggedIn
	}
	list := d.List(ctx, user)
	if _, ok := models.Find(list, inf.ID); !ok {
		return common.ErrorNotFound
	}
	return d.save(ctx, user, models.Replace(list, inf))
}

// Delete removes the influencer and its document namespace. Deleting an
// unknown id is not an error. Create, Update and Delete need a user.
func (d *Influencers) Delete(ctx context.Context, user, id string) error {
	if user == "" {
		return common.ErrNotLoggedIn
	}
	list := d.List(ctx, user)
	if _, ok := models.Find(list, id); ok {
		if err := d.save(ctx, user, models.Remove(list, id)); err != nil {
			return err
		}
	}
	if err := d.docs.Delete(ctx, storage.NamespacePrefix(id)); err != nil {
		return fmt.Errorf("failed to delete documents of %s: %w", id, err)
	}
	d.log.Info(ctx, "influencer deleted", "user", user, "id", id)
	return nil
}

// Purge removes every influencer of user with their documents, then the
// list itself. It keeps going past failures and reports the first one.
func (d *Influencers) Purge(ctx context.Context, user string) error {
	var first error
	for _, inf := range d.List(ctx, user) {
		if err := d.docs.Delete(ctx, storage.NamespacePrefix(inf.ID)); err != nil {
			d.log.Error(ctx, "purge failed", "user", user, "id", inf.ID, "error", err)
			if first == nil {
				first = err
			}
		}
	}
	d.kv.Remove(ctx, storage.InfluencerListKey(user))
	return first
}

// PurgeAfterAccountDeletion adapts Purge to SessionManager.OnAccountDeleted.
func (d *Influencers) PurgeAfterAccountDeletion(ctx context.Context, user string) {
	if err := d.Purge(ctx, user); err != nil {
		d.log.Warn(ctx, "account data only partly removed", "user", user, "error", err)
	}
}

func (d *Influencers) save(ctx context.Context, user string, list []models.Influencer) error {
	if !d.kv.SetJSON(ctx, storage.InfluencerListKey(user), list) {
		return fmt.Errorf("%w: influencer list", common.ErrPersist)
	}
	return nil
}

func normalizeHandle(h string) string {
	h = strings.TrimSpace(h)
	if h == "" || strings.HasPrefix(h, "@") {
		return h
	}
	return "@" + h
}
