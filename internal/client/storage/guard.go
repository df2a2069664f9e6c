package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/personadesk/internal/client/models"
	"github.com/dmitrijs2005/personadesk/internal/client/repositories/kv"
	"github.com/dmitrijs2005/personadesk/internal/common"
	"github.com/dmitrijs2005/personadesk/internal/logging"
)

// DefaultBudget is the key-value tier budget in bytes.
const DefaultBudget = 5 << 20

// Guard keeps the key-value tier under Budget bytes by evicting the oldest
// unprotected entries before a write.
type Guard struct {
	Budget    int64
	Protected map[string]struct{}

	now func() time.Time
	log logging.Logger
}

// NewGuard returns a guard that never evicts the credential table, the
// session record or the session signing secret, plus any extra keys.
func NewGuard(budget int64, log logging.Logger, extra ...string) *Guard {
	protected := map[string]struct{}{
		UsersKey:         {},
		SessionKey:       {},
		SessionSecretKey: {},
	}
	for _, k := range extra {
		protected[k] = struct{}{}
	}
	return &Guard{
		Budget:    budget,
		Protected: protected,
		now:       time.Now,
		log:       log.With("module", "storage.guard"),
	}
}

// WithClock replaces the time source used by Cleanup.
func (g *Guard) WithClock(now func() time.Time) *Guard {
	g.now = now
	return g
}

func (g *Guard) protected(key string) bool {
	_, ok := g.Protected[key]
	return ok
}

// EnforceLimit makes room in repo for key=value. The current value of key
// does not count towards usage since the write replaces it. When the pair
// does not fit, entries are evicted oldest first; if evicting every
// candidate would still not be enough nothing is removed and the returned
// error wraps common.ErrStorageQuota.
func (g *Guard) EnforceLimit(ctx context.Context, repo kv.Repository, key, value string) error {
	size := kv.EntrySize(key, value)
	if size > g.Budget {
		return fmt.Errorf("%w: %s needs %d bytes, budget is %d", common.ErrStorageQuota, key, size, g.Budget)
	}

	total, err := repo.Usage(ctx)
	if err != nil {
		return err
	}
	if total+size <= g.Budget {
		return nil
	}

	entries, err := repo.List(ctx)
	if err != nil {
		return err
	}

	var usage int64
	for _, e := range entries {
		if e.Key != key {
			usage += e.Size
		}
	}

	excess := usage + size - g.Budget
	if excess <= 0 {
		return nil
	}

	var (
		plan  []kv.Entry
		freed int64
	)
	for _, e := range entries {
		if freed >= excess {
			break
		}
		if e.Key == key || g.protected(e.Key) {
			continue
		}
		plan = append(plan, e)
		freed += e.Size
	}

	if freed < excess {
		return fmt.Errorf("%w: %s needs %d more bytes, only %d evictable", common.ErrStorageQuota, key, excess, freed)
	}

	for _, e := range plan {
		if err := repo.Delete(ctx, e.Key); err != nil {
			return err
		}
		g.log.Warn(ctx, "evicted entry", "key", e.Key, "size", e.Size)
	}
	return nil
}

// Cleanup removes entries nothing can use any more: an expired session,
// values that are not valid JSON, and influencer lists of users missing
// from the credential table. Protected keys other than the session are
// never removed, and lists are kept when the credential table cannot be
// decoded. It returns how many entries were removed.
func (g *Guard) Cleanup(ctx context.Context, repo kv.Repository) (int, error) {
	entries, err := repo.List(ctx)
	if err != nil {
		return 0, err
	}

	// users is nil when the credential table is unreadable; orphaned lists
	// are then left alone.
	users := map[string]string{}
	if raw, ok, err := repo.Get(ctx, UsersKey); err != nil {
		return 0, err
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &users); err != nil {
			g.log.Warn(ctx, "credential table unreadable, skipping orphan sweep", "error", err)
			users = nil
		}
	}

	removed := 0
	for _, e := range entries {
		raw, ok, err := repo.Get(ctx, e.Key)
		if err != nil {
			return removed, err
		}
		if !ok {
			continue
		}

		reason := g.staleReason(e.Key, raw, users)
		if reason == "" {
			continue
		}
		if err := repo.Delete(ctx, e.Key); err != nil {
			return removed, err
		}
		g.log.Info(ctx, "removed stale entry", "key", e.Key, "reason", reason)
		removed++
	}
	return removed, nil
}

func (g *Guard) staleReason(key, raw string, users map[string]string) string {
	if key != SessionKey && g.protected(key) {
		return ""
	}
	if !json.Valid([]byte(raw)) {
		return "malformed"
	}
	if key == SessionKey {
		var s models.Session
		if err := json.Unmarshal([]byte(raw), &s); err != nil || g.now().UnixMilli() >= s.ExpiresAt {
			return "expired"
		}
		return ""
	}
	if owner, ok := influencerListOwner(key); ok && users != nil {
		if _, exists := users[owner]; !exists {
			return "orphaned"
		}
	}
	return ""
}
