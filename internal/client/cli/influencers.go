package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/personadesk/internal/client/models"
	"github.com/dmitrijs2005/personadesk/internal/client/services"
	"github.com/dmitrijs2005/personadesk/internal/client/storage"
)

// Influencers prints the current user's influencer profiles with their
// post counts.
func (a *App) Influencers(ctx context.Context) error {
	list := a.influencers.List(ctx, a.userName)
	if len(list) == 0 {
		a.println("No influencers yet. Use 'create'.")
		return nil
	}
	for _, inf := range list {
		created := time.UnixMilli(inf.CreatedAt).Format("2006-01-02")
		posts, _ := storage.Load[[]models.Post](ctx, a.docs, storage.DocumentKey(inf.ID, storage.CategoryPosts))
		fmt.Fprintf(a.out, "%s  %-20s %-16s %s  %d posts\n", inf.ID, inf.Name, inf.Handle, created, len(posts))
	}
	return nil
}

// CreateInfluencer prompts for a profile and opens it.
func (a *App) CreateInfluencer(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Display name", a.out)
	if err != nil {
		return err
	}
	handle, err := getSimpleText(a.reader, "Handle (e.g. @arianova)", a.out)
	if err != nil {
		return err
	}

	inf, err := a.influencers.Create(ctx, a.userName, name, handle)
	if err != nil {
		return err
	}
	a.println("Created", inf.ID)
	return a.Open(ctx, inf.ID)
}

// Open loads the workspace of influencer id.
func (a *App) Open(ctx context.Context, id string) error {
	inf, err := a.influencers.Get(ctx, a.userName, id)
	if err != nil {
		return fmt.Errorf("influencer %s: %w", id, err)
	}

	ws := services.NewWorkspace(a.userName, inf, a.docs, a.influencers, a.notices, a.log)
	a.println("Loading workspace...")
	if err := ws.Load(ctx); err != nil {
		return err
	}
	a.workspace = ws
	return nil
}

// DeleteInfluencer removes the profile and all of its documents.
func (a *App) DeleteInfluencer(ctx context.Context, id string) error {
	answer, err := getSimpleText(a.reader, "Delete this influencer profile? (y/N)", a.out)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "Y" {
		return nil
	}
	if err := a.influencers.Delete(ctx, a.userName, id); err != nil {
		return err
	}
	if a.workspace != nil && a.workspace.Influencer().ID == id {
		a.workspace = nil
	}
	a.println("Deleted.")
	return nil
}

// CloseWorkspace returns to the influencer selector.
func (a *App) CloseWorkspace(context.Context) error {
	a.workspace = nil
	return nil
}
