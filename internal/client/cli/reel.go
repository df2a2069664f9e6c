package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/personadesk/internal/filex"
)

// Reel asks the proxy for a video of the entered prompt and saves it under
// ReelDir.
func (a *App) Reel(ctx context.Context) error {
	prompt, err := GetMultiline(a.reader, "Describe the reel", a.out)
	if err != nil {
		return err
	}

	persona := a.workspace.Persona()
	a.println("Generating, this can take several minutes...")
	video, err := a.reels.Request(ctx, prompt, &persona)
	if err != nil {
		return err
	}

	dir, err := filex.EnsureSubDir(ReelDir)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("%s-%s.mp4", a.workspace.Influencer().ID, time.Now().Format("20060102-150405"))
	path, err := filex.WriteFile(dir, name, video)
	if err != nil {
		return err
	}
	a.println("Saved", path)
	return nil
}
