package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/personadesk/internal/client/models"
)

// Categories accepted by list, add and delete.
const (
	catPosts      = "posts"
	catPlans      = "plans"
	catBrands     = "brands"
	catStrategies = "strategies"
)

var categories = []string{catPosts, catPlans, catBrands, catStrategies}

// ShowPersona prints the persona as indented JSON.
func (a *App) ShowPersona(context.Context) error {
	b, err := json.MarshalIndent(a.workspace.Persona(), "", "  ")
	if err != nil {
		return err
	}
	a.println(string(b))
	return nil
}

// EditPersona prompts for the editable text fields. Empty answers keep the
// current value.
func (a *App) EditPersona(ctx context.Context) error {
	p := a.workspace.Persona()

	fields := []struct {
		label string
		dst   *string
	}{
		{"Name", &p.Name},
		{"Gender expression", &p.GenderExpression},
		{"Communication tone", &p.CommunicationTone},
		{"Visual aesthetics", &p.VisualAesthetics},
		{"Target audience", &p.TargetAudience},
		{"Base city", &p.BaseCity},
		{"Country", &p.Country},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s]", f.label, *f.dst), a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = v
		}
	}

	lists := []struct {
		label string
		dst   *[]string
	}{
		{"Personality traits", &p.PersonalityTraits},
		{"Dos", &p.Dos},
		{"Don'ts", &p.Donts},
	}
	for _, l := range lists {
		v, err := GetList(a.reader, fmt.Sprintf("%s [%s]", l.label, strings.Join(*l.dst, ", ")), a.out)
		if err != nil {
			return err
		}
		if len(v) > 0 {
			*l.dst = v
		}
	}

	if err := a.workspace.SetPersona(ctx, p); err != nil {
		return err
	}
	a.println("Persona saved.")
	return nil
}

// InitIdentity locks the persona's visual identity.
func (a *App) InitIdentity(ctx context.Context) error {
	block, err := GetMultiline(a.reader, "Face descriptor block", a.out)
	if err != nil {
		return err
	}
	refs, err := GetList(a.reader, "Reference image URLs", a.out)
	if err != nil {
		return err
	}
	if err := a.workspace.InitializeVisualIdentity(ctx, block, refs); err != nil {
		return err
	}
	a.println("Visual identity locked.")
	return nil
}

func (a *App) List(_ context.Context, category string) error {
	switch category {
	case catPosts:
		for _, p := range a.workspace.Posts() {
			fmt.Fprintf(a.out, "%s  %-16s %-10s %-10s %s\n", p.ID, p.Status, p.Type, p.ScheduledDate, truncate(p.Caption, 40))
		}
	case catPlans:
		for _, p := range a.workspace.Plans() {
			fmt.Fprintf(a.out, "%s  %-8s %-10s %d ideas\n", p.ID, p.Type, p.Quarter, p.PostCount())
		}
	case catBrands:
		for _, b := range a.workspace.Brands() {
			fmt.Fprintf(a.out, "%s  %-20s %s\n", b.ID, b.Name, b.Industry)
		}
	case catStrategies:
		for _, c := range a.workspace.StrategyCards() {
			pushed := ""
			if c.IsPushed {
				pushed = "pushed"
			}
			fmt.Fprintf(a.out, "%s  %-14s %-6s %s\n", c.ID, c.Type, pushed, truncate(c.VisualIdea, 40))
		}
	default:
		return fmt.Errorf("unknown category %q, want one of %s", category, strings.Join(categories, ", "))
	}
	return nil
}

func (a *App) Add(ctx context.Context, category string) error {
	switch category {
	case catPosts:
		return a.addPost(ctx)
	case catPlans:
		return a.addPlan(ctx)
	case catBrands:
		return a.addBrand(ctx)
	case catStrategies:
		return a.addStrategy(ctx)
	}
	return fmt.Errorf("unknown category %q, want one of %s", category, strings.Join(categories, ", "))
}

func (a *App) Delete(ctx context.Context, category, id string) error {
	switch category {
	case catPosts:
		return a.workspace.DeletePost(ctx, id)
	case catPlans:
		return a.workspace.DeletePlan(ctx, id)
	case catBrands:
		return a.workspace.DeleteBrand(ctx, id)
	case catStrategies:
		return a.workspace.DeleteStrategyCard(ctx, id)
	}
	return fmt.Errorf("unknown category %q, want one of %s", category, strings.Join(categories, ", "))
}

func (a *App) addPost(ctx context.Context) error {
	typ, err := GetChoice(a.reader, "Type", []string{string(models.ContentFeedPost), string(models.ContentCarousel), string(models.ContentStory)}, a.out)
	if err != nil {
		return err
	}
	hook, err := getSimpleText(a.reader, "Hook", a.out)
	if err != nil {
		return err
	}
	caption, err := GetMultiline(a.reader, "Caption", a.out)
	if err != nil {
		return err
	}
	tags, err := GetList(a.reader, "Hashtags", a.out)
	if err != nil {
		return err
	}
	date, err := getSimpleText(a.reader, "Scheduled date (YYYY-MM-DD, optional)", a.out)
	if err != nil {
		return err
	}

	return a.workspace.AddPost(ctx, models.Post{
		Status:        models.PostStatusPlanned,
		Type:          models.ContentType(typ),
		Hook:          hook,
		Caption:       caption,
		Hashtags:      tags,
		ScheduledDate: date,
		BaseCity:      a.workspace.Persona().BaseCity,
	})
}

func (a *App) addPlan(ctx context.Context) error {
	quarter, err := getSimpleText(a.reader, "Quarter (e.g. Q1 2025)", a.out)
	if err != nil {
		return err
	}
	positioning, err := getSimpleText(a.reader, "Brand positioning", a.out)
	if err != nil {
		return err
	}
	themes, err := GetList(a.reader, "Core themes", a.out)
	if err != nil {
		return err
	}
	direction, err := getSimpleText(a.reader, "Visual direction", a.out)
	if err != nil {
		return err
	}

	return a.workspace.AddPlan(ctx, models.QuarterlyPlan{
		Type:             models.PlanOrganic,
		Quarter:          quarter,
		BrandPositioning: positioning,
		CoreThemes:       themes,
		VisualDirection:  direction,
		Months:           []models.MonthlyPlan{},
	})
}

func (a *App) addBrand(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Brand name", a.out)
	if err != nil {
		return err
	}
	industry, err := getSimpleText(a.reader, "Industry", a.out)
	if err != nil {
		return err
	}
	product, err := getSimpleText(a.reader, "Product name", a.out)
	if err != nil {
		return err
	}
	objective, err := getSimpleText(a.reader, "Campaign objective", a.out)
	if err != nil {
		return err
	}
	mentions, err := GetList(a.reader, "Mandatory mentions", a.out)
	if err != nil {
		return err
	}

	return a.workspace.AddBrand(ctx, models.Brand{
		Name:              name,
		Industry:          industry,
		ProductName:       product,
		CampaignObjective: objective,
		MandatoryMentions: mentions,
		Products:          []models.Product{},
		KeySellingPoints:  []string{},
		Dos:               []string{},
		Donts:             []string{},
		ContentTypes:      []models.ContentType{models.ContentFeedPost},
	})
}

func (a *App) addStrategy(ctx context.Context) error {
	types := []string{
		string(models.StrategyOrganicFeed), string(models.StrategyOrganicStory), string(models.StrategyOrganicReel),
		string(models.StrategyBrandFeed), string(models.StrategyBrandStory), string(models.StrategyBrandReel),
	}
	typ, err := GetChoice(a.reader, "Type", types, a.out)
	if err != nil {
		return err
	}

	card := models.StrategyCard{Type: models.StrategyType(typ), Source: models.SourceManual}
	fields := []struct {
		label string
		dst   *string
	}{
		{"Visual idea", &card.VisualIdea},
		{"Scene", &card.Scene},
		{"Mood", &card.Mood},
		{"Story", &card.Story},
		{"Caption direction", &card.CaptionDirection},
		{"Suggested date (YYYY-MM-DD, optional)", &card.SuggestedDate},
	}
	for _, f := range fields {
		if *f.dst, err = getSimpleText(a.reader, f.label, a.out); err != nil {
			return err
		}
	}

	if card.Type.IsBrand() {
		brandID, err := getSimpleText(a.reader, "Brand id", a.out)
		if err != nil {
			return err
		}
		b, ok := models.Find(a.workspace.Brands(), brandID)
		if !ok {
			return fmt.Errorf("unknown brand %q", brandID)
		}
		card.BrandID, card.BrandName, card.ProductName = b.ID, b.Name, b.ProductName
		if prod, ok := b.PrimaryProduct(); ok {
			card.ProductName = prod.Name
		}
	}

	return a.workspace.AddStrategyCard(ctx, card)
}

// Push schedules a strategy card as a post.
func (a *App) Push(ctx context.Context, id, date string) error {
	post, err := a.workspace.PushStrategyCard(ctx, id, date)
	if err != nil {
		return err
	}
	a.println("Scheduled post", post.ID)
	return nil
}

func (a *App) SetStatus(ctx context.Context, id, status, note string) error {
	return a.workspace.SetPostStatus(ctx, id, models.PostStatus(strings.ToUpper(status)), note)
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
