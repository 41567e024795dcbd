package service

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

func setupCS(t *testing.T) *ContentService {
	t.Helper()
	store := repository.NewMemoryStore()
	return NewContentService(
		repository.NewMemoryBanners(store),
		repository.NewMemorySiteLinks(store),
		repository.NewMemorySiteLogos(store),
	)
}

func TestContent_ActiveBanners_DateWindow(t *testing.T) {
	ctx := context.Background()
	cs := setupCS(t)
	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	mk := func(title string, b domain.Banner) {
		b.Title = title
		b.ImageURL = title + ".jpg"
		if _, err := cs.CreateBanner(ctx, b); err != nil {
			t.Fatal(err)
		}
	}
	mk("live", domain.Banner{IsActive: true, StartDate: past})
	mk("inactive", domain.Banner{IsActive: false, StartDate: past})
	mk("upcoming", domain.Banner{IsActive: true, StartDate: future})
	mk("expired", domain.Banner{IsActive: true, StartDate: past.Add(-time.Hour), EndDate: &past})

	out, err := cs.ActiveBanners(ctx)
	if err != nil {
		t.Fatalf("active err: %v", err)
	}
	if len(out) != 1 || out[0].Title != "live" {
		t.Fatalf("want only the live banner: %+v", out)
	}

	// admin listing still sees every banner
	all, _ := cs.ListBanners(ctx)
	if len(all) != 4 {
		t.Fatalf("admin list: want 4, got %d", len(all))
	}
}

func TestContent_Banners_SortedByPosition(t *testing.T) {
	ctx := context.Background()
	cs := setupCS(t)
	for _, pos := range []int{3, 1, 2} {
		if _, err := cs.CreateBanner(ctx, domain.Banner{Title: "b", ImageURL: "b.jpg", Position: pos, IsActive: true}); err != nil {
			t.Fatal(err)
		}
	}
	out, _ := cs.ListBanners(ctx)
	for i := 1; i < len(out); i++ {
		if out[i-1].Position > out[i].Position {
			t.Fatalf("banners not ordered by position: %+v", out)
		}
	}
}

func TestContent_Links_GroupedAndFiltered(t *testing.T) {
	ctx := context.Background()
	cs := setupCS(t)
	for _, l := range []domain.SiteLink{
		{Name: "About", URL: "/about", Category: "footer", Position: 2, IsActive: true},
		{Name: "Contact", URL: "/contact", Category: "footer", Position: 1, IsActive: true},
		{Name: "Hidden", URL: "/hidden", Category: "footer", Position: 3, IsActive: false},
		{Name: "Home", URL: "/", Category: "header", Position: 1, IsActive: true},
	} {
		if _, err := cs.CreateLink(ctx, l); err != nil {
			t.Fatal(err)
		}
	}

	out, err := cs.ListLinks(ctx, true)
	if err != nil {
		t.Fatalf("list err: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("active only: want 3, got %d", len(out))
	}
	// footer before header, then by position
	if out[0].Name != "Contact" || out[1].Name != "About" || out[2].Name != "Home" {
		t.Fatalf("order wrong: %+v", out)
	}

	all, _ := cs.ListLinks(ctx, false)
	if len(all) != 4 {
		t.Fatalf("full list: want 4, got %d", len(all))
	}
}

func TestContent_Logos_ActiveFilter(t *testing.T) {
	ctx := context.Background()
	cs := setupCS(t)
	if _, err := cs.CreateLogo(ctx, domain.SiteLogo{Name: "main", ImageURL: "logo.svg", IsActive: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := cs.CreateLogo(ctx, domain.SiteLogo{Name: "old", ImageURL: "old.svg", IsActive: false}); err != nil {
		t.Fatal(err)
	}

	out, _ := cs.ListLogos(ctx, true)
	if len(out) != 1 || out[0].Name != "main" {
		t.Fatalf("active logos wrong: %+v", out)
	}

	// update validates the id is present
	if _, err := cs.UpdateLogo(ctx, domain.SiteLogo{Name: "x", ImageURL: "x.svg"}); err == nil {
		t.Fatalf("expected validation error without id")
	}
}
