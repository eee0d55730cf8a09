// Package analytics turns the raw per-user collections into small,
// chart-ready series. Every value is computed fresh per call; there is no
// cache, so read-after-write consistency is the store's own.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mnuddindev/secondbrain/internal/models"
	"github.com/mnuddindev/secondbrain/internal/store"
	"github.com/mnuddindev/secondbrain/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// Bucket is one {name, value} point of a series.
type Bucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Stats is the summary behind GET /analytics/stats.
type Stats struct {
	TotalNotes       int64      `json:"totalNotes"`
	TotalBookmarks   int64      `json:"totalBookmarks"`
	TotalComments    int64      `json:"totalComments"`
	TotalFavorites   int64      `json:"totalFavorites"`
	LastActivityDate *time.Time `json:"lastActivityDate"`
}

// DashboardStats is the compact aggregate behind GET /dashboard/stats.
type DashboardStats struct {
	Notes     int64 `json:"notes"`
	Bookmarks int64 `json:"bookmarks"`
	Comments  int64 `json:"comments"`
	Favorites int64 `json:"favorites"`
}

const topTags = 10
const activityWindowDays = 7

// Engine computes grouped counts over the entity collections.
type Engine struct {
	notes      store.Collection[models.Note]
	bookmarks  store.Collection[models.Bookmark]
	comments   store.Collection[models.Comment]
	activities store.Collection[models.Activity]
	favorites  store.FavoriteStore

	// now is swappable in tests.
	now func() time.Time
}

func NewEngine(
	notes store.Collection[models.Note],
	bookmarks store.Collection[models.Bookmark],
	comments store.Collection[models.Comment],
	activities store.Collection[models.Activity],
	favorites store.FavoriteStore,
) *Engine {
	return &Engine{
		notes:      notes,
		bookmarks:  bookmarks,
		comments:   comments,
		activities: activities,
		favorites:  favorites,
		now:        time.Now,
	}
}

// SetNow overrides the engine clock, for tests.
func (e *Engine) SetNow(now func() time.Time) {
	e.now = now
}

// Series dispatches on the selector the analytics endpoint accepts. An empty
// selector means overview; an unknown one is a client error.
func (e *Engine) Series(ctx context.Context, userID uuid.UUID, selector string) ([]Bucket, error) {
	switch selector {
	case "", "overview":
		return e.Overview(ctx, userID)
	case "categories":
		return e.NotesByTag(ctx, userID)
	case "bookmarks":
		return e.BookmarksByTag(ctx, userID)
	case "activity":
		return e.ActivityOverTime(ctx, userID)
	case "tags":
		return e.PopularTags(ctx, userID)
	default:
		return nil, utils.NewError(utils.ErrBadRequest.Code, "Invalid analytics type")
	}
}

// Overview always returns exactly four buckets, zero-filled for a new user.
func (e *Engine) Overview(ctx context.Context, userID uuid.UUID) ([]Bucket, error) {
	var notes, bookmarks, comments, activities int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { notes, err = e.notes.Count(gctx, userID, store.Query{}); return })
	g.Go(func() (err error) { bookmarks, err = e.bookmarks.Count(gctx, userID, store.Query{}); return })
	g.Go(func() (err error) { comments, err = e.comments.Count(gctx, userID, store.Query{}); return })
	g.Go(func() (err error) { activities, err = e.activities.Count(gctx, userID, store.Query{}); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return []Bucket{
		{Name: "Notes", Value: int(notes)},
		{Name: "Bookmarks", Value: int(bookmarks)},
		{Name: "Comments", Value: int(comments)},
		{Name: "Activities", Value: int(activities)},
	}, nil
}

// NotesByTag groups notes by tag, descending by count, top 10. A note with N
// tags contributes to N buckets; untagged notes land in the Untagged bucket.
func (e *Engine) NotesByTag(ctx context.Context, userID uuid.UUID) ([]Bucket, error) {
	groups, err := e.notes.GroupCount(ctx, userID, store.Query{}, func(n models.Note) []string {
		return n.Tags
	})
	if err != nil {
		return nil, err
	}
	return topBuckets(groups, topTags), nil
}

// BookmarksByTag mirrors NotesByTag over bookmarks.
func (e *Engine) BookmarksByTag(ctx context.Context, userID uuid.UUID) ([]Bucket, error) {
	groups, err := e.bookmarks.GroupCount(ctx, userID, store.Query{}, func(b models.Bookmark) []string {
		return b.Tags
	})
	if err != nil {
		return nil, err
	}
	return topBuckets(groups, topTags), nil
}

// ActivityOverTime restricts activity to the last 7 days and groups it by
// calendar day, ascending. Days with zero activity do not appear.
func (e *Engine) ActivityOverTime(ctx context.Context, userID uuid.UUID) ([]Bucket, error) {
	since := e.now().AddDate(0, 0, -activityWindowDays)
	groups, err := e.activities.GroupCount(ctx, userID, store.Query{CreatedAfter: since}, func(a models.Activity) []string {
		return []string{a.CreatedAt.Format("2006-01-02")}
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })

	buckets := make([]Bucket, 0, len(groups))
	for _, g := range groups {
		buckets = append(buckets, Bucket{Name: g.Key, Value: g.Count})
	}
	return buckets, nil
}

// PopularTags unions tag counts from notes and bookmarks, summing overlaps.
func (e *Engine) PopularTags(ctx context.Context, userID uuid.UUID) ([]Bucket, error) {
	var noteGroups, bookmarkGroups []store.Grouped

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		noteGroups, err = e.notes.GroupCount(gctx, userID, store.Query{}, func(n models.Note) []string {
			return n.Tags
		})
		return
	})
	g.Go(func() (err error) {
		bookmarkGroups, err = e.bookmarks.GroupCount(gctx, userID, store.Query{}, func(b models.Bookmark) []string {
			return b.Tags
		})
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	index := make(map[string]int)
	merged := make([]store.Grouped, 0, len(noteGroups)+len(bookmarkGroups))
	for _, groups := range [][]store.Grouped{noteGroups, bookmarkGroups} {
		for _, grp := range groups {
			if i, ok := index[grp.Key]; ok {
				merged[i].Count += grp.Count
				continue
			}
			index[grp.Key] = len(merged)
			merged = append(merged, grp)
		}
	}
	return topBuckets(merged, topTags), nil
}

// Stats returns the totals summary, including the favorite counts from the
// join table and the most recent activity timestamp (nil when there is none).
func (e *Engine) Stats(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	stats := &Stats{}
	var favNotes, favBookmarks int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { stats.TotalNotes, err = e.notes.Count(gctx, userID, store.Query{}); return })
	g.Go(func() (err error) { stats.TotalBookmarks, err = e.bookmarks.Count(gctx, userID, store.Query{}); return })
	g.Go(func() (err error) { stats.TotalComments, err = e.comments.Count(gctx, userID, store.Query{}); return })
	g.Go(func() (err error) { favNotes, err = e.favorites.CountByType(gctx, userID, models.ItemNote); return })
	g.Go(func() (err error) { favBookmarks, err = e.favorites.CountByType(gctx, userID, models.ItemBookmark); return })
	g.Go(func() error {
		latest, err := e.activities.Find(gctx, userID, store.Query{Sort: store.SortCreatedDesc, Limit: 1})
		if err != nil {
			return err
		}
		if len(latest) > 0 {
			t := latest[0].CreatedAt
			stats.LastActivityDate = &t
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.TotalFavorites = favNotes + favBookmarks
	return stats, nil
}

// Dashboard returns the compact counts the dashboard shows.
func (e *Engine) Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var favNotes, favBookmarks int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { stats.Notes, err = e.notes.Count(gctx, userID, store.Query{}); return })
	g.Go(func() (err error) { stats.Bookmarks, err = e.bookmarks.Count(gctx, userID, store.Query{}); return })
	g.Go(func() (err error) { stats.Comments, err = e.comments.Count(gctx, userID, store.Query{}); return })
	g.Go(func() (err error) { favNotes, err = e.favorites.CountByType(gctx, userID, models.ItemNote); return })
	g.Go(func() (err error) { favBookmarks, err = e.favorites.CountByType(gctx, userID, models.ItemBookmark); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.Favorites = favNotes + favBookmarks
	return stats, nil
}

// topBuckets stable-sorts descending by count (ties keep first-seen order)
// and truncates.
func topBuckets(groups []store.Grouped, limit int) []Bucket {
	sorted := append([]store.Grouped(nil), groups...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	buckets := make([]Bucket, 0, len(sorted))
	for _, g := range sorted {
		buckets = append(buckets, Bucket{Name: g.Key, Value: g.Count})
	}
	return buckets
}
