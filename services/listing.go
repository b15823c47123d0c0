package services

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rpupo63/vibe-gallery-backend/models"
)

// HotThreshold is the hotness above which a project card gets the HOT badge.
const HotThreshold = 20.0

// FilterAll disables a category or event filter.
const FilterAll = "all"

// SortMode selects the comparator ComputeView orders by.
type SortMode string

const (
	SortLatest     SortMode = "latest"
	SortMostLiked  SortMode = "likes"
	SortMostViewed SortMode = "views"
	SortHottest    SortMode = "hotness"
)

// ParseSortMode accepts the short and the long spelling of every mode.
// Anything else falls back to SortLatest.
func ParseSortMode(s string) SortMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "likes", "most-liked":
		return SortMostLiked
	case "views", "most-viewed":
		return SortMostViewed
	case "hotness", "hottest", "hot":
		return SortHottest
	default:
		return SortLatest
	}
}

// ListingQuery is the filter and sort selection of the gallery page.
// Empty filters behave like FilterAll.
type ListingQuery struct {
	Category string
	Event    string
	Sort     SortMode
}

// ComputeView returns the projects matching q in display order.
// The input slice is left untouched.
func ComputeView(projects []models.Project, q ListingQuery) []models.Project {
	result := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if matchesCategory(p, q.Category) && matchesEvent(p, q.Event) {
			result = append(result, p)
		}
	}

	if less := comparatorFor(q.Sort); less != nil {
		slices.SortStableFunc(result, less)
	}
	return result
}

func matchesCategory(p models.Project, filter string) bool {
	if isAll(filter) {
		return true
	}
	if p.Category == nil {
		return false
	}
	return strconv.FormatUint(uint64(p.Category.ID), 10) == strings.TrimSpace(filter)
}

func matchesEvent(p models.Project, filter string) bool {
	if isAll(filter) {
		return true
	}
	if p.Event == nil {
		return false
	}
	return strconv.FormatUint(uint64(p.Event.ID), 10) == strings.TrimSpace(filter)
}

func isAll(filter string) bool {
	f := strings.TrimSpace(filter)
	return f == "" || f == FilterAll
}

// comparatorFor returns nil for unknown modes, which keeps input order.
func comparatorFor(mode SortMode) func(a, b models.Project) int {
	switch mode {
	case SortLatest:
		return func(a, b models.Project) int { return b.CreatedAt.Compare(a.CreatedAt) }
	case SortMostLiked:
		return func(a, b models.Project) int { return cmp.Compare(b.LikeCount, a.LikeCount) }
	case SortMostViewed:
		return func(a, b models.Project) int { return cmp.Compare(b.ViewCount, a.ViewCount) }
	case SortHottest:
		return func(a, b models.Project) int { return cmp.Compare(Hotness(b), Hotness(a)) }
	default:
		return nil
	}
}

// Hotness is the like ratio of a project in percent. Projects nobody has
// viewed score 0. Values above 100 are possible and kept as is.
func Hotness(p models.Project) float64 {
	if p.ViewCount <= 0 {
		return 0
	}
	return float64(p.LikeCount) / float64(p.ViewCount) * 100
}

// IsHot reports whether the project earns the HOT badge.
func IsHot(p models.Project) bool {
	return Hotness(p) > HotThreshold
}

// RelativeDate labels t relative to now the way project cards show it.
// The label counts elapsed 24h periods, not calendar days: 23:55 followed
// by 00:05 the next day is still 오늘.
func RelativeDate(t, now time.Time) string {
	days := int(now.Sub(t) / (24 * time.Hour))
	switch {
	case days <= 0:
		return "오늘"
	case days == 1:
		return "어제"
	case days < 7:
		return fmt.Sprintf("%d일 전", days)
	default:
		local := t.In(now.Location())
		return fmt.Sprintf("%d월 %d일", int(local.Month()), local.Day())
	}
}

// GalleryStats are the totals shown above the gallery.
type GalleryStats struct {
	Projects int   `json:"projects"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
}

// Stats sums the engagement counters of the whole collection.
func Stats(projects []models.Project) GalleryStats {
	s := GalleryStats{Projects: len(projects)}
	for _, p := range projects {
		s.Likes += p.LikeCount
		s.Comments += p.CommentCount
	}
	return s
}
