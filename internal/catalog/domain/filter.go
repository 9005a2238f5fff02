package domain

import (
	"sort"
	"strings"
)

// DefaultSearchLimit is the page size applied when a filter does not set one.
const DefaultSearchLimit = 20

// DefaultFeaturedLimit is the page size for featured queries without a limit.
const DefaultFeaturedLimit = 10

// PriceRange bounds a listing's pricing amount. Both bounds must be present
// for the predicate to apply at all; a half-open range is ignored.
type PriceRange struct {
	Min *float64
	Max *float64
}

func (r *PriceRange) applies() bool {
	return r != nil && r.Min != nil && r.Max != nil
}

// Filter is a search specification. Every field is optional; the zero value
// matches the whole catalog. Limit distinguishes "unset" (nil, default page
// size) from an explicit zero, which yields an empty page.
type Filter struct {
	Category   Category
	Type       ListingType
	Location   string
	PriceRange *PriceRange
	Tags       []string
	Verified   *bool
	Status     ListingStatus
	Limit      *int
	Offset     int
}

// PageSize resolves the effective limit. Negative explicit limits are
// treated as zero.
func (f Filter) PageSize() int {
	if f.Limit == nil {
		return DefaultSearchLimit
	}
	if *f.Limit < 0 {
		return 0
	}
	return *f.Limit
}

// Matches reports whether the listing satisfies every supplied predicate.
// Predicates are ANDed across fields; tag matching is a union (at least one
// requested tag present).
func (f Filter) Matches(l *Listing) bool {
	if f.Category != "" && l.Category != f.Category {
		return false
	}
	// Type is plain equality, deliberately not cross-checked against the
	// category predicate.
	if f.Type != "" && l.Type != f.Type {
		return false
	}
	if f.Location != "" && !matchesLocation(l.Location, f.Location) {
		return false
	}
	if f.PriceRange.applies() {
		if l.Pricing == nil {
			return false
		}
		if l.Pricing.Amount < *f.PriceRange.Min || l.Pricing.Amount > *f.PriceRange.Max {
			return false
		}
	}
	if len(f.Tags) > 0 && !matchesAnyTag(l, f.Tags) {
		return false
	}
	if f.Verified != nil && l.Verified != *f.Verified {
		return false
	}
	if f.Status != "" && l.Status != f.Status {
		return false
	}
	return true
}

func matchesLocation(loc *Location, query string) bool {
	if loc == nil {
		return false
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(loc.City), q) ||
		strings.Contains(strings.ToLower(loc.Country), q)
}

func matchesAnyTag(l *Listing, tags []string) bool {
	for _, t := range tags {
		if l.HasTag(t) {
			return true
		}
	}
	return false
}

// Rank sorts listings in place by rating descending, ties broken by
// createdAt descending (newest first).
func Rank(listings []*Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		if listings[i].Rating != listings[j].Rating {
			return listings[i].Rating > listings[j].Rating
		}
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
}

// Page slices the ranked set to [offset, offset+limit). Out-of-range offsets
// and a zero limit both yield an empty, non-nil slice.
func Page(listings []*Listing, limit, offset int) []*Listing {
	if limit <= 0 || offset < 0 || offset >= len(listings) {
		return []*Listing{}
	}
	end := offset + limit
	if end > len(listings) {
		end = len(listings)
	}
	return listings[offset:end]
}
