package catalog

import (
	"context"
	"sort"
	"strings"

	"solvo/models"
	"solvo/upstream"

	"go.uber.org/zap"
)

// Sort keys accepted by the safari listing.
const (
	SortPriceAsc     = "price-asc"
	SortPriceDesc    = "price-desc"
	SortDurationAsc  = "duration-asc"
	SortDurationDesc = "duration-desc"
)

// Activities offered as filter chips. Matching is a substring check against
// the safari's included-services text.
var Activities = []string{
	"Game Drives",
	"Bird Watching",
	"Cultural Visits",
	"Photography",
	"Hiking",
	"Night Safari",
	"Balloon Safari",
}

// Filter narrows a safari listing. Zero values mean "no constraint".
type Filter struct {
	Search      string   `json:"search" form:"search"`
	Location    string   `json:"location" form:"location"`
	MinDuration int      `json:"min_duration" form:"min_duration"`
	MaxDuration int      `json:"max_duration" form:"max_duration"`
	MinPrice    float64  `json:"min_price" form:"min_price"`
	MaxPrice    float64  `json:"max_price" form:"max_price"`
	Activities  []string `json:"activities" form:"activities"`
	SortBy      string   `json:"sort_by" form:"sort_by"`
}

// API is the slice of the upstream client the catalog needs.
type API interface {
	Destinations(ctx context.Context, auth upstream.Auth) ([]models.Destination, error)
	Safaris(ctx context.Context, auth upstream.Auth) ([]models.Safari, error)
	Safari(ctx context.Context, auth upstream.Auth, id int) (*models.Safari, error)
	Accommodations(ctx context.Context, auth upstream.Auth) ([]models.Accommodation, error)
	Accommodation(ctx context.Context, auth upstream.Auth, id int) (*models.Accommodation, error)
	FeaturedAccommodations(ctx context.Context, auth upstream.Auth) ([]models.Accommodation, error)
}

// Service serves the browsing surface: destinations, safaris with
// filter/sort, accommodations.
type Service struct {
	api    API
	logger *zap.Logger
}

func NewService(api API, logger *zap.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// Safaris lists safaris with the filter applied. Location filtering needs
// the destination records, so those are fetched alongside; if that fetch
// fails the location constraint is skipped rather than failing the listing.
func (s *Service) Safaris(ctx context.Context, auth upstream.Auth, f Filter) ([]models.Safari, error) {
	safaris, err := s.api.Safaris(ctx, auth)
	if err != nil {
		return nil, err
	}

	locations := map[int]string{}
	if f.Location != "" {
		dests, err := s.api.Destinations(ctx, auth)
		if err != nil {
			s.logger.Warn("destination fetch failed, skipping location filter", zap.Error(err))
			f.Location = ""
		} else {
			for _, d := range dests {
				locations[d.ID] = d.Location
			}
		}
	}

	out := FilterSafaris(safaris, f, locations)
	SortSafaris(out, f.SortBy)
	return out, nil
}

// FilterSafaris applies the filter in memory. locations maps destination ID
// to its location string for the location constraint.
func FilterSafaris(safaris []models.Safari, f Filter, locations map[int]string) []models.Safari {
	search := strings.ToLower(f.Search)
	out := make([]models.Safari, 0, len(safaris))
	for _, s := range safaris {
		if search != "" &&
			!strings.Contains(strings.ToLower(s.Title), search) &&
			!strings.Contains(strings.ToLower(s.Description), search) {
			continue
		}
		if f.Location != "" && locations[s.Destination] != f.Location {
			continue
		}
		if f.MinDuration > 0 && s.Duration < f.MinDuration {
			continue
		}
		if f.MaxDuration > 0 && s.Duration > f.MaxDuration {
			continue
		}
		if s.Price < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && s.Price > f.MaxPrice {
			continue
		}
		if !matchesActivities(s, f.Activities) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// matchesActivities requires every selected activity to appear in the
// safari's included-services text.
func matchesActivities(s models.Safari, activities []string) bool {
	included := strings.ToLower(s.Included)
	for _, a := range activities {
		if !strings.Contains(included, strings.ToLower(a)) {
			return false
		}
	}
	return true
}

// SortSafaris orders the slice in place by the given sort key. Unknown keys
// leave the order untouched.
func SortSafaris(safaris []models.Safari, sortBy string) {
	switch sortBy {
	case SortPriceAsc:
		sort.SliceStable(safaris, func(i, j int) bool { return safaris[i].Price < safaris[j].Price })
	case SortPriceDesc:
		sort.SliceStable(safaris, func(i, j int) bool { return safaris[i].Price > safaris[j].Price })
	case SortDurationAsc:
		sort.SliceStable(safaris, func(i, j int) bool { return safaris[i].Duration < safaris[j].Duration })
	case SortDurationDesc:
		sort.SliceStable(safaris, func(i, j int) bool { return safaris[i].Duration > safaris[j].Duration })
	}
}

// Safari returns one safari with its itinerary.
func (s *Service) Safari(ctx context.Context, auth upstream.Auth, id int) (*models.Safari, error) {
	return s.api.Safari(ctx, auth, id)
}

// Destinations lists all destinations.
func (s *Service) Destinations(ctx context.Context, auth upstream.Auth) ([]models.Destination, error) {
	return s.api.Destinations(ctx, auth)
}

// Accommodations lists all accommodations.
func (s *Service) Accommodations(ctx context.Context, auth upstream.Auth) ([]models.Accommodation, error) {
	return s.api.Accommodations(ctx, auth)
}

// Accommodation returns one accommodation.
func (s *Service) Accommodation(ctx context.Context, auth upstream.Auth, id int) (*models.Accommodation, error) {
	return s.api.Accommodation(ctx, auth, id)
}

// Featured lists the accommodations flagged for the landing page.
func (s *Service) Featured(ctx context.Context, auth upstream.Auth) ([]models.Accommodation, error) {
	return s.api.FeaturedAccommodations(ctx, auth)
}
