package models

import "time"

// Safari is a tour package record served by the upstream API. The gateway
// treats it as read-only.
type Safari struct {
	ID                   int             `json:"id"`
	Title                string          `json:"title"`
	Destination          int             `json:"destination"`
	Description          string          `json:"description"`
	Duration             int             `json:"duration"` // days
	Price                float64         `json:"price,string"`
	Image                string          `json:"image"`
	Included             string          `json:"included"`
	Excluded             string          `json:"excluded"`
	DifficultyLevel      string          `json:"difficulty_level"` // easy | moderate | challenging
	MaxGroupSize         int             `json:"max_group_size"`
	MinAgeRequirement    int             `json:"min_age_requirement"`
	SeasonalAvailability map[string]bool `json:"seasonal_availability"` // month -> available
	DeparturePoints      []string        `json:"departure_points"`
	Itineraries          []Itinerary     `json:"itineraries,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// Itinerary is one day of a safari.
type Itinerary struct {
	ID            int      `json:"id"`
	Safari        int      `json:"safari"`
	DayNumber     int      `json:"day_number"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Activities    []string `json:"activities"`
	Accommodation *int     `json:"accommodation"`
	MealsIncluded []string `json:"meals_included"`
	StartTime     string   `json:"start_time,omitempty"`
	EndTime       string   `json:"end_time,omitempty"`
}

// Destination is a place safaris run in.
type Destination struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	Location            string `json:"location"`
	Description         string `json:"description"`
	Image               string `json:"image"`
	Highlights          string `json:"highlights"`
	BestTime            string `json:"best_time"`
	WeatherInformation  string `json:"weather_information,omitempty"`
	LocalCulture        string `json:"local_culture,omitempty"`
	WildlifeInformation string `json:"wildlife_information,omitempty"`
}
