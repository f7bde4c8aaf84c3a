package upstream

import (
	"context"
	"fmt"

	"solvo/models"
)

// Destinations lists all destinations.
func (c *Client) Destinations(ctx context.Context, auth Auth) ([]models.Destination, error) {
	var out []models.Destination
	if err := c.getJSON(ctx, auth, "/destinations/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Safaris lists all safaris.
func (c *Client) Safaris(ctx context.Context, auth Auth) ([]models.Safari, error) {
	var out []models.Safari
	if err := c.getJSON(ctx, auth, "/safaris/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Safari fetches one safari with its itinerary days.
func (c *Client) Safari(ctx context.Context, auth Auth, id int) (*models.Safari, error) {
	var out models.Safari
	if err := c.getJSON(ctx, auth, fmt.Sprintf("/safaris/%d/", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Accommodations lists all accommodations.
func (c *Client) Accommodations(ctx context.Context, auth Auth) ([]models.Accommodation, error) {
	var out []models.Accommodation
	if err := c.getJSON(ctx, auth, "/accommodations/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Accommodation fetches one accommodation.
func (c *Client) Accommodation(ctx context.Context, auth Auth, id int) (*models.Accommodation, error) {
	var out models.Accommodation
	if err := c.getJSON(ctx, auth, fmt.Sprintf("/accommodations/%d/", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FeaturedAccommodations lists the accommodations flagged for the landing
// page.
func (c *Client) FeaturedAccommodations(ctx context.Context, auth Auth) ([]models.Accommodation, error) {
	var out []models.Accommodation
	if err := c.getJSON(ctx, auth, "/accommodations/featured/", &out); err != nil {
		return nil, err
	}
	return out, nil
}
