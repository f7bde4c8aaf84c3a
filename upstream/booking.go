package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"solvo/models"
)

// CreateBooking submits a booking draft. When proof is non-nil the payload is
// encoded as multipart form data carrying the same field values as the JSON
// variant, plus the proof_of_payment file part.
func (c *Client) CreateBooking(ctx context.Context, auth Auth, draft models.BookingDraft, proof *models.FileUpload) (*models.Booking, error) {
	var (
		body        []byte
		contentType string
		err         error
	)
	if proof != nil {
		body, contentType, err = encodeMultipart(draft, map[string]*models.FileUpload{"proof_of_payment": proof})
		if err != nil {
			return nil, err
		}
	} else {
		body, err = json.Marshal(draft)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal booking: %w", err)
		}
		contentType = "application/json"
	}

	respBody, err := c.do(ctx, auth, http.MethodPost, "/bookings/", contentType, body)
	if err != nil {
		return nil, err
	}
	var booking models.Booking
	if err := json.Unmarshal(respBody, &booking); err != nil {
		return nil, fmt.Errorf("failed to parse booking response: %w", err)
	}
	return &booking, nil
}

// Booking fetches one booking by ID.
func (c *Client) Booking(ctx context.Context, auth Auth, id int) (*models.Booking, error) {
	var out models.Booking
	if err := c.getJSON(ctx, auth, fmt.Sprintf("/bookings/%d/", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBooking replaces a booking record. Used by the admin view to change
// status and payment state.
func (c *Client) UpdateBooking(ctx context.Context, auth Auth, id int, booking models.Booking) (*models.Booking, error) {
	var out models.Booking
	if err := c.putJSON(ctx, auth, fmt.Sprintf("/bookings/%d/", id), booking, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BookingHistory lists the authenticated user's bookings.
func (c *Client) BookingHistory(ctx context.Context, auth Auth) ([]models.BookingHistoryItem, error) {
	var out []models.BookingHistoryItem
	if err := c.getJSON(ctx, auth, "/booking-history/", &out); err != nil {
		return nil, err
	}
	return out, nil
}
