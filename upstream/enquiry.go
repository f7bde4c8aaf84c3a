package upstream

import (
	"context"
	"fmt"

	"solvo/models"
)

// CreateEnquiry submits an accommodation enquiry.
func (c *Client) CreateEnquiry(ctx context.Context, auth Auth, draft models.EnquiryDraft) (*models.Enquiry, error) {
	var out models.Enquiry
	if err := c.postJSON(ctx, auth, "/accommodation-enquiry/", draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyEnquiries lists the authenticated user's accommodation enquiries with
// their message threads.
func (c *Client) MyEnquiries(ctx context.Context, auth Auth) ([]models.Enquiry, error) {
	var out []models.Enquiry
	if err := c.getJSON(ctx, auth, "/my-accommodation-enquiries/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReplyToEnquiry posts a user message on an enquiry thread.
func (c *Client) ReplyToEnquiry(ctx context.Context, auth Auth, enquiryID int, message string) error {
	body := map[string]string{"message": message}
	return c.postJSON(ctx, auth, fmt.Sprintf("/accommodation-enquiries/%d/messages/", enquiryID), body, nil)
}

// MarkEnquiryRead marks the admin-authored messages on an enquiry as read.
func (c *Client) MarkEnquiryRead(ctx context.Context, auth Auth, enquiryID int) error {
	return c.postJSON(ctx, auth, fmt.Sprintf("/accommodation-enquiries/%d/mark-read/", enquiryID), map[string]string{}, nil)
}
