package dashboard

import (
	"context"

	"solvo/models"
	"solvo/upstream"

	"go.uber.org/zap"
)

// Badge names derived from the booking record.
const (
	BadgeFirstBooking = "First Booking"
	BadgeExplorer     = "Explorer"
	BadgeEarlyBird    = "Early Bird"
)

// API is the slice of the upstream client the dashboard needs.
type API interface {
	Profile(ctx context.Context, auth upstream.Auth) (*models.UserProfile, error)
	BookingHistory(ctx context.Context, auth upstream.Auth) ([]models.BookingHistoryItem, error)
	Booking(ctx context.Context, auth upstream.Auth, id int) (*models.Booking, error)
	MyEnquiries(ctx context.Context, auth upstream.Auth) ([]models.Enquiry, error)
	MarkEnquiryRead(ctx context.Context, auth upstream.Auth, enquiryID int) error
	ReplyToEnquiry(ctx context.Context, auth upstream.Auth, enquiryID int, message string) error
	UpdateProfile(ctx context.Context, auth upstream.Auth, update models.ProfileUpdate) (*models.UserProfile, error)
}

// Summary is the count strip at the top of the dashboard.
type Summary struct {
	TotalBookings     int `json:"total_bookings"`
	PendingBookings   int `json:"pending_bookings"`
	ConfirmedBookings int `json:"confirmed_bookings"`
	OpenEnquiries     int `json:"open_enquiries"`
	UnreadMessages    int `json:"unread_messages"`
	LoyaltyPoints     int `json:"loyalty_points"`
}

// View is the aggregated dashboard payload. The three upstream feeds are
// fetched independently; a failed feed leaves its section nil and its error
// string set instead of taking the whole page down.
type View struct {
	Profile   *models.UserProfile         `json:"profile,omitempty"`
	Badges    []string                    `json:"badges"`
	Bookings  []models.BookingHistoryItem `json:"bookings,omitempty"`
	Enquiries []models.Enquiry            `json:"enquiries,omitempty"`
	Summary   Summary                     `json:"summary"`

	ProfileError   string `json:"profile_error,omitempty"`
	BookingsError  string `json:"bookings_error,omitempty"`
	EnquiriesError string `json:"enquiries_error,omitempty"`
}

// Service aggregates the dashboard feeds.
type Service struct {
	api    API
	logger *zap.Logger
}

func NewService(api API, logger *zap.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// Badges derives the achievement badges from a booking list. Badges are
// independent and additive.
func Badges(bookings []models.Booking) []string {
	badges := []string{}
	if len(bookings) >= 1 {
		badges = append(badges, BadgeFirstBooking)
	}
	if len(bookings) >= 3 {
		badges = append(badges, BadgeExplorer)
	}
	for _, b := range bookings {
		if b.Early {
			badges = append(badges, BadgeEarlyBird)
			break
		}
	}
	return badges
}

// Load fetches profile, booking history and enquiries fresh on every
// request and assembles the dashboard view. Auth failures abort; anything
// else degrades to a partial view.
func (s *Service) Load(ctx context.Context, auth upstream.Auth) (*View, error) {
	view := &View{Badges: []string{}}

	profile, err := s.api.Profile(ctx, auth)
	if err != nil {
		if upstream.IsAuthExpired(err) {
			return nil, err
		}
		s.logger.Warn("dashboard profile fetch failed", zap.Error(err))
		view.ProfileError = err.Error()
	} else {
		view.Profile = profile
		view.Summary.LoyaltyPoints = profile.LoyaltyPoints
	}

	history, err := s.api.BookingHistory(ctx, auth)
	if err != nil {
		if upstream.IsAuthExpired(err) {
			return nil, err
		}
		s.logger.Warn("dashboard booking history fetch failed", zap.Error(err))
		view.BookingsError = err.Error()
	} else {
		view.Bookings = history
	}

	enquiries, err := s.api.MyEnquiries(ctx, auth)
	if err != nil {
		if upstream.IsAuthExpired(err) {
			return nil, err
		}
		s.logger.Warn("dashboard enquiries fetch failed", zap.Error(err))
		view.EnquiriesError = err.Error()
	} else {
		view.Enquiries = enquiries
	}

	bookings := make([]models.Booking, 0, len(view.Bookings))
	for _, item := range view.Bookings {
		bookings = append(bookings, item.BookingDetails)
	}
	view.Badges = Badges(bookings)
	view.Summary.TotalBookings = len(bookings)
	for _, b := range bookings {
		switch b.Status {
		case models.BookingStatusPending:
			view.Summary.PendingBookings++
		case models.BookingStatusConfirmed:
			view.Summary.ConfirmedBookings++
		}
	}
	for _, e := range view.Enquiries {
		if e.Status == models.EnquiryStatusPending || e.Status == models.EnquiryStatusInProgress {
			view.Summary.OpenEnquiries++
		}
		view.Summary.UnreadMessages += e.UnreadAdminMessages()
	}
	return view, nil
}

// ExpandEnquiry marks an enquiry's admin messages read and returns the
// refreshed thread.
func (s *Service) ExpandEnquiry(ctx context.Context, auth upstream.Auth, enquiryID int) ([]models.Enquiry, error) {
	if err := s.api.MarkEnquiryRead(ctx, auth, enquiryID); err != nil {
		return nil, err
	}
	return s.api.MyEnquiries(ctx, auth)
}

// Reply posts a user message on an enquiry thread and returns the refreshed
// enquiry list so the UI can re-render the conversation.
func (s *Service) Reply(ctx context.Context, auth upstream.Auth, enquiryID int, message string) ([]models.Enquiry, error) {
	if err := s.api.ReplyToEnquiry(ctx, auth, enquiryID, message); err != nil {
		return nil, err
	}
	return s.api.MyEnquiries(ctx, auth)
}

// UpdateProfile pushes profile changes upstream.
func (s *Service) UpdateProfile(ctx context.Context, auth upstream.Auth, update models.ProfileUpdate) (*models.UserProfile, error) {
	return s.api.UpdateProfile(ctx, auth, update)
}

// Booking fetches one booking for the receipt views.
func (s *Service) Booking(ctx context.Context, auth upstream.Auth, id int) (*models.Booking, error) {
	return s.api.Booking(ctx, auth, id)
}
