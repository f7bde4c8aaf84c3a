package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"solvo/models"
	"solvo/upstream"

	"go.uber.org/zap"
)

// DepositRate is the fraction of the total shown as the suggested deposit.
const DepositRate = 0.40

const (
	MinGuests = 1
	MaxGuests = 8
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// API is the slice of the upstream client the booking flow needs.
type API interface {
	Safari(ctx context.Context, auth upstream.Auth, id int) (*models.Safari, error)
	CreateBooking(ctx context.Context, auth upstream.Auth, draft models.BookingDraft, proof *models.FileUpload) (*models.Booking, error)
	InitiateStripePayment(ctx context.Context, auth upstream.Auth, req models.StripeRequest) (*models.CheckoutResponse, error)
	InitiateIntaSendPayment(ctx context.Context, auth upstream.Auth, req models.StripeRequest) (*models.CheckoutResponse, error)
}

// ValidationError reports per-field problems with a submitted form. It maps
// to a 400 with the field messages in the response body.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid booking: " + strings.Join(parts, "; ")
}

// FormInput is the raw booking form as posted by the browser. Insurance
// options arrive as a JSON string typed or pasted by the user.
type FormInput struct {
	Name                       string             `json:"name" form:"name"`
	Email                      string             `json:"email" form:"email"`
	Phone                      string             `json:"phone" form:"phone"`
	Date                       string             `json:"date" form:"date"`
	Guests                     int                `json:"guests" form:"guests"`
	SpecialRequirements        string             `json:"special_requirements" form:"special_requirements"`
	EmergencyContactName       string             `json:"emergency_contact_name" form:"emergency_contact_name"`
	EmergencyContactPhone      string             `json:"emergency_contact_phone" form:"emergency_contact_phone"`
	InsuranceJSON              string             `json:"insurance_options" form:"insurance_options"`
	SpecialDietaryRequirements string             `json:"special_dietary_requirements" form:"special_dietary_requirements"`
	SafariID                   int                `json:"safari" form:"safari"`
	Proof                      *models.FileUpload `json:"-" form:"-"`
}

// Quote is the derived pricing shown live on the form.
type Quote struct {
	Total   float64 `json:"total_price"`
	Deposit float64 `json:"deposit_hint"`
}

// Service implements the safari booking flow.
type Service struct {
	api    API
	logger *zap.Logger
	now    func() time.Time
}

func NewService(api API, logger *zap.Logger) *Service {
	return &Service{api: api, logger: logger, now: time.Now}
}

// ComputeQuote derives total and deposit from the safari price and guest
// count, both rounded to 2 decimal places.
func ComputeQuote(pricePerPerson float64, guests int) Quote {
	total := round2(pricePerPerson * float64(guests))
	return Quote{Total: total, Deposit: round2(total * DepositRate)}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// QuoteForSafari fetches the safari and prices it for the given guest count.
func (s *Service) QuoteForSafari(ctx context.Context, auth upstream.Auth, safariID, guests int) (*Quote, error) {
	if guests < MinGuests || guests > MaxGuests {
		return nil, &ValidationError{Fields: map[string]string{
			"guests": fmt.Sprintf("must be between %d and %d", MinGuests, MaxGuests),
		}}
	}
	safari, err := s.api.Safari(ctx, auth, safariID)
	if err != nil {
		return nil, err
	}
	q := ComputeQuote(safari.Price, guests)
	return &q, nil
}

// Validate checks the form input. All field problems are reported at once.
func (s *Service) Validate(in FormInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(in.Email) == "" {
		fields["email"] = "email is required"
	} else if !emailPattern.MatchString(in.Email) {
		fields["email"] = "email is not valid"
	}
	if strings.TrimSpace(in.Phone) == "" {
		fields["phone"] = "phone is required"
	}
	if in.SafariID <= 0 {
		fields["safari"] = "safari is required"
	}
	if in.Guests < MinGuests || in.Guests > MaxGuests {
		fields["guests"] = fmt.Sprintf("must be between %d and %d", MinGuests, MaxGuests)
	}
	if strings.TrimSpace(in.Date) == "" {
		fields["date"] = "date is required"
	} else if d, err := time.Parse("2006-01-02", in.Date); err != nil {
		fields["date"] = "date must be YYYY-MM-DD"
	} else {
		today := s.now().Truncate(24 * time.Hour)
		if d.Before(today) {
			fields["date"] = "date must not be in the past"
		}
	}
	if _, err := ParseInsuranceOptions(in.InsuranceJSON); err != nil {
		fields["insurance_options"] = "must be a valid JSON object"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ParseInsuranceOptions decodes the user-supplied insurance JSON. An empty
// string means no insurance. Malformed input is a user error, never a crash.
func ParseInsuranceOptions(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var opts map[string]any
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		return nil, fmt.Errorf("invalid insurance options: %w", err)
	}
	return opts, nil
}

// Submit validates the form, prices it against the live safari record and
// posts the booking upstream. The total is always recomputed server-side;
// whatever the browser claimed is ignored.
func (s *Service) Submit(ctx context.Context, auth upstream.Auth, in FormInput) (*models.Booking, error) {
	if err := s.Validate(in); err != nil {
		return nil, err
	}
	safari, err := s.api.Safari(ctx, auth, in.SafariID)
	if err != nil {
		return nil, fmt.Errorf("failed to price booking: %w", err)
	}
	insurance, err := ParseInsuranceOptions(in.InsuranceJSON)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"insurance_options": "must be a valid JSON object"}}
	}
	quote := ComputeQuote(safari.Price, in.Guests)

	draft := models.BookingDraft{
		Name:                       in.Name,
		Email:                      in.Email,
		Phone:                      in.Phone,
		Date:                       in.Date,
		Guests:                     in.Guests,
		SpecialRequirements:        in.SpecialRequirements,
		EmergencyContactName:       in.EmergencyContactName,
		EmergencyContactPhone:      in.EmergencyContactPhone,
		InsuranceOptions:           insurance,
		SpecialDietaryRequirements: in.SpecialDietaryRequirements,
		Safari:                     in.SafariID,
		Status:                     models.BookingStatusPending,
		TotalPrice:                 quote.Total,
	}

	booking, err := s.api.CreateBooking(ctx, auth, draft, in.Proof)
	if err != nil {
		return nil, err
	}
	s.logger.Info("booking created",
		zap.Int("bookingID", booking.ID),
		zap.Int("safariID", in.SafariID),
		zap.Int("guests", in.Guests),
		zap.Float64("total", quote.Total))
	return booking, nil
}

// StartCheckout initiates a hosted checkout for an existing booking. Stripe
// and IntaSend are the two providers offered for safari bookings.
func (s *Service) StartCheckout(ctx context.Context, auth upstream.Auth, provider string, req models.StripeRequest) (*models.CheckoutResponse, error) {
	switch provider {
	case "stripe":
		return s.api.InitiateStripePayment(ctx, auth, req)
	case "intasend":
		return s.api.InitiateIntaSendPayment(ctx, auth, req)
	default:
		return nil, fmt.Errorf("unknown checkout provider %q", provider)
	}
}
