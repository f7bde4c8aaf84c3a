package enquiry

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"solvo/models"
	"solvo/upstream"

	"go.uber.org/zap"
)

// API is the slice of the upstream client the enquiry flow needs.
type API interface {
	Accommodation(ctx context.Context, auth upstream.Auth, id int) (*models.Accommodation, error)
	CreateEnquiry(ctx context.Context, auth upstream.Auth, draft models.EnquiryDraft) (*models.Enquiry, error)
	InitiateCardPayment(ctx context.Context, auth upstream.Auth, req models.PaymentRequest) (*models.CheckoutResponse, error)
	InitiatePayPalPayment(ctx context.Context, auth upstream.Auth, req models.PaymentRequest) (*models.CheckoutResponse, error)
	InitiateMpesaPayment(ctx context.Context, auth upstream.Auth, req models.MpesaRequest) (*models.MpesaResponse, error)
}

// StayDetails are the structured fields folded into the enquiry message.
type StayDetails struct {
	CheckIn         string `json:"check_in" form:"check_in"`
	CheckOut        string `json:"check_out" form:"check_out"`
	Guests          int    `json:"guests" form:"guests"`
	SpecialRequests string `json:"special_requests" form:"special_requests"`
	HeardFrom       string `json:"heard_from" form:"heard_from"`
}

// FormInput is the raw accommodation enquiry form.
type FormInput struct {
	Name            string `json:"name" form:"name"`
	Email           string `json:"email" form:"email"`
	Phone           string `json:"phone" form:"phone"`
	AccommodationID int    `json:"accommodation" form:"accommodation"`
	StayDetails
}

// PaymentInput selects how the stay is paid for after the enquiry lands.
type PaymentInput struct {
	Method   string `json:"method" form:"method"`
	Currency string `json:"currency" form:"currency"`
	Phone    string `json:"phone" form:"phone"` // M-Pesa only
}

// PaymentResult is whichever of the two initiation shapes the chosen method
// produced.
type PaymentResult struct {
	CheckoutURL   string `json:"checkout_url,omitempty"`
	StatusMessage string `json:"status_message,omitempty"`
}

// ValidationError reports per-field problems with the enquiry form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid enquiry: %d field(s) rejected", len(e.Fields))
}

// Service implements the accommodation enquiry and payment flow.
type Service struct {
	api    API
	logger *zap.Logger
}

func NewService(api API, logger *zap.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// SerializeMessage folds the stay details into the free-text message field
// the upstream expects. ParseMessage reverses it.
func SerializeMessage(d StayDetails) string {
	return fmt.Sprintf(
		"Check-in: %s\nCheck-out: %s\nGuests: %d\nSpecial Requests: %s\nHow did you hear about us: %s",
		d.CheckIn, d.CheckOut, d.Guests, d.SpecialRequests, d.HeardFrom,
	)
}

// ParseMessage recovers stay details from a serialized enquiry message.
// Unknown lines are ignored so hand-edited messages still mostly parse.
func ParseMessage(message string) StayDetails {
	var d StayDetails
	for _, line := range strings.Split(message, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "Check-in":
			d.CheckIn = value
		case "Check-out":
			d.CheckOut = value
		case "Guests":
			if n, err := strconv.Atoi(value); err == nil {
				d.Guests = n
			}
		case "Special Requests":
			d.SpecialRequests = value
		case "How did you hear about us":
			d.HeardFrom = value
		}
	}
	return d
}

// Validate checks the enquiry form. All field problems are reported at once.
func (s *Service) Validate(in FormInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(in.Email) == "" {
		fields["email"] = "email is required"
	}
	if strings.TrimSpace(in.Phone) == "" {
		fields["phone"] = "phone is required"
	}
	if in.AccommodationID <= 0 {
		fields["accommodation"] = "accommodation is required"
	}
	if in.Guests < 1 {
		fields["guests"] = "at least one guest is required"
	}
	checkIn, inErr := time.Parse("2006-01-02", in.CheckIn)
	if inErr != nil {
		fields["check_in"] = "check-in must be YYYY-MM-DD"
	}
	checkOut, outErr := time.Parse("2006-01-02", in.CheckOut)
	if outErr != nil {
		fields["check_out"] = "check-out must be YYYY-MM-DD"
	}
	if inErr == nil && outErr == nil && !checkOut.After(checkIn) {
		fields["check_out"] = "check-out must be after check-in"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Submit validates the form and creates the enquiry upstream.
func (s *Service) Submit(ctx context.Context, auth upstream.Auth, in FormInput) (*models.Enquiry, error) {
	if err := s.Validate(in); err != nil {
		return nil, err
	}
	draft := models.EnquiryDraft{
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		Accommodation: in.AccommodationID,
		Message:       SerializeMessage(in.StayDetails),
	}
	enq, err := s.api.CreateEnquiry(ctx, auth, draft)
	if err != nil {
		return nil, err
	}
	s.logger.Info("enquiry created",
		zap.Int("enquiryID", enq.ID),
		zap.Int("accommodationID", in.AccommodationID))
	return enq, nil
}

// Amount prices the stay the way the enquiry form shows it: nightly rate
// times guest count.
func Amount(pricePerNight float64, guests int) float64 {
	return pricePerNight * float64(guests)
}

// Pay initiates payment for an already-created enquiry. A payment failure
// does not touch the enquiry; callers keep the enquiry ID either way.
func (s *Service) Pay(ctx context.Context, auth upstream.Auth, enquiryID, accommodationID, guests int, in PaymentInput) (*PaymentResult, error) {
	acc, err := s.api.Accommodation(ctx, auth, accommodationID)
	if err != nil {
		return nil, fmt.Errorf("failed to price stay: %w", err)
	}
	amount := Amount(acc.PricePerNight, guests)
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}

	switch in.Method {
	case models.PaymentMethodCard:
		resp, err := s.api.InitiateCardPayment(ctx, auth, models.PaymentRequest{
			Amount: amount, Currency: currency, AccommodationEnquiryID: enquiryID,
		})
		if err != nil {
			return nil, err
		}
		return &PaymentResult{CheckoutURL: resp.CheckoutURL}, nil
	case models.PaymentMethodPayPal:
		resp, err := s.api.InitiatePayPalPayment(ctx, auth, models.PaymentRequest{
			Amount: amount, Currency: currency, AccommodationEnquiryID: enquiryID,
		})
		if err != nil {
			return nil, err
		}
		return &PaymentResult{CheckoutURL: resp.CheckoutURL}, nil
	case models.PaymentMethodMpesa:
		if strings.TrimSpace(in.Phone) == "" {
			return nil, &ValidationError{Fields: map[string]string{"phone": "phone is required for M-Pesa"}}
		}
		resp, err := s.api.InitiateMpesaPayment(ctx, auth, models.MpesaRequest{
			Amount: amount, Phone: in.Phone, AccommodationEnquiryID: enquiryID,
		})
		if err != nil {
			return nil, err
		}
		return &PaymentResult{StatusMessage: resp.ResponseDescription}, nil
	default:
		return nil, &ValidationError{Fields: map[string]string{"method": "must be card, paypal or mpesa"}}
	}
}
