package enquiry

import (
	"context"
	"errors"
	"strings"
	"testing"

	"solvo/models"
	"solvo/upstream"

	"go.uber.org/zap"
)

type fakeAPI struct {
	acc        *models.Accommodation
	gotDraft   models.EnquiryDraft
	createErr  error
	gotCard    *models.PaymentRequest
	gotPaypal  *models.PaymentRequest
	gotMpesa   *models.MpesaRequest
	paymentErr error
}

func (f *fakeAPI) Accommodation(ctx context.Context, auth upstream.Auth, id int) (*models.Accommodation, error) {
	return f.acc, nil
}

func (f *fakeAPI) CreateEnquiry(ctx context.Context, auth upstream.Auth, draft models.EnquiryDraft) (*models.Enquiry, error) {
	f.gotDraft = draft
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Enquiry{ID: 11, Message: draft.Message, Status: models.EnquiryStatusPending}, nil
}

func (f *fakeAPI) InitiateCardPayment(ctx context.Context, auth upstream.Auth, req models.PaymentRequest) (*models.CheckoutResponse, error) {
	f.gotCard = &req
	if f.paymentErr != nil {
		return nil, f.paymentErr
	}
	return &models.CheckoutResponse{CheckoutURL: "https://checkout.example/card"}, nil
}

func (f *fakeAPI) InitiatePayPalPayment(ctx context.Context, auth upstream.Auth, req models.PaymentRequest) (*models.CheckoutResponse, error) {
	f.gotPaypal = &req
	if f.paymentErr != nil {
		return nil, f.paymentErr
	}
	return &models.CheckoutResponse{CheckoutURL: "https://checkout.example/paypal"}, nil
}

func (f *fakeAPI) InitiateMpesaPayment(ctx context.Context, auth upstream.Auth, req models.MpesaRequest) (*models.MpesaResponse, error) {
	f.gotMpesa = &req
	if f.paymentErr != nil {
		return nil, f.paymentErr
	}
	return &models.MpesaResponse{ResponseDescription: "Success. Request accepted for processing"}, nil
}

func validInput() FormInput {
	return FormInput{
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		Phone:           "+254700000001",
		AccommodationID: 5,
		StayDetails: StayDetails{
			CheckIn:         "2026-10-01",
			CheckOut:        "2026-10-05",
			Guests:          2,
			SpecialRequests: "late arrival",
			HeardFrom:       "Instagram",
		},
	}
}

func TestSerializeMessageFormat(t *testing.T) {
	got := SerializeMessage(validInput().StayDetails)
	want := "Check-in: 2026-10-01\nCheck-out: 2026-10-05\nGuests: 2\nSpecial Requests: late arrival\nHow did you hear about us: Instagram"
	if got != want {
		t.Errorf("SerializeMessage = %q, want %q", got, want)
	}
}

func TestParseMessageRoundTrip(t *testing.T) {
	d := validInput().StayDetails
	if got := ParseMessage(SerializeMessage(d)); got != d {
		t.Errorf("round trip = %+v, want %+v", got, d)
	}
}

func TestParseMessageIgnoresUnknownLines(t *testing.T) {
	msg := "hello there\nCheck-in: 2026-10-01\nsomething else\nGuests: 4"
	d := ParseMessage(msg)
	if d.CheckIn != "2026-10-01" || d.Guests != 4 {
		t.Errorf("parsed = %+v", d)
	}
}

func TestValidateRejectsInvertedDates(t *testing.T) {
	s := NewService(&fakeAPI{}, zap.NewNop())
	in := validInput()
	in.CheckIn, in.CheckOut = in.CheckOut, in.CheckIn
	err := s.Validate(in)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if !strings.Contains(verr.Fields["check_out"], "after check-in") {
		t.Errorf("check_out message = %q", verr.Fields["check_out"])
	}
}

func TestSubmitSendsSerializedMessage(t *testing.T) {
	api := &fakeAPI{}
	s := NewService(api, zap.NewNop())

	enq, err := s.Submit(context.Background(), nil, validInput())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if enq.ID != 11 {
		t.Errorf("enquiry ID = %d", enq.ID)
	}
	if !strings.HasPrefix(api.gotDraft.Message, "Check-in: 2026-10-01\n") {
		t.Errorf("draft message = %q", api.gotDraft.Message)
	}
	if api.gotDraft.Accommodation != 5 {
		t.Errorf("draft accommodation = %d", api.gotDraft.Accommodation)
	}
}

func TestPayCardUsesNightlyRateTimesGuests(t *testing.T) {
	api := &fakeAPI{acc: &models.Accommodation{ID: 5, PricePerNight: 250}}
	s := NewService(api, zap.NewNop())

	res, err := s.Pay(context.Background(), nil, 11, 5, 2, PaymentInput{Method: "card"})
	if err != nil {
		t.Fatalf("Pay returned error: %v", err)
	}
	if res.CheckoutURL != "https://checkout.example/card" {
		t.Errorf("checkout URL = %q", res.CheckoutURL)
	}
	if api.gotCard.Amount != 500 || api.gotCard.AccommodationEnquiryID != 11 {
		t.Errorf("card request = %+v", api.gotCard)
	}
	if api.gotCard.Currency != "USD" {
		t.Errorf("default currency = %q", api.gotCard.Currency)
	}
}

func TestPayMpesaReturnsStatusMessage(t *testing.T) {
	api := &fakeAPI{acc: &models.Accommodation{ID: 5, PricePerNight: 250}}
	s := NewService(api, zap.NewNop())

	res, err := s.Pay(context.Background(), nil, 11, 5, 2, PaymentInput{Method: "mpesa", Phone: "254700000001"})
	if err != nil {
		t.Fatalf("Pay returned error: %v", err)
	}
	if res.StatusMessage != "Success. Request accepted for processing" {
		t.Errorf("status = %q", res.StatusMessage)
	}
	if api.gotMpesa.Phone != "254700000001" {
		t.Errorf("mpesa request = %+v", api.gotMpesa)
	}
}

func TestPayMpesaRequiresPhone(t *testing.T) {
	api := &fakeAPI{acc: &models.Accommodation{ID: 5, PricePerNight: 250}}
	s := NewService(api, zap.NewNop())

	_, err := s.Pay(context.Background(), nil, 11, 5, 2, PaymentInput{Method: "mpesa"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
}

func TestPayFailureLeavesEnquiryAlone(t *testing.T) {
	wantErr := errors.New("gateway timeout")
	api := &fakeAPI{acc: &models.Accommodation{ID: 5, PricePerNight: 250}, paymentErr: wantErr}
	s := NewService(api, zap.NewNop())

	enq, err := s.Submit(context.Background(), nil, validInput())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	_, payErr := s.Pay(context.Background(), nil, enq.ID, 5, 2, PaymentInput{Method: "paypal"})
	if !errors.Is(payErr, wantErr) {
		t.Errorf("pay error = %v, want %v", payErr, wantErr)
	}
	// The created enquiry stays valid regardless of the payment outcome.
	if enq.ID != 11 || enq.Status != models.EnquiryStatusPending {
		t.Errorf("enquiry changed: %+v", enq)
	}
}
