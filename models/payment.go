package models

// Payment methods offered after a successful accommodation enquiry.
const (
	PaymentMethodCard   = "card"
	PaymentMethodPayPal = "paypal"
	PaymentMethodMpesa  = "mpesa"
)

// PaymentRequest is the body sent to the card and PayPal initiation
// endpoints.
type PaymentRequest struct {
	Amount                 float64 `json:"amount"`
	Currency               string  `json:"currency"`
	AccommodationEnquiryID int     `json:"accommodation_enquiry_id"`
}

// MpesaRequest is the body sent to the M-Pesa initiation endpoint. Completion
// happens out of band on the customer's phone; the gateway does not poll.
type MpesaRequest struct {
	Amount                 float64 `json:"amount"`
	Phone                  string  `json:"phone"`
	AccommodationEnquiryID int     `json:"accommodation_enquiry_id"`
}

// CheckoutResponse is returned by hosted-checkout initiations. The browser is
// redirected to CheckoutURL.
type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
}

// MpesaResponse carries the gateway's STK push status message.
type MpesaResponse struct {
	ResponseDescription string `json:"ResponseDescription"`
}

// StripeRequest is the body for the Stripe/IntaSend initiation endpoints used
// by safari bookings.
type StripeRequest struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	BookingID int     `json:"booking_id"`
	Email     string  `json:"email,omitempty"`
}
