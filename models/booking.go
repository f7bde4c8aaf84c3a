package models

import "time"

// Booking statuses as issued by the upstream API.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// BookingDraft is the client-side booking payload built by the booking form.
// total_price is always computed gateway-side as price x guests; the upstream
// is told the result and does not recompute it.
type BookingDraft struct {
	Name                       string         `json:"name"`
	Email                      string         `json:"email"`
	Phone                      string         `json:"phone"`
	Date                       string         `json:"date"` // YYYY-MM-DD
	Guests                     int            `json:"guests"`
	SpecialRequirements        string         `json:"special_requirements"`
	EmergencyContactName       string         `json:"emergency_contact_name"`
	EmergencyContactPhone      string         `json:"emergency_contact_phone"`
	InsuranceOptions           map[string]any `json:"insurance_options"`
	SpecialDietaryRequirements string         `json:"special_dietary_requirements"`
	Safari                     int            `json:"safari"`
	Status                     string         `json:"status"`
	TotalPrice                 float64        `json:"total_price"`
}

// FileUpload is a file attachment carried alongside a form submission
// (payment proof, profile image). When present the submission is sent as
// multipart form data instead of JSON.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Booking is the server-authoritative record returned after submission.
type Booking struct {
	ID                         int              `json:"id"`
	Name                       string           `json:"name"`
	Email                      string           `json:"email"`
	Phone                      string           `json:"phone"`
	Date                       string           `json:"date"`
	Guests                     int              `json:"guests"`
	SpecialRequirements        string           `json:"special_requirements"`
	Safari                     int              `json:"safari"`
	Status                     string           `json:"status"`
	TotalPrice                 float64          `json:"total_price,string"`
	PaymentStatus              string           `json:"payment_status"`
	PaymentHistory             []map[string]any `json:"payment_history"`
	CancellationPolicy         string           `json:"cancellation_policy,omitempty"`
	RefundTerms                string           `json:"refund_terms,omitempty"`
	InsuranceOptions           map[string]any   `json:"insurance_options"`
	EmergencyContactName       string           `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone      string           `json:"emergency_contact_phone,omitempty"`
	SpecialDietaryRequirements string           `json:"special_dietary_requirements,omitempty"`
	PaymentMethod              string           `json:"payment_method,omitempty"`
	DepositAmount              float64          `json:"deposit_amount,string,omitempty"`
	ProofOfPayment             string           `json:"proof_of_payment,omitempty"`
	Early                      bool             `json:"early,omitempty"`
	CreatedAt                  time.Time        `json:"created_at"`
	UpdatedAt                  time.Time        `json:"updated_at"`
}

// BookingHistoryItem is one entry of the booking-history feed. The upstream
// nests the booking under booking_details.
type BookingHistoryItem struct {
	ID             int     `json:"id"`
	BookingDetails Booking `json:"booking_details"`
}
