package models

// UserProfile is the authenticated user's profile as served by the upstream
// user_profile endpoint. Bookings ride along for badge derivation.
type UserProfile struct {
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Preferences   []string  `json:"preferences"`
	LoyaltyPoints int       `json:"loyalty_points"`
	Image         string    `json:"image,omitempty"`
	Bookings      []Booking `json:"bookings,omitempty"`
}

// ProfileUpdate carries the mutable profile fields. Image, when present,
// forces a multipart submission.
type ProfileUpdate struct {
	Preferences   []string    `json:"preferences,omitempty"`
	Password      string      `json:"password,omitempty"`
	LoyaltyPoints *int        `json:"loyalty_points,omitempty"`
	Phone         string      `json:"phone,omitempty"`
	Image         *FileUpload `json:"-"`
}

// Credentials is a login request.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is a signup request.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair is the access/refresh token pair issued on login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// ContactMessage is a contact-page submission.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
