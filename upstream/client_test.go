package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"solvo/models"

	"go.uber.org/zap"
)

type fakeAuth struct {
	access  string
	refresh string
	cleared bool
}

func (a *fakeAuth) AccessToken() string         { return a.access }
func (a *fakeAuth) RefreshToken() string        { return a.refresh }
func (a *fakeAuth) SetAccessToken(token string) { a.access = token }
func (a *fakeAuth) Clear() {
	a.access = ""
	a.refresh = ""
	a.cleared = true
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, zap.NewNop()), srv
}

func TestBearerHeaderAttached(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))

	auth := &fakeAuth{access: "tok-123"}
	if _, err := client.Safaris(context.Background(), auth); err != nil {
		t.Fatalf("Safaris returned error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization header = %q, want %q", gotAuth, "Bearer tok-123")
	}
}

func TestTokenRefreshRetriesOnce(t *testing.T) {
	var refreshCalls, resourceCalls int
	var retriedAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token/refresh/":
			refreshCalls++
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["refresh"] != "refresh-tok" {
				t.Errorf("refresh body = %v", body)
			}
			json.NewEncoder(w).Encode(map[string]string{"access": "new-access"})
		case "/safaris/":
			resourceCalls++
			if resourceCalls == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"code":"token_not_valid","detail":"Token is expired"}`))
				return
			}
			retriedAuth = r.Header.Get("Authorization")
			w.Write([]byte(`[]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	auth := &fakeAuth{access: "stale", refresh: "refresh-tok"}
	if _, err := client.Safaris(context.Background(), auth); err != nil {
		t.Fatalf("Safaris returned error: %v", err)
	}
	if refreshCalls != 1 {
		t.Errorf("refresh calls = %d, want 1", refreshCalls)
	}
	if resourceCalls != 2 {
		t.Errorf("resource calls = %d, want 2", resourceCalls)
	}
	if retriedAuth != "Bearer new-access" {
		t.Errorf("retried Authorization = %q, want refreshed token", retriedAuth)
	}
	if auth.access != "new-access" {
		t.Errorf("stored access token = %q, want new-access", auth.access)
	}
}

func TestSecondUnauthorizedClearsAuth(t *testing.T) {
	var refreshCalls int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/token/refresh/" {
			refreshCalls++
			json.NewEncoder(w).Encode(map[string]string{"access": "new-access"})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"token_not_valid"}`))
	}))

	auth := &fakeAuth{access: "stale", refresh: "refresh-tok"}
	_, err := client.Safaris(context.Background(), auth)
	if !errors.Is(err, ErrAuthExpired) {
		t.Fatalf("error = %v, want ErrAuthExpired", err)
	}
	if refreshCalls != 1 {
		t.Errorf("refresh calls = %d, want exactly 1", refreshCalls)
	}
	if !auth.cleared {
		t.Errorf("auth not cleared after second 401")
	}
}

func TestRefreshFailureClearsAuth(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/token/refresh/" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Token is invalid"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"token_not_valid"}`))
	}))

	auth := &fakeAuth{access: "stale", refresh: "dead"}
	_, err := client.Safaris(context.Background(), auth)
	if !errors.Is(err, ErrAuthExpired) {
		t.Fatalf("error = %v, want ErrAuthExpired", err)
	}
	if !auth.cleared {
		t.Errorf("auth not cleared after refresh failure")
	}
}

func TestMissingRefreshTokenFailsWithoutRefreshCall(t *testing.T) {
	var refreshCalls int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/token/refresh/" {
			refreshCalls++
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"token_not_valid"}`))
	}))

	auth := &fakeAuth{access: "stale"}
	_, err := client.Safaris(context.Background(), auth)
	if !errors.Is(err, ErrAuthExpired) {
		t.Fatalf("error = %v, want ErrAuthExpired", err)
	}
	if refreshCalls != 0 {
		t.Errorf("refresh endpoint hit %d times with no refresh token", refreshCalls)
	}
}

func sampleDraft() models.BookingDraft {
	return models.BookingDraft{
		Name:                       "Jane Doe",
		Email:                      "jane@example.com",
		Phone:                      "+254700000001",
		Date:                       "2026-09-15",
		Guests:                     3,
		SpecialRequirements:        "window seats",
		EmergencyContactName:       "John Doe",
		EmergencyContactPhone:      "+254700000002",
		InsuranceOptions:           map[string]any{"provider": "TravelGuard", "policy_number": "ABC123"},
		SpecialDietaryRequirements: "vegetarian",
		Safari:                     7,
		Status:                     models.BookingStatusPending,
		TotalPrice:                 3600,
	}
}

func TestCreateBookingJSONEncoding(t *testing.T) {
	var gotContentType string
	var gotBody map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 42, "status": "pending"}`))
	}))

	booking, err := client.CreateBooking(context.Background(), &fakeAuth{}, sampleDraft(), nil)
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}
	if booking.ID != 42 {
		t.Errorf("bookingID = %d, want 42", booking.ID)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	if gotBody["name"] != "Jane Doe" || gotBody["guests"] != float64(3) || gotBody["total_price"] != float64(3600) {
		t.Errorf("unexpected JSON body: %v", gotBody)
	}
}

func TestCreateBookingMultipartEncoding(t *testing.T) {
	var gotContentType string
	var gotForm map[string]string
	var gotFile []byte
	var gotFilename string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		mediaType, params, err := mime.ParseMediaType(gotContentType)
		if err != nil || mediaType != "multipart/form-data" {
			t.Errorf("Content-Type = %q", gotContentType)
			return
		}
		reader := multipart.NewReader(r.Body, params["boundary"])
		form, err := reader.ReadForm(1 << 20)
		if err != nil {
			t.Errorf("failed to parse multipart form: %v", err)
			return
		}
		gotForm = make(map[string]string)
		for name, values := range form.Value {
			gotForm[name] = values[0]
		}
		if files := form.File["proof_of_payment"]; len(files) == 1 {
			gotFilename = files[0].Filename
			f, _ := files[0].Open()
			buf := make([]byte, files[0].Size)
			f.Read(buf)
			f.Close()
			gotFile = buf
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 43, "status": "pending"}`))
	}))

	proof := &models.FileUpload{
		Filename:    "transfer.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4 fake"),
	}
	if _, err := client.CreateBooking(context.Background(), &fakeAuth{}, sampleDraft(), proof); err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}

	// Every scalar field carries the same value the JSON encoding would.
	want := map[string]string{
		"name":        "Jane Doe",
		"email":       "jane@example.com",
		"phone":       "+254700000001",
		"date":        "2026-09-15",
		"guests":      "3",
		"safari":      "7",
		"status":      "pending",
		"total_price": "3600",
	}
	for field, value := range want {
		if gotForm[field] != value {
			t.Errorf("form field %s = %q, want %q", field, gotForm[field], value)
		}
	}
	var insurance map[string]any
	if err := json.Unmarshal([]byte(gotForm["insurance_options"]), &insurance); err != nil {
		t.Fatalf("insurance_options is not JSON: %q", gotForm["insurance_options"])
	}
	if insurance["provider"] != "TravelGuard" {
		t.Errorf("insurance_options = %v", insurance)
	}
	if gotFilename != "transfer.pdf" || string(gotFile) != "%PDF-1.4 fake" {
		t.Errorf("file part = %q (%d bytes)", gotFilename, len(gotFile))
	}
}

func TestErrorPayloadPropagated(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"date must not be in the past"}`))
	}))

	_, err := client.CreateBooking(context.Background(), &fakeAuth{}, sampleDraft(), nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Detail, "date must not be in the past") {
		t.Errorf("detail = %q", apiErr.Detail)
	}
}

func TestMpesaStatusMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pay/mpesa/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"ResponseDescription": "Success. Request accepted for processing"})
	}))

	resp, err := client.InitiateMpesaPayment(context.Background(), &fakeAuth{}, models.MpesaRequest{
		Amount: 250, Phone: "254700000001", AccommodationEnquiryID: 9,
	})
	if err != nil {
		t.Fatalf("InitiateMpesaPayment returned error: %v", err)
	}
	if resp.ResponseDescription != "Success. Request accepted for processing" {
		t.Errorf("description = %q", resp.ResponseDescription)
	}
}
