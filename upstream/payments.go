package upstream

import (
	"context"

	"solvo/models"
)

// InitiateCardPayment starts a hosted card checkout for an accommodation
// enquiry and returns the checkout URL the browser should be sent to.
func (c *Client) InitiateCardPayment(ctx context.Context, auth Auth, req models.PaymentRequest) (*models.CheckoutResponse, error) {
	var out models.CheckoutResponse
	if err := c.postJSON(ctx, auth, "/pay/card/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// InitiatePayPalPayment starts a PayPal checkout and returns the checkout
// URL.
func (c *Client) InitiatePayPalPayment(ctx context.Context, auth Auth, req models.PaymentRequest) (*models.CheckoutResponse, error) {
	var out models.CheckoutResponse
	if err := c.postJSON(ctx, auth, "/pay/paypal/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// InitiateMpesaPayment triggers an M-Pesa STK push to the given phone. The
// returned description is shown to the user; completion happens out of band.
func (c *Client) InitiateMpesaPayment(ctx context.Context, auth Auth, req models.MpesaRequest) (*models.MpesaResponse, error) {
	var out models.MpesaResponse
	if err := c.postJSON(ctx, auth, "/pay/mpesa/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// InitiateStripePayment starts a Stripe checkout for a safari booking.
func (c *Client) InitiateStripePayment(ctx context.Context, auth Auth, req models.StripeRequest) (*models.CheckoutResponse, error) {
	var out models.CheckoutResponse
	if err := c.postJSON(ctx, auth, "/payments/stripe/initiate/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// InitiateIntaSendPayment starts an IntaSend checkout for a safari booking.
func (c *Client) InitiateIntaSendPayment(ctx context.Context, auth Auth, req models.StripeRequest) (*models.CheckoutResponse, error) {
	var out models.CheckoutResponse
	if err := c.postJSON(ctx, auth, "/payments/intasend/initiate/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RelayChatMessage forwards a chat turn to the upstream chat log. Callers
// treat failures as observable-but-non-fatal.
func (c *Client) RelayChatMessage(ctx context.Context, msg models.ChatMessage) error {
	return c.postJSON(ctx, nil, "/chat/", msg, nil)
}
