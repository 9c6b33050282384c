package utils

import (
	"math"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
)

// CreatePaymentIntent opens a Stripe payment intent for the given dollar
// amount. Stripe expects amounts in cents.
func CreatePaymentIntent(secretKey string, amount float64, metadata map[string]string) (*stripe.PaymentIntent, error) {
	stripe.Key = secretKey

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(amount * 100))),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	return paymentintent.New(params)
}

// RetrievePaymentIntent re-queries Stripe for the intent's current state.
// Callers must check the returned status; a client-supplied success claim
// is never trusted.
func RetrievePaymentIntent(secretKey, id string) (*stripe.PaymentIntent, error) {
	stripe.Key = secretKey
	return paymentintent.Get(id, nil)
}
