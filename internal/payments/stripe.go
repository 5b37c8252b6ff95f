package payments

import (
	"context"
	"math"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// IntentCreator is what the payment handler needs from the gateway; tests
// fake it.
type IntentCreator interface {
	CreateIntent(ctx context.Context, charge float64) (clientSecret string, err error)
}

// StripeGateway creates card PaymentIntents. The charge arrives in the
// merchant currency and is converted to cents for the API.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &StripeGateway{api: api}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, charge float64) (string, error) {
	amount := int64(math.Round(charge * 100))

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := g.api.PaymentIntents.New(params)

	if err != nil {
		return "", err
	}

	return intent.ClientSecret, nil
}
