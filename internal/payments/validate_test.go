package payments

import (
	"errors"
	"testing"
)

func TestValidateCard(t *testing.T) {
	valid := Checkout{
		PlanID:     "pro",
		CardName:   "Ada Lovelace",
		CardNumber: "4242424242424242",
		CardExpiry: "09/29",
		CardCVC:    "123",
	}
	if err := ValidateCard(valid); err != nil {
		t.Fatalf("expected valid card, got %v", err)
	}

	cases := []struct {
		name  string
		edit  func(*Checkout)
		field string
		want  string
	}{
		{"blank name", func(c *Checkout) { c.CardName = "  " }, "cardName", "Cardholder name is required"},
		{"short number", func(c *Checkout) { c.CardNumber = "4242" }, "cardNumber", "Card number must be 16 digits"},
		{"letters in number", func(c *Checkout) { c.CardNumber = "42424242abcd4242" }, "cardNumber", "Card number must contain only digits"},
		{"bad month", func(c *Checkout) { c.CardExpiry = "13/29" }, "cardExpiry", "Expiry date must be in MM/YY format"},
		{"long year", func(c *Checkout) { c.CardExpiry = "09/2029" }, "cardExpiry", "Expiry date must be in MM/YY format"},
		{"short cvc", func(c *Checkout) { c.CardCVC = "12" }, "cardCvc", "CVC must be 3-4 digits"},
		{"letters in cvc", func(c *Checkout) { c.CardCVC = "12a" }, "cardCvc", "CVC must contain only digits"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.edit(&c)
			var cardErr *CardError
			if err := ValidateCard(c); !errors.As(err, &cardErr) {
				t.Fatalf("expected CardError, got %v", err)
			}
			if got := cardErr.Fields[tc.field]; got != tc.want {
				t.Fatalf("field %s: expected %q, got %q", tc.field, tc.want, got)
			}
			if cardErr.Error() != tc.want {
				t.Fatalf("expected message %q, got %q", tc.want, cardErr.Error())
			}
		})
	}
}
