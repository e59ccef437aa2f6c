package payments

import (
	"regexp"
	"strings"
)

var (
	digitsOnly = regexp.MustCompile(`^\d+$`)
	expiryRE   = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
)

// FieldErrors maps a form field to the first rule it broke.
type FieldErrors map[string]string

// CardError reports every invalid card field.
type CardError struct {
	Fields FieldErrors
}

func (e *CardError) Error() string {
	for _, field := range []string{"cardName", "cardNumber", "cardExpiry", "cardCvc"} {
		if msg, ok := e.Fields[field]; ok {
			return msg
		}
	}
	return "invalid card details"
}

// ValidateCard checks card fields the way the checkout form does and returns nil
// when all pass.
func ValidateCard(c Checkout) error {
	fields := FieldErrors{}

	if strings.TrimSpace(c.CardName) == "" {
		fields["cardName"] = "Cardholder name is required"
	}

	switch {
	case len(c.CardNumber) != 16:
		fields["cardNumber"] = "Card number must be 16 digits"
	case !digitsOnly.MatchString(c.CardNumber):
		fields["cardNumber"] = "Card number must contain only digits"
	}

	if !expiryRE.MatchString(c.CardExpiry) {
		fields["cardExpiry"] = "Expiry date must be in MM/YY format"
	}

	switch {
	case len(c.CardCVC) < 3 || len(c.CardCVC) > 4:
		fields["cardCvc"] = "CVC must be 3-4 digits"
	case !digitsOnly.MatchString(c.CardCVC):
		fields["cardCvc"] = "CVC must contain only digits"
	}

	if len(fields) > 0 {
		return &CardError{Fields: fields}
	}
	return nil
}
