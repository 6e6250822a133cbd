package checkout

import (
	"fmt"

	"foodtruck-storefront/internal/services/cart"
)

// ContactInfo is what the customer must provide before submitting
type ContactInfo struct {
	CustomerName  string
	CustomerPhone string
	PaymentToken  string
}

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// validateSubmission enforces the checkout preconditions. The UI disables
// the submit trigger on the same conditions, but they are re-checked here
// so a violated precondition fails fast locally instead of reaching the
// network.
func validateSubmission(contact ContactInfo, c *cart.Cart) error {
	if contact.CustomerName == "" {
		return ValidationError{
			Field:   "customer_name",
			Message: "customer name is required",
		}
	}

	if len(contact.CustomerName) > 100 {
		return ValidationError{
			Field:   "customer_name",
			Message: "customer name must be less than 100 characters",
		}
	}

	if contact.CustomerPhone == "" {
		return ValidationError{
			Field:   "customer_phone",
			Message: "customer phone is required",
		}
	}

	if contact.PaymentToken == "" {
		return ValidationError{
			Field:   "payment_token",
			Message: "payment token is required",
		}
	}

	if c.IsEmpty() {
		return ValidationError{
			Field:   "items",
			Message: "cart cannot be empty",
		}
	}

	return nil
}
