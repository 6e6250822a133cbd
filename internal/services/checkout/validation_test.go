package checkout

import (
	"strings"
	"testing"

	"foodtruck-storefront/internal/models"
	"foodtruck-storefront/internal/services/cart"
)

func TestValidateSubmission(t *testing.T) {
	fill := func(c *cart.Cart) *cart.Cart {
		c.Add(models.MenuItem{ID: 1, Name: "Burger", Price: 8.00}, 1, nil, nil)
		return c
	}

	tests := []struct {
		name      string
		contact   ContactInfo
		cart      *cart.Cart
		wantErr   bool
		wantField string
	}{
		{
			name:    "valid submission",
			contact: ContactInfo{CustomerName: "Ana", CustomerPhone: "555-0100", PaymentToken: "tok_visa"},
			cart:    fill(cart.New()),
			wantErr: false,
		},
		{
			name:      "missing customer name",
			contact:   ContactInfo{CustomerPhone: "555-0100", PaymentToken: "tok_visa"},
			cart:      fill(cart.New()),
			wantErr:   true,
			wantField: "customer_name",
		},
		{
			name:      "customer name too long",
			contact:   ContactInfo{CustomerName: strings.Repeat("a", 101), CustomerPhone: "555-0100", PaymentToken: "tok_visa"},
			cart:      fill(cart.New()),
			wantErr:   true,
			wantField: "customer_name",
		},
		{
			name:      "missing customer phone",
			contact:   ContactInfo{CustomerName: "Ana", PaymentToken: "tok_visa"},
			cart:      fill(cart.New()),
			wantErr:   true,
			wantField: "customer_phone",
		},
		{
			name:      "missing payment token",
			contact:   ContactInfo{CustomerName: "Ana", CustomerPhone: "555-0100"},
			cart:      fill(cart.New()),
			wantErr:   true,
			wantField: "payment_token",
		},
		{
			name:      "empty cart",
			contact:   ContactInfo{CustomerName: "Ana", CustomerPhone: "555-0100", PaymentToken: "tok_visa"},
			cart:      cart.New(),
			wantErr:   true,
			wantField: "items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSubmission(tt.contact, tt.cart)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateSubmission() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				vErr, ok := err.(ValidationError)
				if !ok {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if vErr.Field != tt.wantField {
					t.Errorf("field = %q, want %q", vErr.Field, tt.wantField)
				}
			}
		})
	}
}
