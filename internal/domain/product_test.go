package domain_test

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

func TestParsePrice(t *testing.T) {
	price, err := domain.ParsePrice("20.00")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if price.StringFixed(2) != "20.00" {
		t.Fatalf("expected 20.00, got %s", price.StringFixed(2))
	}
}

func TestParsePriceCommaSeparator(t *testing.T) {
	price, err := domain.ParsePrice("20,50")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if price.StringFixed(2) != "20.50" {
		t.Fatalf("expected 20.50, got %s", price.StringFixed(2))
	}
}

func TestParsePriceRejectsInvalid(t *testing.T) {
	for _, raw := range []string{"", "abc", "0", "0.00", "-5", "-0.01"} {
		_, err := domain.ParsePrice(raw)
		if !errors.Is(err, domain.ErrProductPriceInvalid) {
			t.Fatalf("expected %q to be rejected with price error, got %v", raw, err)
		}
	}
}
