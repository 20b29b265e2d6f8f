package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNotFoundWrapping(t *testing.T) {
	err := NotFound("wallet", "abc")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err.Error() != "wallet abc: not found" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestValidationRoundTrip(t *testing.T) {
	err := Validation("amount", "must be a decimal number")
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Field != "amount" {
		t.Fatalf("expected field amount, got %q", ve.Field)
	}

	wrapped := fmt.Errorf("apply: %w", err)
	if _, ok := AsValidation(wrapped); !ok {
		t.Fatal("expected validation error to survive wrapping")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{NotFound("wallet", "x"), http.StatusNotFound},
		{Validation("label", "empty"), http.StatusBadRequest},
		{fmt.Errorf("commit: %w", ErrConflict), http.StatusConflict},
		{fmt.Errorf("dial: %w", ErrUnavailable), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}
