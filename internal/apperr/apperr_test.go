package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeEmptyCheckout, http.StatusConflict},
		{CodePartialOrder, http.StatusBadGateway},
		{CodeUpstream, http.StatusBadGateway},
		{ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := New(tc.code, "x").HTTPStatusCode(); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.code, tc.want, got)
		}
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := errors.New("boom")
	err := fmt.Errorf("handler: %w", Wrap(inner, CodeUpstream, "backend failed"))

	if !Is(err, CodeUpstream) {
		t.Error("Expected CodeUpstream through wrapping")
	}
	if !errors.Is(err, inner) {
		t.Error("Expected inner error to be reachable")
	}

	appErr, ok := As(err)
	if !ok || appErr.Message != "backend failed" {
		t.Errorf("Unexpected AppError: %+v", appErr)
	}
}

func TestWithRedirect(t *testing.T) {
	err := New(CodeEmptyCheckout, "nothing to check out").WithRedirect("/cart")
	if err.Redirect != "/cart" {
		t.Errorf("Expected redirect /cart, got %q", err.Redirect)
	}
}
