package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestProviderResponseError_Unwrap(t *testing.T) {
	err := NewProviderResponseError("bad json", http.StatusBadGateway, http.Header{"A": []string{"b"}})

	if !errors.Is(err, ErrProviderResponse) {
		t.Fatal("expected errors.Is(err, ErrProviderResponse)")
	}

	var provErr *ProviderResponseError
	if !errors.As(err, &provErr) {
		t.Fatal("expected errors.As to *ProviderResponseError")
	}
	if provErr.StatusCode != http.StatusBadGateway {
		t.Errorf("status: got %d", provErr.StatusCode)
	}
	if provErr.Header.Get("A") != "b" {
		t.Errorf("header: got %v", provErr.Header)
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("message should mention the status: %q", err.Error())
	}
}

func TestProviderResponseError_SurvivesWrapping(t *testing.T) {
	inner := NewProviderResponseError("x", 500, nil)
	wrapped := fmt.Errorf("search: %w", inner)

	var provErr *ProviderResponseError
	if !errors.As(wrapped, &provErr) {
		t.Fatal("wrapped error must still expose *ProviderResponseError")
	}
}
