package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/six_jars_app/internal/apperrors"
	"github.com/SscSPs/six_jars_app/internal/core/domain"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// parseJar parses an optional jar code; "" and "AUTO" mean no jar.
func parseJar(s string) (*domain.JarType, error) {
	jar, err := domain.ParseJarTarget(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return jar, nil
}

// requireJar parses a jar code that may not be AUTO.
func requireJar(s string) (domain.JarType, error) {
	jar, err := parseJar(s)
	if err != nil {
		return "", err
	}
	if jar == nil {
		return "", fmt.Errorf("%w: a specific jar is required", apperrors.ErrValidation)
	}
	return *jar, nil
}

// timeOrZero leaves defaulting to the service.
func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
