package erpnext

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnreachable marks transport failures where no response was received.
var ErrUnreachable = errors.New("erpnext unreachable")

// ConfigError reports missing client configuration (base URL or credentials).
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

// StatusError reports a non-2xx response from the ERPNext API.
type StatusError struct {
	StatusCode int
	Status     string
	Doctype    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s listing returned %s", e.Doctype, e.Status)
}

// StatusFor maps a client error to the outward HTTP status code and detail
// message. The mapping is identical for every data endpoint:
//
//	configuration error    -> 500, message verbatim
//	upstream 401           -> 401, fixed message
//	any other upstream     -> 502, wrapping the upstream error text
//	upstream unreachable   -> 502, fixed message
func StatusFor(err error) (int, string) {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return http.StatusInternalServerError, cfgErr.Error()
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusUnauthorized {
			return http.StatusUnauthorized, "ERPNext authentication failed"
		}
		return http.StatusBadGateway, "ERPNext API error: " + statusErr.Error()
	}
	if errors.Is(err, ErrUnreachable) {
		return http.StatusBadGateway, "Cannot connect to ERPNext"
	}
	return http.StatusInternalServerError, err.Error()
}
