package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	status := http.StatusText(e.StatusCode)
	if status == "" {
		status = fmt.Sprintf("status %d", e.StatusCode)
	}
	if e.Detail == "" {
		return fmt.Sprintf("backend returned %d %s", e.StatusCode, status)
	}
	return fmt.Sprintf("backend returned %d %s: %s", e.StatusCode, status, e.Detail)
}

// NetworkError wraps a transport failure; the request may not have reached
// the backend at all.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("cannot reach backend (%s %s): %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type validationIssue struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// decodeDetail flattens `{"detail": string | [{loc, msg}]}` into one line.
func decodeDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		return detail
	}

	var issues []validationIssue
	if err := json.Unmarshal(payload.Detail, &issues); err == nil {
		parts := make([]string, 0, len(issues))
		for _, issue := range issues {
			loc := make([]string, 0, len(issue.Loc))
			for _, l := range issue.Loc {
				loc = append(loc, fmt.Sprint(l))
			}
			if len(loc) == 0 {
				parts = append(parts, issue.Msg)
				continue
			}
			parts = append(parts, fmt.Sprintf("%s: %s", strings.Join(loc, "."), issue.Msg))
		}
		return strings.Join(parts, "; ")
	}

	return string(payload.Detail)
}
