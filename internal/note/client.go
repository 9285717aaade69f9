package note

import (
	"fmt"
	"regexp"
	"strings"
)

// ClientStatus is the archive state of a client.
type ClientStatus string

const (
	StatusActive   ClientStatus = "active"
	StatusArchived ClientStatus = "archived"
)

// ClientFilter selects which clients the backend lists.
type ClientFilter string

const (
	FilterActive   ClientFilter = "active"
	FilterArchived ClientFilter = "archived"
	FilterAll      ClientFilter = "all"
)

var filterOrder = []ClientFilter{FilterActive, FilterArchived, FilterAll}

func ParseFilter(s string) (ClientFilter, error) {
	f := ClientFilter(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range filterOrder {
		if f == valid {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid filter %q: choose active, archived, or all", s)
}

// Next cycles active → archived → all → active.
func (f ClientFilter) Next() ClientFilter {
	for i, valid := range filterOrder {
		if f == valid {
			return filterOrder[(i+1)%len(filterOrder)]
		}
	}
	return FilterActive
}

var clientCodePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Client is a client record as returned by the backend.
type Client struct {
	ID          int          `json:"id"`
	Code        string       `json:"client_code"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Email       string       `json:"email,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	DateOfBirth Date         `json:"date_of_birth"`
	Status      ClientStatus `json:"status"`
}

func (c Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c Client) Archived() bool {
	return c.Status == StatusArchived
}

// Label is the one-line form used in lists and pickers.
func (c Client) Label() string {
	if c.Code == "" {
		return c.FullName()
	}
	return fmt.Sprintf("%s — %s", c.Code, c.FullName())
}

// Check verifies a decoded client before it reaches the UI.
func (c Client) Check() error {
	if c.ID <= 0 {
		return &ShapeError{Record: "client", Field: "id", Reason: "must be positive"}
	}
	switch c.Status {
	case StatusActive, StatusArchived:
	case "":
		return &ShapeError{Record: "client", Field: "status", Reason: "is missing"}
	default:
		return &ShapeError{Record: "client", Field: "status", Reason: fmt.Sprintf("has unknown value %q", c.Status)}
	}
	return nil
}

// ClientInput is the body of client create and update requests.
type ClientInput struct {
	Code        string `json:"client_code"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth *Date  `json:"date_of_birth,omitempty"`
}

// InputFrom copies the editable fields of c.
func InputFrom(c Client) ClientInput {
	in := ClientInput{
		Code:      c.Code,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
	if !c.DateOfBirth.IsZero() {
		dob := c.DateOfBirth
		in.DateOfBirth = &dob
	}
	return in
}

func (in ClientInput) Validate() error {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return &ValidationError{Field: "client_code", Message: "is required"}
	}
	if !clientCodePattern.MatchString(code) {
		return &ValidationError{
			Field:   "client_code",
			Message: "may only contain letters, digits, '_', '.' and '-'",
		}
	}
	if strings.TrimSpace(in.FirstName) == "" {
		return &ValidationError{Field: "first_name", Message: "is required"}
	}
	if strings.TrimSpace(in.LastName) == "" {
		return &ValidationError{Field: "last_name", Message: "is required"}
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		return &ValidationError{Field: "email", Message: "is not an email address"}
	}
	return nil
}
