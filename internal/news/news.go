package news

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"
)

const MaxTitleLength = 255

var (
	ErrNewsNotFound = errors.New("news not found")
	ErrValidation   = errors.New("invalid news")
)

type News struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	Content string `json:"content"`
	Date    Date   `json:"date"`
}

// ValidationError matches ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

type CreateRequest struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	Content string `json:"content"`
	Date    *Date  `json:"date"`
}

// Validate returns the trimmed article described by the request.
func (r CreateRequest) Validate(today Date) (News, error) {
	n := News{}
	var err error
	if n.Title, err = validTitle(r.Title); err != nil {
		return News{}, err
	}
	if n.Excerpt, err = validText("excerpt", r.Excerpt); err != nil {
		return News{}, err
	}
	if n.Content, err = validText("content", r.Content); err != nil {
		return News{}, err
	}
	if r.Date == nil || r.Date.IsZero() {
		return News{}, invalid("date", "date is required")
	}
	if err := validDate(*r.Date, today); err != nil {
		return News{}, err
	}
	n.Date = *r.Date
	return n, nil
}

// UpdateRequest holds the fields to change; absent fields are kept.
// A field sent as an explicit null is rejected by ApplyTo.
type UpdateRequest struct {
	Title   *string `json:"title"`
	Excerpt *string `json:"excerpt"`
	Content *string `json:"content"`
	Date    *Date   `json:"date"`

	nulls []string
}

func (r *UpdateRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.nulls = nil
	for _, field := range []string{"title", "excerpt", "content", "date"} {
		if v, ok := raw[field]; ok && string(bytes.TrimSpace(v)) == "null" {
			p.nulls = append(p.nulls, field)
		}
	}

	*r = UpdateRequest(p)
	return nil
}

// ApplyTo returns n with the supplied fields validated and applied.
func (r UpdateRequest) ApplyTo(n News, today Date) (News, error) {
	for _, field := range r.nulls {
		if field == "date" {
			return News{}, invalid(field, "date is required")
		}
		return News{}, invalid(field, field+" must not be empty")
	}

	var err error
	if r.Title != nil {
		if n.Title, err = validTitle(*r.Title); err != nil {
			return News{}, err
		}
	}
	if r.Excerpt != nil {
		if n.Excerpt, err = validText("excerpt", *r.Excerpt); err != nil {
			return News{}, err
		}
	}
	if r.Content != nil {
		if n.Content, err = validText("content", *r.Content); err != nil {
			return News{}, err
		}
	}
	if r.Date != nil {
		if err := validDate(*r.Date, today); err != nil {
			return News{}, err
		}
		n.Date = *r.Date
	}
	return n, nil
}

func validTitle(title string) (string, error) {
	title, err := validText("title", title)
	if err != nil {
		return "", err
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", invalid("title", "title must be at most 255 characters")
	}
	return title, nil
}

func validText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalid(field, field+" must not be empty")
	}
	return value, nil
}

func validDate(d, today Date) error {
	if d.After(today) {
		return invalid("date", "news date cannot be in the future")
	}
	return nil
}
