package services

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/docmind/internal/client/client"
	"github.com/dmitrijs2005/docmind/internal/common"
)

// MaxPageSize is the largest limit the backend accepts on list endpoints.
const MaxPageSize = 100

// Page selects a slice of a list endpoint.
type Page struct {
	Skip  int
	Limit int
}

func (p Page) values() url.Values {
	skip := max(p.Skip, 0)
	limit := p.Limit
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}
	return url.Values{"skip": {strconv.Itoa(skip)}, "limit": {strconv.Itoa(limit)}}
}

// disabled builds the error returned by a switched-off service.
func disabled(feature string) error {
	return &client.ValidationError{
		Field:   feature,
		Message: fmt.Sprintf("The %s feature is currently disabled", feature),
		Err:     common.ErrFeatureDisabled,
	}
}

func gate(enabled bool, feature string) error {
	if !enabled {
		return disabled(feature)
	}
	return nil
}

func requireID(field, id string) error {
	if id == "" {
		return client.NewValidationError(field, "is required")
	}
	return nil
}

// DeleteResponse is the body returned by delete endpoints.
type DeleteResponse struct {
	Detail string `json:"detail"`
}
