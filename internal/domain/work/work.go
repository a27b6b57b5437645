package work

import (
	"context"
	"strings"
)

// Entry is one position in the work history. Dates are opaque strings.
type Entry struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

func (e Entry) MatchesQuery(q string) bool {
	text := e.Company + " " + e.Role + " " + e.Description
	return strings.Contains(strings.ToLower(text), q)
}

type Repository interface {
	// List returns entries ordered by start_date ascending.
	List(ctx context.Context) ([]Entry, error)
	Insert(ctx context.Context, e Entry) error
	DeleteAll(ctx context.Context) error
}
