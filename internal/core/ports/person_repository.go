package ports

import (
	"context"

	"github.com/peopledir/people-api/internal/core/domain"
)

// PersonFilter carries the optional list filters. Name, City and Job are
// case-insensitive substring matches; Age is a case-insensitive prefix match
// against the stored age rendered as text.
type PersonFilter struct {
	Name string
	City string
	Job  string
	Age  string
}

// PersonRepository defines persistence operations for directory records.
type PersonRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Person, error)
	// FindPage returns one id-ordered page of records matching filter and the
	// total count of matching records before pagination.
	FindPage(ctx context.Context, filter PersonFilter, page, perPage int) ([]domain.Person, int64, error)
	// Insert persists a new record, assigning the next id from the sequence.
	Insert(ctx context.Context, p *domain.Person) error
	Update(ctx context.Context, p *domain.Person) error
	Delete(ctx context.Context, id int64) error
}
