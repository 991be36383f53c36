package ports

import (
	"context"

	"github.com/peopledir/people-api/internal/core/domain"
)

// ListPersonsInput carries all parameters for the list endpoint.
type ListPersonsInput struct {
	Filter  PersonFilter
	Page    int // 1-based; non-positive values are clamped to 1
	PerPage int // non-positive values fall back to the default page size
}

// ListPersonsResult is the paginated view returned by List. TotalPages is
// ceil(TotalItems / PerPage) over the filtered set before slicing.
type ListPersonsResult struct {
	Items      []domain.Person
	Page       int
	PerPage    int
	TotalItems int64
	TotalPages int
}

// CreatePersonInput carries a new record. IsActive defaults to true when nil.
type CreatePersonInput struct {
	ActorID  int64
	Name     string
	Age      int
	City     string
	Job      string
	IsActive *bool
}

// UpdatePersonInput carries a partial edit; nil fields are left untouched.
type UpdatePersonInput struct {
	ActorID int64
	ID      int64
	Name    *string
	Age     *int
	City    *string
	Job     *string
}

// PersonService defines use-case operations for directory records. Mutating
// operations record one audit entry on success, attributed to ActorID.
type PersonService interface {
	List(ctx context.Context, input ListPersonsInput) (*ListPersonsResult, error)
	Get(ctx context.Context, id int64) (*domain.Person, error)
	Create(ctx context.Context, input CreatePersonInput) (*domain.Person, error)
	Update(ctx context.Context, input UpdatePersonInput) (*domain.Person, error)
	// SetActive flips the is_active flag. It is reachable without a session;
	// callers pass domain.SystemActor when no actor is known.
	SetActive(ctx context.Context, actorID, id int64, active bool) (*domain.Person, error)
	Delete(ctx context.Context, actorID, id int64) error
}
