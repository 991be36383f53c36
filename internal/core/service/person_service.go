package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/peopledir/people-api/internal/api/metrics"
	"github.com/peopledir/people-api/internal/core/domain"
	"github.com/peopledir/people-api/internal/core/ports"
)

const (
	defaultPerPage = 5
	maxPerPage     = 100
)

// PersonService implements the directory use cases: filtered pagination and
// the audited mutations.
type PersonService struct {
	repo   ports.PersonRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewPersonService(repo ports.PersonRepository, audit ports.AuditRecorder, logger zerolog.Logger) *PersonService {
	return &PersonService{repo: repo, audit: audit, logger: logger}
}

// List returns one page of records matching the filter plus pagination
// metadata. Page and PerPage are clamped defensively: page below 1 becomes 1,
// per_page below 1 becomes the default, and per_page is capped.
func (s *PersonService) List(ctx context.Context, input ports.ListPersonsInput) (*ports.ListPersonsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	perPage := input.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	items, total, err := s.repo.FindPage(ctx, input.Filter, page, perPage)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list persons")
		return nil, err
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	return &ports.ListPersonsResult{
		Items:      items,
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

func (s *PersonService) Get(ctx context.Context, id int64) (*domain.Person, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PersonService) Create(ctx context.Context, input ports.CreatePersonInput) (*domain.Person, error) {
	person := &domain.Person{
		Name:     input.Name,
		Age:      input.Age,
		City:     input.City,
		Job:      input.Job,
		IsActive: true,
	}
	if input.IsActive != nil {
		person.IsActive = *input.IsActive
	}

	if err := s.repo.Insert(ctx, person); err != nil {
		s.logger.Error().Err(err).Msg("failed to create person")
		return nil, err
	}

	s.logger.Info().Int64("person_id", person.ID).Int64("actor_id", input.ActorID).Msg("person created")
	metrics.PersonMutationsTotal.WithLabelValues(domain.ActionCreatePerson).Inc()
	s.audit.Record(ctx, input.ActorID, &person.ID, domain.ActionCreatePerson,
		fmt.Sprintf("created person %q (id %d)", person.Name, person.ID))

	return person, nil
}

func (s *PersonService) Update(ctx context.Context, input ports.UpdatePersonInput) (*domain.Person, error) {
	person, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		person.Name = *input.Name
	}
	if input.Age != nil {
		person.Age = *input.Age
	}
	if input.City != nil {
		person.City = *input.City
	}
	if input.Job != nil {
		person.Job = *input.Job
	}

	if err := s.repo.Update(ctx, person); err != nil {
		s.logger.Error().Err(err).Int64("person_id", person.ID).Msg("failed to update person")
		return nil, err
	}

	metrics.PersonMutationsTotal.WithLabelValues(domain.ActionUpdatePerson).Inc()
	s.audit.Record(ctx, input.ActorID, &person.ID, domain.ActionUpdatePerson,
		fmt.Sprintf("updated person %q (id %d)", person.Name, person.ID))

	return person, nil
}

// SetActive flips the is_active flag. This is the one mutation reachable
// without a session: actorID is domain.SystemActor when nobody is logged in.
func (s *PersonService) SetActive(ctx context.Context, actorID, id int64, active bool) (*domain.Person, error) {
	person, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	person.IsActive = active
	if err := s.repo.Update(ctx, person); err != nil {
		s.logger.Error().Err(err).Int64("person_id", id).Msg("failed to toggle person")
		return nil, err
	}

	state := "deactivated"
	if active {
		state = "activated"
	}
	metrics.PersonMutationsTotal.WithLabelValues(domain.ActionToggleActive).Inc()
	s.audit.Record(ctx, actorID, &person.ID, domain.ActionToggleActive,
		fmt.Sprintf("%s person %q (id %d)", state, person.Name, person.ID))

	return person, nil
}

func (s *PersonService) Delete(ctx context.Context, actorID, id int64) error {
	person, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("person_id", id).Msg("failed to delete person")
		return err
	}

	metrics.PersonMutationsTotal.WithLabelValues(domain.ActionDeletePerson).Inc()
	s.audit.Record(ctx, actorID, &id, domain.ActionDeletePerson,
		fmt.Sprintf("deleted person %q (id %d)", person.Name, id))

	return nil
}
