package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/peopledir/people-api/internal/core/domain"
	"github.com/peopledir/people-api/internal/core/ports"
)

// stubPersonRepo is an in-memory PersonRepository honouring the same filter
// contract as the real one: case-insensitive substring matches for name, city
// and job, and a case-insensitive prefix match for age as text.
type stubPersonRepo struct {
	persons map[int64]domain.Person
	nextID  int64
}

func newStubPersonRepo() *stubPersonRepo {
	return &stubPersonRepo{persons: make(map[int64]domain.Person)}
}

func (r *stubPersonRepo) FindByID(_ context.Context, id int64) (*domain.Person, error) {
	p, ok := r.persons[id]
	if !ok {
		return nil, domain.ErrPersonNotFound
	}
	return &p, nil
}

func (r *stubPersonRepo) FindPage(_ context.Context, f ports.PersonFilter, page, perPage int) ([]domain.Person, int64, error) {
	matched := make([]domain.Person, 0, len(r.persons))
	for _, p := range r.persons {
		if matches(p, f) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	start := (page - 1) * perPage
	if start >= len(matched) {
		return []domain.Person{}, total, nil
	}
	end := start + perPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func matches(p domain.Person, f ports.PersonFilter) bool {
	contains := func(haystack, needle string) bool {
		return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
	}
	if f.Name != "" && !contains(p.Name, f.Name) {
		return false
	}
	if f.City != "" && !contains(p.City, f.City) {
		return false
	}
	if f.Job != "" && !contains(p.Job, f.Job) {
		return false
	}
	if f.Age != "" && !strings.HasPrefix(strconv.Itoa(p.Age), f.Age) {
		return false
	}
	return true
}

func (r *stubPersonRepo) Insert(_ context.Context, p *domain.Person) error {
	r.nextID++
	p.ID = r.nextID
	r.persons[p.ID] = *p
	return nil
}

func (r *stubPersonRepo) Update(_ context.Context, p *domain.Person) error {
	if _, ok := r.persons[p.ID]; !ok {
		return domain.ErrPersonNotFound
	}
	r.persons[p.ID] = *p
	return nil
}

func (r *stubPersonRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.persons[id]; !ok {
		return domain.ErrPersonNotFound
	}
	delete(r.persons, id)
	return nil
}

// stubAudit records every Record call so tests can assert the audit policy.
type stubAudit struct {
	entries []domain.AuditEntry
}

func (a *stubAudit) Record(_ context.Context, actorID int64, affectedID *int64, action, details string) {
	a.entries = append(a.entries, domain.AuditEntry{
		ActorUserID: actorID,
		AffectedID:  affectedID,
		Action:      action,
		Details:     details,
	})
}

func newPersonService(repo *stubPersonRepo, audit *stubAudit) *PersonService {
	return NewPersonService(repo, audit, zerolog.Nop())
}

func seedRepo(t *testing.T, svc *PersonService, persons []ports.CreatePersonInput) {
	t.Helper()
	for _, in := range persons {
		if _, err := svc.Create(context.Background(), in); err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
	}
}

func samplePersons() []ports.CreatePersonInput {
	return []ports.CreatePersonInput{
		{ActorID: 1, Name: "محمد امینی", Age: 28, City: "تهران", Job: "برنامه‌نویس"},
		{ActorID: 1, Name: "سارا محمدی", Age: 34, City: "اصفهان", Job: "طراح"},
		{ActorID: 1, Name: "علی رضایی", Age: 22, City: "مشهد", Job: "مهندس"},
		{ActorID: 1, Name: "رضا حسینی", Age: 45, City: "تهران", Job: "حسابدار"},
		{ActorID: 1, Name: "نیلوفر احمدی", Age: 26, City: "تهران", Job: "طراح"},
		{ActorID: 1, Name: "حسن فرهادی", Age: 33, City: "مشهد", Job: "برنامه‌نویس"},
		{ActorID: 1, Name: "شیما صادقی", Age: 38, City: "تهران", Job: "حسابدار"},
	}
}

func TestPersonService_List_PaginationMetadata(t *testing.T) {
	repo := newStubPersonRepo()
	svc := newPersonService(repo, &stubAudit{})
	seedRepo(t, svc, samplePersons())

	result, err := svc.List(context.Background(), ports.ListPersonsInput{Page: 1, PerPage: 3})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.TotalItems != 7 {
		t.Fatalf("expected 7 total items, got %d", result.TotalItems)
	}
	if result.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", result.TotalPages)
	}
	if len(result.Items) != 3 {
		t.Fatalf("expected 3 items on page 1, got %d", len(result.Items))
	}
}

func TestPersonService_List_AllPagesSumToTotal(t *testing.T) {
	repo := newStubPersonRepo()
	svc := newPersonService(repo, &stubAudit{})
	seedRepo(t, svc, samplePersons())

	first, err := svc.List(context.Background(), ports.ListPersonsInput{
		Filter: ports.PersonFilter{City: "تهران"}, Page: 1, PerPage: 2,
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	seen := 0
	for page := 1; page <= first.TotalPages; page++ {
		result, err := svc.List(context.Background(), ports.ListPersonsInput{
			Filter: ports.PersonFilter{City: "تهران"}, Page: page, PerPage: 2,
		})
		if err != nil {
			t.Fatalf("List page %d returned error: %v", page, err)
		}
		seen += len(result.Items)
	}
	if int64(seen) != first.TotalItems {
		t.Fatalf("iterating pages yielded %d items, total_items is %d", seen, first.TotalItems)
	}
}

func TestPersonService_List_CityFilter(t *testing.T) {
	repo := newStubPersonRepo()
	svc := newPersonService(repo, &stubAudit{})
	seedRepo(t, svc, samplePersons())

	result, err := svc.List(context.Background(), ports.ListPersonsInput{
		Filter: ports.PersonFilter{City: "تهران"}, Page: 1, PerPage: 2,
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.TotalItems != 4 {
		t.Fatalf("expected 4 Tehran records, got %d", result.TotalItems)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items on page, got %d", len(result.Items))
	}
	for _, p := range result.Items {
		if p.City != "تهران" {
			t.Fatalf("unexpected city %q in filtered result", p.City)
		}
	}
}

func TestPersonService_List_AgePrefixFilter(t *testing.T) {
	repo := newStubPersonRepo()
	svc := newPersonService(repo, &stubAudit{})
	seedRepo(t, svc, samplePersons())

	// Ages starting with "3": 34, 33, 38.
	result, err := svc.List(context.Background(), ports.ListPersonsInput{
		Filter: ports.PersonFilter{Age: "3"}, Page: 1, PerPage: 10,
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.TotalItems != 3 {
		t.Fatalf("expected 3 records with age prefix 3, got %d", result.TotalItems)
	}
}

func TestPersonService_List_ClampsPageAndPerPage(t *testing.T) {
	repo := newStubPersonRepo()
	svc := newPersonService(repo, &stubAudit{})
	seedRepo(t, svc, samplePersons())

	result, err := svc.List(context.Background(), ports.ListPersonsInput{Page: 0, PerPage: -4})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Page != 1 {
		t.Fatalf("expected page clamped to 1, got %d", result.Page)
	}
	if result.PerPage != defaultPerPage {
		t.Fatalf("expected per_page clamped to %d, got %d", defaultPerPage, result.PerPage)
	}
	if result.TotalPages != 2 {
		t.Fatalf("expected ceil(7/5)=2 pages, got %d", result.TotalPages)
	}

	result, err = svc.List(context.Background(), ports.ListPersonsInput{Page: 1, PerPage: 5000})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.PerPage != maxPerPage {
		t.Fatalf("expected per_page capped at %d, got %d", maxPerPage, result.PerPage)
	}
}

func TestPersonService_List_PageBeyondEnd(t *testing.T) {
	repo := newStubPersonRepo()
	svc := newPersonService(repo, &stubAudit{})
	seedRepo(t, svc, samplePersons())

	result, err := svc.List(context.Background(), ports.ListPersonsInput{Page: 99, PerPage: 5})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(result.Items) != 0 {
		t.Fatalf("expected empty page, got %d items", len(result.Items))
	}
	if result.TotalItems != 7 {
		t.Fatalf("expected total_items unaffected by page, got %d", result.TotalItems)
	}
}

func TestPersonService_Create_RoundTrip(t *testing.T) {
	repo := newStubPersonRepo()
	audit := &stubAudit{}
	svc := newPersonService(repo, audit)

	created, err := svc.Create(context.Background(), ports.CreatePersonInput{
		ActorID: 1, Name: "X", Age: 30, City: "C", Job: "J",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if !created.IsActive {
		t.Fatalf("expected is_active to default to true")
	}

	fetched, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if *fetched != *created {
		t.Fatalf("fetched %+v does not match created %+v", fetched, created)
	}

	if len(audit.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(audit.entries))
	}
	entry := audit.entries[0]
	if entry.Action != domain.ActionCreatePerson {
		t.Fatalf("expected action %q, got %q", domain.ActionCreatePerson, entry.Action)
	}
	if entry.AffectedID == nil || *entry.AffectedID != created.ID {
		t.Fatalf("expected affected_id %d, got %v", created.ID, entry.AffectedID)
	}
	if entry.ActorUserID != 1 {
		t.Fatalf("expected actor 1, got %d", entry.ActorUserID)
	}
}

func TestPersonService_Create_ExplicitInactive(t *testing.T) {
	repo := newStubPersonRepo()
	svc := newPersonService(repo, &stubAudit{})

	inactive := false
	created, err := svc.Create(context.Background(), ports.CreatePersonInput{
		ActorID: 1, Name: "X", Age: 30, City: "C", Job: "J", IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.IsActive {
		t.Fatalf("expected explicit is_active=false to stick")
	}
}

func TestPersonService_Update_PartialFields(t *testing.T) {
	repo := newStubPersonRepo()
	audit := &stubAudit{}
	svc := newPersonService(repo, audit)

	created, _ := svc.Create(context.Background(), ports.CreatePersonInput{
		ActorID: 1, Name: "X", Age: 30, City: "C", Job: "J",
	})

	newCity := "D"
	updated, err := svc.Update(context.Background(), ports.UpdatePersonInput{
		ActorID: 1, ID: created.ID, City: &newCity,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.City != "D" {
		t.Fatalf("expected city updated, got %q", updated.City)
	}
	if updated.Name != "X" || updated.Age != 30 || updated.Job != "J" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	if len(audit.entries) != 2 || audit.entries[1].Action != domain.ActionUpdatePerson {
		t.Fatalf("expected an update_user audit entry, got %+v", audit.entries)
	}
}

func TestPersonService_Update_NotFound(t *testing.T) {
	repo := newStubPersonRepo()
	audit := &stubAudit{}
	svc := newPersonService(repo, audit)

	name := "Y"
	if _, err := svc.Update(context.Background(), ports.UpdatePersonInput{ActorID: 1, ID: 42, Name: &name}); err != domain.ErrPersonNotFound {
		t.Fatalf("expected ErrPersonNotFound, got %v", err)
	}
	if len(audit.entries) != 0 {
		t.Fatalf("failed update must not write audit entries, got %d", len(audit.entries))
	}
}

func TestPersonService_SetActive_AnonymousActor(t *testing.T) {
	repo := newStubPersonRepo()
	audit := &stubAudit{}
	svc := newPersonService(repo, audit)

	created, _ := svc.Create(context.Background(), ports.CreatePersonInput{
		ActorID: 1, Name: "X", Age: 30, City: "C", Job: "J",
	})

	toggled, err := svc.SetActive(context.Background(), domain.SystemActor, created.ID, false)
	if err != nil {
		t.Fatalf("SetActive returned error: %v", err)
	}
	if toggled.IsActive {
		t.Fatalf("expected is_active=false after toggle")
	}

	entry := audit.entries[len(audit.entries)-1]
	if entry.Action != domain.ActionToggleActive {
		t.Fatalf("expected toggle_active entry, got %q", entry.Action)
	}
	if entry.ActorUserID != domain.SystemActor {
		t.Fatalf("expected system actor 0, got %d", entry.ActorUserID)
	}
}

func TestPersonService_Delete_ThenGetNotFound(t *testing.T) {
	repo := newStubPersonRepo()
	audit := &stubAudit{}
	svc := newPersonService(repo, audit)

	created, _ := svc.Create(context.Background(), ports.CreatePersonInput{
		ActorID: 1, Name: "X", Age: 30, City: "C", Job: "J",
	})

	if err := svc.Delete(context.Background(), 1, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); err != domain.ErrPersonNotFound {
		t.Fatalf("expected ErrPersonNotFound after delete, got %v", err)
	}

	entry := audit.entries[len(audit.entries)-1]
	if entry.Action != domain.ActionDeletePerson {
		t.Fatalf("expected delete_user entry, got %q", entry.Action)
	}
	if entry.AffectedID == nil || *entry.AffectedID != created.ID {
		t.Fatalf("expected affected_id %d, got %v", created.ID, entry.AffectedID)
	}
}

func TestPersonService_Delete_NotFound(t *testing.T) {
	repo := newStubPersonRepo()
	audit := &stubAudit{}
	svc := newPersonService(repo, audit)

	if err := svc.Delete(context.Background(), 1, 42); err != domain.ErrPersonNotFound {
		t.Fatalf("expected ErrPersonNotFound, got %v", err)
	}
	if len(audit.entries) != 0 {
		t.Fatalf("failed delete must not write audit entries")
	}
}
