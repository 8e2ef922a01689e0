package partnerships

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/osa-portal/osa-portal/internal/audit"
	"github.com/osa-portal/osa-portal/internal/shared"
)

type memoryRepo struct {
	records map[uuid.UUID]Partnership
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: make(map[uuid.UUID]Partnership)}
}

func (r *memoryRepo) List(ctx context.Context, filters Filters) ([]Partnership, error) {
	var result []Partnership
	for _, p := range r.records {
		if filters.Department != "" && p.Department != filters.Department {
			continue
		}
		if filters.Status != "" && string(p.Status) != filters.Status {
			continue
		}
		if filters.SchoolYear != "" && p.SchoolYear != filters.SchoolYear {
			continue
		}
		if filters.Search != "" {
			needle := strings.ToLower(filters.Search)
			if !strings.Contains(strings.ToLower(p.BusinessName), needle) &&
				!strings.Contains(strings.ToLower(p.ContactPerson), needle) {
				continue
			}
		}
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *memoryRepo) Get(ctx context.Context, id uuid.UUID) (*Partnership, error) {
	p, ok := r.records[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

func (r *memoryRepo) Create(ctx context.Context, p *Partnership) error {
	r.records[p.ID] = *p
	return nil
}

func (r *memoryRepo) Update(ctx context.Context, p *Partnership) error {
	if _, ok := r.records[p.ID]; !ok {
		return shared.ErrNotFound
	}
	r.records[p.ID] = *p
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.records[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *memoryRepo) StatRows(ctx context.Context, department string) ([]StatRow, error) {
	var rows []StatRow
	for _, p := range r.records {
		if department != "" && p.Department != department {
			continue
		}
		rows = append(rows, StatRow{Status: p.Status, Department: p.Department})
	}
	return rows, nil
}

func (r *memoryRepo) DashboardRows(ctx context.Context) ([]DashboardRow, error) {
	var rows []DashboardRow
	for _, p := range r.records {
		rows = append(rows, DashboardRow{Status: p.Status, Department: p.Department, ExpirationDate: p.ExpirationDate})
	}
	return rows, nil
}

func (r *memoryRepo) MarkExpiredForRenewal(ctx context.Context) ([]Partnership, error) {
	now := time.Now()
	var flipped []Partnership
	for id, p := range r.records {
		if p.Status == StatusActive && p.ExpirationDate.Before(now) {
			p.Status = StatusForRenewal
			r.records[id] = p
			flipped = append(flipped, p)
		}
	}
	return flipped, nil
}

type memoryRecorder struct {
	entries []audit.Entry
	err     error
}

func (r *memoryRecorder) Record(ctx context.Context, entry audit.Entry) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entry)
	return nil
}

type memoryStore struct {
	saved   int
	removed []string
}

func (s *memoryStore) Save(ctx context.Context, originalName, contentType string, content io.Reader) (string, error) {
	s.saved++
	return fmt.Sprintf("/uploads/test-%d.jpg", s.saved), nil
}

func (s *memoryStore) Remove(ctx context.Context, url string) error {
	s.removed = append(s.removed, url)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func samplePartnership(department string) *Partnership {
	established := time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)
	return &Partnership{
		ID:                 uuid.New(),
		BusinessName:       "Acme Trading",
		Department:         department,
		Address:            "123 Rizal Ave",
		ContactPerson:      "Juan Dela Cruz",
		ManagerSupervisor1: "Maria Santos",
		Email:              "partner@acme.test",
		ContactNumber:      "09171234567",
		DateEstablished:    established,
		ExpirationDate:     established.AddDate(1, 0, 0),
		SchoolYear:         SchoolYear(established),
		Status:             StatusActive,
		CreatedBy:          uuid.New(),
		CreatedAt:          time.Now().UTC(),
	}
}

func sampleInput(department string) Input {
	established := time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)
	return Input{
		BusinessName:       "Acme Trading",
		Department:         department,
		Address:            "123 Rizal Ave",
		ContactPerson:      "Juan Dela Cruz",
		ManagerSupervisor1: "Maria Santos",
		Email:              "partner@acme.test",
		ContactNumber:      "09171234567",
		DateEstablished:    established,
		ExpirationDate:     established.AddDate(1, 0, 0),
		Status:             StatusActive,
	}
}

func newTestService(repo Repository, recorder audit.Recorder, store *memoryStore) *Service {
	if store == nil {
		store = &memoryStore{}
	}
	return NewService(repo, store, recorder, nil, testLogger())
}

func TestCreateForcesDepartmentForDepartmentRole(t *testing.T) {
	repo := newMemoryRepo()
	recorder := &memoryRecorder{}
	svc := newTestService(repo, recorder, nil)

	identity := &shared.Identity{UserID: uuid.New(), Role: shared.RoleDepartment, Department: "STE"}
	input := sampleInput("CET")

	view, err := svc.Create(context.Background(), identity, input, nil)
	require.NoError(t, err)

	full, ok := view.(FullView)
	require.True(t, ok)
	require.Equal(t, "STE", full.Department)
	require.Equal(t, "2024-2025", full.SchoolYear)
	require.Equal(t, identity.UserID, full.CreatedBy)

	require.Len(t, recorder.entries, 1)
	require.Equal(t, audit.ActionCreate, recorder.entries[0].Action)
	require.Equal(t, "partnerships", recorder.entries[0].TableName)
	require.Nil(t, recorder.entries[0].OldValues)
}

func TestCreateRejectsViewer(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, &memoryRecorder{}, nil)

	identity := &shared.Identity{UserID: uuid.New(), Role: shared.RoleViewer}
	_, err := svc.Create(context.Background(), identity, sampleInput("CET"), nil)
	require.ErrorIs(t, err, shared.ErrForbidden)
	require.Empty(t, repo.records)
}

func TestUpdateForbiddenAcrossDepartments(t *testing.T) {
	repo := newMemoryRepo()
	recorder := &memoryRecorder{}
	svc := newTestService(repo, recorder, nil)

	record := samplePartnership("CET")
	repo.records[record.ID] = *record

	identity := &shared.Identity{UserID: uuid.New(), Role: shared.RoleDepartment, Department: "STE"}
	input := sampleInput("CET")
	input.BusinessName = "Hijacked"

	_, err := svc.Update(context.Background(), identity, record.ID, input, nil)
	require.ErrorIs(t, err, shared.ErrForbidden)

	stored := repo.records[record.ID]
	require.Equal(t, "Acme Trading", stored.BusinessName)
	require.Empty(t, recorder.entries)
}

func TestUpdateKeepsOwningDepartmentAndAudits(t *testing.T) {
	repo := newMemoryRepo()
	recorder := &memoryRecorder{}
	svc := newTestService(repo, recorder, nil)

	record := samplePartnership("CET")
	repo.records[record.ID] = *record

	identity := &shared.Identity{UserID: uuid.New(), Role: shared.RoleDepartment, Department: "CET"}
	input := sampleInput("STE")
	input.BusinessName = "Acme Renewed"

	view, err := svc.Update(context.Background(), identity, record.ID, input, nil)
	require.NoError(t, err)

	full, ok := view.(FullView)
	require.True(t, ok)
	require.Equal(t, "CET", full.Department)
	require.Equal(t, "Acme Renewed", full.BusinessName)

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	require.Equal(t, audit.ActionUpdate, entry.Action)
	require.Equal(t, "Acme Trading", entry.OldValues.(FullView).BusinessName)
	require.Equal(t, "Acme Renewed", entry.NewValues.(FullView).BusinessName)
}

func TestUpdateReplacesImageAndRemovesOld(t *testing.T) {
	repo := newMemoryRepo()
	store := &memoryStore{}
	svc := newTestService(repo, &memoryRecorder{}, store)

	record := samplePartnership("CET")
	oldURL := "/uploads/old.jpg"
	record.ImageURL = &oldURL
	repo.records[record.ID] = *record

	identity := &shared.Identity{UserID: uuid.New(), Role: shared.RoleAdmin}
	image := &ImageUpload{Filename: "new.jpg", ContentType: "image/jpeg", Content: strings.NewReader("fake")}

	view, err := svc.Update(context.Background(), identity, record.ID, sampleInput("CET"), image)
	require.NoError(t, err)

	full := view.(FullView)
	require.NotNil(t, full.ImageURL)
	require.NotEqual(t, oldURL, *full.ImageURL)
	require.Equal(t, []string{oldURL}, store.removed)
}

func TestDeleteAuditsAndRemovesImage(t *testing.T) {
	repo := newMemoryRepo()
	recorder := &memoryRecorder{}
	store := &memoryStore{}
	svc := newTestService(repo, recorder, store)

	record := samplePartnership("CET")
	imageURL := "/uploads/photo.jpg"
	record.ImageURL = &imageURL
	repo.records[record.ID] = *record

	identity := &shared.Identity{UserID: uuid.New(), Role: shared.RoleAdmin}
	require.NoError(t, svc.Delete(context.Background(), identity, record.ID))

	require.Empty(t, repo.records)
	require.Equal(t, []string{imageURL}, store.removed)
	require.Len(t, recorder.entries, 1)
	require.Equal(t, audit.ActionDelete, recorder.entries[0].Action)
	require.Nil(t, recorder.entries[0].NewValues)
}

func TestDeleteForbiddenForViewer(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, &memoryRecorder{}, nil)

	record := samplePartnership("CET")
	repo.records[record.ID] = *record

	identity := &shared.Identity{UserID: uuid.New(), Role: shared.RoleViewer}
	err := svc.Delete(context.Background(), identity, record.ID)
	require.ErrorIs(t, err, shared.ErrForbidden)
	require.Len(t, repo.records, 1)
}

func TestAuditFailureDoesNotFailMutation(t *testing.T) {
	repo := newMemoryRepo()
	recorder := &memoryRecorder{err: fmt.Errorf("audit store down")}
	svc := newTestService(repo, recorder, nil)

	identity := &shared.Identity{UserID: uuid.New(), Role: shared.RoleAdmin}
	_, err := svc.Create(context.Background(), identity, sampleInput("CET"), nil)
	require.NoError(t, err)
	require.Len(t, repo.records, 1)
}

func TestListProjectsPerRequester(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, &memoryRecorder{}, nil)

	own := samplePartnership("CET")
	other := samplePartnership("STE")
	repo.records[own.ID] = *own
	repo.records[other.ID] = *other

	identity := &shared.Identity{UserID: uuid.New(), Role: shared.RoleDepartment, Department: "CET"}
	views, err := svc.List(context.Background(), identity, Filters{})
	require.NoError(t, err)
	require.Len(t, views, 2)

	fullCount, limitedCount := 0, 0
	for _, v := range views {
		switch v.(type) {
		case FullView:
			fullCount++
		case LimitedView:
			limitedCount++
		}
	}
	require.Equal(t, 1, fullCount)
	require.Equal(t, 1, limitedCount)
}

func TestGetMissingRecord(t *testing.T) {
	svc := newTestService(newMemoryRepo(), &memoryRecorder{}, nil)
	identity := &shared.Identity{UserID: uuid.New(), Role: shared.RoleAdmin}

	_, err := svc.Get(context.Background(), identity, uuid.New())
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestStatisticsScopedForDepartmentRole(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, &memoryRecorder{}, nil)

	a := samplePartnership("CET")
	b := samplePartnership("CET")
	b.Status = StatusTerminated
	c := samplePartnership("STE")
	repo.records[a.ID] = *a
	repo.records[b.ID] = *b
	repo.records[c.ID] = *c

	dept := &shared.Identity{UserID: uuid.New(), Role: shared.RoleDepartment, Department: "CET"}
	stats, err := svc.Statistics(context.Background(), dept)
	require.NoError(t, err)
	require.Equal(t, 2, stats.Total)
	require.Equal(t, 1, stats.Active)
	require.Equal(t, 1, stats.Terminated)
	require.Equal(t, 2, stats.ByDepartment["CET"])
	require.Equal(t, 0, stats.ByDepartment["STE"])

	admin := &shared.Identity{UserID: uuid.New(), Role: shared.RoleAdmin}
	stats, err = svc.Statistics(context.Background(), admin)
	require.NoError(t, err)
	require.Equal(t, 3, stats.Total)
	require.Equal(t, 1, stats.ByDepartment["STE"])

	viewer := &shared.Identity{UserID: uuid.New(), Role: shared.RoleViewer}
	stats, err = svc.Statistics(context.Background(), viewer)
	require.NoError(t, err)
	require.Equal(t, 3, stats.Total)
}

func TestSweepExpiredFlipsAndAudits(t *testing.T) {
	repo := newMemoryRepo()
	recorder := &memoryRecorder{}
	svc := newTestService(repo, recorder, nil)

	expired := samplePartnership("CET")
	expired.ExpirationDate = time.Now().AddDate(0, 0, -1)
	current := samplePartnership("STE")
	current.ExpirationDate = time.Now().AddDate(0, 6, 0)
	terminated := samplePartnership("CET")
	terminated.Status = StatusTerminated
	terminated.ExpirationDate = time.Now().AddDate(0, 0, -30)
	repo.records[expired.ID] = *expired
	repo.records[current.ID] = *current
	repo.records[terminated.ID] = *terminated

	actorID := uuid.New()
	count, err := svc.SweepExpired(context.Background(), actorID)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.Equal(t, StatusForRenewal, repo.records[expired.ID].Status)
	require.Equal(t, StatusActive, repo.records[current.ID].Status)
	require.Equal(t, StatusTerminated, repo.records[terminated.ID].Status)

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	require.Equal(t, actorID, entry.ActorID)
	require.Equal(t, StatusActive, entry.OldValues.(FullView).Status)
	require.Equal(t, StatusForRenewal, entry.NewValues.(FullView).Status)
}
