package partnerships

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/osa-portal/osa-portal/internal/audit"
	"github.com/osa-portal/osa-portal/internal/platform/cache"
	"github.com/osa-portal/osa-portal/internal/platform/storage"
	"github.com/osa-portal/osa-portal/internal/shared"
)

const tableName = "partnerships"

// Statistics are aggregate counts over the records a requester is entitled
// to. No individual fields are exposed, so aggregation never redacts.
type Statistics struct {
	Total        int            `json:"total"`
	Active       int            `json:"active"`
	Terminated   int            `json:"terminated"`
	ForRenewal   int            `json:"for_renewal"`
	NonRenewal   int            `json:"non_renewal"`
	ByDepartment map[string]int `json:"by_department"`
}

// ImageUpload carries a multipart image before it reaches the store.
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// Input is the validated payload for create and update.
type Input struct {
	BusinessName       string
	Department         string
	Address            string
	ContactPerson      string
	ManagerSupervisor1 string
	ManagerSupervisor2 *string
	Email              string
	ContactNumber      string
	DateEstablished    time.Time
	ExpirationDate     time.Time
	Status             Status
	Remarks            *string
}

// Service applies the access-control, redaction and audit rules around the
// partnership store.
type Service struct {
	repo     Repository
	images   storage.Store
	recorder audit.Recorder
	stats    *cache.Versioned
	logger   *slog.Logger
}

// NewService constructs a Service. The recorder and cache may be nil in
// tests; both degrade gracefully.
func NewService(repo Repository, images storage.Store, recorder audit.Recorder, stats *cache.Versioned, logger *slog.Logger) *Service {
	return &Service{repo: repo, images: images, recorder: recorder, stats: stats, logger: logger}
}

// List returns every matched record, each projected per the requester's
// access tier.
func (s *Service) List(ctx context.Context, identity *shared.Identity, filters Filters) ([]any, error) {
	records, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	views := make([]any, 0, len(records))
	for i := range records {
		views = append(views, View(identity, &records[i]))
	}
	return views, nil
}

// Get returns a single record projected per the requester's access tier.
// A missing record is a plain not-found; the redacted tier already bounds
// what a forbidden lookup could learn.
func (s *Service) Get(ctx context.Context, identity *shared.Identity, id uuid.UUID) (any, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return View(identity, record), nil
}

// Create inserts a record on behalf of an admin or department user. A
// department-role creator's payload department is never trusted; it is forced
// to the creator's own department server-side.
func (s *Service) Create(ctx context.Context, identity *shared.Identity, input Input, image *ImageUpload) (any, error) {
	if !CanCreate(identity.Role) {
		return nil, shared.ErrForbidden
	}
	if identity.Role == shared.RoleDepartment {
		input.Department = identity.Department
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	record := &Partnership{
		ID:                 uuid.New(),
		BusinessName:       input.BusinessName,
		Department:         input.Department,
		Address:            input.Address,
		ContactPerson:      input.ContactPerson,
		ManagerSupervisor1: input.ManagerSupervisor1,
		ManagerSupervisor2: input.ManagerSupervisor2,
		Email:              input.Email,
		ContactNumber:      input.ContactNumber,
		DateEstablished:    input.DateEstablished,
		ExpirationDate:     input.ExpirationDate,
		SchoolYear:         SchoolYear(input.DateEstablished),
		Status:             input.Status,
		Remarks:            input.Remarks,
		CreatedBy:          identity.UserID,
		CreatedAt:          time.Now().UTC(),
	}

	if image != nil {
		url, err := s.images.Save(ctx, image.Filename, image.ContentType, image.Content)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		record.ImageURL = &url
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	s.recordAudit(ctx, identity.UserID, audit.ActionCreate, record.ID, nil, fullView(record))
	s.bumpStats(ctx)
	return fullView(record), nil
}

// Update rewrites a record after the ownership check. Department users may
// only touch their own department's records; the record's owning department
// never changes for them.
func (s *Service) Update(ctx context.Context, identity *shared.Identity, id uuid.UUID, input Input, image *ImageUpload) (any, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanWrite(identity.Role, identity.Department, existing) {
		return nil, fmt.Errorf("%w: cannot update partnerships from other departments", shared.ErrForbidden)
	}
	if identity.Role == shared.RoleDepartment {
		input.Department = identity.Department
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	updated := *existing
	updated.BusinessName = input.BusinessName
	updated.Department = input.Department
	updated.Address = input.Address
	updated.ContactPerson = input.ContactPerson
	updated.ManagerSupervisor1 = input.ManagerSupervisor1
	updated.ManagerSupervisor2 = input.ManagerSupervisor2
	updated.Email = input.Email
	updated.ContactNumber = input.ContactNumber
	updated.DateEstablished = input.DateEstablished
	updated.ExpirationDate = input.ExpirationDate
	updated.SchoolYear = SchoolYear(input.DateEstablished)
	updated.Status = input.Status
	updated.Remarks = input.Remarks

	var oldImage string
	if image != nil {
		url, err := s.images.Save(ctx, image.Filename, image.ContentType, image.Content)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		if existing.ImageURL != nil {
			oldImage = *existing.ImageURL
		}
		updated.ImageURL = &url
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	if oldImage != "" {
		if err := s.images.Remove(ctx, oldImage); err != nil {
			s.logger.Warn("remove replaced image", slog.String("url", oldImage), slog.Any("error", err))
		}
	}
	s.recordAudit(ctx, identity.UserID, audit.ActionUpdate, id, fullView(existing), fullView(&updated))
	s.bumpStats(ctx)
	return fullView(&updated), nil
}

// Delete removes a record after the ownership check.
func (s *Service) Delete(ctx context.Context, identity *shared.Identity, id uuid.UUID) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanWrite(identity.Role, identity.Department, existing) {
		return fmt.Errorf("%w: cannot delete partnerships from other departments", shared.ErrForbidden)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if existing.ImageURL != nil {
		if err := s.images.Remove(ctx, *existing.ImageURL); err != nil {
			s.logger.Warn("remove partnership image", slog.String("url", *existing.ImageURL), slog.Any("error", err))
		}
	}
	s.recordAudit(ctx, identity.UserID, audit.ActionDelete, id, fullView(existing), nil)
	s.bumpStats(ctx)
	return nil
}

// Statistics aggregates counts. Department users see only their own
// department's rows; admins and viewers see global aggregates.
func (s *Service) Statistics(ctx context.Context, identity *shared.Identity) (Statistics, error) {
	scope := ""
	if identity.Role == shared.RoleDepartment {
		scope = identity.Department
	}
	key := "statistics:" + scope
	if scope == "" {
		key = "statistics:all"
	}

	var stats Statistics
	err := s.stats.FetchJSON(ctx, key, &stats, func(ctx context.Context) (any, error) {
		rows, err := s.repo.StatRows(ctx, scope)
		if err != nil {
			return nil, err
		}
		return tally(rows), nil
	})
	return stats, err
}

// SweepExpired flips active records past expiration to for_renewal, writing
// one audit entry per affected record on behalf of the system actor.
func (s *Service) SweepExpired(ctx context.Context, actorID uuid.UUID) (int, error) {
	records, err := s.repo.MarkExpiredForRenewal(ctx)
	if err != nil {
		return 0, err
	}
	for i := range records {
		record := records[i]
		before := record
		before.Status = StatusActive
		s.recordAudit(ctx, actorID, audit.ActionUpdate, record.ID, fullView(&before), fullView(&record))
	}
	if len(records) > 0 {
		s.bumpStats(ctx)
	}
	return len(records), nil
}

func tally(rows []StatRow) Statistics {
	stats := Statistics{ByDepartment: make(map[string]int, len(shared.Departments))}
	for _, dept := range shared.Departments {
		stats.ByDepartment[dept] = 0
	}
	for _, row := range rows {
		stats.Total++
		switch row.Status {
		case StatusActive:
			stats.Active++
		case StatusTerminated:
			stats.Terminated++
		case StatusForRenewal:
			stats.ForRenewal++
		case StatusNonRenewal:
			stats.NonRenewal++
		}
		if _, ok := stats.ByDepartment[row.Department]; ok {
			stats.ByDepartment[row.Department]++
		}
	}
	return stats
}

// recordAudit appends the entry after the mutation has committed. Failures
// are logged and swallowed: the audit trail is best-effort by design and the
// caller's mutation has already succeeded.
func (s *Service) recordAudit(ctx context.Context, actorID uuid.UUID, action audit.Action, recordID uuid.UUID, oldValues, newValues any) {
	if s.recorder == nil {
		return
	}
	entry := audit.Entry{
		ActorID:   actorID,
		Action:    action,
		TableName: tableName,
		RecordID:  recordID,
		OldValues: oldValues,
		NewValues: newValues,
	}
	if err := s.recorder.Record(ctx, entry); err != nil {
		s.logger.Error("audit append failed",
			slog.String("action", string(action)),
			slog.String("record_id", recordID.String()),
			slog.Any("error", err))
	}
}

func (s *Service) bumpStats(ctx context.Context) {
	if err := s.stats.Bump(ctx); err != nil {
		s.logger.Warn("bump statistics cache", slog.Any("error", err))
	}
}
