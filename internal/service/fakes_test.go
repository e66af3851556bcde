package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthease/healthease-api/internal/domain"
	"github.com/healthease/healthease-api/internal/domain/appointment"
	"github.com/healthease/healthease-api/internal/domain/report"
	"github.com/healthease/healthease-api/internal/domain/sos"
	"github.com/healthease/healthease-api/internal/identity"
	"github.com/healthease/healthease-api/pkg/events"
	"github.com/healthease/healthease-api/pkg/metrics"
)

// Prometheus collectors register globally, so the whole test binary shares
// one instance.
var testMetrics = metrics.NewCollector("test")

func newTestAudit() *AuditService {
	return NewAuditService(&fakeAuditRepo{}, testMetrics, zap.NewNop())
}

func mustUUID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.NewRandom()
	if err != nil {
		t.Fatalf("generating uuid: %v", err)
	}
	return id
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func (r *fakeAuditRepo) Create(_ context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User

	createErr error
	getErr    error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id uuid.UUID, name string, p domain.Profile) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Name = name
	u.Profile = p
	return u, nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*domain.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

type fakeIdentityClient struct {
	data *identity.SessionData
	err  error
}

func (c *fakeIdentityClient) ResolveSession(context.Context, string) (*identity.SessionData, error) {
	return c.data, c.err
}

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]*appointment.Appointment
	createErr    error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*appointment.Appointment)}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *appointment.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	r.appointments[a.ID] = a
	return nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	return a, nil
}

func (r *fakeAppointmentRepo) List(_ context.Context, q *appointment.ListAppointmentsQuery) (*appointment.PagedAppointments, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*appointment.Appointment, 0)
	for _, a := range r.appointments {
		if a.PatientID != q.PatientID {
			continue
		}
		if q.Status != nil && a.Status != *q.Status {
			continue
		}
		out = append(out, a)
	}
	return &appointment.PagedAppointments{
		Appointments: out,
		TotalCount:   int64(len(out)),
		Page:         q.Page,
		PageSize:     q.PageSize,
		TotalPages:   1,
	}, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, a *appointment.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments[a.ID] = a
	return nil
}

type fakeReportRepo struct {
	mu        sync.Mutex
	reports   map[uuid.UUID]*report.Report
	createErr error
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[uuid.UUID]*report.Report)}
}

func (r *fakeReportRepo) Create(_ context.Context, rep *report.Report) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rep.ID = uuid.New()
	rep.CreatedAt = time.Now()
	r.reports[rep.ID] = rep
	return nil
}

func (r *fakeReportRepo) GetByID(_ context.Context, id uuid.UUID) (*report.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rep, ok := r.reports[id]
	if !ok {
		return nil, report.ErrReportNotFound
	}
	return rep, nil
}

func (r *fakeReportRepo) List(_ context.Context, q *report.ListReportsQuery) (*report.PagedReports, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*report.Report, 0)
	for _, rep := range r.reports {
		if rep.PatientID == q.PatientID {
			out = append(out, rep)
		}
	}
	return &report.PagedReports{
		Reports:    out,
		TotalCount: int64(len(out)),
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: 1,
	}, nil
}

type fakeSOSRepo struct {
	mu     sync.Mutex
	alerts map[uuid.UUID]*sos.Alert
}

func newFakeSOSRepo() *fakeSOSRepo {
	return &fakeSOSRepo{alerts: make(map[uuid.UUID]*sos.Alert)}
}

func (r *fakeSOSRepo) Create(_ context.Context, a *sos.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	r.alerts[a.ID] = a
	return nil
}

func (r *fakeSOSRepo) GetByID(_ context.Context, id uuid.UUID) (*sos.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.alerts[id]
	if !ok {
		return nil, sos.ErrAlertNotFound
	}
	return a, nil
}

func (r *fakeSOSRepo) ListActive(_ context.Context, patientID uuid.UUID) ([]*sos.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*sos.Alert, 0)
	for _, a := range r.alerts {
		if a.PatientID == patientID && a.Status == sos.StatusActive {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.SOSEvent
	err    error
}

func (p *fakePublisher) PublishSOS(_ context.Context, ev events.SOSEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeTextExtractor struct {
	text string
	err  error

	mu    sync.Mutex
	calls int
}

func (e *fakeTextExtractor) ExtractText(context.Context, []byte, string) (string, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	if e.err != nil {
		return "", e.err
	}
	return e.text, nil
}
