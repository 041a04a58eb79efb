package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/lab-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/lab-scheduler/internal/httperr"
	"github.com/BruksfildServices01/lab-scheduler/internal/models"
)

// Snapshotter persists the full collection at once.
type Snapshotter interface {
	Load() ([]models.Appointment, error)
	Save(list []models.Appointment) error
}

// AppointmentStore keeps the collection in memory, indexed by id, and
// writes the whole collection through its Snapshotter on every mutation.
// A mutation only reaches memory after Save succeeded.
type AppointmentStore struct {
	mu sync.RWMutex

	snap  Snapshotter
	guard domain.Guard
	newID func() string

	byID  map[string]models.Appointment
	order []string
}

type StoreOption func(*AppointmentStore)

// WithGuard installs a check run before every create and update.
func WithGuard(g domain.Guard) StoreOption {
	return func(s *AppointmentStore) {
		s.guard = g
	}
}

func WithIDGenerator(fn func() string) StoreOption {
	return func(s *AppointmentStore) {
		s.newID = fn
	}
}

func NewAppointmentStore(snap Snapshotter, opts ...StoreOption) *AppointmentStore {
	s := &AppointmentStore{
		snap:  snap,
		newID: uuid.NewString,
		byID:  map[string]models.Appointment{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// --------------------------------------------------
// Load
// --------------------------------------------------

// Load replaces the in-memory collection with the persisted one. When the
// persisted array repeats an id, the first record wins.
func (s *AppointmentStore) Load(ctx context.Context) error {
	list, err := s.snap.Load()
	if err != nil {
		return err
	}

	byID := make(map[string]models.Appointment, len(list))
	order := make([]string, 0, len(list))
	for _, ap := range list {
		if _, dup := byID[ap.ID]; dup {
			continue
		}
		byID[ap.ID] = ap
		order = append(order, ap.ID)
	}

	s.mu.Lock()
	s.byID = byID
	s.order = order
	s.mu.Unlock()

	return nil
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (s *AppointmentStore) List(ctx context.Context) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(), nil
}

func (s *AppointmentStore) FindByID(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	ap, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound()
	}
	return &ap, nil
}

// Len is the number of records currently held.
func (s *AppointmentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (s *AppointmentStore) Create(
	ctx context.Context,
	f domain.Fields,
) (*models.Appointment, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	if _, exists := s.byID[id]; exists {
		return nil, httperr.ErrBusiness(domain.CodeDuplicateID)
	}

	ap := domain.New(id, f)

	current := s.snapshotLocked()
	if err := s.check(ap, current); err != nil {
		return nil, err
	}

	if err := s.snap.Save(append(current, ap)); err != nil {
		return nil, err
	}

	s.byID[id] = ap
	s.order = append(s.order, id)

	return &ap, nil
}

func (s *AppointmentStore) Update(
	ctx context.Context,
	id string,
	f domain.Fields,
) (*models.Appointment, error) {

	return s.modify(id, func(models.Appointment) domain.Fields {
		return f
	})
}

func (s *AppointmentStore) Patch(
	ctx context.Context,
	id string,
	p domain.PatchFields,
) (*models.Appointment, error) {

	return s.modify(id, func(current models.Appointment) domain.Fields {
		return domain.Merge(current, p)
	})
}

func (s *AppointmentStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return domain.ErrNotFound()
	}

	next := make([]models.Appointment, 0, len(s.order)-1)
	order := make([]string, 0, len(s.order)-1)
	for _, existing := range s.order {
		if existing == id {
			continue
		}
		next = append(next, s.byID[existing])
		order = append(order, existing)
	}

	if err := s.snap.Save(next); err != nil {
		return err
	}

	delete(s.byID, id)
	s.order = order

	return nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func (s *AppointmentStore) modify(
	id string,
	next func(models.Appointment) domain.Fields,
) (*models.Appointment, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound()
	}

	domain.Replace(&ap, next(ap))

	current := s.snapshotLocked()
	if err := s.check(ap, current); err != nil {
		return nil, err
	}

	for i := range current {
		if current[i].ID == id {
			current[i] = ap
			break
		}
	}

	if err := s.snap.Save(current); err != nil {
		return nil, err
	}

	s.byID[id] = ap

	return &ap, nil
}

func (s *AppointmentStore) check(candidate models.Appointment, current []models.Appointment) error {
	if s.guard == nil {
		return nil
	}
	return s.guard(candidate, current)
}

func (s *AppointmentStore) snapshotLocked() []models.Appointment {
	out := make([]models.Appointment, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Compile-time check
var _ domain.Repository = (*AppointmentStore)(nil)
