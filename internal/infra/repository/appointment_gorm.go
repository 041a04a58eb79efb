package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/lab-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/lab-scheduler/internal/httperr"
	"github.com/BruksfildServices01/lab-scheduler/internal/models"
)

// AppointmentGormRepository stores appointments as rows instead of a file.
type AppointmentGormRepository struct {
	db    *gorm.DB
	guard domain.Guard
}

func NewAppointmentGormRepository(db *gorm.DB, guard domain.Guard) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db, guard: guard}
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *AppointmentGormRepository) List(ctx context.Context) ([]models.Appointment, error) {
	var rows []models.AppointmentRecord
	if err := r.db.WithContext(ctx).
		Order("seq ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return toAppointments(rows), nil
}

func (r *AppointmentGormRepository) FindByID(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var row models.AppointmentRecord
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound()
		}
		return nil, err
	}

	ap := row.ToAppointment()
	return &ap, nil
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *AppointmentGormRepository) Create(
	ctx context.Context,
	f domain.Fields,
) (*models.Appointment, error) {

	ap := domain.New(uuid.NewString(), f)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.check(tx, ap); err != nil {
			return err
		}

		row := toRecord(ap)
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, mapWriteError(err)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	id string,
	f domain.Fields,
) (*models.Appointment, error) {

	return r.modify(ctx, id, func(models.Appointment) domain.Fields {
		return f
	})
}

func (r *AppointmentGormRepository) Patch(
	ctx context.Context,
	id string,
	p domain.PatchFields,
) (*models.Appointment, error) {

	return r.modify(ctx, id, func(current models.Appointment) domain.Fields {
		return domain.Merge(current, p)
	})
}

func (r *AppointmentGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("appointment_id = ?", id).
		Delete(&models.AppointmentRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound()
	}
	return nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func (r *AppointmentGormRepository) modify(
	ctx context.Context,
	id string,
	next func(models.Appointment) domain.Fields,
) (*models.Appointment, error) {

	var updated models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.AppointmentRecord
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("appointment_id = ?", id).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound()
			}
			return err
		}

		ap := row.ToAppointment()
		domain.Replace(&ap, next(ap))

		if err := r.check(tx, ap); err != nil {
			return err
		}

		if err := tx.Model(&row).Updates(map[string]any{
			"tipo":         ap.Tipo,
			"nome":         ap.Nome,
			"data":         ap.Data,
			"hora_inicio":  ap.HoraInicio,
			"hora_termino": ap.HoraTermino,
			"responsavel":  ap.Responsavel,
		}).Error; err != nil {
			return err
		}

		updated = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// check runs the guard against the rows of the candidate's day. The
// transaction first takes an advisory lock keyed on that day, so writers to
// the same day are serialized even when the day has no rows yet.
func (r *AppointmentGormRepository) check(tx *gorm.DB, candidate models.Appointment) error {
	if r.guard == nil {
		return nil
	}

	day := strings.TrimSpace(candidate.Data)

	if err := lockDay(tx, day).Error; err != nil {
		return err
	}

	var rows []models.AppointmentRecord
	if err := sameDay(tx, day).Find(&rows).Error; err != nil {
		return err
	}

	return r.guard(candidate, toAppointments(rows))
}

// lockDay holds a transaction-scoped advisory lock until commit or rollback.
func lockDay(tx *gorm.DB, day string) *gorm.DB {
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", day)
}

// sameDay matches dates the way the overlap rule compares them, with the
// same whitespace set as strings.TrimSpace for ASCII input.
func sameDay(tx *gorm.DB, day string) *gorm.DB {
	return tx.Where(`BTRIM(data, E' \t\n\r\f\x0B') = ?`, day).Order("seq ASC")
}

func mapWriteError(err error) error {
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness(domain.CodeDuplicateID)
	}
	return err
}

func toRecord(ap models.Appointment) models.AppointmentRecord {
	return models.AppointmentRecord{
		AppointmentID: ap.ID,
		Tipo:          ap.Tipo,
		Nome:          ap.Nome,
		Data:          ap.Data,
		HoraInicio:    ap.HoraInicio,
		HoraTermino:   ap.HoraTermino,
		Responsavel:   ap.Responsavel,
	}
}

func toAppointments(rows []models.AppointmentRecord) []models.Appointment {
	out := make([]models.Appointment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToAppointment())
	}
	return out
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
