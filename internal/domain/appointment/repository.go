package appointment

import (
	"context"

	"github.com/BruksfildServices01/lab-scheduler/internal/models"
)

// Repository owns the appointment collection and its persistence.
// Every mutation is durable once the call returns without error.
type Repository interface {
	// -------- Read --------
	List(ctx context.Context) ([]models.Appointment, error)

	FindByID(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	// -------- Write --------
	Create(
		ctx context.Context,
		f Fields,
	) (*models.Appointment, error)

	Update(
		ctx context.Context,
		id string,
		f Fields,
	) (*models.Appointment, error)

	// Patch merges the present fields into the current record atomically.
	Patch(
		ctx context.Context,
		id string,
		p PatchFields,
	) (*models.Appointment, error)

	Delete(
		ctx context.Context,
		id string,
	) error
}

// Guard rejects a candidate record before it is written. The store calls
// it under its write lock, so the collection it sees is current.
type Guard func(candidate models.Appointment, existing []models.Appointment) error
