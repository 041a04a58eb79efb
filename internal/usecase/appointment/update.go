package appointment

import (
	"context"

	"github.com/BruksfildServices01/lab-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/lab-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/lab-scheduler/internal/models"
)

// UpdateAppointment replaces every field of an existing record.
type UpdateAppointment struct {
	repo  domain.Repository
	audit Auditor
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit Auditor,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	id string,
	in domain.Fields,
) (*models.Appointment, error) {

	ap, err := uc.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_updated",
		Entity:   entityAppointment,
		EntityID: ap.ID,
	})

	return ap, nil
}
