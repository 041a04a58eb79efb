package appointment

import (
	"context"

	"github.com/BruksfildServices01/lab-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/lab-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/lab-scheduler/internal/models"
)

// PatchAppointment changes only the fields present in the request.
type PatchAppointment struct {
	repo  domain.Repository
	audit Auditor
}

func NewPatchAppointment(
	repo domain.Repository,
	audit Auditor,
) *PatchAppointment {
	return &PatchAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *PatchAppointment) Execute(
	ctx context.Context,
	id string,
	in domain.PatchFields,
) (*models.Appointment, error) {

	ap, err := uc.repo.Patch(ctx, id, in)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_patched",
		Entity:   entityAppointment,
		EntityID: ap.ID,
	})

	return ap, nil
}
