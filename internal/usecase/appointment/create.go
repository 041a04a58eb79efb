package appointment

import (
	"context"

	"github.com/BruksfildServices01/lab-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/lab-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/lab-scheduler/internal/models"
)

type CreateAppointment struct {
	repo  domain.Repository
	audit Auditor
}

func NewCreateAppointment(
	repo domain.Repository,
	audit Auditor,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in domain.Fields,
) (*models.Appointment, error) {

	ap, err := uc.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   entityAppointment,
		EntityID: ap.ID,
		Metadata: map[string]string{
			"tipo": ap.Tipo,
			"nome": ap.Nome,
			"data": ap.Data,
		},
	})

	return ap, nil
}
