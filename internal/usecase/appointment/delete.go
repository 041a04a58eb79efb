package appointment

import (
	"context"

	"github.com/BruksfildServices01/lab-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/lab-scheduler/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit Auditor
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit Auditor,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_deleted",
		Entity:   entityAppointment,
		EntityID: id,
	})

	return nil
}
