package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/lab-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/lab-scheduler/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute returns the collection in insertion order; never nil.
func (uc *ListAppointments) Execute(ctx context.Context) ([]models.Appointment, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Appointment{}
	}
	return list, nil
}
