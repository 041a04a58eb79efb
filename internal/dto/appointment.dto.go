package dto

import (
	domain "github.com/BruksfildServices01/lab-scheduler/internal/domain/appointment"
)

// AppointmentRequest is the body of POST and PUT. Missing keys decode as
// empty strings; an "id" key is ignored.
type AppointmentRequest struct {
	Tipo        string `json:"tipo"`
	Nome        string `json:"nome"`
	Data        string `json:"data"`
	HoraInicio  string `json:"horaInicio"`
	HoraTermino string `json:"horaTermino"`
	Responsavel string `json:"responsavel"`
}

func (r AppointmentRequest) Fields() domain.Fields {
	return domain.Fields{
		Tipo:        r.Tipo,
		Nome:        r.Nome,
		Data:        r.Data,
		HoraInicio:  r.HoraInicio,
		HoraTermino: r.HoraTermino,
		Responsavel: r.Responsavel,
	}
}

// AppointmentPatchRequest is the body of PATCH; absent keys stay nil.
type AppointmentPatchRequest struct {
	Tipo        *string `json:"tipo"`
	Nome        *string `json:"nome"`
	Data        *string `json:"data"`
	HoraInicio  *string `json:"horaInicio"`
	HoraTermino *string `json:"horaTermino"`
	Responsavel *string `json:"responsavel"`
}

func (r AppointmentPatchRequest) Fields() domain.PatchFields {
	return domain.PatchFields{
		Tipo:        r.Tipo,
		Nome:        r.Nome,
		Data:        r.Data,
		HoraInicio:  r.HoraInicio,
		HoraTermino: r.HoraTermino,
		Responsavel: r.Responsavel,
	}
}
