package appointment

import "github.com/BruksfildServices01/lab-scheduler/internal/models"

// ===============================
// Fields
// ===============================

// Fields are the client-supplied attributes of an appointment. Everything
// except the id.
type Fields struct {
	Tipo        string
	Nome        string
	Data        string
	HoraInicio  string
	HoraTermino string
	Responsavel string
}

// PatchFields carries only the attributes present in a partial update.
type PatchFields struct {
	Tipo        *string
	Nome        *string
	Data        *string
	HoraInicio  *string
	HoraTermino *string
	Responsavel *string
}

// ===============================
// Domain Actions
// ===============================

// New builds a record with the given id.
func New(id string, f Fields) models.Appointment {
	ap := models.Appointment{ID: id}
	Replace(&ap, f)
	return ap
}

// Replace overwrites every tracked field. The id is never touched.
func Replace(ap *models.Appointment, f Fields) {
	ap.Tipo = f.Tipo
	ap.Nome = f.Nome
	ap.Data = f.Data
	ap.HoraInicio = f.HoraInicio
	ap.HoraTermino = f.HoraTermino
	ap.Responsavel = f.Responsavel
}

// Merge resolves a partial update against the current record.
func Merge(current models.Appointment, p PatchFields) Fields {
	f := FieldsOf(current)

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	set(&f.Tipo, p.Tipo)
	set(&f.Nome, p.Nome)
	set(&f.Data, p.Data)
	set(&f.HoraInicio, p.HoraInicio)
	set(&f.HoraTermino, p.HoraTermino)
	set(&f.Responsavel, p.Responsavel)

	return f
}

func FieldsOf(ap models.Appointment) Fields {
	return Fields{
		Tipo:        ap.Tipo,
		Nome:        ap.Nome,
		Data:        ap.Data,
		HoraInicio:  ap.HoraInicio,
		HoraTermino: ap.HoraTermino,
		Responsavel: ap.Responsavel,
	}
}
