package models

import "time"

// AppointmentRecord is the Postgres row backing an Appointment.
// Seq keeps insertion order since UUIDs carry none.
type AppointmentRecord struct {
	Seq uint `gorm:"primaryKey;autoIncrement"`

	AppointmentID string `gorm:"size:36;uniqueIndex;not null"`

	Tipo        string `gorm:"size:120"`
	Nome        string `gorm:"size:120"`
	Data        string `gorm:"size:20;index"`
	HoraInicio  string `gorm:"size:10"`
	HoraTermino string `gorm:"size:10"`
	Responsavel string `gorm:"size:120"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AppointmentRecord) TableName() string {
	return "appointments"
}

func (r AppointmentRecord) ToAppointment() Appointment {
	return Appointment{
		ID:          r.AppointmentID,
		Tipo:        r.Tipo,
		Nome:        r.Nome,
		Data:        r.Data,
		HoraInicio:  r.HoraInicio,
		HoraTermino: r.HoraTermino,
		Responsavel: r.Responsavel,
	}
}
