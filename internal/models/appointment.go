package models

// Appointment is one booking of a room or lab. The JSON keys are the wire
// and backing-file format shared with the web client.
type Appointment struct {
	ID          string `json:"id"`
	Tipo        string `json:"tipo"`
	Nome        string `json:"nome"`
	Data        string `json:"data"`
	HoraInicio  string `json:"horaInicio"`
	HoraTermino string `json:"horaTermino"`
	Responsavel string `json:"responsavel"`
}
