package appointment

import "github.com/BruksfildServices01/lab-scheduler/internal/audit"

// Auditor is satisfied by *audit.Dispatcher.
type Auditor interface {
	Dispatch(ev audit.Event)
}

const entityAppointment = "appointment"
