package messages

// Commands delegated to the patient and appointment collaborators. Replies
// come back as the events below; the sagas only correlate on the IDs they
// generated.
const (
	CommandCreatePatient          = "patient.create"
	CommandDeletePatient          = "patient.delete"
	CommandCreateAppointment      = "appointment.create"
	CommandUpdateAppointmentState = "appointment.update_state"
)

// AppointmentStateBooked is the state the appointment collaborator moves to
// once the booking saga completes.
const AppointmentStateBooked = "BOOKED"

const (
	EventPatientCreated            = "patient.created"
	EventPatientCreationFailed     = "patient.creation_failed"
	EventAppointmentCreated        = "appointment.created"
	EventAppointmentCreationFailed = "appointment.creation_failed"
)

type CreatePatientCommand struct {
	PatientID string `json:"patient_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type DeletePatientCommand struct {
	PatientID string `json:"patient_id"`
}

type CreateAppointmentCommand struct {
	AppointmentID string `json:"appointment_id"`
	PatientID     string `json:"patient_id"`
	SlotID        string `json:"slot_id"`
}

type UpdateAppointmentStateCommand struct {
	AppointmentID string `json:"appointment_id"`
	State         string `json:"state"`
}

type PatientCreatedEvent struct {
	PatientID string `json:"patient_id"`
}

type PatientCreationFailedEvent struct {
	PatientID string `json:"patient_id"`
	Reason    string `json:"reason"`
}

type AppointmentCreatedEvent struct {
	AppointmentID string `json:"appointment_id"`
	PatientID     string `json:"patient_id"`
	SlotID        string `json:"slot_id"`
}

type AppointmentCreationFailedEvent struct {
	AppointmentID string `json:"appointment_id"`
	Reason        string `json:"reason"`
}
