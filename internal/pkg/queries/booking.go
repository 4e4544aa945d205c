package queries

const (
	UpsertBookingSaga = `
		INSERT INTO booking_sagas (
			booking_id,
			slot_id,
			fingerprint,
			name,
			email,
			phone,
			verification_id,
			patient_id,
			appointment_id,
			deadline_handle,
			state,
			reason,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (booking_id) DO UPDATE SET
			slot_id = EXCLUDED.slot_id,
			fingerprint = EXCLUDED.fingerprint,
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			verification_id = EXCLUDED.verification_id,
			patient_id = EXCLUDED.patient_id,
			appointment_id = EXCLUDED.appointment_id,
			deadline_handle = EXCLUDED.deadline_handle,
			state = EXCLUDED.state,
			reason = EXCLUDED.reason,
			updated_at = NOW()
	`

	GetBookingSagaByBookingID = `
		SELECT
			booking_id,
			slot_id,
			fingerprint,
			name,
			email,
			phone,
			verification_id,
			patient_id,
			appointment_id,
			deadline_handle,
			state,
			reason,
			updated_at
		FROM booking_sagas
		WHERE booking_id = $1
	`

	GetBookingSagaByVerificationID = `
		SELECT
			booking_id,
			slot_id,
			fingerprint,
			name,
			email,
			phone,
			verification_id,
			patient_id,
			appointment_id,
			deadline_handle,
			state,
			reason,
			updated_at
		FROM booking_sagas
		WHERE verification_id = $1
	`

	GetBookingSagaByPatientID = `
		SELECT
			booking_id,
			slot_id,
			fingerprint,
			name,
			email,
			phone,
			verification_id,
			patient_id,
			appointment_id,
			deadline_handle,
			state,
			reason,
			updated_at
		FROM booking_sagas
		WHERE patient_id = $1
	`

	GetBookingSagaByAppointmentID = `
		SELECT
			booking_id,
			slot_id,
			fingerprint,
			name,
			email,
			phone,
			verification_id,
			patient_id,
			appointment_id,
			deadline_handle,
			state,
			reason,
			updated_at
		FROM booking_sagas
		WHERE appointment_id = $1
	`

	UpsertBookingStatusView = `
		INSERT INTO booking_status_views (
			booking_id,
			appointment_id,
			status,
			message,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (booking_id) DO UPDATE SET
			appointment_id = EXCLUDED.appointment_id,
			status = EXCLUDED.status,
			message = EXCLUDED.message,
			updated_at = NOW()
	`

	GetBookingStatusViewByID = `
		SELECT
			booking_id,
			appointment_id,
			status,
			message,
			created_at,
			updated_at
		FROM booking_status_views
		WHERE booking_id = $1
	`
)
