package queries

const (
	InsertSlotEvent = `
		INSERT INTO slot_events (
			slot_id,
			envelope,
			created_at
		) VALUES ($1, $2, NOW())
	`

	GetSlotEventsBySlotID = `
		SELECT
			envelope
		FROM slot_events
		WHERE slot_id = $1
		ORDER BY seq ASC
	`

	UpsertSlotView = `
		INSERT INTO slot_views (
			slot_id,
			medical_package_id,
			date,
			shift,
			max_quantity,
			remaining,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (slot_id) DO UPDATE SET
			medical_package_id = EXCLUDED.medical_package_id,
			date = EXCLUDED.date,
			shift = EXCLUDED.shift,
			max_quantity = EXCLUDED.max_quantity,
			remaining = EXCLUDED.remaining,
			updated_at = NOW()
	`

	GetSlotViewByID = `
		SELECT
			slot_id,
			medical_package_id,
			date,
			shift,
			max_quantity,
			remaining,
			updated_at
		FROM slot_views
		WHERE slot_id = $1
	`

	GetSlotViewsByPackageAndDateRange = `
		SELECT
			slot_id,
			medical_package_id,
			date,
			shift,
			max_quantity,
			remaining,
			updated_at
		FROM slot_views
		WHERE medical_package_id = $1
			AND date >= $2
			AND date < $3
		ORDER BY date ASC, shift ASC
	`

	GetActiveMedicalPackages = `
		SELECT
			id,
			name,
			active
		FROM medical_packages
		WHERE active = TRUE
	`
)
