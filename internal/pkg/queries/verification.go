package queries

const (
	UpsertVerificationChallenge = `
		INSERT INTO verification_challenges (
			verification_id,
			email,
			code,
			deadline_handle,
			state,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (verification_id) DO UPDATE SET
			email = EXCLUDED.email,
			code = EXCLUDED.code,
			deadline_handle = EXCLUDED.deadline_handle,
			state = EXCLUDED.state,
			updated_at = NOW()
	`

	GetVerificationChallengeByID = `
		SELECT
			verification_id,
			email,
			code,
			deadline_handle,
			state,
			updated_at
		FROM verification_challenges
		WHERE verification_id = $1
	`
)
