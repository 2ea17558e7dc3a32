package llm

// EscalationPolicy maps a 1-indexed attempt number to the sampling parameters
// used for that attempt's repair request. Keeping it a pure function lets the
// repair loop be tested without a live backend.
type EscalationPolicy func(attempt int) Params

// Escalate returns a policy that raises temperature and both penalties by
// step for every failed attempt beyond the first, so exploration grows as
// repairs repeatedly fail. Attempt 1 uses base unchanged.
func Escalate(base Params, step float32) EscalationPolicy {
	return func(attempt int) Params {
		if attempt < 1 {
			attempt = 1
		}
		bump := step * float32(attempt-1)
		p := base
		p.Temperature += bump
		p.FrequencyPenalty += bump
		p.PresencePenalty += bump
		return p
	}
}
