package models

// Verdict is the structured safety disposition returned by the lookup service.
type Verdict int

const (
	VerdictUnknown Verdict = iota
	VerdictSafe
	VerdictUnsafe
)

func (v Verdict) String() string {
	switch v {
	case VerdictSafe:
		return "safe"
	case VerdictUnsafe:
		return "unsafe"
	default:
		return "unknown"
	}
}

// VerdictFromBool maps an explicit safe flag to a Verdict.
func VerdictFromBool(safe bool) Verdict {
	if safe {
		return VerdictSafe
	}
	return VerdictUnsafe
}

// OutcomeState is the phase of the most recent lookup.
type OutcomeState string

const (
	OutcomeIdle      OutcomeState = "idle"
	OutcomePending   OutcomeState = "pending"
	OutcomeSucceeded OutcomeState = "succeeded"
	OutcomeFailed    OutcomeState = "failed"
)

// Outcome is the tagged result of the last scan. Message is empty for Idle
// and Pending; Verdict is only meaningful for Succeeded.
type Outcome struct {
	State   OutcomeState
	Message string
	Verdict Verdict
}

func Idle() Outcome    { return Outcome{State: OutcomeIdle} }
func Pending() Outcome { return Outcome{State: OutcomePending} }

func Succeeded(message string, verdict Verdict) Outcome {
	return Outcome{State: OutcomeSucceeded, Message: message, Verdict: verdict}
}

func Failed(message string) Outcome {
	return Outcome{State: OutcomeFailed, Message: message}
}

// IsPending reports whether a lookup is in flight.
func (o Outcome) IsPending() bool { return o.State == OutcomePending }
