package domain

// Verb is the operator's answer carried by a messaging-channel callback.
type Verb string

const (
	VerbApprove Verb = "approve"
	VerbDecline Verb = "decline"
	VerbUnknown Verb = "unknown"
)

// Decision is a decoded callback event: which verb the operator chose and
// the verification it targets. Anything the parser cannot recognise comes
// back as VerbUnknown so callers can ack it without touching state.
type Decision struct {
	Verb           Verb
	VerificationID string
}

// ParseDecision decodes the callback data attached to a prompt button
// ("approve:<id>" or "decline:<id>"). Malformed or unrecognised payloads
// yield VerbUnknown, never an error: the channel always gets an ack.
func ParseDecision(data string) Decision {
	for _, v := range []Verb{VerbApprove, VerbDecline} {
		prefix := string(v) + ":"
		if len(data) > len(prefix) && data[:len(prefix)] == prefix {
			return Decision{Verb: v, VerificationID: data[len(prefix):]}
		}
	}
	return Decision{Verb: VerbUnknown}
}

// Status maps an actionable verb to the terminal status it produces.
// Only valid for VerbApprove and VerbDecline.
func (d Decision) Status() Status {
	if d.Verb == VerbApprove {
		return StatusApproved
	}
	return StatusDeclined
}
