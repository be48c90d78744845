package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Decision
	}{
		{"approve", "approve:v1", Decision{Verb: VerbApprove, VerificationID: "v1"}},
		{"decline", "decline:v1", Decision{Verb: VerbDecline, VerificationID: "v1"}},
		{"unknown verb", "snooze:v1", Decision{Verb: VerbUnknown}},
		{"missing id", "approve:", Decision{Verb: VerbUnknown}},
		{"no delimiter", "approve", Decision{Verb: VerbUnknown}},
		{"empty", "", Decision{Verb: VerbUnknown}},
		{"id containing colon", "approve:v1:extra", Decision{Verb: VerbApprove, VerificationID: "v1:extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDecision(tt.data))
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusApproved.Terminal())
	assert.True(t, StatusDeclined.Terminal())
}

func TestDecisionStatus(t *testing.T) {
	assert.Equal(t, StatusApproved, Decision{Verb: VerbApprove}.Status())
	assert.Equal(t, StatusDeclined, Decision{Verb: VerbDecline}.Status())
}
