package assistant_test

import (
	"testing"

	"samadhan/backend/internal/assistant"
	"samadhan/backend/internal/localization"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResponder(t *testing.T) *assistant.Responder {
	t.Helper()
	l, err := localization.NewLocalizer()
	require.NoError(t, err)
	return assistant.NewResponder(l)
}

func TestReply_RuleTable(t *testing.T) {
	r := newResponder(t)

	tests := []struct {
		utterance string
		contains  string
	}{
		{"Hello there", "file a grievance"},
		{"how do I check the STATUS of my complaint?", "My Grievances"},
		{"there is a huge pothole on my street", "Roads category"},
		{"no water since monday", "Water Supply"},
		{"power outage in my colony", "Electricity"},
		{"the hospital has no doctors", "Health category"},
		{"my pension has not arrived", "Pensions category"},
		{"ration shop refuses my card", "Ration"},
		{"can I attach a photo?", "three photos"},
		{"how to file a grievance", "pick a category"},
	}
	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			assert.Contains(t, r.Reply(tt.utterance, "en"), tt.contains)
		})
	}
}

func TestReply_FirstMatchingRuleWins(t *testing.T) {
	r := newResponder(t)

	// "status" and "complaint" both match rules; the status rule comes
	// first in the table.
	reply := r.Reply("what is the status of my complaint", "en")
	assert.Contains(t, reply, "My Grievances")
}

func TestReply_FallbackForUnmatchedUtterance(t *testing.T) {
	r := newResponder(t)

	reply := r.Reply("qwerty asdf", "en")
	assert.Contains(t, reply, "did not understand")
}

func TestReply_Localized(t *testing.T) {
	r := newResponder(t)

	en := r.Reply("how to file a complaint", "en")
	hi := r.Reply("how to file a complaint", "hi")
	assert.NotEqual(t, en, hi)
	assert.Contains(t, hi, "श्रेणी")
}

func TestReply_UnknownLocaleFallsBackToEnglish(t *testing.T) {
	r := newResponder(t)

	assert.Equal(t, r.Reply("hello", "en"), r.Reply("hello", "fr"))
}

func TestReply_WordBoundaries(t *testing.T) {
	r := newResponder(t)

	// "this" contains "hi" as a substring but is not a greeting.
	reply := r.Reply("this thing is broken", "en")
	assert.Contains(t, reply, "did not understand")
}
