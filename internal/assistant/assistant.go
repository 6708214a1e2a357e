// Package assistant implements the scripted helpdesk responder: a pure
// lookup over an ordered list of keyword rules with a default fallback.
// No state, no learning.
package assistant

import (
	"strings"

	"samadhan/backend/internal/localization"
)

// Rule maps a set of trigger keywords to a localization reply key. A rule
// fires when the utterance contains any of its keywords.
type Rule struct {
	Keywords []string
	ReplyKey string
}

// DefaultRules is the production rule table. Order matters: the first
// matching rule wins.
var DefaultRules = []Rule{
	{Keywords: []string{"hello", "hi", "namaste", "hey"}, ReplyKey: "assistant.greeting"},
	{Keywords: []string{"status", "track", "progress", "update"}, ReplyKey: "assistant.status"},
	{Keywords: []string{"photo", "image", "audio", "video", "attach"}, ReplyKey: "assistant.media"},
	{Keywords: []string{"road", "pothole", "street"}, ReplyKey: "assistant.road"},
	{Keywords: []string{"water", "tap", "pipeline"}, ReplyKey: "assistant.water"},
	{Keywords: []string{"power", "electricity", "outage", "light"}, ReplyKey: "assistant.power"},
	{Keywords: []string{"health", "hospital", "doctor", "medicine"}, ReplyKey: "assistant.health"},
	{Keywords: []string{"pension", "aadhaar", "widow", "old age"}, ReplyKey: "assistant.pension"},
	{Keywords: []string{"ration", "pds", "food card"}, ReplyKey: "assistant.ration"},
	{Keywords: []string{"file", "submit", "complaint", "grievance", "register"}, ReplyKey: "assistant.how_to_file"},
}

const fallbackKey = "assistant.fallback"

// Responder answers utterances from the rule table.
type Responder struct {
	Rules     []Rule
	Localizer *localization.Localizer
}

// NewResponder creates a responder over the default rule table.
func NewResponder(l *localization.Localizer) *Responder {
	return &Responder{Rules: DefaultRules, Localizer: l}
}

// Reply returns the localized response for an utterance. Matching is
// case-insensitive on whole words (multi-word keywords match as phrases);
// the first rule with any matching keyword wins, and the fallback covers
// everything else.
func (r *Responder) Reply(utterance, locale string) string {
	lowered := strings.ToLower(utterance)
	words := strings.FieldsFunc(lowered, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	for _, rule := range r.Rules {
		for _, kw := range rule.Keywords {
			if matches(lowered, words, kw) {
				return r.Localizer.GetString(locale, rule.ReplyKey)
			}
		}
	}
	return r.Localizer.GetString(locale, fallbackKey)
}

func matches(lowered string, words []string, keyword string) bool {
	if strings.ContainsRune(keyword, ' ') {
		return strings.Contains(lowered, keyword)
	}
	for _, w := range words {
		if w == keyword {
			return true
		}
		// Tolerate simple plurals ("potholes", "updates") for longer keywords.
		if len(keyword) >= 4 && strings.HasPrefix(w, keyword) && len(w) <= len(keyword)+2 {
			return true
		}
	}
	return false
}
