package chat

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
)

const basePrompt = `You are Neeva, a compassionate, empathetic, and supportive AI mental wellness companion for young Indians.
Your goal is to provide a safe space for users to express their feelings.
- Listen actively and validate their emotions.
- Offer gentle, evidence-based CBT (Cognitive Behavioral Therapy) guidance.
- Keep responses concise, warm, and conversational.
- Do NOT provide medical advice. If a user seems to be in crisis, gently encourage them to seek professional help or use the emergency resources.
- Use simple, relatable language.
`

// Profile is the read-only view over a user's onboarding data. Known
// fields are interpreted; anything else is preserved in Extra so future
// keys survive a round trip without being rendered.
type Profile struct {
	Goals              []string
	CommunicationStyle string
	SleepQuality       string
	Extra              map[string]json.RawMessage
}

// ParseProfile decodes the onboarding jsonb column. Missing, empty or
// malformed data yields a zero profile; a field of the wrong type is
// treated as unknown and kept in Extra.
func ParseProfile(raw datatypes.JSON) Profile {
	var profile Profile

	if len(raw) == 0 {
		return profile
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return profile
	}

	for key, value := range fields {
		switch key {
		case "goals":
			var goals []string
			if err := json.Unmarshal(value, &goals); err == nil {
				profile.Goals = goals
				continue
			}
		case "communication_style":
			var style string
			if err := json.Unmarshal(value, &style); err == nil {
				profile.CommunicationStyle = style
				continue
			}
		case "sleep_quality":
			var sleep string
			if err := json.Unmarshal(value, &sleep); err == nil {
				profile.SleepQuality = sleep
				continue
			}
		}

		if profile.Extra == nil {
			profile.Extra = make(map[string]json.RawMessage)
		}
		profile.Extra[key] = value
	}

	return profile
}

// RenderHeader deterministically renders the system instruction sent
// ahead of every completion. Empty profile fields contribute nothing;
// the closing instruction appears only when at least one
// personalization line was added.
func RenderHeader(profile Profile) string {
	var personalization strings.Builder

	if len(profile.Goals) > 0 {
		personalization.WriteString("- The user wants to work on: " + strings.Join(profile.Goals, ", ") + "\n")
	}
	if profile.CommunicationStyle != "" {
		personalization.WriteString("- Preferred communication style: " + profile.CommunicationStyle + "\n")
	}
	if profile.SleepQuality != "" {
		personalization.WriteString("- Current sleep quality: " + profile.SleepQuality + "\n")
	}

	if personalization.Len() == 0 {
		return basePrompt
	}

	return basePrompt +
		"\nUser Context:\n" +
		personalization.String() +
		"\nTailor your responses to address these specific needs and preferences."
}
