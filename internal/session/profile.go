package session

import "regexp"

// Profile is the opaque user object returned by the backend. No field is
// guaranteed; a handful of well-known keys are probed to derive a label.
type Profile map[string]any

// displayNameKeys is the fallback priority for deriving a display label.
var displayNameKeys = []string{"name", "firstName", "given_name", "username", "displayName", "email"}

var displayNameSplit = regexp.MustCompile(`[\s@]`)

// DisplayName derives a short, friendly label from the profile: the first
// whitespace- or @-delimited token of the first populated well-known field.
func (p Profile) DisplayName() string {
	for _, key := range displayNameKeys {
		raw, ok := p[key].(string)
		if !ok || raw == "" {
			continue
		}
		// First match wins, even if its leading token is empty.
		if first := displayNameSplit.Split(raw, 2)[0]; first != "" {
			return first
		}
		break
	}
	return "User"
}
