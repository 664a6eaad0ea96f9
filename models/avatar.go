// models/avatar.go - Fixed avatar catalog for player profiles
package models

// Avatar is an entry in the fixed avatar catalog. Profiles reference
// avatars by ID; the catalog itself is never persisted.
type Avatar struct {
	ID     int    `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// AvatarOptions is the catalog shown on the profile screens.
var AvatarOptions = []Avatar{
	{ID: 1, Symbol: "🦸‍♂️", Name: "Superhero"},
	{ID: 2, Symbol: "🦸‍♀️", Name: "Superwoman"},
	{ID: 3, Symbol: "🧙‍♂️", Name: "Wizard"},
	{ID: 4, Symbol: "🧙‍♀️", Name: "Witch"},
	{ID: 5, Symbol: "🦄", Name: "Unicorn"},
	{ID: 6, Symbol: "🐱", Name: "Cat"},
	{ID: 7, Symbol: "🐶", Name: "Dog"},
	{ID: 8, Symbol: "🦁", Name: "Lion"},
	{ID: 9, Symbol: "🐯", Name: "Tiger"},
	{ID: 10, Symbol: "🐻", Name: "Bear"},
	{ID: 11, Symbol: "🐸", Name: "Frog"},
	{ID: 12, Symbol: "🦋", Name: "Butterfly"},
	{ID: 13, Symbol: "🌟", Name: "Star"},
	{ID: 14, Symbol: "⚡", Name: "Lightning"},
	{ID: 15, Symbol: "🎯", Name: "Target"},
	{ID: 16, Symbol: "🚀", Name: "Rocket"},
}

// AvatarByID looks up a catalog entry. The second return value reports
// whether the id exists.
func AvatarByID(id int) (Avatar, bool) {
	for _, a := range AvatarOptions {
		if a.ID == id {
			return a, true
		}
	}
	return Avatar{}, false
}

// DefaultAvatar is used when a profile references an unknown avatar id.
func DefaultAvatar() Avatar {
	return AvatarOptions[0]
}

// ResolveAvatar returns the catalog entry for id, falling back to the
// default entry for unknown ids.
func ResolveAvatar(id int) Avatar {
	if a, ok := AvatarByID(id); ok {
		return a
	}
	return DefaultAvatar()
}
