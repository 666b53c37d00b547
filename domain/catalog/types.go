// Package catalog defines the read-only data model: memory items, categories
// and user profiles. All types are immutable after the snapshot is loaded.
package catalog

// MemoryItem is a single nostalgia collectible.
type MemoryItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Decade      string   `json:"decade"`
	Year        int      `json:"year,omitempty"`
	ImageURL    string   `json:"imageUrl"`
	Popularity  int      `json:"popularity"`
	Tags        []string `json:"tags"`
}

// Category groups memory items.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Location is a user's country plus optional region.
type Location struct {
	Country string `json:"country"`
	Region  string `json:"region,omitempty"`
}

// CollectionEntry is one item in a user's personal collection.
type CollectionEntry struct {
	ItemID       string `json:"itemId"`
	DateAdded    string `json:"dateAdded"`
	PersonalNote string `json:"personalNote,omitempty"`
}

// UserProfile is a registered user. The Email field is never serialized in API
// responses; handlers convert to PublicProfile before responding.
type UserProfile struct {
	ID         string            `json:"id"`
	Username   string            `json:"username"`
	Email      string            `json:"email"`
	BirthYear  int               `json:"birthYear"`
	Location   Location          `json:"location"`
	JoinDate   string            `json:"joinDate"`
	Collection []CollectionEntry `json:"collection"`
	Following  []string          `json:"following"`
	Followers  []string          `json:"followers"`
}

// PublicProfile is the client-facing view of a user, with the email stripped.
type PublicProfile struct {
	ID         string            `json:"id"`
	Username   string            `json:"username"`
	BirthYear  int               `json:"birthYear"`
	Location   Location          `json:"location"`
	JoinDate   string            `json:"joinDate"`
	Collection []CollectionEntry `json:"collection"`
	Following  []string          `json:"following"`
	Followers  []string          `json:"followers"`
}

// Public returns the sanitized view of a user profile.
func (u UserProfile) Public() PublicProfile {
	return PublicProfile{
		ID:         u.ID,
		Username:   u.Username,
		BirthYear:  u.BirthYear,
		Location:   u.Location,
		JoinDate:   u.JoinDate,
		Collection: u.Collection,
		Following:  u.Following,
		Followers:  u.Followers,
	}
}
