package catalog

// Snapshot is the immutable in-memory dataset the whole API reads from. It is
// constructed exactly once at process start and injected into handlers; no
// code path mutates it afterwards, so concurrent reads need no locking.
type Snapshot struct {
	categories []Category
	videoGames []MemoryItem
	toys       []MemoryItem
	users      []UserProfile
	allItems   []MemoryItem
}

// NewSnapshot builds a snapshot from the loaded collections. The derived
// allItems view is the concatenation of the source collections in load order:
// video games first, then toys.
func NewSnapshot(categories []Category, videoGames, toys []MemoryItem, users []UserProfile) *Snapshot {
	allItems := make([]MemoryItem, 0, len(videoGames)+len(toys))
	allItems = append(allItems, videoGames...)
	allItems = append(allItems, toys...)

	return &Snapshot{
		categories: categories,
		videoGames: videoGames,
		toys:       toys,
		users:      users,
		allItems:   allItems,
	}
}

// Categories returns all categories.
func (s *Snapshot) Categories() []Category {
	return s.categories
}

// CategoryByID returns the category with the given id, if any.
func (s *Snapshot) CategoryByID(id string) (Category, bool) {
	for _, category := range s.categories {
		if category.ID == id {
			return category, true
		}
	}
	return Category{}, false
}

// AllItems returns the union of all item collections in load order.
func (s *Snapshot) AllItems() []MemoryItem {
	return s.allItems
}

// ItemByID returns the item with the given id, if any.
func (s *Snapshot) ItemByID(id string) (MemoryItem, bool) {
	for _, item := range s.allItems {
		if item.ID == id {
			return item, true
		}
	}
	return MemoryItem{}, false
}

// Users returns all user profiles.
func (s *Snapshot) Users() []UserProfile {
	return s.users
}

// UserByID returns the user with the given id, if any.
func (s *Snapshot) UserByID(id string) (UserProfile, bool) {
	for _, user := range s.users {
		if user.ID == id {
			return user, true
		}
	}
	return UserProfile{}, false
}

// UserByUsername returns the user with the given username, if any.
func (s *Snapshot) UserByUsername(username string) (UserProfile, bool) {
	for _, user := range s.users {
		if user.Username == username {
			return user, true
		}
	}
	return UserProfile{}, false
}

// UserByEmail returns the user with the given email, if any. Used only by the
// login stub; the email never leaves the process.
func (s *Snapshot) UserByEmail(email string) (UserProfile, bool) {
	for _, user := range s.users {
		if user.Email == email {
			return user, true
		}
	}
	return UserProfile{}, false
}
