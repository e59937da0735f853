package model

// Collection is one of the five fixed content categories the site renders.
type Collection string

const (
	CollectionTeam     Collection = "team"
	CollectionFeatures Collection = "features"
	CollectionServices Collection = "services"
	CollectionAbout    Collection = "about"
	CollectionHome     Collection = "home"
)

// Collections returns the fixed set of collections in display order.
func Collections() []Collection {
	return []Collection{
		CollectionTeam,
		CollectionFeatures,
		CollectionServices,
		CollectionAbout,
		CollectionHome,
	}
}

// ValidCollection reports whether name is one of the five fixed collections.
func ValidCollection(name string) bool {
	switch Collection(name) {
	case CollectionTeam, CollectionFeatures, CollectionServices, CollectionAbout, CollectionHome:
		return true
	}
	return false
}

// ParseCollection converts a name into a Collection.
// The boolean is false for anything outside the fixed set.
func ParseCollection(name string) (Collection, bool) {
	if !ValidCollection(name) {
		return "", false
	}
	return Collection(name), true
}

func (c Collection) String() string {
	return string(c)
}
