package program

// Record represents one program listing extracted from a results page.
// Every field is a plain string; data missing from the source markup maps
// to the empty string, never to an absent field.
type Record struct {
	Title    string `json:"title"`
	Provider string `json:"provider"`
	Start    string `json:"start"`
	Scope    string `json:"scope"`
	Pace     string `json:"pace"`
	Location string `json:"location"`
	Link     string `json:"link"`
}

// Key is the identity of a record across runs. Two records denote the
// same program exactly when their keys are equal, even if secondary
// fields such as the start date differ.
type Key struct {
	Title    string `json:"title"`
	Provider string `json:"provider"`
	Link     string `json:"link"`
}

// Key returns the record's identity key.
func (r Record) Key() Key {
	return Key{Title: r.Title, Provider: r.Provider, Link: r.Link}
}

// Less orders keys lexicographically by (title, provider, link).
func (k Key) Less(other Key) bool {
	if k.Title != other.Title {
		return k.Title < other.Title
	}
	if k.Provider != other.Provider {
		return k.Provider < other.Provider
	}
	return k.Link < other.Link
}
