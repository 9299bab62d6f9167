package internal

// Language identifies a translation language by its human-readable name
// and ISO 639-1 code, e.g. {"English", "en"}. Both are embedded into the
// translation prompt.
type Language struct {
	Name string `json:"name"`
	Code string `json:"code"`
}
