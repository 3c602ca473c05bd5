package model

// Store is one tenant. Provisioning lives in the platform's account
// service; this service only reads stores to resolve public URLs.
type Store struct {
	BaseModel
	Slug          string        `db:"slug" json:"slug"`
	Name          LocalizedText `db:"name" json:"name"`
	DefaultLocale string        `db:"default_locale" json:"default_locale"`
	IsActive      bool          `db:"is_active" json:"is_active"`
}
