package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

const (
	LangAR = "ar"
	LangEN = "en"
)

// LocalizedText is the canonical in-memory form of a bilingual field.
// Stored shapes vary: some rows hold a proper jsonb object, others a
// JSON-encoded string of that object (legacy double encoding). Decoding
// normalizes both shapes here, at the data boundary, so nothing deeper
// in the service has to care.
type LocalizedText struct {
	AR string `json:"ar"`
	EN string `json:"en"`
}

// Get returns the value for lang, falling back to the other language
// when the requested one is empty.
func (t LocalizedText) Get(lang string) string {
	if lang == LangAR {
		if t.AR != "" {
			return t.AR
		}
		return t.EN
	}
	if t.EN != "" {
		return t.EN
	}
	return t.AR
}

// Set replaces only the given language's value. The other language is
// left untouched (partial-update merge for the page editor).
func (t *LocalizedText) Set(lang, value string) {
	if lang == LangAR {
		t.AR = value
		return
	}
	t.EN = value
}

func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	type plain LocalizedText
	var p plain
	if err := json.Unmarshal(data, &p); err == nil {
		*t = LocalizedText(p)
		return nil
	}

	// Double-encoded legacy shape: a JSON string containing the object.
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("localized text: unsupported shape %q", string(data))
	}
	if s == "" {
		*t = LocalizedText{}
		return nil
	}
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		// A bare string is treated as the same value in both languages.
		*t = LocalizedText{AR: s, EN: s}
		return nil
	}
	*t = LocalizedText(p)
	return nil
}

func (t LocalizedText) Value() (driver.Value, error) {
	return json.Marshal(t)
}

func (t *LocalizedText) Scan(src interface{}) error {
	if src == nil {
		*t = LocalizedText{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return t.UnmarshalJSON(v)
	case string:
		return t.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("localized text: cannot scan %T", src)
	}
}
