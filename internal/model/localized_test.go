package model

import (
	"encoding/json"
	"testing"
)

func TestLocalizedTextUnmarshalObject(t *testing.T) {
	var lt LocalizedText
	if err := json.Unmarshal([]byte(`{"ar":"قميص","en":"Shirt"}`), &lt); err != nil {
		t.Fatalf("unmarshal object: %v", err)
	}
	if lt.AR != "قميص" || lt.EN != "Shirt" {
		t.Errorf("got %+v", lt)
	}
}

func TestLocalizedTextUnmarshalDoubleEncoded(t *testing.T) {
	// Legacy rows store the object JSON-encoded inside a string.
	var lt LocalizedText
	if err := json.Unmarshal([]byte(`"{\"ar\":\"قميص\",\"en\":\"Shirt\"}"`), &lt); err != nil {
		t.Fatalf("unmarshal double-encoded: %v", err)
	}
	if lt.AR != "قميص" || lt.EN != "Shirt" {
		t.Errorf("got %+v", lt)
	}
}

func TestLocalizedTextUnmarshalBareString(t *testing.T) {
	var lt LocalizedText
	if err := json.Unmarshal([]byte(`"Shirt"`), &lt); err != nil {
		t.Fatalf("unmarshal bare string: %v", err)
	}
	if lt.AR != "Shirt" || lt.EN != "Shirt" {
		t.Errorf("bare string should fill both languages, got %+v", lt)
	}
}

func TestLocalizedTextUnmarshalEmptyString(t *testing.T) {
	var lt LocalizedText
	if err := json.Unmarshal([]byte(`""`), &lt); err != nil {
		t.Fatalf("unmarshal empty string: %v", err)
	}
	if lt.AR != "" || lt.EN != "" {
		t.Errorf("got %+v", lt)
	}
}

func TestLocalizedTextScanNil(t *testing.T) {
	lt := LocalizedText{AR: "x", EN: "y"}
	if err := lt.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if lt.AR != "" || lt.EN != "" {
		t.Errorf("scan nil should reset, got %+v", lt)
	}
}

func TestLocalizedTextGetFallback(t *testing.T) {
	tests := []struct {
		name string
		lt   LocalizedText
		lang string
		want string
	}{
		{"ar present", LocalizedText{AR: "مرحبا", EN: "Hello"}, LangAR, "مرحبا"},
		{"ar missing falls back to en", LocalizedText{EN: "Hello"}, LangAR, "Hello"},
		{"en missing falls back to ar", LocalizedText{AR: "مرحبا"}, LangEN, "مرحبا"},
		{"both empty", LocalizedText{}, LangEN, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lt.Get(tt.lang); got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.lang, got, tt.want)
			}
		})
	}
}

func TestLocalizedTextSetPartialMerge(t *testing.T) {
	lt := LocalizedText{AR: "قديم", EN: "Old"}
	lt.Set(LangEN, "New")
	if lt.EN != "New" {
		t.Errorf("EN = %q, want New", lt.EN)
	}
	if lt.AR != "قديم" {
		t.Errorf("Set(en) must not touch AR, got %q", lt.AR)
	}
}
