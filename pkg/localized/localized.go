// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

/*
Package localized provides the tagged bilingual text representation used by
every catalogue entity.

The backend API historically emits two incompatible wire shapes for the same
field: a legacy flat English string ("Palm Residence") and a bilingual object
({"en": "Palm Residence", "ar": "بالم ريزيدنس"}). Rather than reconciling the
two shapes ad hoc at render time, this package normalizes them once, at the
data-client boundary, into a single sum type:

  - Plain:    a single untagged string (legacy entities).
  - ByLocale: a locale-keyed table (current entities).

The rest of the system only ever sees [Text] and resolves it with an explicit
fallback chain (requested locale → English → raw string).
*/
package localized

import (
	"encoding/json"
	"fmt"
	"strings"
)

// # Locales

// Locale identifies a supported display language.
type Locale string

const (
	// English is the default and fallback locale.
	English Locale = "en"

	// Arabic is the secondary site locale.
	Arabic Locale = "ar"
)

// Parse maps a raw locale string (query parameter or Accept-Language tag)
// onto a supported [Locale]. Unknown values fall back to [English].
func Parse(raw string) Locale {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "ar", "ar-eg", "ar-sa", "ar-ae":
		return Arabic
	default:
		return English
	}
}

// # Text Sum Type

// Text is a bilingual string value with exactly two variants: Plain and
// ByLocale. The zero value is an empty Plain text.
type Text struct {
	plain    string
	byLocale map[Locale]string
	tagged   bool
}

// Plain constructs the untagged single-string variant.
func Plain(s string) Text {
	return Text{plain: s}
}

// ByLocale constructs the locale-keyed variant from English and Arabic values.
func ByLocale(en, ar string) Text {
	return Text{
		byLocale: map[Locale]string{English: en, Arabic: ar},
		tagged:   true,
	}
}

// IsTagged reports whether the text carries per-locale values (ByLocale).
func (t Text) IsTagged() bool { return t.tagged }

// IsZero reports whether the text holds no content in any variant.
func (t Text) IsZero() bool {
	if t.tagged {
		for _, v := range t.byLocale {
			if strings.TrimSpace(v) != "" {
				return false
			}
		}
		return true
	}
	return strings.TrimSpace(t.plain) == ""
}

// Get returns the value stored for the exact locale, without fallback.
func (t Text) Get(locale Locale) (string, bool) {
	if !t.tagged {
		return "", false
	}
	v, ok := t.byLocale[locale]
	return v, ok
}

// Resolve returns the best display string for the requested locale.
//
// # Fallback Chain
//
//  1. The exact requested locale, if present and non-empty.
//  2. English, if present and non-empty.
//  3. The plain string (empty for ByLocale texts with no usable value).
func (t Text) Resolve(locale Locale) string {
	if t.tagged {
		if v := t.byLocale[locale]; strings.TrimSpace(v) != "" {
			return v
		}
		if v := t.byLocale[English]; strings.TrimSpace(v) != "" {
			return v
		}
		return ""
	}
	return t.plain
}

// # Wire Normalization

// UnmarshalJSON accepts both backend wire shapes.
//
// A JSON string becomes Plain; a JSON object with "en"/"ar" keys becomes
// ByLocale. Any other shape is rejected so malformed entities surface at the
// data-client boundary instead of at render time.
func (t *Text) UnmarshalJSON(data []byte) error {
	// null is treated as an absent field, not an error.
	if string(data) == "null" {
		*t = Text{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Plain(s)
		return nil
	}

	var obj map[string]string
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("localized: unsupported text shape: %s", string(data))
	}

	*t = ByLocale(obj["en"], obj["ar"])
	return nil
}

// MarshalJSON emits the same shape the value was normalized from: a string
// for Plain, an {"en","ar"} object for ByLocale.
func (t Text) MarshalJSON() ([]byte, error) {
	if t.tagged {
		return json.Marshal(map[string]string{
			"en": t.byLocale[English],
			"ar": t.byLocale[Arabic],
		})
	}
	return json.Marshal(t.plain)
}

// StringList is a locale-keyed list of feature strings ({"en": [...], "ar": [...]}).
type StringList struct {
	English []string `json:"en"`
	Arabic  []string `json:"ar"`
}

// Resolve returns the list for the requested locale, falling back to English.
func (l StringList) Resolve(locale Locale) []string {
	if locale == Arabic && len(l.Arabic) > 0 {
		return l.Arabic
	}
	return l.English
}
