// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package localized_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/pkg/localized"
)

/*
TestText_Unmarshal verifies that both backend wire shapes normalize into the
tagged representation.
*/
func TestText_Unmarshal(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		tagged   bool
		english  string
		arabic   string
		hasError bool
	}{
		{"flat_legacy_string", `"Palm Residence"`, false, "Palm Residence", "", false},
		{"bilingual_object", `{"en":"Palm Residence","ar":"بالم ريزيدنس"}`, true, "Palm Residence", "بالم ريزيدنس", false},
		{"object_missing_arabic", `{"en":"North Tower"}`, true, "North Tower", "", false},
		{"null_is_empty", `null`, false, "", "", false},
		{"rejected_array", `["en","ar"]`, false, "", "", true},
		{"rejected_number", `42`, false, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var text localized.Text
			err := json.Unmarshal([]byte(tt.payload), &text)

			if tt.hasError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.tagged, text.IsTagged())
			assert.Equal(t, tt.english, text.Resolve(localized.English))
			if tt.tagged {
				ar, _ := text.Get(localized.Arabic)
				assert.Equal(t, tt.arabic, ar)
			}
		})
	}
}

/*
TestText_Resolve_FallbackChain exercises locale → English → plain resolution.
*/
func TestText_Resolve_FallbackChain(t *testing.T) {
	tests := []struct {
		name   string
		text   localized.Text
		locale localized.Locale
		want   string
	}{
		{"exact_arabic", localized.ByLocale("Gate Mall", "جيت مول"), localized.Arabic, "جيت مول"},
		{"arabic_missing_falls_to_english", localized.ByLocale("Gate Mall", ""), localized.Arabic, "Gate Mall"},
		{"plain_ignores_locale", localized.Plain("Gate Mall"), localized.Arabic, "Gate Mall"},
		{"empty_tagged", localized.ByLocale("", ""), localized.Arabic, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.text.Resolve(tt.locale))
		})
	}
}

/*
TestText_Marshal_RoundTrip ensures marshaling preserves the normalized shape.
*/
func TestText_Marshal_RoundTrip(t *testing.T) {
	tagged := localized.ByLocale("Palm", "نخلة")
	data, err := json.Marshal(tagged)
	require.NoError(t, err)
	assert.JSONEq(t, `{"en":"Palm","ar":"نخلة"}`, string(data))

	plain := localized.Plain("Palm")
	data, err = json.Marshal(plain)
	require.NoError(t, err)
	assert.Equal(t, `"Palm"`, string(data))
}

func TestText_IsZero(t *testing.T) {
	assert.True(t, localized.Text{}.IsZero())
	assert.True(t, localized.Plain("   ").IsZero())
	assert.True(t, localized.ByLocale("", " ").IsZero())
	assert.False(t, localized.Plain("x").IsZero())
	assert.False(t, localized.ByLocale("", "س").IsZero())
}

func TestParse(t *testing.T) {
	assert.Equal(t, localized.Arabic, localized.Parse("ar"))
	assert.Equal(t, localized.Arabic, localized.Parse("AR-EG"))
	assert.Equal(t, localized.English, localized.Parse("en"))
	assert.Equal(t, localized.English, localized.Parse(""))
	assert.Equal(t, localized.English, localized.Parse("fr"))
}

func TestStringList_Resolve(t *testing.T) {
	list := localized.StringList{
		English: []string{"Pool", "Gym"},
		Arabic:  []string{"مسبح", "صالة رياضية"},
	}
	assert.Equal(t, list.Arabic, list.Resolve(localized.Arabic))
	assert.Equal(t, list.English, list.Resolve(localized.English))

	// Empty Arabic list falls back to English.
	list.Arabic = nil
	assert.Equal(t, list.English, list.Resolve(localized.Arabic))
}
