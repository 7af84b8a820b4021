package i18n

import (
	"testing"
)

func TestNewLocalizer(t *testing.T) {
	localizer, err := NewLocalizer()
	if err != nil {
		t.Fatalf("Failed to create localizer: %v", err)
	}

	if localizer == nil {
		t.Fatal("Localizer is nil")
	}

	for _, lang := range Languages {
		if _, ok := localizer.translations[lang]; !ok {
			t.Errorf("%s translations not loaded", lang)
		}
	}
}

func TestGet(t *testing.T) {
	localizer, err := NewLocalizer()
	if err != nil {
		t.Fatalf("Failed to create localizer: %v", err)
	}

	tests := []struct {
		name     string
		lang     string
		key      string
		expected string
	}{
		{
			name:     "English label",
			lang:     "en",
			key:      "label.earnings",
			expected: "Earnings",
		},
		{
			name:     "French label",
			lang:     "fr",
			key:      "label.earnings",
			expected: "Gains",
		},
		{
			name:     "Arabic label",
			lang:     "ar",
			key:      "label.earnings",
			expected: "الأرباح",
		},
		{
			name:     "Fallback to English",
			lang:     "unknown",
			key:      "label.earnings",
			expected: "Earnings",
		},
		{
			name:     "Non-existent key returns key itself",
			lang:     "en",
			key:      "non.existent.key",
			expected: "non.existent.key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := localizer.Get(tt.lang, tt.key)
			if result != tt.expected {
				t.Errorf("Get(%q, %q) = %q, want %q", tt.lang, tt.key, result, tt.expected)
			}
		})
	}
}

func TestGetFallsBackPerKey(t *testing.T) {
	localizer, err := NewLocalizer()
	if err != nil {
		t.Fatalf("Failed to create localizer: %v", err)
	}

	localizer.translations["fr"] = map[string]string{}

	if got := localizer.Get("fr", "label.net"); got != "Net" {
		t.Errorf("Get(fr, label.net) = %q, want English fallback", got)
	}
}

func TestGetWithData(t *testing.T) {
	localizer, err := NewLocalizer()
	if err != nil {
		t.Fatalf("Failed to create localizer: %v", err)
	}

	got := localizer.GetWithData("en", "employee.ask_rate", map[string]any{"name": "Ahmed"})
	if want := "Daily rate for Ahmed?"; got != want {
		t.Errorf("GetWithData() = %q, want %q", got, want)
	}

	got = localizer.GetWithData("en", "advance.recorded", map[string]any{
		"name":   "Sara",
		"amount": "100.00 MAD",
		"total":  "250.00 MAD",
	})
	if want := "Advance of 100.00 MAD recorded for Sara. Total advances: 250.00 MAD."; got != want {
		t.Errorf("GetWithData() = %q, want %q", got, want)
	}

	got = localizer.GetWithData("en", "label.net", map[string]any{"unused": 1})
	if got != "Net" {
		t.Errorf("GetWithData() with unused data = %q, want %q", got, "Net")
	}
}

func TestAllLanguagesHaveSameKeys(t *testing.T) {
	localizer, err := NewLocalizer()
	if err != nil {
		t.Fatalf("Failed to create localizer: %v", err)
	}

	english := localizer.translations["en"]
	for _, lang := range Languages[1:] {
		translations := localizer.translations[lang]
		for key := range english {
			if _, ok := translations[key]; !ok {
				t.Errorf("key %q missing in %s", key, lang)
			}
		}
		for key := range translations {
			if _, ok := english[key]; !ok {
				t.Errorf("key %q of %s missing in en", key, lang)
			}
		}
	}
}

func TestNormalizeLanguageCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"en-US", "en"},
		{"fr", "fr"},
		{"FR-ca", "fr"},
		{"ar", "ar"},
		{"ar-MA", "ar"},
		{"de", "en"},
		{"", "en"},
		{"x", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeLanguageCode(tt.input); got != tt.expected {
				t.Errorf("NormalizeLanguageCode(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsSupported(t *testing.T) {
	for _, lang := range []string{"en", "ar", "fr"} {
		if !IsSupported(lang) {
			t.Errorf("IsSupported(%q) = false", lang)
		}
	}
	if IsSupported("uk") {
		t.Error("IsSupported(uk) = true")
	}
}
