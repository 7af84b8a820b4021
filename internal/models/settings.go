package models

// Supported interface languages.
const (
	LanguageEnglish = "en"
	LanguageArabic  = "ar"
	LanguageFrench  = "fr"
)

// Supported themes.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// AppSettings is the owner's interface configuration.
type AppSettings struct {
	Language string `json:"language"`
	Theme    string `json:"theme"`
}

// DefaultSettings returns the settings used until the owner changes them.
func DefaultSettings() AppSettings {
	return AppSettings{Language: LanguageEnglish, Theme: ThemeSystem}
}
