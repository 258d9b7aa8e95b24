// Package locale holds the two fixed language packs used by the dashboard,
// the CLI report and the narrative interpretation.
package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Lang identifies one of the supported language packs.
type Lang string

const (
	English    Lang = "en"
	Indonesian Lang = "id"
)

// Supported lists the languages in display order.
var Supported = []Lang{English, Indonesian}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Indonesian})

// Pack is every user-visible string of one language.
type Pack struct {
	Title         string
	Subtitle      string
	Settings      string
	LanguageLabel string
	ThemeLabel    string
	LightMode     string
	DarkMode      string
	UploadPrompt  string
	UploadButton  string
	Uploaded      string
	EmptyHint     string
	RawData       string
	ShowingRows   string // format: shown, total
	DescStats     string
	Composite     string
	CorrTitle     string
	CorrLabel     string
	PValueLabel   string
	SampleSize    string
	InterpTitle   string
	Scatter       string
	XTitle        string
	YTitle        string
	StatLabels    StatLabels

	Weak           string
	Moderate       string
	Strong         string
	Positive       string
	Negative       string
	Significant    string
	NotSignificant string
	// Sentence is a fmt format taking strength, direction, significance as
	// %[1]s, %[2]s, %[3]s so each language controls word order.
	Sentence string
	// Label is the short summary form, with the same arguments as Sentence.
	Label string
}

// StatLabels names the rows of a descriptive statistics table.
type StatLabels struct {
	Count, Mean, Std, Min, Q1, Median, Q3, Max string
}

// List returns the labels in describe() row order.
func (s StatLabels) List() [8]string {
	return [8]string{s.Count, s.Mean, s.Std, s.Min, s.Q1, s.Median, s.Q3, s.Max}
}

var packs = map[Lang]Pack{
	English: {
		Title:          "📊 Survey Analysis App",
		Subtitle:       "The Effect of Screen Time on Student Productivity",
		Settings:       "⚙️ Settings",
		LanguageLabel:  "🌐 Language / Bahasa",
		ThemeLabel:     "🎨 Theme",
		LightMode:      "Light Mode",
		DarkMode:       "Dark Mode",
		UploadPrompt:   "Upload your survey dataset (Excel or CSV)",
		UploadButton:   "Analyze",
		Uploaded:       "✅ Dataset uploaded",
		EmptyHint:      "⬅️ Upload dataset to start analysis",
		RawData:        "📋 Raw Data Preview",
		ShowingRows:    "Showing %d of %d rows",
		DescStats:      "📈 Descriptive Statistics",
		Composite:      "📊 Composite Score Statistics",
		CorrTitle:      "🔗 Pearson Correlation Analysis",
		CorrLabel:      "Correlation coefficient (r)",
		PValueLabel:    "p-value",
		SampleSize:     "Pairs (n)",
		InterpTitle:    "🧠 Interpretation",
		Scatter:        "📉 Scatter Plot",
		XTitle:         "Screen Time (X_TOTAL)",
		YTitle:         "Student Productivity (Y_TOTAL)",
		StatLabels:     StatLabels{"count", "mean", "std", "min", "25%", "50%", "75%", "max"},
		Weak:           "weak",
		Moderate:       "moderate",
		Strong:         "strong",
		Positive:       "positive",
		Negative:       "negative",
		Significant:    "statistically significant",
		NotSignificant: "not statistically significant",
		Label:          "%[1]s %[2]s, %[3]s",
		Sentence:       "There is a **%[1]s %[2]s relationship** between screen time and student productivity. The relationship is **%[3]s**.",
	},
	Indonesian: {
		Title:          "📊 Aplikasi Analisis Survei",
		Subtitle:       "Pengaruh Screen Time terhadap Produktivitas Mahasiswa",
		Settings:       "⚙️ Pengaturan",
		LanguageLabel:  "🌐 Language / Bahasa",
		ThemeLabel:     "🎨 Tema",
		LightMode:      "Mode Terang",
		DarkMode:       "Mode Gelap",
		UploadPrompt:   "Unggah dataset survei (Excel atau CSV)",
		UploadButton:   "Analisis",
		Uploaded:       "✅ Dataset berhasil diunggah",
		EmptyHint:      "⬅️ Unggah dataset untuk memulai analisis",
		RawData:        "📋 Pratinjau Data",
		ShowingRows:    "Menampilkan %d dari %d baris",
		DescStats:      "📈 Statistik Deskriptif",
		Composite:      "📊 Statistik Skor Total",
		CorrTitle:      "🔗 Analisis Korelasi Pearson",
		CorrLabel:      "Koefisien korelasi (r)",
		PValueLabel:    "p-value",
		SampleSize:     "Jumlah pasangan (n)",
		InterpTitle:    "🧠 Interpretasi",
		Scatter:        "📉 Diagram Sebar",
		XTitle:         "Screen Time (X_TOTAL)",
		YTitle:         "Produktivitas Mahasiswa (Y_TOTAL)",
		StatLabels:     StatLabels{"jumlah", "rata-rata", "simpangan baku", "min", "25%", "50%", "75%", "maks"},
		Weak:           "lemah",
		Moderate:       "sedang",
		Strong:         "kuat",
		Positive:       "positif",
		Negative:       "negatif",
		Significant:    "signifikan secara statistik",
		NotSignificant: "tidak signifikan secara statistik",
		Label:          "%[2]s %[1]s, %[3]s",
		Sentence:       "Terdapat hubungan **%[2]s %[1]s** antara screen time dan produktivitas mahasiswa. Hubungan tersebut **%[3]s**.",
	},
}

// Pack returns the strings for l, falling back to English for unknown values.
func (l Lang) Pack() Pack {
	if p, ok := packs[l]; ok {
		return p
	}
	return packs[English]
}

// DisplayName is the label shown in the language selector.
func (l Lang) DisplayName() string {
	switch l {
	case Indonesian:
		return "Bahasa Indonesia"
	default:
		return "English"
	}
}

// Parse accepts codes and display names ("en", "English", "id", "Bahasa Indonesia").
func Parse(s string) (Lang, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en", "eng", "english":
		return English, nil
	case "id", "in", "ind", "indonesian", "bahasa", "bahasa indonesia":
		return Indonesian, nil
	default:
		return "", fmt.Errorf("unsupported language: %q (use en or id)", s)
	}
}

// Negotiate picks a pack from an Accept-Language header value. fallback is
// returned when the header is empty or matches neither pack.
func Negotiate(acceptLanguage string, fallback Lang) Lang {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return Supported[idx]
}
