package locale

import (
	"fmt"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Lang
	}{
		{"en", English},
		{"English", English},
		{" id ", Indonesian},
		{"Bahasa Indonesia", Indonesian},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if _, err := Parse("fr"); err == nil {
		t.Fatalf("expected error for unsupported language")
	}
}

func TestNegotiate(t *testing.T) {
	tests := []struct {
		header string
		want   Lang
	}{
		{"", English},
		{"id-ID,id;q=0.9,en;q=0.8", Indonesian},
		{"en-US,en;q=0.9", English},
		{"de-DE", English},
	}
	for _, tt := range tests {
		if got := Negotiate(tt.header, English); got != tt.want {
			t.Errorf("Negotiate(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
	if got := Negotiate("", Indonesian); got != Indonesian {
		t.Errorf("fallback not honored: %q", got)
	}
}

func TestSentenceWordOrder(t *testing.T) {
	en := English.Pack()
	got := fmt.Sprintf(en.Sentence, en.Strong, en.Positive, en.Significant)
	want := "There is a **strong positive relationship** between screen time and student productivity. The relationship is **statistically significant**."
	if got != want {
		t.Fatalf("en sentence = %q", got)
	}
	id := Indonesian.Pack()
	got = fmt.Sprintf(id.Sentence, id.Weak, id.Negative, id.NotSignificant)
	want = "Terdapat hubungan **negatif lemah** antara screen time dan produktivitas mahasiswa. Hubungan tersebut **tidak signifikan secara statistik**."
	if got != want {
		t.Fatalf("id sentence = %q", got)
	}
}

func TestUnknownLangFallsBackToEnglish(t *testing.T) {
	if Lang("xx").Pack().Title != English.Pack().Title {
		t.Fatalf("unknown language should use the English pack")
	}
}
