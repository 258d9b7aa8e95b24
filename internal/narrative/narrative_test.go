package narrative

import (
	"strings"
	"testing"

	"github.com/KaramelBytes/surveylens/internal/locale"
)

func TestStrengthOf(t *testing.T) {
	tests := []struct {
		r    float64
		want Strength
	}{
		{0, Weak},
		{0.299, Weak},
		{-0.299, Weak},
		{0.3, Moderate},
		{-0.45, Moderate},
		{0.599, Moderate},
		{0.6, Strong},
		{-1, Strong},
	}
	for _, tt := range tests {
		if got := StrengthOf(tt.r); got != tt.want {
			t.Errorf("StrengthOf(%v) = %s, want %s", tt.r, got, tt.want)
		}
	}
}

func TestSignificant(t *testing.T) {
	if !Significant(0.049) {
		t.Errorf("0.049 should be significant")
	}
	if Significant(0.05) {
		t.Errorf("0.05 should not be significant")
	}
}

func TestDirectionOf(t *testing.T) {
	if DirectionOf(-0.1) != Negative || DirectionOf(0) != Positive || DirectionOf(0.7) != Positive {
		t.Fatalf("unexpected direction mapping")
	}
}

func TestInterpretEnglish(t *testing.T) {
	in := Interpret(1, 0, locale.English)
	if in.Strength != Strong || in.Direction != Positive || !in.Significant {
		t.Fatalf("classification = %+v", in)
	}
	if !strings.Contains(in.Text, "strong positive relationship") || !strings.Contains(in.Text, "**statistically significant**") {
		t.Fatalf("text = %q", in.Text)
	}
}

func TestInterpretIndonesian(t *testing.T) {
	in := Interpret(-0.42, 0.2, locale.Indonesian)
	want := "Terdapat hubungan **negatif sedang** antara screen time dan produktivitas mahasiswa. Hubungan tersebut **tidak signifikan secara statistik**."
	if in.Text != want {
		t.Fatalf("text = %q, want %q", in.Text, want)
	}
}

func TestLabel(t *testing.T) {
	in := Interpret(-0.45, 0.2, locale.English)
	if got, want := in.Label(locale.English), "moderate negative, not statistically significant"; got != want {
		t.Fatalf("Label = %q, want %q", got, want)
	}
	if got, want := in.Label(locale.Indonesian), "negatif sedang, tidak signifikan secara statistik"; got != want {
		t.Fatalf("Label = %q, want %q", got, want)
	}
}
