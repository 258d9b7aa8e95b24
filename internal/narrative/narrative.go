// Package narrative turns a correlation result into a sentence.
package narrative

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/surveylens/internal/locale"
)

// Thresholds on |r| and p.
const (
	ModerateAt = 0.3
	StrongAt   = 0.6
	Alpha      = 0.05
)

// Strength classifies |r|.
type Strength string

const (
	Weak     Strength = "weak"
	Moderate Strength = "moderate"
	Strong   Strength = "strong"
)

// Direction is the sign of r.
type Direction string

const (
	Positive Direction = "positive"
	Negative Direction = "negative"
)

// Interpretation is the classified result plus its localized sentence.
type Interpretation struct {
	Strength    Strength  `json:"strength"`
	Direction   Direction `json:"direction"`
	Significant bool      `json:"significant"`
	Text        string    `json:"text"`
}

// StrengthOf maps |r| < 0.3 to weak, < 0.6 to moderate, anything else to strong.
func StrengthOf(r float64) Strength {
	a := math.Abs(r)
	switch {
	case a < ModerateAt:
		return Weak
	case a < StrongAt:
		return Moderate
	default:
		return Strong
	}
}

// DirectionOf is negative for r < 0 and positive otherwise.
func DirectionOf(r float64) Direction {
	if r < 0 {
		return Negative
	}
	return Positive
}

// Significant reports p < 0.05.
func Significant(p float64) bool { return p < Alpha }

// Interpret classifies (r, p) and renders the sentence in lang. The text
// uses **bold** markers around the relationship and the significance.
func Interpret(r, p float64, lang locale.Lang) Interpretation {
	in := Interpretation{
		Strength:    StrengthOf(r),
		Direction:   DirectionOf(r),
		Significant: Significant(p),
	}
	strength, direction, significance := in.Words(lang)
	in.Text = fmt.Sprintf(lang.Pack().Sentence, strength, direction, significance)
	return in
}

// Words returns the localized strength, direction and significance words.
func (in Interpretation) Words(lang locale.Lang) (strength, direction, significance string) {
	pk := lang.Pack()
	strength = map[Strength]string{Weak: pk.Weak, Moderate: pk.Moderate, Strong: pk.Strong}[in.Strength]
	direction = pk.Positive
	if in.Direction == Negative {
		direction = pk.Negative
	}
	significance = pk.NotSignificant
	if in.Significant {
		significance = pk.Significant
	}
	return strength, direction, significance
}

// Label is a short form such as "strong positive, statistically significant".
func (in Interpretation) Label(lang locale.Lang) string {
	strength, direction, significance := in.Words(lang)
	return fmt.Sprintf(lang.Pack().Label, strength, direction, significance)
}
