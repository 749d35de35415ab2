package paper

import (
	"encoding"
	"encoding/json"
	"fmt"
	"time"
)

// Difficulty represents the user's assessment of recall quality for a review.
type Difficulty int

const (
	Easy   Difficulty = iota + 1 // Recalled effortlessly.
	Medium                       // Recalled with some effort.
	Hard                         // Recalled with significant difficulty.
)

var (
	difficultyNames  = [...]string{Easy: "easy", Medium: "medium", Hard: "hard"}
	difficultyByName = map[string]Difficulty{
		"easy":   Easy,
		"medium": Medium,
		"hard":   Hard,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Difficulty(0)
	_ json.Marshaler           = Difficulty(0)
	_ json.Unmarshaler         = (*Difficulty)(nil)
	_ encoding.TextMarshaler   = Difficulty(0)
	_ encoding.TextUnmarshaler = (*Difficulty)(nil)
)

// String returns the name of the difficulty ("easy", "medium", "hard").
// For invalid values it returns "Difficulty(n)".
func (d Difficulty) String() string {
	if d.IsValid() {
		return difficultyNames[d]
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// IsValid reports whether d is a valid difficulty (Easy through Hard).
func (d Difficulty) IsValid() bool {
	return d >= Easy && d <= Hard
}

// ParseDifficulty converts a difficulty name into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d, ok := difficultyByName[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
	}
	return d, nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDifficulty, int(d))
	}
	return []byte(difficultyNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Difficulty) UnmarshalText(text []byte) error {
	v, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MarshalJSON implements json.Marshaler. Difficulty serializes as a JSON string.
func (d Difficulty) MarshalJSON() ([]byte, error) {
	text, err := d.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (d *Difficulty) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDifficulty, data)
	}
	return d.UnmarshalText([]byte(s))
}

// ReviewEvent records one recall attempt against a paper. It exists only to
// pass into the review engine; its effect is folded into the paper's
// scheduling state and then discarded.
type ReviewEvent struct {
	PaperID    string     `json:"paper_id"`
	Difficulty Difficulty `json:"difficulty"`
	Timestamp  time.Time  `json:"timestamp"`
}

// NewReviewEvent validates the difficulty and stamps the current time.
func NewReviewEvent(paperID string, difficulty Difficulty) (ReviewEvent, error) {
	if !difficulty.IsValid() {
		return ReviewEvent{}, fmt.Errorf("%w: %d", ErrInvalidDifficulty, int(difficulty))
	}
	return ReviewEvent{PaperID: paperID, Difficulty: difficulty, Timestamp: time.Now()}, nil
}
