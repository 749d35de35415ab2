package paper

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseDifficulty(t *testing.T) {
	for name, want := range map[string]Difficulty{
		"easy":   Easy,
		"medium": Medium,
		"hard":   Hard,
	} {
		got, err := ParseDifficulty(name)
		if err != nil {
			t.Fatalf("ParseDifficulty(%q): %v", name, err)
		}
		if got != want {
			t.Errorf("ParseDifficulty(%q) = %v, want %v", name, got, want)
		}
	}

	if _, err := ParseDifficulty("trivial"); !errors.Is(err, ErrInvalidDifficulty) {
		t.Errorf("err = %v, want ErrInvalidDifficulty", err)
	}
}

func TestDifficultyJSON(t *testing.T) {
	data, err := json.Marshal(Hard)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"hard"` {
		t.Errorf("Marshal = %s, want %q", data, `"hard"`)
	}

	var d Difficulty
	if err := json.Unmarshal([]byte(`"easy"`), &d); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if d != Easy {
		t.Errorf("Unmarshal = %v, want Easy", d)
	}

	if err := json.Unmarshal([]byte(`"EASY"`), &d); !errors.Is(err, ErrInvalidDifficulty) {
		t.Errorf("uppercase: err = %v, want ErrInvalidDifficulty", err)
	}
	if _, err := json.Marshal(Difficulty(9)); err == nil {
		t.Error("Marshal should reject invalid difficulty")
	}
}

func TestDifficultyString(t *testing.T) {
	if Medium.String() != "medium" {
		t.Errorf("String = %q, want medium", Medium.String())
	}
	if Difficulty(42).String() != "Difficulty(42)" {
		t.Errorf("String = %q for invalid value", Difficulty(42).String())
	}
}

func TestNewReviewEvent(t *testing.T) {
	ev, err := NewReviewEvent("abc", Medium)
	if err != nil {
		t.Fatalf("NewReviewEvent: %v", err)
	}
	if ev.PaperID != "abc" || ev.Difficulty != Medium {
		t.Errorf("event = %+v", ev)
	}
	if ev.Timestamp.IsZero() {
		t.Error("timestamp not stamped")
	}

	if _, err := NewReviewEvent("abc", Difficulty(0)); !errors.Is(err, ErrInvalidDifficulty) {
		t.Errorf("err = %v, want ErrInvalidDifficulty", err)
	}
}
