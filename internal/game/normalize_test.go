package game

import (
	"encoding/json"
	"testing"
)

func TestNormalizeAnswerEquivalentForms(t *testing.T) {
	// "B", 1 and "1" are all the same option.
	forms := []interface{}{"B", "b", 1, float64(1), "1", json.Number("1")}
	for _, raw := range forms {
		idx, err := NormalizeAnswer(raw, 4)
		if err != nil {
			t.Fatalf("NormalizeAnswer(%v): %v", raw, err)
		}
		if idx != 1 {
			t.Errorf("NormalizeAnswer(%v) = %d, want 1", raw, idx)
		}
	}
}

func TestNormalizeAnswerLetters(t *testing.T) {
	for i, letter := range []string{"A", "B", "C", "D"} {
		idx, err := NormalizeAnswer(letter, 4)
		if err != nil {
			t.Fatalf("NormalizeAnswer(%q): %v", letter, err)
		}
		if idx != i {
			t.Errorf("NormalizeAnswer(%q) = %d, want %d", letter, idx, i)
		}
	}
}

func TestNormalizeAnswerRejectsInvalid(t *testing.T) {
	invalid := []interface{}{
		"E",      // letter beyond option count
		4,        // index beyond option count
		-1,       // negative index
		"4",      // digit string beyond option count
		"",       // empty
		"AB",     // multi-letter
		"nope",   // word
		nil,      // missing
		3.7,      // truncates to 3, valid for 4 options — checked below
	}
	for _, raw := range invalid[:len(invalid)-1] {
		if _, err := NormalizeAnswer(raw, 4); err == nil {
			t.Errorf("NormalizeAnswer(%v) accepted, want error", raw)
		}
	}

	// Fractional floats truncate; JSON numbers arrive as float64 anyway.
	if idx, err := NormalizeAnswer(3.7, 4); err != nil || idx != 3 {
		t.Errorf("NormalizeAnswer(3.7) = %d, %v; want 3, nil", idx, err)
	}
}

func TestNormalizeAnswerRespectsOptionCount(t *testing.T) {
	if _, err := NormalizeAnswer("C", 2); err == nil {
		t.Error("option C accepted for a 2-option question")
	}
	if idx, err := NormalizeAnswer("C", 3); err != nil || idx != 2 {
		t.Errorf("NormalizeAnswer(C, 3) = %d, %v; want 2, nil", idx, err)
	}
}
