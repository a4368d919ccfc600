package textnorm

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"only whitespace", "  \n\t\n ", ""},
		{"collapses spaces", "MAGIC   ITEM\t LORE", "MAGIC ITEM LORE"},
		{"drops blank lines", "Slot: FINGER\n\n\nAC: 5", "Slot: FINGER\nAC: 5"},
		{"strips icon bleed", "|| Slot: EAR\n- WT: 0.1\n' Size: TINY", "Slot: EAR\nWT: 0.1\nSize: TINY"},
		{"drops junk-only lines", "~~~\nClass: ALL\n...", "Class: ALL"},
		{"keeps leading digits", "2 charges left", "2 charges left"},
		{"keeps inner punctuation", "STR: +5 DEX: -3", "STR: +5 DEX: -3"},
		{"crlf", "Line one\r\nLine two\rLine three", "Line one\nLine two\nLine three"},
		{"strips leading underscore", "__Effect: Haste", "Effect: Haste"},
		{"unicode letters", "» Épée légère", "Épée légère"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"  |  MAGIC ITEM  NO DROP\n\n\t- Slot: PRIMARY  SECONDARY \n  ",
		"@@\n((Effect: Flowing Thought I))\n",
		"plain",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalize_NoBlankLines(t *testing.T) {
	out := Normalize("a\n \n b \n\n--\n c")
	for i, ln := range strings.Split(out, "\n") {
		if strings.TrimSpace(ln) == "" {
			t.Errorf("line %d is blank in %q", i, out)
		}
		if ln != strings.TrimSpace(ln) {
			t.Errorf("line %d not trimmed: %q", i, ln)
		}
	}
}
