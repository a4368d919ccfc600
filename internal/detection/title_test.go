package detection

import (
	"math"
	"testing"

	"github.com/ironsheep/item-title-ocr/internal/ocr"
)

func tok(text string, conf float64, left, top int, key ocr.LineKey) ocr.Token {
	return ocr.Token{Text: text, Confidence: conf, Left: left, Top: top, Key: key}
}

var (
	line1 = ocr.LineKey{Block: 1, Par: 1, Line: 1}
	line2 = ocr.LineKey{Block: 1, Par: 1, Line: 2}
	line3 = ocr.LineKey{Block: 2, Par: 1, Line: 1}
)

func TestGroupLines(t *testing.T) {
	tokens := []ocr.Token{
		tok("of", 90, 120, 30, line1),
		tok("  ", 90, 0, 30, line1),
		tok("RING", 90, 10, 30, line1),
		tok("dust", 50, 5, 70, line2),
		tok("night", 90, 200, 31, line1),
	}

	lines := GroupLines(tokens)
	if len(lines) != 2 {
		t.Fatalf("line count: got %d, want 2", len(lines))
	}
	if lines[0].Key != line1 || lines[1].Key != line2 {
		t.Errorf("lines should keep first-seen order, got %v then %v", lines[0].Key, lines[1].Key)
	}
	if lines[0].Text != "RING OF NIGHT" {
		t.Errorf("text: got %q, want %q", lines[0].Text, "RING OF NIGHT")
	}
	if len(lines[0].Tokens) != 3 {
		t.Errorf("blank token should be dropped, got %d tokens", len(lines[0].Tokens))
	}
	if lines[1].Text != "DUST" {
		t.Errorf("text: got %q, want DUST", lines[1].Text)
	}
}

func TestGroupLines_KeysNeverMerged(t *testing.T) {
	// Same line number in different blocks stays separate.
	tokens := []ocr.Token{
		tok("ALPHA", 90, 0, 10, line1),
		tok("BRAVO", 90, 0, 10, line3),
	}
	if got := len(GroupLines(tokens)); got != 2 {
		t.Errorf("line count: got %d, want 2", got)
	}
}

func TestSelectTitle_NoTokens(t *testing.T) {
	if got := SelectTitle(nil, 100); got != "" {
		t.Errorf("got %q, want empty", got)
	}
	if got := SelectTitle([]ocr.Token{tok(" ", 90, 0, 0, line1)}, 100); got != "" {
		t.Errorf("blank tokens: got %q, want empty", got)
	}
}

func TestSelectTitle_SingleLineAnyConfidence(t *testing.T) {
	tests := []struct {
		name string
		conf float64
	}{
		{"high", 95},
		{"low", 1},
		{"none", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := []ocr.Token{tok("WIZARDS", tt.conf, 0, 5000, line1)}
			if got := SelectTitle(tokens, 10); got != "WIZARDS" {
				t.Errorf("got %q, want WIZARDS", got)
			}
		})
	}
}

func TestSelectTitle_CleanLineBeatsGarbage(t *testing.T) {
	tokens := []ocr.Token{
		tok("##GARBLE##", 60, 0, 10, line1),
		tok("MYSTICAL", 80, 10, 55, line2),
		tok("CLOAK", 80, 120, 55, line2),
		tok("OF", 80, 200, 56, line2),
		tok("EMBERS", 80, 240, 55, line2),
	}
	if got := SelectTitle(tokens, 100); got != "MYSTICAL CLOAK OF EMBERS" {
		t.Errorf("got %q, want MYSTICAL CLOAK OF EMBERS", got)
	}
}

func TestSelectTitle_TooFewLetters(t *testing.T) {
	tests := []string{"AXE", "A B C D E", "12345678", "ORB!!"}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			tokens := []ocr.Token{tok(text, 99, 0, 55, line1)}
			if got := SelectTitle(tokens, 100); got != "" {
				t.Errorf("got %q, want empty", got)
			}
		})
	}
}

func TestSelectTitle_ExactlySixLetters(t *testing.T) {
	tokens := []ocr.Token{tok("SHIELD", 0, 0, 55, line1)}
	if got := SelectTitle(tokens, 100); got != "SHIELD" {
		t.Errorf("got %q, want SHIELD", got)
	}
}

func TestSelectTitle_TieFirstWins(t *testing.T) {
	tokens := []ocr.Token{
		tok("GOBLIN", 70, 0, 55, line1),
		tok("DRAGON", 70, 0, 55, line2),
	}
	if got := SelectTitle(tokens, 100); got != "GOBLIN" {
		t.Errorf("got %q, want GOBLIN", got)
	}
}

func TestSelectTitle_NegativeScoreStillSelectable(t *testing.T) {
	tokens := []ocr.Token{tok("BROKEN#SWORD", -1, 0, 100000, line1)}
	lines := Candidates(tokens, 10)
	if lines[0].Score >= 0 {
		t.Fatalf("setup: score should be negative, got %f", lines[0].Score)
	}
	if got := Best(lines); got != "BROKEN#SWORD" {
		t.Errorf("got %q, want BROKEN#SWORD", got)
	}
}

func TestScoreLine(t *testing.T) {
	tests := []struct {
		name   string
		tokens []ocr.Token
		height int
		want   float64
	}{
		{
			// 80 + 0.4*8 - 0 - 0.01*|55-55|
			name:   "centered",
			tokens: []ocr.Token{tok("LONGBOWS", 80, 0, 55, line1)},
			height: 100,
			want:   83.2,
		},
		{
			// mean of 90 only; top median 20; 0.4*10 - 5*1 - 0.01*35
			name: "ignores missing confidence",
			tokens: []ocr.Token{
				tok("IRON", 90, 0, 20, line1),
				tok("HELM!", -1, 50, 20, line1),
			},
			height: 100,
			want:   90 + 4 - 5 - 0.35,
		},
		{
			// no confidence: 0 + 0.4*6 - 0.01*|10-5.5|
			name:   "no confidence at all",
			tokens: []ocr.Token{tok("BRACER", -1, 0, 10, line1)},
			height: 10,
			want:   2.4 - 0.045,
		},
		{
			// tops 10,20,30,40 -> median 25; |25-55| = 30
			name: "even median",
			tokens: []ocr.Token{
				tok("A", 50, 0, 40, line1),
				tok("B", 50, 10, 10, line1),
				tok("C", 50, 20, 30, line1),
				tok("D", 50, 30, 20, line1),
			},
			height: 100,
			want:   50 + 0.4*7 - 0.3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := GroupLines(tt.tokens)[0]
			got := ScoreLine(line, tt.height)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("score: got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		in   []float64
		want float64
	}{
		{nil, 0},
		{[]float64{7}, 7},
		{[]float64{3, 1, 2}, 2},
		{[]float64{4, 1, 3, 2}, 2.5},
	}
	for _, tt := range tests {
		if got := median(tt.in); got != tt.want {
			t.Errorf("median(%v) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestCleanLine(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"R1NG 0F-THE NIGHT!", "R NG F THE NIGHT"},
		{"  ring of the night\n", "RING OF THE NIGHT"},
		{"AXE", ""},
		{"~~~", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := CleanLine(tt.raw); got != tt.want {
				t.Errorf("CleanLine(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCountLetters(t *testing.T) {
	if got := CountLetters("AB c1 D"); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
}
