package detection

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ironsheep/item-title-ocr/internal/ocr"
)

// MinTitleLetters is the minimum number of A-Z letters a line needs to be
// considered a title.
const MinTitleLetters = 6

// Scoring coefficients, tuned against real item screenshots.
const (
	lengthWeight    = 0.4
	nonLetterWeight = 5.0
	positionWeight  = 0.01
	titleRowFrac    = 0.55
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonTitleChar  = regexp.MustCompile(`[^A-Z\s]`)
)

// CandidateLine is a group of banner tokens that the engine placed on the
// same visual line.
type CandidateLine struct {
	Key    ocr.LineKey `json:"key"`
	Tokens []ocr.Token `json:"tokens"`

	// Text is the uppercased, left-to-right joined token text.
	Text string `json:"text"`

	// Rejected is set when the line has too few letters to be a title.
	// Score is zero for rejected lines.
	Rejected bool    `json:"rejected"`
	Score    float64 `json:"score"`
}

// GroupLines partitions tokens by their engine line key, in the order each
// key is first seen. Tokens with blank text are dropped. Each line's tokens
// are sorted by horizontal position and joined into Text.
func GroupLines(tokens []ocr.Token) []CandidateLine {
	index := make(map[ocr.LineKey]int)
	lines := make([]CandidateLine, 0)

	for _, tok := range tokens {
		if strings.TrimSpace(tok.Text) == "" {
			continue
		}
		i, ok := index[tok.Key]
		if !ok {
			i = len(lines)
			index[tok.Key] = i
			lines = append(lines, CandidateLine{Key: tok.Key})
		}
		lines[i].Tokens = append(lines[i].Tokens, tok)
	}

	for i := range lines {
		toks := lines[i].Tokens
		sort.SliceStable(toks, func(a, b int) bool { return toks[a].Left < toks[b].Left })

		words := make([]string, len(toks))
		for j, tok := range toks {
			words[j] = strings.ToUpper(strings.TrimSpace(tok.Text))
		}
		joined := strings.Join(words, " ")
		lines[i].Text = strings.TrimSpace(whitespaceRun.ReplaceAllString(joined, " "))
	}
	return lines
}

// ScoreLine rates how title-like a line is within a banner of the given
// pixel height. Higher is better.
//
// The score adds the mean token confidence (tokens without an estimate are
// ignored) and a bonus per character, subtracts a penalty per character that
// is neither A-Z nor whitespace, and subtracts a small penalty for distance
// between the line's median token top and 55% of the banner height.
func ScoreLine(line CandidateLine, bannerHeight int) float64 {
	var confSum float64
	var confN int
	tops := make([]float64, 0, len(line.Tokens))
	for _, tok := range line.Tokens {
		if tok.Confidence >= 0 {
			confSum += tok.Confidence
			confN++
		}
		tops = append(tops, float64(tok.Top))
	}

	meanConf := 0.0
	if confN > 0 {
		meanConf = confSum / float64(confN)
	}

	length := float64(len([]rune(line.Text)))
	bad := float64(len(nonTitleChar.FindAllStringIndex(line.Text, -1)))
	offset := median(tops) - titleRowFrac*float64(bannerHeight)
	if offset < 0 {
		offset = -offset
	}

	return meanConf + lengthWeight*length - nonLetterWeight*bad - positionWeight*offset
}

// Candidates groups tokens into lines and scores every line that passes the
// letter floor.
func Candidates(tokens []ocr.Token, bannerHeight int) []CandidateLine {
	lines := GroupLines(tokens)
	for i := range lines {
		if CountLetters(lines[i].Text) < MinTitleLetters {
			lines[i].Rejected = true
			continue
		}
		lines[i].Score = ScoreLine(lines[i], bannerHeight)
	}
	return lines
}

// SelectTitle returns the best-scoring title line from banner tokens, or ""
// when no line has enough letters. On equal scores the line seen first wins.
func SelectTitle(tokens []ocr.Token, bannerHeight int) string {
	return Best(Candidates(tokens, bannerHeight))
}

// Best picks the winning text among scored candidates.
func Best(lines []CandidateLine) string {
	best := ""
	var bestScore float64
	found := false
	for _, line := range lines {
		if line.Rejected {
			continue
		}
		if !found || line.Score > bestScore {
			best = line.Text
			bestScore = line.Score
			found = true
		}
	}
	return best
}

// CleanLine turns raw single-line banner text into a title: uppercased,
// anything other than A-Z replaced by a space, whitespace collapsed. The
// result is "" unless it has at least MinTitleLetters letters.
func CleanLine(raw string) string {
	s := nonTitleChar.ReplaceAllString(strings.ToUpper(raw), " ")
	s = strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
	if CountLetters(s) < MinTitleLetters {
		return ""
	}
	return s
}

// CountLetters counts the A-Z letters in s.
func CountLetters(s string) int {
	n := 0
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			n++
		}
	}
	return n
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
