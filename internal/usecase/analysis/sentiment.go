package analysis

import (
	"strings"

	"github.com/johnquangdev/meeting-analyzer/internal/domain/entities"
)

// sentimentEntry is one scored lexicon word. Polarity is in [-1, 1] and
// subjectivity in [0, 1], matching the pattern-lexicon convention.
type sentimentEntry struct {
	polarity     float64
	subjectivity float64
}

// sentimentLexicon scores common evaluative English words. Meeting speech is
// informal, so the list leans on everyday praise and complaint vocabulary.
var sentimentLexicon = map[string]sentimentEntry{
	"good":          {0.7, 0.6},
	"great":         {0.8, 0.75},
	"excellent":     {1.0, 1.0},
	"amazing":       {0.6, 0.9},
	"awesome":       {1.0, 1.0},
	"fantastic":     {0.9, 0.9},
	"wonderful":     {1.0, 1.0},
	"perfect":       {1.0, 1.0},
	"nice":          {0.6, 1.0},
	"love":          {0.5, 0.6},
	"like":          {0.3, 0.4},
	"happy":         {0.8, 1.0},
	"glad":          {0.5, 1.0},
	"excited":       {0.3, 0.8},
	"positive":      {0.35, 0.55},
	"productive":    {0.4, 0.6},
	"success":       {0.6, 0.7},
	"successful":    {0.65, 0.8},
	"win":           {0.5, 0.6},
	"progress":      {0.4, 0.5},
	"improved":      {0.45, 0.6},
	"improvement":   {0.4, 0.5},
	"better":        {0.5, 0.5},
	"best":          {1.0, 0.3},
	"strong":        {0.4, 0.5},
	"solid":         {0.35, 0.45},
	"clear":         {0.3, 0.4},
	"helpful":       {0.5, 0.6},
	"agree":         {0.3, 0.5},
	"agreed":        {0.3, 0.5},
	"easy":          {0.4, 0.8},
	"smooth":        {0.4, 0.6},
	"ready":         {0.25, 0.45},
	"done":          {0.2, 0.3},
	"thanks":        {0.4, 0.5},
	"thank":         {0.4, 0.5},
	"congrats":      {0.6, 0.8},
	"bad":           {-0.7, 0.65},
	"terrible":      {-1.0, 1.0},
	"awful":         {-1.0, 1.0},
	"horrible":      {-1.0, 1.0},
	"worst":         {-1.0, 0.4},
	"worse":         {-0.6, 0.5},
	"poor":          {-0.6, 0.65},
	"hate":          {-0.8, 0.9},
	"angry":         {-0.6, 0.9},
	"frustrated":    {-0.5, 0.8},
	"frustrating":   {-0.55, 0.8},
	"annoying":      {-0.6, 0.8},
	"disappointed":  {-0.6, 0.75},
	"disappointing": {-0.6, 0.7},
	"concern":       {-0.3, 0.5},
	"concerned":     {-0.35, 0.6},
	"worried":       {-0.4, 0.7},
	"problem":       {-0.4, 0.5},
	"problems":      {-0.4, 0.5},
	"issue":         {-0.3, 0.4},
	"issues":        {-0.3, 0.4},
	"broken":        {-0.5, 0.5},
	"fail":          {-0.6, 0.6},
	"failed":        {-0.6, 0.6},
	"failure":       {-0.65, 0.65},
	"blocked":       {-0.4, 0.5},
	"blocker":       {-0.45, 0.55},
	"bug":           {-0.35, 0.4},
	"bugs":          {-0.35, 0.4},
	"slow":          {-0.3, 0.4},
	"late":          {-0.3, 0.45},
	"delay":         {-0.35, 0.45},
	"delayed":       {-0.35, 0.45},
	"risk":          {-0.3, 0.45},
	"risky":         {-0.4, 0.6},
	"difficult":     {-0.5, 1.0},
	"hard":          {-0.3, 0.45},
	"wrong":         {-0.5, 0.55},
	"confusing":     {-0.4, 0.7},
	"unclear":       {-0.35, 0.6},
	"disagree":      {-0.3, 0.55},
	"critical":      {-0.35, 0.6},
	"urgent":        {-0.2, 0.5},
}

// negations invert the polarity of the following scored word
var negations = map[string]bool{
	"not":    true,
	"no":     true,
	"never":  true,
	"nothing": true,
	"cannot": true,
	"cant":   true,
	"dont":   true,
	"didnt":  true,
	"wont":   true,
	"isnt":   true,
	"wasnt":  true,
	"arent":  true,
}

// ScoreSentiment computes the lexical polarity and subjectivity of a text by
// averaging over lexicon hits. A negation directly before a scored word
// inverts and dampens its polarity. A text with no scored words is (0, 0)
// Neutral.
func ScoreSentiment(text string) entities.LexicalSentiment {
	tokens := tokenizeWords(text)

	var polaritySum, subjectivitySum float64
	hits := 0
	negated := false

	for _, token := range tokens {
		if negations[token] {
			negated = true
			continue
		}
		entry, ok := sentimentLexicon[token]
		if !ok {
			negated = false
			continue
		}
		polarity := entry.polarity
		if negated {
			polarity *= -0.5
			negated = false
		}
		polaritySum += polarity
		subjectivitySum += entry.subjectivity
		hits++
	}

	result := entities.LexicalSentiment{}
	if hits > 0 {
		result.Polarity = polaritySum / float64(hits)
		result.Subjectivity = subjectivitySum / float64(hits)
	}
	result.Label = sentimentLabel(result.Polarity)
	return result
}

// sentimentLabel maps polarity to a display label; both boundaries fall to
// Neutral
func sentimentLabel(polarity float64) string {
	switch {
	case polarity > 0.1:
		return entities.SentimentPositive
	case polarity < -0.1:
		return entities.SentimentNegative
	default:
		return entities.SentimentNeutral
	}
}

// tokenizeWords lowercases and splits on non-letters, with apostrophes
// dropped so contractions match the negation list
func tokenizeWords(text string) []string {
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "'", "")
	text = strings.ReplaceAll(text, "’", "")
	return strings.FieldsFunc(text, func(r rune) bool {
		return r < 'a' || r > 'z'
	})
}
