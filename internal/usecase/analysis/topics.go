package analysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/johnquangdev/meeting-analyzer/internal/domain/entities"
)

const (
	maxTopicFeatures = 100
	maxTopics        = 5
	keywordsPerTopic = 5
)

var nonAlphabetic = regexp.MustCompile(`[^a-zA-Z\s]`)

// englishStopWords is the usual analytics stop-word list, trimmed to words
// that actually show up in meeting speech
var englishStopWords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true,
	"against": true, "all": true, "also": true, "am": true, "an": true,
	"and": true, "any": true, "are": true, "as": true, "at": true,
	"be": true, "because": true, "been": true, "before": true, "being": true,
	"below": true, "between": true, "both": true, "but": true, "by": true,
	"can": true, "could": true, "did": true, "do": true, "does": true,
	"doing": true, "down": true, "during": true, "each": true, "few": true,
	"for": true, "from": true, "further": true, "get": true, "go": true,
	"going": true, "had": true, "has": true, "have": true, "having": true,
	"he": true, "her": true, "here": true, "hers": true, "him": true,
	"his": true, "how": true, "i": true, "if": true, "in": true,
	"into": true, "is": true, "it": true, "its": true, "just": true,
	"know": true, "like": true, "me": true, "more": true, "most": true,
	"my": true, "no": true, "nor": true, "not": true, "now": true,
	"of": true, "off": true, "on": true, "once": true, "only": true,
	"or": true, "other": true, "our": true, "ours": true, "out": true,
	"over": true, "own": true, "re": true, "right": true, "s": true,
	"same": true, "she": true, "should": true, "so": true, "some": true,
	"such": true, "t": true, "than": true, "that": true, "the": true,
	"their": true, "theirs": true, "them": true, "then": true, "there": true,
	"these": true, "they": true, "think": true, "this": true, "those": true,
	"through": true, "to": true, "too": true, "under": true, "until": true,
	"up": true, "us": true, "very": true, "was": true, "we": true,
	"well": true, "were": true, "what": true, "when": true, "where": true,
	"which": true, "while": true, "who": true, "whom": true, "why": true,
	"will": true, "with": true, "would": true, "yeah": true, "yes": true,
	"you": true, "your": true, "yours": true,
}

type scoredTerm struct {
	term   string
	weight float64
}

// ExtractTopics groups the strongest single words and word pairs of a
// transcript into up to five weighted topics. Terms are frequency-scored
// after lowercasing, stripping non-alphabetic characters and dropping
// English stop-words; each topic reports its top keywords and the weight of
// its strongest term. An empty or all-stop-word transcript yields no topics.
func ExtractTopics(text string, numTopics int) []entities.Topic {
	if numTopics > maxTopics || numTopics <= 0 {
		numTopics = maxTopics
	}

	terms := scoreTerms(text)
	if len(terms) == 0 {
		return []entities.Topic{}
	}
	if len(terms) > maxTopicFeatures {
		terms = terms[:maxTopicFeatures]
	}
	if numTopics > len(terms) {
		numTopics = len(terms)
	}

	// Deal top terms round-robin so every topic gets a share of the
	// strongest vocabulary
	groups := make([][]scoredTerm, numTopics)
	for i, term := range terms {
		idx := i % numTopics
		groups[idx] = append(groups[idx], term)
	}

	topics := make([]entities.Topic, 0, numTopics)
	for i, group := range groups {
		keywords := make([]string, 0, keywordsPerTopic)
		maxWeight := 0.0
		for j, term := range group {
			if j < keywordsPerTopic {
				keywords = append(keywords, term.term)
			}
			if term.weight > maxWeight {
				maxWeight = term.weight
			}
		}
		topics = append(topics, entities.Topic{
			ID:       i,
			Keywords: keywords,
			Weight:   maxWeight,
		})
	}
	return topics
}

// scoreTerms builds the frequency-weighted uni- and bi-gram vocabulary of a
// single document, strongest first. Weights are term counts normalized by
// the strongest count, which over one document ranks identically to tf-idf.
func scoreTerms(text string) []scoredTerm {
	clean := nonAlphabetic.ReplaceAllString(strings.ToLower(text), "")
	words := strings.Fields(clean)

	kept := make([]string, 0, len(words))
	for _, w := range words {
		if !englishStopWords[w] && len(w) > 1 {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, w := range kept {
		counts[w]++
	}
	for i := 0; i+1 < len(kept); i++ {
		counts[kept[i]+" "+kept[i+1]]++
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	terms := make([]scoredTerm, 0, len(counts))
	for term, count := range counts {
		terms = append(terms, scoredTerm{
			term:   term,
			weight: float64(count) / float64(maxCount),
		})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].weight != terms[j].weight {
			return terms[i].weight > terms[j].weight
		}
		return terms[i].term < terms[j].term
	})
	return terms
}
