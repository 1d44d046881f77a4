package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTopics_CapsTopicsAndKeywords(t *testing.T) {
	text := strings.Repeat("budget roadmap hiring marketing launch pipeline revenue forecast design review ", 10)

	topics := ExtractTopics(text, 10)
	require.NotEmpty(t, topics)
	assert.LessOrEqual(t, len(topics), 5)
	for i, topic := range topics {
		assert.Equal(t, i, topic.ID)
		assert.LessOrEqual(t, len(topic.Keywords), 5)
		assert.NotEmpty(t, topic.Keywords)
		assert.Greater(t, topic.Weight, 0.0)
		assert.LessOrEqual(t, topic.Weight, 1.0)
	}
}

func TestExtractTopics_RanksFrequentTermsFirst(t *testing.T) {
	text := "budget budget budget budget roadmap roadmap hiring"

	topics := ExtractTopics(text, 5)
	require.NotEmpty(t, topics)
	assert.Equal(t, "budget", topics[0].Keywords[0])
	assert.InDelta(t, 1.0, topics[0].Weight, 0.0001)
}

func TestExtractTopics_IgnoresStopWordsAndPunctuation(t *testing.T) {
	text := "The and of to a in is it! We will have been doing this, that and the other."

	topics := ExtractTopics(text, 5)
	for _, topic := range topics {
		for _, kw := range topic.Keywords {
			assert.False(t, englishStopWords[kw], "stop word %q leaked into keywords", kw)
		}
	}
}

func TestExtractTopics_EmptyTranscript(t *testing.T) {
	assert.Empty(t, ExtractTopics("", 5))
	assert.Empty(t, ExtractTopics("the and of to", 5))
}

func TestExtractTopics_IncludesBigrams(t *testing.T) {
	text := strings.Repeat("release candidate testing ", 8)

	topics := ExtractTopics(text, 1)
	require.Len(t, topics, 1)

	foundBigram := false
	for _, kw := range topics[0].Keywords {
		if strings.Contains(kw, " ") {
			foundBigram = true
		}
	}
	assert.True(t, foundBigram, "expected at least one two-word term in %v", topics[0].Keywords)
}
