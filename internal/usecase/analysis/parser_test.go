package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSummary_PlainJSON(t *testing.T) {
	p := NewParser()

	summary, err := p.ParseSummary(`{
		"executive_summary": "Team aligned on the release plan.",
		"key_topics": ["release"],
		"decisions": ["Ship Friday"],
		"action_items": [{"item": "follow up with QA", "responsible_party": "Alice"}],
		"important_quotes": [],
		"meeting_category": "planning"
	}`)
	require.NoError(t, err)
	assert.Equal(t, "Team aligned on the release plan.", summary.ExecutiveSummary)
	require.Len(t, summary.ActionItems, 1)
	assert.Equal(t, "follow up with QA", summary.ActionItems[0].Item)
	assert.Equal(t, "Alice", summary.ActionItems[0].ResponsibleParty)
}

func TestParseSummary_MarkdownFenced(t *testing.T) {
	p := NewParser()

	summary, err := p.ParseSummary("```json\n{\"executive_summary\": \"Quick sync.\", \"meeting_category\": \"standup\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "Quick sync.", summary.ExecutiveSummary)
	assert.Equal(t, "standup", summary.MeetingCategory)
}

func TestParseSummary_MissingExecutiveSummary(t *testing.T) {
	p := NewParser()

	_, err := p.ParseSummary(`{"key_topics": ["budget"]}`)
	require.Error(t, err)

	_, err = p.ParseSummary("this is not json at all")
	require.Error(t, err)
}

func TestParseModelSentiment(t *testing.T) {
	p := NewParser()

	sentiment, err := p.ParseModelSentiment(`{
		"overall_sentiment": "positive",
		"confidence": 0.8,
		"positive_moments": ["demo went well"],
		"negative_moments": [],
		"contentious_topics": [],
		"emotional_highlights": ["applause after the demo"]
	}`)
	require.NoError(t, err)
	assert.Equal(t, "positive", sentiment.OverallSentiment)
	assert.InDelta(t, 0.8, sentiment.Confidence, 0.0001)

	_, err = p.ParseModelSentiment(`{"confidence": 0.5}`)
	require.Error(t, err)
}

func TestParseSpeakers(t *testing.T) {
	p := NewParser()

	speakers, err := p.ParseSpeakers(`{
		"estimated_speakers": 2,
		"speaker_segments": [{"text": "Let's start.", "speaker": "Speaker A"}],
		"confidence": 0.6
	}`)
	require.NoError(t, err)
	assert.Equal(t, 2, speakers.EstimatedSpeakers)
	require.Len(t, speakers.Segments, 1)
	assert.Equal(t, "Speaker A", speakers.Segments[0].Speaker)

	_, err = p.ParseSpeakers(`{"estimated_speakers": 0}`)
	require.Error(t, err)
}

func TestParseSpeakers_NilSegmentsBecomeEmpty(t *testing.T) {
	p := NewParser()

	speakers, err := p.ParseSpeakers(`{"estimated_speakers": 1, "confidence": 0.1}`)
	require.NoError(t, err)
	assert.NotNil(t, speakers.Segments)
	assert.Empty(t, speakers.Segments)
}

func TestParseKnowledgeGraph(t *testing.T) {
	p := NewParser()

	graph, err := p.ParseKnowledgeGraph(`{
		"nodes": [
			{"id": "t1", "label": "Budget", "type": "topic", "weight": 8},
			{"id": "a1", "label": "Review spend", "type": "action", "weight": 5}
		],
		"edges": [
			{"source": "t1", "target": "a1", "relationship": "relates_to", "weight": 4}
		]
	}`)
	require.NoError(t, err)
	assert.Len(t, graph.Nodes, 2)
	assert.Len(t, graph.Edges, 1)
}

func TestParseKnowledgeGraph_RejectsDanglingEdges(t *testing.T) {
	p := NewParser()

	_, err := p.ParseKnowledgeGraph(`{
		"nodes": [{"id": "t1", "label": "Budget", "type": "topic", "weight": 8}],
		"edges": [{"source": "t1", "target": "ghost", "relationship": "relates_to", "weight": 1}]
	}`)
	require.Error(t, err)
}

func TestParseKnowledgeGraph_EmptyObjectNeverNil(t *testing.T) {
	p := NewParser()

	graph, err := p.ParseKnowledgeGraph(`{}`)
	require.NoError(t, err)
	assert.NotNil(t, graph.Nodes)
	assert.NotNil(t, graph.Edges)
}
