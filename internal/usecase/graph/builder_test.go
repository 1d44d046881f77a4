package graph

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-analyzer/internal/domain/entities"
)

func meetingWithGraph(id int64, filename string) *entities.MeetingRecord {
	return &entities.MeetingRecord{
		ID:       id,
		Filename: filename,
		KnowledgeGraph: &entities.KnowledgeGraph{
			Nodes: []entities.GraphNode{
				{ID: "topic_1", Label: "Budget", Type: entities.NodeTypeTopic, Weight: 7},
				{ID: "action_1", Label: "Review numbers", Type: entities.NodeTypeAction, Weight: 4},
			},
			Edges: []entities.GraphEdge{
				{Source: "topic_1", Target: "action_1", Relationship: "relates_to", Weight: 3},
			},
		},
	}
}

func TestBuildCombined_NamespacesNodesPerMeeting(t *testing.T) {
	meetings := []*entities.MeetingRecord{
		meetingWithGraph(1, "standup.mp4"),
		meetingWithGraph(2, "retro.mp3"),
	}

	combined := BuildCombined(meetings)
	require.NotNil(t, combined)

	// 2 root nodes + 2 graph nodes per meeting
	assert.Len(t, combined.Nodes, 6)
	// 2 contains edges + 1 original edge per meeting
	assert.Len(t, combined.Edges, 6)

	ids := make(map[string]bool)
	for _, node := range combined.Nodes {
		ids[node.ID] = true
	}
	assert.True(t, ids["meeting_1"])
	assert.True(t, ids["meeting_1_topic_1"])
	assert.True(t, ids["meeting_2_topic_1"])

	containsCount := 0
	for _, edge := range combined.Edges {
		if edge.Relationship == "contains" {
			containsCount++
			assert.Contains(t, []string{"meeting_1", "meeting_2"}, edge.Source)
		}
		assert.True(t, ids[edge.Source], "edge source %s must exist", edge.Source)
		assert.True(t, ids[edge.Target], "edge target %s must exist", edge.Target)
	}
	assert.Equal(t, 4, containsCount)
}

func TestBuildCombined_SkipsMeetingsWithoutGraphs(t *testing.T) {
	meetings := []*entities.MeetingRecord{
		{ID: 1, Filename: "empty.mp3"},
		{ID: 2, Filename: "blank.mp3", KnowledgeGraph: entities.EmptyKnowledgeGraph()},
		meetingWithGraph(3, "planning.mp4"),
	}

	combined := BuildCombined(meetings)

	// Meeting 1 has no stored graph at all and is skipped. Meeting 2 stored
	// an empty graph and still contributes its root node.
	require.Len(t, combined.Nodes, 4)
	ids := make(map[string]bool)
	for _, node := range combined.Nodes {
		ids[node.ID] = true
		assert.NotContains(t, node.ID, "meeting_1")
	}
	assert.True(t, ids["meeting_2"])
	assert.True(t, ids["meeting_3"])
	for _, edge := range combined.Edges {
		assert.NotEqual(t, "meeting_2", edge.Source)
	}
}

func TestBuildCombined_EmptyInputNeverNil(t *testing.T) {
	combined := BuildCombined(nil)
	require.NotNil(t, combined)
	assert.NotNil(t, combined.Nodes)
	assert.NotNil(t, combined.Edges)
	assert.Empty(t, combined.Nodes)
}

func TestBuildCombined_TruncatesLongFilenames(t *testing.T) {
	meeting := meetingWithGraph(9, "a-very-long-recording-filename-from-the-archive.mp4")
	combined := BuildCombined([]*entities.MeetingRecord{meeting})

	for _, node := range combined.Nodes {
		if node.Type == entities.NodeTypeMeeting {
			assert.Len(t, node.Label, 20)
		}
	}
}

func TestBuildCombined_TruncatesLabelsOnRuneBoundary(t *testing.T) {
	meeting := meetingWithGraph(10, strings.Repeat("é", 30)+".mp4")
	combined := BuildCombined([]*entities.MeetingRecord{meeting})

	for _, node := range combined.Nodes {
		if node.Type == entities.NodeTypeMeeting {
			assert.True(t, utf8.ValidString(node.Label))
			assert.Equal(t, 20, utf8.RuneCountInString(node.Label))
		}
	}
}
