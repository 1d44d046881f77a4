package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-analyzer/internal/domain/entities"
)

// Parser handles parsing and validation of analysis LLM responses
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseSummary parses the JSON summary response into a Summary
func (p *Parser) ParseSummary(jsonString string) (*entities.Summary, error) {
	jsonString = extractJSON(jsonString)

	var result entities.Summary
	if err := json.Unmarshal([]byte(jsonString), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	// Validate required fields
	if result.ExecutiveSummary == "" {
		return nil, fmt.Errorf("missing executive_summary in response")
	}

	return &result, nil
}

// ParseModelSentiment parses the qualitative sentiment response
func (p *Parser) ParseModelSentiment(jsonString string) (*entities.ModelSentiment, error) {
	jsonString = extractJSON(jsonString)

	var result entities.ModelSentiment
	if err := json.Unmarshal([]byte(jsonString), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if result.OverallSentiment == "" {
		return nil, fmt.Errorf("missing overall_sentiment in response")
	}

	return &result, nil
}

// ParseSpeakers parses the speaker identification response
func (p *Parser) ParseSpeakers(jsonString string) (*entities.Speakers, error) {
	jsonString = extractJSON(jsonString)

	var result entities.Speakers
	if err := json.Unmarshal([]byte(jsonString), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if result.EstimatedSpeakers < 1 {
		return nil, fmt.Errorf("invalid estimated_speakers in response")
	}
	if result.Segments == nil {
		result.Segments = []entities.SpeakerSegment{}
	}

	return &result, nil
}

// ParseKnowledgeGraph parses the knowledge graph response. Both slices are
// always non-nil on success.
func (p *Parser) ParseKnowledgeGraph(jsonString string) (*entities.KnowledgeGraph, error) {
	jsonString = extractJSON(jsonString)

	var result entities.KnowledgeGraph
	if err := json.Unmarshal([]byte(jsonString), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if result.Nodes == nil {
		result.Nodes = []entities.GraphNode{}
	}
	if result.Edges == nil {
		result.Edges = []entities.GraphEdge{}
	}

	// An edge naming an unknown node is a malformed graph
	known := make(map[string]bool, len(result.Nodes))
	for _, node := range result.Nodes {
		if node.ID == "" {
			return nil, fmt.Errorf("node with empty id in response")
		}
		known[node.ID] = true
	}
	for _, edge := range result.Edges {
		if !known[edge.Source] || !known[edge.Target] {
			return nil, fmt.Errorf("edge %q -> %q references unknown node", edge.Source, edge.Target)
		}
	}

	return &result, nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		return strings.TrimSpace(content)
	}
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		return strings.TrimSpace(content)
	}

	return content
}
