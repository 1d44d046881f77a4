package graph

import (
	"fmt"

	"github.com/johnquangdev/meeting-analyzer/internal/domain/entities"
)

const meetingNodeWeight = 10

// maxMeetingLabelLen keeps combined-graph meeting labels readable
const maxMeetingLabelLen = 20

// BuildCombined merges the knowledge graphs of many meetings into a single
// graph. Each meeting contributes a root node; its own node ids are
// namespaced with the meeting id so identical concepts from different
// meetings stay distinct, and every namespaced node is linked to its
// meeting root with a "contains" edge. Meetings without a stored graph are
// skipped; a stored empty graph still yields the meeting root node. The
// result is never nil.
func BuildCombined(meetings []*entities.MeetingRecord) *entities.KnowledgeGraph {
	combined := entities.EmptyKnowledgeGraph()

	for _, meeting := range meetings {
		kg := meeting.KnowledgeGraph
		if kg == nil {
			continue
		}

		rootID := fmt.Sprintf("meeting_%d", meeting.ID)
		combined.Nodes = append(combined.Nodes, entities.GraphNode{
			ID:     rootID,
			Label:  truncateLabel(meeting.Filename),
			Type:   entities.NodeTypeMeeting,
			Weight: meetingNodeWeight,
		})

		for _, node := range kg.Nodes {
			combined.Nodes = append(combined.Nodes, entities.GraphNode{
				ID:     namespacedID(meeting.ID, node.ID),
				Label:  node.Label,
				Type:   node.Type,
				Weight: node.Weight,
			})
			combined.Edges = append(combined.Edges, entities.GraphEdge{
				Source:       rootID,
				Target:       namespacedID(meeting.ID, node.ID),
				Relationship: "contains",
				Weight:       5,
			})
		}

		for _, edge := range kg.Edges {
			combined.Edges = append(combined.Edges, entities.GraphEdge{
				Source:       namespacedID(meeting.ID, edge.Source),
				Target:       namespacedID(meeting.ID, edge.Target),
				Relationship: edge.Relationship,
				Weight:       edge.Weight,
			})
		}
	}

	return combined
}

func namespacedID(meetingID int64, nodeID string) string {
	return fmt.Sprintf("meeting_%d_%s", meetingID, nodeID)
}

func truncateLabel(filename string) string {
	runes := []rune(filename)
	if len(runes) <= maxMeetingLabelLen {
		return filename
	}
	return string(runes[:maxMeetingLabelLen])
}
