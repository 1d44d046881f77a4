package analysis

import "fmt"

// sentimentExcerptLimit bounds how much transcript is sent to the analysis
// LLM for the qualitative stages
const sentimentExcerptLimit = 2000

func summaryPrompt(transcription string) string {
	return fmt.Sprintf(`Analyze the following meeting transcription and provide a comprehensive summary in JSON format.

Please include:
1. Executive summary (2-3 sentences)
2. Key topics discussed (list)
3. Decisions made (list)
4. Action items with responsible parties if mentioned (list)
5. Important quotes or statements (list)
6. Meeting category (e.g., "Quarterly Review", "Project Brainstorm", "Client Call", etc.)

Transcription:
%s

Respond with valid JSON in this format:
{
    "executive_summary": "string",
    "key_topics": ["topic1", "topic2"],
    "decisions": ["decision1", "decision2"],
    "action_items": [
        {"item": "action description", "responsible_party": "person or team"}
    ],
    "important_quotes": ["quote1", "quote2"],
    "meeting_category": "category"
}`, transcription)
}

func sentimentPrompt(excerpt string) string {
	return fmt.Sprintf(`Analyze the emotional tone and sentiment of this meeting transcription.
Identify specific moments that were particularly positive, negative, or contentious.

Provide analysis in JSON format:
{
    "overall_sentiment": "positive/negative/neutral",
    "confidence": 0.0-1.0,
    "positive_moments": ["moment1", "moment2"],
    "negative_moments": ["moment1", "moment2"],
    "contentious_topics": ["topic1", "topic2"],
    "emotional_highlights": ["highlight1", "highlight2"]
}

Transcription:
%s`, excerpt)
}

func speakersPrompt(excerpt string) string {
	return fmt.Sprintf(`Analyze this meeting transcription and identify different speakers.
Look for patterns like:
- Changes in speaking style
- Direct address ("John, what do you think?")
- Self-identification ("I think...", "In my opinion...")

Provide analysis in JSON format:
{
    "estimated_speakers": 2-5,
    "speaker_segments": [
        {"text": "segment text", "speaker": "Speaker A/B/C"}
    ],
    "confidence": 0.0-1.0
}

Transcription:
%s`, excerpt)
}

func knowledgeGraphPrompt(summaryJSON, topicsJSON string) string {
	return fmt.Sprintf(`Based on the meeting summary and topics, identify relationships and connections between different concepts.

Meeting Summary: %s
Topics: %s

Create a knowledge graph structure in JSON format:
{
    "nodes": [
        {"id": "node_id", "label": "node_label", "type": "topic/decision/action/person", "weight": 1-10}
    ],
    "edges": [
        {"source": "node_id1", "target": "node_id2", "relationship": "relates_to/caused_by/assigned_to", "weight": 1-10}
    ]
}`, summaryJSON, topicsJSON)
}

// excerpt bounds text for the qualitative prompts, cutting on a rune boundary
func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= sentimentExcerptLimit {
		return text
	}
	return string(runes[:sentimentExcerptLimit])
}
