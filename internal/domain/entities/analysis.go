package entities

// Transcription is the speech-to-text stage output
type Transcription struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
}

// Segment is one timed span of the transcription
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Summary is the structured meeting summary produced by the analysis LLM
type Summary struct {
	ExecutiveSummary string       `json:"executive_summary"`
	KeyTopics        []string     `json:"key_topics"`
	Decisions        []string     `json:"decisions"`
	ActionItems      []ActionItem `json:"action_items"`
	ImportantQuotes  []string     `json:"important_quotes"`
	MeetingCategory  string       `json:"meeting_category"`
}

// ActionItem is a task extracted from the meeting, with its owner if mentioned
type ActionItem struct {
	Item             string `json:"item"`
	ResponsibleParty string `json:"responsible_party"`
}

// Sentiment combines the locally computed lexical score with the optional
// model-generated qualitative breakdown
type Sentiment struct {
	Lexical       LexicalSentiment `json:"textblob"`
	ModelAnalysis *ModelSentiment  `json:"ai_analysis,omitempty"`
}

// Sentiment labels derived from lexical polarity
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

// LexicalSentiment is the deterministic polarity/subjectivity score.
// Polarity is in [-1, 1], subjectivity in [0, 1].
type LexicalSentiment struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
	Label        string  `json:"label"`
}

// ModelSentiment is the qualitative breakdown from the analysis LLM
type ModelSentiment struct {
	OverallSentiment    string   `json:"overall_sentiment"`
	Confidence          float64  `json:"confidence"`
	PositiveMoments     []string `json:"positive_moments"`
	NegativeMoments     []string `json:"negative_moments"`
	ContentiousTopics   []string `json:"contentious_topics"`
	EmotionalHighlights []string `json:"emotional_highlights"`
}

// Topic is one statistically extracted topic with its strongest keywords
type Topic struct {
	ID       int      `json:"id"`
	Keywords []string `json:"keywords"`
	Weight   float64  `json:"weight"`
}

// Speakers is the speaker identification stage output
type Speakers struct {
	EstimatedSpeakers int              `json:"estimated_speakers"`
	Segments          []SpeakerSegment `json:"speaker_segments"`
	Confidence        float64          `json:"confidence"`
}

// SpeakerSegment attributes one transcript span to a speaker
type SpeakerSegment struct {
	Text    string `json:"text"`
	Speaker string `json:"speaker"`
}

// DefaultSpeakers is the canned result used when segment data is missing or
// speaker identification fails
func DefaultSpeakers() *Speakers {
	return &Speakers{
		EstimatedSpeakers: 1,
		Segments:          []SpeakerSegment{},
		Confidence:        0.1,
	}
}

// KnowledgeGraph connects topics, decisions, actions and people from one
// meeting. It is never nil; a meeting without connections has empty slices.
type KnowledgeGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// GraphNode types emitted by the graph stage
const (
	NodeTypeTopic    = "topic"
	NodeTypeDecision = "decision"
	NodeTypeAction   = "action"
	NodeTypePerson   = "person"
	NodeTypeMeeting  = "meeting"
)

// GraphNode is a single concept in the knowledge graph
type GraphNode struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Type   string  `json:"type"`
	Weight float64 `json:"weight"`
}

// GraphEdge is a typed relationship between two nodes
type GraphEdge struct {
	Source       string  `json:"source"`
	Target       string  `json:"target"`
	Relationship string  `json:"relationship"`
	Weight       float64 `json:"weight"`
}

// EmptyKnowledgeGraph returns a well-formed graph with no content
func EmptyKnowledgeGraph() *KnowledgeGraph {
	return &KnowledgeGraph{
		Nodes: []GraphNode{},
		Edges: []GraphEdge{},
	}
}
