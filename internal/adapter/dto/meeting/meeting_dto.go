package meeting

// ListMeetingsRequest carries the optional history filters
type ListMeetingsRequest struct {
	Query    string `query:"q" validate:"omitempty,max=200"`
	Category string `query:"category" validate:"omitempty,max=100"`
}

// StatsResponse aggregates dashboard metrics over every stored meeting
type StatsResponse struct {
	TotalMeetings    int     `json:"total_meetings"`
	TotalDuration    float64 `json:"total_duration"`
	TotalActionItems int     `json:"total_action_items"`
	AveragePolarity  float64 `json:"average_polarity"`
}
