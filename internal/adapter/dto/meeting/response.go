package meeting

// MeetingResponse represents a meeting in API responses
type MeetingResponse struct {
	ID          int64   `json:"id"`
	Title       *string `json:"title"`
	Filename    string  `json:"filename"`
	Transcript  *string `json:"transcript"`
	Summary     *string `json:"summary"`
	ActionItems *string `json:"action_items"`
}
