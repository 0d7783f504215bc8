package presenter

import (
	meetingDTO "github.com/johnquangdev/meeting-summarizer/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *meetingDTO.MeetingResponse {
	if m == nil {
		return nil
	}
	return &meetingDTO.MeetingResponse{
		ID:          m.ID,
		Title:       m.Title,
		Filename:    m.Filename,
		Transcript:  m.Transcript,
		Summary:     m.Summary,
		ActionItems: m.ActionItems,
	}
}

// ToMeetingListResponse converts meetings to a response array, never nil
func ToMeetingListResponse(meetings []*entities.Meeting) []*meetingDTO.MeetingResponse {
	out := make([]*meetingDTO.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, ToMeetingResponse(m))
	}
	return out
}
