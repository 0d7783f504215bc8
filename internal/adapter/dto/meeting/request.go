package meeting

// UploadMeetingRequest holds the non-file fields of the upload form
type UploadMeetingRequest struct {
	Title *string `form:"title" validate:"omitempty,max=250"`
}
