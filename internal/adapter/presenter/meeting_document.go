package presenter

import (
	"fmt"
	"strings"
	"time"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

const (
	docFont     = "Times New Roman"
	docFontSize = 12
	docTitle    = 16
	docHeading  = 14
)

// ToMeetingDocument renders one meeting as a Word document: title, upload
// details, then the summary, action items and transcript sections. Sections
// that were never produced are written as a placeholder line.
func ToMeetingDocument(m *entities.Meeting) (*docx.RootDoc, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	title := deref(m.Title)
	if title == "" {
		title = fmt.Sprintf("Meeting %d", m.ID)
	}
	addRun(doc.AddParagraph(""), title, true, docTitle)
	addRun(doc.AddParagraph(""), "Uploaded "+m.CreatedAt.UTC().Format(time.RFC1123), false, docFontSize)
	if name := m.UploadMetadata().OriginalFilename; name != "" {
		addRun(doc.AddParagraph(""), "Audio: "+name, false, docFontSize)
	}

	addSection(doc, "Summary", m.Summary)
	addSection(doc, "Action Items", m.ActionItems)
	addSection(doc, "Transcript", m.Transcript)

	return doc, nil
}

func addSection(doc *docx.RootDoc, heading string, body *string) {
	doc.AddParagraph("")
	addRun(doc.AddParagraph(""), heading, true, docHeading)

	text := strings.TrimSpace(deref(body))
	if text == "" {
		addRun(doc.AddParagraph(""), "Not available.", false, docFontSize)
		return
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// "Key decisions:" and similar labels inside the summary
		bold := strings.HasSuffix(line, ":") && !strings.HasPrefix(line, "- ")
		addRun(doc.AddParagraph(""), line, bold, docFontSize)
	}
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(docFont).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
