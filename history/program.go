package history

import (
	"fmt"
	"time"

	"github.com/gense-cli/gense/source"
)

// SavedProgram represents a single watched entry preserved in the user's history.
type SavedProgram struct {
	SourceID  string `json:"source_id"`
	ProgramID string `json:"program_id"`
	Slug      string `json:"slug"`
	PageURL   string `json:"page_url,omitempty"`
	Title     string `json:"title"`
	FormatID  string `json:"format_id"`
	Live      bool   `json:"live"`
	Position  int64  `json:"position"`
	WatchedAt int64  `json:"watched_at"`
}

func (s *SavedProgram) encode() string {
	return fmt.Sprintf("%s (%s)", s.Title, s.SourceID)
}

func (s *SavedProgram) String() string {
	when := time.Unix(s.WatchedAt, 0).Format("Jan 2")
	return fmt.Sprintf("%s : %s", s.Title, when)
}

func newSavedProgram(program *source.Program, formatID string, position int64) *SavedProgram {
	return &SavedProgram{
		SourceID:  program.Source.ID(),
		ProgramID: program.ID,
		Slug:      program.Slug,
		PageURL:   program.PageURL,
		Title:     program.Title,
		FormatID:  formatID,
		Live:      program.Live,
		Position:  position,
		WatchedAt: time.Now().Unix(),
	}
}
