package textfmt

import (
	"encoding/json"
	"io"

	"github.com/russross/cbctt/internal/domain"
)

// placementJSON is one section's placement: course/room/time, named by
// entity rather than positional index.
type placementJSON struct {
	Section int    `json:"section"`
	Course  string `json:"course"`
	Period  int    `json:"period"`
	Room    string `json:"room"`
	Teacher string `json:"teacher"`
}

// scheduleJSON is the document WriteJSON emits: every placed section plus
// the diagnostics a caller would otherwise only see on stderr.
type scheduleJSON struct {
	Sections   []placementJSON `json:"sections"`
	Feasible   bool            `json:"feasible"`
	Violations []string        `json:"violations,omitempty"`
	Objective  float64         `json:"objective"`
}

// WriteJSON writes assignments as an indented JSON document, the machine-
// readable counterpart to printAssignments' plain-text line format.
func WriteJSON(w io.Writer, in *domain.Instance, assignments domain.AssignmentSet, feasible bool, violations []string, objective float64) error {
	doc := scheduleJSON{
		Feasible:   feasible,
		Violations: violations,
		Objective:  objective,
	}

	sections := in.Sections()
	doc.Sections = make([]placementJSON, 0, len(assignments))
	for _, section := range sections {
		asn, ok := assignments[section.ID]
		if !ok {
			continue
		}
		roomName, teacherName := "", ""
		if room, ok := in.Room(asn.RoomID); ok {
			roomName = room.Name
		}
		if teacher, ok := in.Teacher(asn.TeacherID); ok {
			teacherName = teacher.Name
		}
		doc.Sections = append(doc.Sections, placementJSON{
			Section: section.ID,
			Course:  section.CourseName,
			Period:  asn.Period,
			Room:    roomName,
			Teacher: teacherName,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
