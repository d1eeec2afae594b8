package textfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/russross/cbctt/internal/domain"
)

func TestWriteJSONEmitsOnePlacementPerAssignedSection(t *testing.T) {
	in := domain.NewInstance()
	_, err := in.AddCurriculum("C1", 10, []string{"A"})
	require.NoError(t, err)
	_, err = in.AddRoom("R1", 50, []int{1})
	require.NoError(t, err)
	_, err = in.AddTeacher("T1", []string{"A"}, []int{1})
	require.NoError(t, err)
	require.NoError(t, in.CreateCourseSections())

	section := in.Sections()[0]
	room, _ := in.Room(0)
	teacher, _ := in.Teacher(0)
	assignments := domain.AssignmentSet{
		section.ID: {SectionID: section.ID, Period: 1, RoomID: room.ID, TeacherID: teacher.ID},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, in, assignments, true, nil, 3.5))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, true, doc["feasible"])
	assert.Equal(t, 3.5, doc["objective"])

	sections, ok := doc["sections"].([]interface{})
	require.True(t, ok)
	require.Len(t, sections, 1)
	entry := sections[0].(map[string]interface{})
	assert.Equal(t, "A", entry["course"])
	assert.Equal(t, "R1", entry["room"])
	assert.Equal(t, "T1", entry["teacher"])
}

func TestWriteJSONOmitsUnassignedSections(t *testing.T) {
	in := domain.NewInstance()
	_, err := in.AddCurriculum("C1", 10, []string{"A"})
	require.NoError(t, err)
	_, err = in.AddRoom("R1", 50, []int{1})
	require.NoError(t, err)
	_, err = in.AddTeacher("T1", []string{"A"}, []int{1})
	require.NoError(t, err)
	require.NoError(t, in.CreateCourseSections())

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, in, domain.AssignmentSet{}, false, []string{"coverage: nothing placed"}, 0))

	var doc scheduleDoc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Empty(t, doc.Sections)
	assert.False(t, doc.Feasible)
	assert.Equal(t, []string{"coverage: nothing placed"}, doc.Violations)
}

// scheduleDoc mirrors scheduleJSON's exported shape for test-side decoding.
type scheduleDoc struct {
	Sections   []interface{} `json:"sections"`
	Feasible   bool          `json:"feasible"`
	Violations []string      `json:"violations,omitempty"`
	Objective  float64       `json:"objective"`
}
