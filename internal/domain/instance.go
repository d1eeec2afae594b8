package domain

import (
	"sort"

	"github.com/google/uuid"
)

// RunRecord is one retired solver run, kept only so a caller can report
// "run <uuid> produced objective N" after the fact; it carries no
// invariant and nothing else in the package reads it back.
type RunRecord struct {
	RunID     uuid.UUID
	Feasible  bool
	Objective float64
}

// Instance aggregates every entity a timetabling problem is built from,
// plus the set of periods it spans. It is the single object a caller
// builds up through the Add* methods before handing it to a solver.
type Instance struct {
	Periods map[int]bool

	curriculums   map[string]*Curriculum
	curriculumIDs []string // registration order

	courses     map[string]*Course
	courseOrder []string

	rooms     map[string]*Room
	roomOrder []string

	teachers     map[string]*Teacher
	teacherOrder []string

	preferences []*Preference

	sections []*CourseSection

	// Assignments holds the instance's own working solution. Solvers are
	// free to use it as scratch space via AssignSection, but kernel checks
	// never read it implicitly -- Check and Objective always take an
	// explicit AssignmentSet.
	Assignments AssignmentSet

	// RunLog records every solver run a caller has chosen to log via
	// RecordRun, oldest first.
	RunLog []RunRecord

	sectionsCreated bool
}

// RecordRun appends a retired solver run to RunLog.
func (in *Instance) RecordRun(runID uuid.UUID, feasible bool, objective float64) {
	in.RunLog = append(in.RunLog, RunRecord{RunID: runID, Feasible: feasible, Objective: objective})
}

// NewInstance returns an empty instance ready for registration.
func NewInstance() *Instance {
	return &Instance{
		Periods:     make(map[int]bool),
		curriculums: make(map[string]*Curriculum),
		courses:     make(map[string]*Course),
		rooms:       make(map[string]*Room),
		teachers:    make(map[string]*Teacher),
		Assignments: make(AssignmentSet),
	}
}

// AddCurriculum registers a curriculum and auto-registers any of its
// courses that don't exist yet.
func (in *Instance) AddCurriculum(name string, numStudents int, courseNames []string) (int, error) {
	if _, exists := in.curriculums[name]; exists {
		return 0, validationErrorf("AddCurriculum", "duplicate curriculum name %q", name)
	}
	c := &Curriculum{
		ID:          len(in.curriculumIDs),
		Name:        name,
		NumStudents: numStudents,
		CourseNames: append([]string(nil), courseNames...),
	}
	in.curriculums[name] = c
	in.curriculumIDs = append(in.curriculumIDs, name)

	for _, courseName := range courseNames {
		course := in.ensureCourse(courseName)
		if _, already := course.CurriculumStudents[c.ID]; !already {
			course.curriculumOrder = append(course.curriculumOrder, c.ID)
		}
		course.CurriculumStudents[c.ID] += numStudents
	}
	return c.ID, nil
}

func (in *Instance) ensureCourse(name string) *Course {
	course, ok := in.courses[name]
	if !ok {
		course = &Course{Name: name, CurriculumStudents: make(map[int]int)}
		in.courses[name] = course
		in.courseOrder = append(in.courseOrder, name)
	}
	return course
}

// AddCourse registers a course explicitly, attributing it to the named
// curriculums, all of which must already exist.
func (in *Instance) AddCourse(name string, curriculumNames []string) error {
	for _, cname := range curriculumNames {
		curr, ok := in.curriculums[cname]
		if !ok {
			return validationErrorf("AddCourse", "unknown curriculum %q", cname)
		}
		course := in.ensureCourse(name)
		if _, already := course.CurriculumStudents[curr.ID]; already {
			continue
		}
		course.curriculumOrder = append(course.curriculumOrder, curr.ID)
		course.CurriculumStudents[curr.ID] += curr.NumStudents
	}
	return nil
}

// AddRoom registers a room with the periods it is usable in.
func (in *Instance) AddRoom(name string, capacity int, availability []int) (int, error) {
	if _, exists := in.rooms[name]; exists {
		return 0, validationErrorf("AddRoom", "duplicate room name %q", name)
	}
	avail := make(map[int]bool, len(availability))
	for _, p := range availability {
		avail[p] = true
		in.Periods[p] = true
	}
	r := &Room{ID: len(in.roomOrder), Name: name, Capacity: capacity, Availability: avail}
	in.rooms[name] = r
	in.roomOrder = append(in.roomOrder, name)
	return r.ID, nil
}

// AddTeacher registers a teacher with the courses they are qualified to
// teach and the periods they are available in.
func (in *Instance) AddTeacher(name string, qualifiedCourses []string, availability []int) (int, error) {
	if _, exists := in.teachers[name]; exists {
		return 0, validationErrorf("AddTeacher", "duplicate teacher name %q", name)
	}
	qualified := make(map[string]bool, len(qualifiedCourses))
	for _, c := range qualifiedCourses {
		qualified[c] = true
	}
	avail := make(map[int]bool, len(availability))
	for _, p := range availability {
		avail[p] = true
		in.Periods[p] = true
	}
	t := &Teacher{ID: len(in.teacherOrder), Name: name, QualifiedCourses: qualified, Availability: avail}
	in.teachers[name] = t
	in.teacherOrder = append(in.teacherOrder, name)
	return t.ID, nil
}

// AddPreference registers a soft preference. course must already exist;
// non-nil room/teacher names must already exist.
func (in *Instance) AddPreference(course string, period *int, roomName, teacherName *string, value float64) error {
	if _, ok := in.courses[course]; !ok {
		return validationErrorf("AddPreference", "unknown course %q", course)
	}
	if roomName != nil {
		if _, ok := in.rooms[*roomName]; !ok {
			return validationErrorf("AddPreference", "unknown room %q", *roomName)
		}
	}
	if teacherName != nil {
		if _, ok := in.teachers[*teacherName]; !ok {
			return validationErrorf("AddPreference", "unknown teacher %q", *teacherName)
		}
	}
	in.preferences = append(in.preferences, &Preference{
		CourseName:  course,
		Period:      period,
		RoomName:    roomName,
		TeacherName: teacherName,
		Value:       value,
	})
	return nil
}

// CreateCourseSections performs the single deterministic pass that splits
// every course's students into sections. It must be called exactly once,
// after all registrations, and requires at least one room.
func (in *Instance) CreateCourseSections() error {
	if in.sectionsCreated {
		return validationErrorf("CreateCourseSections", "sections already created")
	}
	if len(in.roomOrder) == 0 {
		return validationErrorf("CreateCourseSections", "no rooms registered")
	}

	maxCapacity := 0
	for _, name := range in.roomOrder {
		if cap := in.rooms[name].Capacity; cap > maxCapacity {
			maxCapacity = cap
		}
	}

	nextID := 0
	for _, name := range in.courseOrder {
		course := in.courses[name]
		total := 0
		for _, n := range course.CurriculumStudents {
			total += n
		}
		if total <= 0 {
			continue
		}
		groups := splitCourse(course, maxCapacity)
		for i, g := range groups {
			index := i + 1
			if len(groups) == 1 {
				index = 0
			}
			in.sections = append(in.sections, &CourseSection{
				ID:                 nextID,
				CourseName:         name,
				SectionIndex:       index,
				CurriculumStudents: g,
			})
			nextID++
		}
	}
	in.sectionsCreated = true
	return nil
}

// Sections returns every section created by CreateCourseSections, in
// creation order.
func (in *Instance) Sections() []*CourseSection {
	return in.sections
}

// Section looks up a section by id.
func (in *Instance) Section(id int) (*CourseSection, bool) {
	for _, s := range in.sections {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// Rooms, Teachers, Curriculums return the registered entities in
// registration order; Preferences returns them in registration order too,
// since the kernel's matching rule is first-match-wins by list order.

func (in *Instance) Rooms() []*Room {
	out := make([]*Room, len(in.roomOrder))
	for i, name := range in.roomOrder {
		out[i] = in.rooms[name]
	}
	return out
}

func (in *Instance) Room(id int) (*Room, bool) {
	if id < 0 || id >= len(in.roomOrder) {
		return nil, false
	}
	return in.rooms[in.roomOrder[id]], true
}

// QualifiedTeachers returns every teacher qualified to teach courseName, in
// registration order.
func (in *Instance) QualifiedTeachers(courseName string) []*Teacher {
	var out []*Teacher
	for _, name := range in.teacherOrder {
		t := in.teachers[name]
		if t.QualifiedCourses[courseName] {
			out = append(out, t)
		}
	}
	return out
}

func (in *Instance) Teachers() []*Teacher {
	out := make([]*Teacher, len(in.teacherOrder))
	for i, name := range in.teacherOrder {
		out[i] = in.teachers[name]
	}
	return out
}

func (in *Instance) Teacher(id int) (*Teacher, bool) {
	if id < 0 || id >= len(in.teacherOrder) {
		return nil, false
	}
	return in.teachers[in.teacherOrder[id]], true
}

func (in *Instance) Curriculums() []*Curriculum {
	out := make([]*Curriculum, len(in.curriculumIDs))
	for i, name := range in.curriculumIDs {
		out[i] = in.curriculums[name]
	}
	return out
}

func (in *Instance) Curriculum(id int) (*Curriculum, bool) {
	if id < 0 || id >= len(in.curriculumIDs) {
		return nil, false
	}
	return in.curriculums[in.curriculumIDs[id]], true
}

func (in *Instance) Preferences() []*Preference {
	return in.preferences
}

func (in *Instance) SortedPeriods() []int {
	out := make([]int, 0, len(in.Periods))
	for p := range in.Periods {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// AssignSection is the raw mutator used by solvers to record a placement
// on the instance's own working assignment set. The kernel itself never
// calls this -- it only ever consumes an AssignmentSet passed explicitly.
func (in *Instance) AssignSection(sectionID, period, roomID, teacherID int) {
	in.Assignments[sectionID] = Assignment{
		SectionID: sectionID,
		Period:    period,
		RoomID:    roomID,
		TeacherID: teacherID,
	}
}

// RemoveAssignment clears any assignment recorded for a section.
func (in *Instance) RemoveAssignment(sectionID int) {
	delete(in.Assignments, sectionID)
}
