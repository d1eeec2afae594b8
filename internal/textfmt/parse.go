// Package textfmt reads the canonical text input format: one
// curriculum/room/teacher/preference per line, fields separated by ':' or
// '|', trailing "//" comments stripped.
package textfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/russross/cbctt/internal/domain"
)

// ParseError reports the line a parse failure occurred on.
type ParseError struct {
	Section string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s line %d: %s", e.Section, e.Line, e.Message)
}

// Load reads a "periods:" header followed by curriculums, rooms,
// teachers, and preferences sections from a single stream, each
// introduced by its own header line ("periods:", "curriculums:",
// "rooms:", "teachers:", "preferences:"), and populates in. Blank lines
// and lines starting with "//" are ignored. Rooms and teachers carry no
// availability list of their own in their per-line format, so this format
// adds a "periods:" header declaring the full period set; every room and
// teacher parsed afterward gets full availability across it.
func Load(in *domain.Instance, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	section := ""
	lineNum := 0
	var periods []int

	for scanner.Scan() {
		lineNum++
		line := stripComment(scanner.Text())
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if header, ok := sectionHeader(line); ok {
			section = header
			continue
		}

		var err error
		switch section {
		case "periods":
			periods, err = parsePeriodsLine(line)
		case "curriculums":
			err = parseCurriculumLine(in, line)
		case "rooms":
			err = parseRoomLine(in, line, periods)
		case "teachers":
			err = parseTeacherLine(in, line, periods)
		case "preferences":
			err = parsePreferenceLine(in, line)
		default:
			err = fmt.Errorf("data line before any section header")
		}
		if err != nil {
			return &ParseError{Section: section, Line: lineNum, Message: err.Error()}
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return nil
}

func sectionHeader(line string) (string, bool) {
	switch line {
	case "periods:", "curriculums:", "rooms:", "teachers:", "preferences:":
		return strings.TrimSuffix(line, ":"), true
	}
	return "", false
}

func parsePeriodsLine(line string) ([]int, error) {
	fields := strings.Fields(line)
	periods := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad period number %q", f)
		}
		periods = append(periods, n)
	}
	if len(periods) == 0 {
		return nil, fmt.Errorf("periods: line lists no periods")
	}
	return periods, nil
}

func stripComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		return line[:i]
	}
	return line
}

// parseCurriculumLine handles "name : num_students : course1, course2, ...".
func parseCurriculumLine(in *domain.Instance, line string) error {
	fields := splitColon(line)
	if len(fields) != 3 {
		return fmt.Errorf("expected %q, found %q", "name : num_students : course1, course2, ...", line)
	}
	name := fields[0]
	numStudents, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("bad student count %q", fields[1])
	}
	courses := splitComma(fields[2])
	_, err = in.AddCurriculum(name, numStudents, courses)
	return err
}

// parseRoomLine handles "name : capacity".
func parseRoomLine(in *domain.Instance, line string, periods []int) error {
	fields := splitColon(line)
	if len(fields) != 2 {
		return fmt.Errorf("expected %q, found %q", "name : capacity", line)
	}
	capacity, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("bad capacity %q", fields[1])
	}
	_, err = in.AddRoom(fields[0], capacity, periods)
	return err
}

// parseTeacherLine handles "name : course1, course2, ...".
func parseTeacherLine(in *domain.Instance, line string, periods []int) error {
	fields := splitColon(line)
	if len(fields) != 2 {
		return fmt.Errorf("expected %q, found %q", "name : course1, course2, ...", line)
	}
	courses := splitComma(fields[1])
	_, err := in.AddTeacher(fields[0], courses, periods)
	return err
}

// parsePreferenceLine handles "course | room | period-token | teacher | value",
// where any of room/period-token/teacher may be the literal "-" for a
// wildcard, and period-token is either an integer or "Turno <int>".
func parsePreferenceLine(in *domain.Instance, line string) error {
	fields := splitPipe(line)
	if len(fields) != 5 {
		return fmt.Errorf("expected %q, found %q", "course | room | period-token | teacher | value", line)
	}
	course := fields[0]

	var period *int
	if tok := fields[2]; tok != "-" {
		p, err := parsePeriodToken(tok)
		if err != nil {
			return err
		}
		period = &p
	}

	var roomName *string
	if fields[1] != "-" {
		roomName = &fields[1]
	}

	var teacherName *string
	if fields[3] != "-" {
		teacherName = &fields[3]
	}

	value, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return fmt.Errorf("bad preference value %q", fields[4])
	}

	return in.AddPreference(course, period, roomName, teacherName, value)
}

// parsePeriodToken accepts either a bare integer or "Turno <int>".
func parsePeriodToken(tok string) (int, error) {
	if strings.HasPrefix(tok, "Turno ") {
		tok = strings.TrimSpace(strings.TrimPrefix(tok, "Turno "))
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("bad period token %q", tok)
	}
	return n, nil
}

func splitColon(line string) []string {
	parts := strings.Split(line, ":")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

func splitPipe(line string) []string {
	parts := strings.Split(line, "|")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

func splitComma(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
