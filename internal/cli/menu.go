package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain/grading"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/service"
)

// errAbort is returned by a prompt when the operator types Q or q.
var errAbort = errors.New("aborted by operator")

// Registrar is the part of service.Registrar the menu drives.
type Registrar interface {
	HasStudent(id string) bool
	Student(id string) (*domain.Student, error)
	RegisterStudent(ctx context.Context, student *domain.Student) error

	HasCourse(id string) bool
	CreateCourse(ctx context.Context, course *domain.Course) error
	OpenCourse(ctx context.Context, id string) error
	CloseCourse(ctx context.Context, id string) error

	AddEnrollment(ctx context.Context, studentID, courseID string) error
	DropEnrollment(ctx context.Context, studentID, courseID string) error
	RecordGrade(ctx context.Context, courseID, studentID string, grade float64) error

	Schedule(studentID string) ([]grading.ScheduleEntry, error)
	GradeCredits(studentID string) ([]grading.CourseGrade, error)
	GPA(studentID string) (grading.GPAResult, error)
	CrossCourseReport(studentID string) (grading.Report, error)

	Flush(ctx context.Context) error
}

var _ Registrar = (*service.Registrar)(nil)

// Menu actions.
const (
	actionRegister = iota + 1
	actionModify
	actionManage
	actionSchedule
	actionGrades
	actionExit
)

const banner = `############################################################
#        Welcome to our course registration system         #
############################################################
#   1. Course registration for new user                    #
#   2. Modify user course registration                     #
#   3. Course management                                   #
#   4. Print selected course schedule                      #
#   5. Query grades and credits                            #
#   6. Exit                                                #
############################################################
`

// MaxLineSize is the longest input line the menu accepts.
const MaxLineSize = 1 << 20

// inputLine is one read from the operator: a line or the error that ended input.
type inputLine struct {
	text string
	err  error
}

// Menu is the interactive operator loop.
type Menu struct {
	in     *bufio.Scanner
	out    io.Writer
	reg    Registrar
	logger *slog.Logger

	lines <-chan inputLine
}

// NewMenu creates a Menu reading commands from in and writing to out.
// If logger is nil, a default logger will be used.
func NewMenu(in io.Reader, out io.Writer, reg Registrar, logger *slog.Logger) *Menu {
	if logger == nil {
		logger = slog.Default()
	}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &Menu{
		in:     scanner,
		out:    out,
		reg:    reg,
		logger: logger.With(slog.String("component", "menu")),
	}
}

// Run shows the menu until the operator exits or the input ends, then
// flushes the registrar. The flush error, if any, is returned.
//
// Cancelling ctx or an unreadable input also ends the session with a flush;
// the returned error then carries both the cause and any flush failure.
func (m *Menu) Run(ctx context.Context) error {
	stop := m.startReader()
	defer close(stop)

	for {
		m.printf("%s", banner)
		choice, err := m.readChoice(ctx)
		if err == nil {
			if choice == actionExit {
				return m.exit(ctx)
			}
			err = m.dispatch(ctx, choice)
			if err == nil {
				continue
			}
			if errors.Is(err, errAbort) {
				m.println("Exiting to the main menu...")
				continue
			}
		}

		if errors.Is(err, io.EOF) {
			return m.exit(ctx)
		}

		m.logger.WarnContext(ctx, "session interrupted, saving before exit",
			slog.String("error", err.Error()))
		var result *multierror.Error
		result = multierror.Append(result, err)
		if flushErr := m.exit(context.WithoutCancel(ctx)); flushErr != nil {
			result = multierror.Append(result, flushErr)
		}
		return result.ErrorOrNil()
	}
}

// startReader feeds input lines to m.lines from a goroutine so a blocked
// read never delays cancellation. Closing the returned channel stops it.
func (m *Menu) startReader() chan<- struct{} {
	stop := make(chan struct{})
	lines := make(chan inputLine)
	m.lines = lines

	go func() {
		defer close(lines)
		send := func(l inputLine) bool {
			select {
			case lines <- l:
				return true
			case <-stop:
				return false
			}
		}
		for m.in.Scan() {
			if !send(inputLine{text: m.in.Text()}) {
				return
			}
		}
		if err := m.in.Err(); err != nil {
			send(inputLine{err: err})
		}
	}()

	return stop
}

func (m *Menu) dispatch(ctx context.Context, choice int) error {
	switch choice {
	case actionRegister:
		return m.registerStudent(ctx)
	case actionModify:
		return m.modifyEnrollment(ctx)
	case actionManage:
		return m.manageCourses(ctx)
	case actionSchedule:
		return m.showSchedule(ctx)
	case actionGrades:
		return m.showGrades(ctx)
	}
	return nil
}

func (m *Menu) exit(ctx context.Context) error {
	m.println("Backing up the data...")
	if err := m.reg.Flush(ctx); err != nil {
		m.logger.ErrorContext(ctx, "backup failed", slog.String("error", err.Error()))
		m.println("Backup failed, see the log for details.")
		return err
	}
	m.println("Data backed up.")
	m.println("Exiting the system...")
	return nil
}

// readLine returns the next trimmed input line, io.EOF at the end of input,
// or ctx's error once it is cancelled.
func (m *Menu) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-m.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			return "", l.err
		}
		return strings.TrimSpace(l.text), nil
	}
}

// prompt asks for one value. Q or q aborts back to the menu.
func (m *Menu) prompt(ctx context.Context, label string) (string, error) {
	m.printf("$ %s (Q/q to quit): ", label)
	line, err := m.readLine(ctx)
	if err != nil {
		return "", err
	}
	if line == "q" || line == "Q" {
		return "", errAbort
	}
	return line, nil
}

func (m *Menu) readChoice(ctx context.Context) (int, error) {
	for {
		m.printf("$ Please give your choice: ")
		line, err := m.readLine(ctx)
		if err != nil {
			return 0, err
		}
		if n, err := strconv.Atoi(line); err == nil && n >= actionRegister && n <= actionExit {
			return n, nil
		}
		m.println("$ Please give a valid choice.")
	}
}

// promptMode asks until the answer is one of modes.
func (m *Menu) promptMode(ctx context.Context, label string, modes ...string) (string, error) {
	for {
		answer, err := m.prompt(ctx, label)
		if err != nil {
			return "", err
		}
		for _, mode := range modes {
			if answer == mode {
				return answer, nil
			}
		}
		m.println("$ Please give a valid mode.")
	}
}

// promptStudent asks until the answer is a registered student ID.
func (m *Menu) promptStudent(ctx context.Context, label string) (string, error) {
	for {
		id, err := m.prompt(ctx, label)
		if err != nil {
			return "", err
		}
		if m.reg.HasStudent(id) {
			return id, nil
		}
		m.println("$ Student is not a registrant in the system.")
	}
}

// promptCourse asks until the answer is a course in the catalog.
func (m *Menu) promptCourse(ctx context.Context, label string) (string, error) {
	for {
		id, err := m.prompt(ctx, label)
		if err != nil {
			return "", err
		}
		if m.reg.HasCourse(id) {
			return id, nil
		}
		m.println("$ Please give a valid course ID.")
	}
}

func (m *Menu) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(m.out, format, args...)
}

func (m *Menu) println(line string) {
	_, _ = fmt.Fprintln(m.out, line)
}
