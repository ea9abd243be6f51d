package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/ledger"
)

// MockCourseStore mocks the store.CourseStore interface
type MockCourseStore struct {
	mock.Mock
}

func (m *MockCourseStore) Save(ctx context.Context, course *domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseStore) List(ctx context.Context) ([]*domain.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Course), args.Error(1)
}

// MockStudentStore mocks the store.StudentStore interface
type MockStudentStore struct {
	mock.Mock
}

func (m *MockStudentStore) Save(ctx context.Context, student *domain.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentStore) List(ctx context.Context) ([]*domain.Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Student), args.Error(1)
}

// MockSelectionStore mocks the store.SelectionStore interface
type MockSelectionStore struct {
	mock.Mock
}

func (m *MockSelectionStore) Save(
	ctx context.Context,
	studentID string,
	selected map[string]domain.SelectedCourse,
) error {
	args := m.Called(ctx, studentID, selected)
	return args.Error(0)
}

func (m *MockSelectionStore) Delete(ctx context.Context, studentID string) error {
	args := m.Called(ctx, studentID)
	return args.Error(0)
}

// MockLedgerStore mocks the store.LedgerStore interface
type MockLedgerStore struct {
	mock.Mock
}

func (m *MockLedgerStore) Load(ctx context.Context, l *ledger.Ledger) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLedgerStore) Save(ctx context.Context, l *ledger.Ledger) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
