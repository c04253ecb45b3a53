package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"pomotrack/internal/domain"
	"pomotrack/internal/errors"
	"pomotrack/internal/logging"
	"pomotrack/internal/repository/sqlite"
	"pomotrack/internal/validation"
)

// timeNow is swapped out in tests
var timeNow = time.Now

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.TaskValidator
}

// NewTaskService creates a new task service instance
func NewTaskService(repo sqlite.Repository) *TaskServiceImpl {
	return &TaskServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validation.NewTaskValidator(),
	}
}

// CreateTask creates a new task appended at the end of the list
func (s *TaskServiceImpl) CreateTask(ctx context.Context, name, notes string) (*domain.Task, error) {
	validName, err := s.validator.GetValidTaskName(name)
	if err != nil {
		return nil, errors.NewValidationError("invalid task name", err)
	}
	if err := s.validator.ValidateNotes(notes); err != nil {
		return nil, errors.NewValidationError("invalid notes", err)
	}

	maxPos, err := s.repo.MaxTaskPosition(ctx)
	if err != nil {
		return nil, err
	}

	task := domain.NewTask(validName, maxPos+1)
	task.Notes = notes
	task.CreatedAt = timeNow()

	dbTask := s.mapper.Task.ToDatabase(task)
	if err := s.repo.CreateTask(ctx, &dbTask); err != nil {
		return nil, err
	}

	created := s.mapper.Task.FromDatabase(dbTask)
	logging.L().Debug("created task", zap.Int64("id", created.ID), zap.String("name", created.Name))
	return &created, nil
}

// GetTask retrieves a task by ID
func (s *TaskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if err := s.validator.ValidateTaskID(id); err != nil {
		return nil, errors.NewValidationError("invalid task ID", err)
	}

	dbTask, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task := s.mapper.Task.FromDatabase(*dbTask)
	return &task, nil
}

// ListTasks returns tasks ordered by position
func (s *TaskServiceImpl) ListTasks(ctx context.Context, includeArchived bool) ([]*domain.Task, error) {
	dbTasks, err := s.repo.ListTasks(ctx, includeArchived)
	if err != nil {
		return nil, err
	}
	return s.mapper.Task.FromDatabaseSlice(dbTasks), nil
}

// UpdateTask updates the name and notes of an existing task. An empty name
// keeps the current one.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, id int64, name, notes string) (*domain.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		validName, err := s.validator.GetValidTaskName(name)
		if err != nil {
			return nil, errors.NewValidationError("invalid task name", err)
		}
		task.Name = validName
	}
	if err := s.validator.ValidateNotes(notes); err != nil {
		return nil, errors.NewValidationError("invalid notes", err)
	}
	task.Notes = notes

	return s.saveTask(ctx, *task)
}

// CompleteTask marks a task done. Completing an already completed task is a
// conflict.
func (s *TaskServiceImpl) CompleteTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.IsCompleted() {
		return nil, errors.NewConflictError("task", fmt.Sprintf("task %d is already completed", id))
	}

	return s.saveTask(ctx, task.Complete(timeNow()))
}

// ReopenTask clears the completion mark of a task
func (s *TaskServiceImpl) ReopenTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if !task.IsCompleted() {
		return nil, errors.NewConflictError("task", fmt.Sprintf("task %d is not completed", id))
	}

	return s.saveTask(ctx, task.Reopen())
}

// ArchiveTask hides a task from the default listing. Its logs are kept.
func (s *TaskServiceImpl) ArchiveTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.IsArchived() {
		return nil, errors.NewConflictError("task", fmt.Sprintf("task %d is already archived", id))
	}

	archived, err := s.saveTask(ctx, task.Archive(timeNow()))
	if err != nil {
		return nil, err
	}

	// Archived tasks leave the ordered list, so close the gap
	if err := s.renumberTasks(ctx); err != nil {
		return nil, err
	}
	return archived, nil
}

// UnarchiveTask restores an archived task at the end of the list
func (s *TaskServiceImpl) UnarchiveTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if !task.IsArchived() {
		return nil, errors.NewConflictError("task", fmt.Sprintf("task %d is not archived", id))
	}

	maxPos, err := s.repo.MaxTaskPosition(ctx)
	if err != nil {
		return nil, err
	}

	restored := task.Unarchive()
	restored.Position = maxPos + 1
	return s.saveTask(ctx, restored)
}

// MoveTask moves a task to a new 1-based position, shifting the others.
// Positions stay dense: 1..N with no gaps.
func (s *TaskServiceImpl) MoveTask(ctx context.Context, id int64, newPosition int) error {
	if err := s.validator.ValidateTaskID(id); err != nil {
		return errors.NewValidationError("invalid task ID", err)
	}
	if err := s.validator.ValidatePosition(newPosition); err != nil {
		return errors.NewValidationError("invalid position", err)
	}

	dbTasks, err := s.repo.ListTasks(ctx, false)
	if err != nil {
		return err
	}
	tasks := s.mapper.Task.FromDatabaseSlice(dbTasks)

	idx := -1
	for i, t := range tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return errors.NewNotFoundError("task", fmt.Sprintf("%d", id))
	}

	if newPosition > len(tasks) {
		newPosition = len(tasks)
	}

	moved := tasks[idx]
	tasks = append(tasks[:idx], tasks[idx+1:]...)
	tasks = append(tasks[:newPosition-1], append([]*domain.Task{moved}, tasks[newPosition-1:]...)...)

	updates := make([]sqlite.PositionUpdate, len(tasks))
	for i, t := range tasks {
		updates[i] = sqlite.PositionUpdate{ID: t.ID, Position: i + 1}
	}
	return s.repo.UpdateTaskPositions(ctx, updates)
}

// DeleteTask permanently removes a task along with its logs and tag links
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	if err := s.validator.ValidateTaskID(id); err != nil {
		return errors.NewValidationError("invalid task ID", err)
	}

	if err := s.repo.DeleteTask(ctx, id); err != nil {
		return err
	}

	logging.L().Debug("deleted task", zap.Int64("id", id))
	return s.renumberTasks(ctx)
}

func (s *TaskServiceImpl) saveTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	dbTask := s.mapper.Task.ToDatabase(task)
	if err := s.repo.UpdateTask(ctx, &dbTask); err != nil {
		return nil, err
	}
	saved := s.mapper.Task.FromDatabase(dbTask)
	return &saved, nil
}

// renumberTasks rewrites positions of non-archived tasks to a dense 1..N
// sequence, preserving the current order.
func (s *TaskServiceImpl) renumberTasks(ctx context.Context) error {
	dbTasks, err := s.repo.ListTasks(ctx, false)
	if err != nil {
		return err
	}

	sort.SliceStable(dbTasks, func(i, j int) bool {
		return dbTasks[i].Position < dbTasks[j].Position
	})

	updates := make([]sqlite.PositionUpdate, 0, len(dbTasks))
	for i, t := range dbTasks {
		if t.Position != i+1 {
			updates = append(updates, sqlite.PositionUpdate{ID: t.ID, Position: i + 1})
		}
	}
	if len(updates) == 0 {
		return nil
	}
	return s.repo.UpdateTaskPositions(ctx, updates)
}
