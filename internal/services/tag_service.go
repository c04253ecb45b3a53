package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"pomotrack/internal/domain"
	"pomotrack/internal/errors"
	"pomotrack/internal/logging"
	"pomotrack/internal/repository/sqlite"
	"pomotrack/internal/validation"
)

// defaultTagColor is used when a tag is created without an explicit color
const defaultTagColor = "#808080"

// TagServiceImpl implements the TagService interface
type TagServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.TagValidator
}

// NewTagService creates a new tag service instance
func NewTagService(repo sqlite.Repository) *TagServiceImpl {
	return &TagServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validation.NewTagValidator(),
	}
}

// CreateTag creates a new tag appended at the end of the tag list
func (s *TagServiceImpl) CreateTag(ctx context.Context, name, color string) (*domain.Tag, error) {
	validName, err := s.validator.GetValidTagName(name)
	if err != nil {
		return nil, errors.NewValidationError("invalid tag name", err)
	}

	if color == "" {
		color = defaultTagColor
	}
	if err := s.validator.ValidateTagColor(color); err != nil {
		return nil, errors.NewValidationError("invalid tag color", err)
	}

	maxPos, err := s.repo.MaxTagPosition(ctx)
	if err != nil {
		return nil, err
	}

	tag := domain.NewTag(validName, color, maxPos+1)
	dbTag := s.mapper.Tag.ToDatabase(tag)
	if err := s.repo.CreateTag(ctx, &dbTag); err != nil {
		return nil, err
	}

	created := s.mapper.Tag.FromDatabase(dbTag)
	logging.L().Debug("created tag", zap.Int64("id", created.ID), zap.String("name", created.Name))
	return &created, nil
}

// GetTag retrieves a tag by ID
func (s *TagServiceImpl) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	if err := s.validator.ValidateTagID(id); err != nil {
		return nil, errors.NewValidationError("invalid tag ID", err)
	}

	dbTag, err := s.repo.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}

	tag := s.mapper.Tag.FromDatabase(*dbTag)
	return &tag, nil
}

// ListTags returns all tags ordered by position
func (s *TagServiceImpl) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	dbTags, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.Tag.FromDatabaseSlice(dbTags), nil
}

// UpdateTag updates the name and color of a tag. Empty values keep the
// current ones.
func (s *TagServiceImpl) UpdateTag(ctx context.Context, id int64, name, color string) (*domain.Tag, error) {
	tag, err := s.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		validName, err := s.validator.GetValidTagName(name)
		if err != nil {
			return nil, errors.NewValidationError("invalid tag name", err)
		}
		tag.Name = validName
	}
	if color != "" {
		if err := s.validator.ValidateTagColor(color); err != nil {
			return nil, errors.NewValidationError("invalid tag color", err)
		}
		tag.Color = color
	}

	dbTag := s.mapper.Tag.ToDatabase(*tag)
	if err := s.repo.UpdateTag(ctx, &dbTag); err != nil {
		return nil, err
	}

	updated := s.mapper.Tag.FromDatabase(dbTag)
	return &updated, nil
}

// MoveTag moves a tag to a new 1-based position, keeping positions dense
func (s *TagServiceImpl) MoveTag(ctx context.Context, id int64, newPosition int) error {
	if err := s.validator.ValidateTagID(id); err != nil {
		return errors.NewValidationError("invalid tag ID", err)
	}
	if newPosition < 1 {
		return errors.NewInvalidInputError("position", newPosition, "must be a positive integer")
	}

	dbTags, err := s.repo.ListTags(ctx)
	if err != nil {
		return err
	}
	tags := s.mapper.Tag.FromDatabaseSlice(dbTags)

	idx := -1
	for i, tg := range tags {
		if tg.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return errors.NewNotFoundError("tag", fmt.Sprintf("%d", id))
	}

	if newPosition > len(tags) {
		newPosition = len(tags)
	}

	moved := tags[idx]
	tags = append(tags[:idx], tags[idx+1:]...)
	tags = append(tags[:newPosition-1], append([]*domain.Tag{moved}, tags[newPosition-1:]...)...)

	updates := make([]sqlite.PositionUpdate, len(tags))
	for i, tg := range tags {
		updates[i] = sqlite.PositionUpdate{ID: tg.ID, Position: i + 1}
	}
	return s.repo.UpdateTagPositions(ctx, updates)
}

// DeleteTag permanently removes a tag. Task links cascade, tasks stay.
func (s *TagServiceImpl) DeleteTag(ctx context.Context, id int64) error {
	if err := s.validator.ValidateTagID(id); err != nil {
		return errors.NewValidationError("invalid tag ID", err)
	}

	if err := s.repo.DeleteTag(ctx, id); err != nil {
		return err
	}

	logging.L().Debug("deleted tag", zap.Int64("id", id))
	return s.renumberTags(ctx)
}

// AssignTag links a tag to a task. Assigning an already assigned tag is a
// no-op.
func (s *TagServiceImpl) AssignTag(ctx context.Context, taskID, tagID int64) error {
	if err := s.validator.ValidateTagID(tagID); err != nil {
		return errors.NewValidationError("invalid tag ID", err)
	}
	if taskID <= 0 {
		return errors.NewInvalidInputError("task_id", taskID, "must be a positive integer")
	}
	return s.repo.AssignTag(ctx, taskID, tagID)
}

// UnassignTag removes a tag from a task
func (s *TagServiceImpl) UnassignTag(ctx context.Context, taskID, tagID int64) error {
	if err := s.validator.ValidateTagID(tagID); err != nil {
		return errors.NewValidationError("invalid tag ID", err)
	}
	if taskID <= 0 {
		return errors.NewInvalidInputError("task_id", taskID, "must be a positive integer")
	}
	return s.repo.UnassignTag(ctx, taskID, tagID)
}

// TagsForTask returns the tags assigned to a task, ordered by tag position
func (s *TagServiceImpl) TagsForTask(ctx context.Context, taskID int64) ([]*domain.Tag, error) {
	if taskID <= 0 {
		return nil, errors.NewInvalidInputError("task_id", taskID, "must be a positive integer")
	}

	dbTags, err := s.repo.ListTagsForTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return s.mapper.Tag.FromDatabaseSlice(dbTags), nil
}

// Membership returns the full task-to-tags mapping in one round trip,
// for decorating task listings.
func (s *TagServiceImpl) Membership(ctx context.Context) (map[int64][]*domain.Tag, error) {
	dbTags, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	tagsByID := make(map[int64]*domain.Tag, len(dbTags))
	for _, dbTag := range dbTags {
		tag := s.mapper.Tag.FromDatabase(*dbTag)
		tagsByID[tag.ID] = &tag
	}

	links, err := s.repo.TagMembership(ctx)
	if err != nil {
		return nil, err
	}

	membership := make(map[int64][]*domain.Tag, len(links))
	for taskID, tagIDs := range links {
		for _, tagID := range tagIDs {
			if tag, ok := tagsByID[tagID]; ok {
				membership[taskID] = append(membership[taskID], tag)
			}
		}
	}
	return membership, nil
}

func (s *TagServiceImpl) renumberTags(ctx context.Context) error {
	dbTags, err := s.repo.ListTags(ctx)
	if err != nil {
		return err
	}

	updates := make([]sqlite.PositionUpdate, 0, len(dbTags))
	for i, tg := range dbTags {
		if tg.Position != i+1 {
			updates = append(updates, sqlite.PositionUpdate{ID: tg.ID, Position: i + 1})
		}
	}
	if len(updates) == 0 {
		return nil
	}
	return s.repo.UpdateTagPositions(ctx, updates)
}
