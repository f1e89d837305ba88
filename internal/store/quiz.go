package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ethicraft/club-portal/internal/models"
)

func (s *Store) GetTest(ctx context.Context, id string) (*models.Test, error) {
	var test models.Test
	if err := s.db.WithContext(ctx).First(&test, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &test, nil
}

func (s *Store) ListQuestions(ctx context.Context, testID string) ([]models.Question, error) {
	var out []models.Question
	err := s.db.WithContext(ctx).
		Where("test_id = ?", testID).
		Order("position").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertScore is keyed on (student_id, session_id, test_id); a resubmission
// overwrites the stored score and answers.
func (s *Store) UpsertScore(ctx context.Context, score *models.TestScore) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "student_id"}, {Name: "session_id"}, {Name: "test_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"score", "answers", "updated_at"}),
	}).Create(score).Error
}

func (s *Store) ListScoresByStudent(ctx context.Context, studentID string) ([]models.TestScore, error) {
	var out []models.TestScore
	if err := s.db.WithContext(ctx).Where("student_id = ?", studentID).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
