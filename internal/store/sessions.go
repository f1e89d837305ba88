package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ethicraft/club-portal/internal/models"
	"github.com/ethicraft/club-portal/internal/sessions"
)

func (s *Store) InsertSession(ctx context.Context, sess *models.Session) error {
	if err := s.db.WithContext(ctx).Create(sess).Error; err != nil {
		if isUniqueViolation(err) {
			return sessions.ErrExists
		}
		return err
	}
	return nil
}

func (s *Store) UpdateSession(ctx context.Context, sess *models.Session) error {
	return s.db.WithContext(ctx).Save(sess).Error
}

func (s *Store) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var sess models.Session
	if err := s.db.WithContext(ctx).First(&sess, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sess, nil
}

func (s *Store) ListSessions(ctx context.Context) ([]models.Session, error) {
	var out []models.Session
	if err := s.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) SetSessionCode(ctx context.Context, id, code string) error {
	return s.db.WithContext(ctx).Model(&models.Session{}).
		Where("id = ?", id).
		Update("session_code", code).Error
}

func (s *Store) DeleteSessionCascade(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&models.AttendanceRecord{}).Error; err != nil {
			return fmt.Errorf("delete attendance: %w", err)
		}
		if err := tx.Where("session_id = ?", id).Delete(&models.TestScore{}).Error; err != nil {
			return fmt.Errorf("delete scores: %w", err)
		}
		sub := tx.Model(&models.Test{}).Select("id").Where("session_id = ?", id)
		if err := tx.Where("test_id IN (?)", sub).Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("delete questions: %w", err)
		}
		if err := tx.Where("session_id = ?", id).Delete(&models.Test{}).Error; err != nil {
			return fmt.Errorf("delete test: %w", err)
		}
		return tx.Delete(&models.Session{}, "id = ?", id).Error
	})
}

func (s *Store) GetTestBySession(ctx context.Context, sessionID string) (*models.Test, error) {
	var test models.Test
	if err := s.db.WithContext(ctx).First(&test, "session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &test, nil
}

// ReplaceTest swaps the whole question set in one transaction so a failure
// can never leave a partially-replaced test behind.
func (s *Store) ReplaceTest(ctx context.Context, test *models.Test, questions []models.Question) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(test).Error; err != nil {
			return fmt.Errorf("save test: %w", err)
		}
		if err := tx.Where("test_id = ?", test.ID).Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("delete questions: %w", err)
		}
		if err := tx.Create(&questions).Error; err != nil {
			return fmt.Errorf("insert questions: %w", err)
		}
		return nil
	})
}

func (s *Store) DeleteTestCascade(ctx context.Context, sessionID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&models.Test{}).Select("id").Where("session_id = ?", sessionID)
		if err := tx.Where("test_id IN (?)", sub).Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("delete questions: %w", err)
		}
		if err := tx.Where("session_id = ?", sessionID).Delete(&models.TestScore{}).Error; err != nil {
			return fmt.Errorf("delete scores: %w", err)
		}
		return tx.Where("session_id = ?", sessionID).Delete(&models.Test{}).Error
	})
}
