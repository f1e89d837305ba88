package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ethicraft/club-portal/internal/attendance"
	"github.com/ethicraft/club-portal/internal/models"
)

func (s *Store) GetRecord(ctx context.Context, studentID, sessionID string) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	err := s.db.WithContext(ctx).
		Where("student_id = ? AND session_id = ?", studentID, sessionID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (s *Store) InsertRecord(ctx context.Context, rec *models.AttendanceRecord) error {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return attendance.ErrDuplicateRecord
		}
		return err
	}
	return nil
}

// UpsertRecord is keyed on (student_id, session_id) so status transitions
// never hit the uniqueness constraint.
func (s *Store) UpsertRecord(ctx context.Context, rec *models.AttendanceRecord) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status"}),
	}).Create(rec).Error
}

func (s *Store) DeleteRecord(ctx context.Context, studentID, sessionID string) error {
	return s.db.WithContext(ctx).
		Where("student_id = ? AND session_id = ?", studentID, sessionID).
		Delete(&models.AttendanceRecord{}).Error
}

func (s *Store) ListRecordsByStudent(ctx context.Context, studentID string) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	if err := s.db.WithContext(ctx).Where("student_id = ?", studentID).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) ListRecordsBySession(ctx context.Context, sessionID string) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	if err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
