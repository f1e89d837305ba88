package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ethicraft/club-portal/internal/models"
	"github.com/ethicraft/club-portal/internal/students"
)

func (s *Store) InsertStudent(ctx context.Context, st *models.Student) error {
	if err := s.db.WithContext(ctx).Create(st).Error; err != nil {
		if isUniqueViolation(err) {
			return students.ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *Store) UpdateStudent(ctx context.Context, st *models.Student) error {
	if err := s.db.WithContext(ctx).Save(st).Error; err != nil {
		if isUniqueViolation(err) {
			return students.ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *Store) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	var st models.Student
	if err := s.db.WithContext(ctx).First(&st, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

// FindStudentByLogin compares email and PRN case-insensitively and trimmed
// in SQL, so rows predating normalized storage still match.
func (s *Store) FindStudentByLogin(ctx context.Context, email, prn string) (*models.Student, error) {
	var st models.Student
	err := s.db.WithContext(ctx).
		Where("LOWER(TRIM(email)) = ? AND LOWER(TRIM(prn_number)) = ?", email, prn).
		First(&st).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

func (s *Store) ListStudents(ctx context.Context) ([]models.Student, error) {
	var out []models.Student
	if err := s.db.WithContext(ctx).Order("first_name, last_name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteStudentCascade(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", id).Delete(&models.AttendanceRecord{}).Error; err != nil {
			return fmt.Errorf("delete attendance: %w", err)
		}
		if err := tx.Where("student_id = ?", id).Delete(&models.TestScore{}).Error; err != nil {
			return fmt.Errorf("delete scores: %w", err)
		}
		return tx.Delete(&models.Student{}, "id = ?", id).Error
	})
}
