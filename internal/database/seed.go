package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/ethicraft/club-portal/internal/models"
	"github.com/ethicraft/club-portal/internal/utils"
)

// BackfillSessionCodes assigns a code to every session that has none, so that
// check-in is never blocked on sessions created before code gating existed.
// Existing codes are left alone.
func BackfillSessionCodes(db *gorm.DB, length int) error {
	var sessions []models.Session
	if err := db.Where("session_code = '' OR session_code IS NULL").Find(&sessions).Error; err != nil {
		return err
	}
	for _, s := range sessions {
		code, err := utils.GenerateCode(length)
		if err != nil {
			return err
		}
		if err := db.Model(&models.Session{}).Where("id = ?", s.ID).
			Update("session_code", code).Error; err != nil {
			return err
		}
		log.Println("backfilled session code for", s.ID)
	}
	return nil
}
