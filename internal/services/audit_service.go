package services

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/synesthesie/gallery/internal/models"
	"gorm.io/gorm"
)

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// LogAction logs a write to the audit log
func (s *AuditService) LogAction(actorID uuid.UUID, action, targetType string, targetID uuid.UUID, details map[string]interface{}) error {
	detailsJSON := ""
	if details != nil {
		if jsonBytes, err := json.Marshal(details); err == nil {
			detailsJSON = string(jsonBytes)
		}
	}

	entry := &models.AuditLog{
		ActorID:    actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    detailsJSON,
	}
	return s.db.Create(entry).Error
}

// GetRecentActions retrieves recent actions with pagination
func (s *AuditService) GetRecentActions(page, limit int, actorID *uuid.UUID, action string) ([]*models.AuditLog, int64, error) {
	var logs []*models.AuditLog
	var total int64

	query := s.db.Model(&models.AuditLog{})

	if actorID != nil {
		query = query.Where("actor_id = ?", *actorID)
	}
	if action != "" {
		query = query.Where("action = ?", action)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("Actor").Order("created_at DESC").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// GetActionCount returns how many actions starting with actionPrefix the
// actor performed since the given time
func (s *AuditService) GetActionCount(actorID uuid.UUID, actionPrefix string, since time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&models.AuditLog{}).
		Where("actor_id = ? AND action LIKE ? AND created_at > ?", actorID, actionPrefix+"%", since).
		Count(&count).Error
	return count, err
}
