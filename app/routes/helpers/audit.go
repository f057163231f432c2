package helpers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/itxparadoxarc-wq/educoreportal/app/database"
	"github.com/itxparadoxarc-wq/educoreportal/app/models"
)

// RecordAudit writes one audit row for a mutation performed in this request.
// Audit failures are logged, never surfaced: the mutation already happened.
func RecordAudit(db *sqlx.DB, log *zap.Logger, c *fiber.Ctx, action models.AuditAction, table, recordID string, oldData, newData models.JSONMap) {
	entry := &models.AuditLog{
		Action:    action,
		TableName: table,
		OldData:   oldData,
		NewData:   newData,
	}
	if recordID != "" {
		entry.RecordID = &recordID
	}
	if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
		entry.UserID = &userID
	}
	if email, ok := c.Locals("user_email").(string); ok && email != "" {
		entry.UserEmail = &email
	}
	if ip := c.IP(); ip != "" {
		entry.IPAddress = &ip
	}

	if err := database.InsertAuditLog(db, entry); err != nil {
		log.Error("audit log write failed",
			zap.String("table", table),
			zap.String("action", string(action)),
			zap.Error(err))
	}
}
