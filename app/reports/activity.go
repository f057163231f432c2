package reports

import (
	"time"

	"github.com/itxparadoxarc-wq/educoreportal/app/models"
)

// ShapeRecentActivity maps audit rows into the dashboard activity feed.
func ShapeRecentActivity(logs []models.AuditLog) []models.RecentActivityItem {
	items := make([]models.RecentActivityItem, 0, len(logs))
	for i := range logs {
		log := &logs[i]
		item := models.RecentActivityItem{
			ID:        log.ID,
			Timestamp: log.Timestamp.Format(time.RFC3339),
			User:      log.UserEmail,
		}

		switch log.TableName {
		case "students":
			item.Type = "student_added"
			switch log.Action {
			case models.AuditInsert:
				item.Description = "New student enrolled"
			case models.AuditUpdate:
				item.Description = "Student record updated"
			default:
				item.Description = "Student record deleted"
			}
		case "fees":
			item.Type = "fee_paid"
			switch log.Action {
			case models.AuditInsert:
				item.Description = "Fee invoice created"
			case models.AuditUpdate:
				item.Description = "Fee payment recorded"
			default:
				item.Description = "Fee record deleted"
			}
		case "attendance":
			item.Type = "attendance"
			item.Description = "Attendance recorded"
		case "exams":
			item.Type = "exam_added"
			item.Description = "Exam created"
		case "exam_marks":
			item.Type = "exam_added"
			item.Description = "Exam marks entered"
		default:
			item.Type = "record_changed"
			item.Description = log.TableName + " " + string(log.Action)
		}

		items = append(items, item)
	}
	return items
}
