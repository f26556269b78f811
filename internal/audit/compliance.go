package audit

import (
	"time"

	"github.com/GoShooterPortal/GoShooterPortal/internal/db/models"
)

// Compliance helpers record the data-protection events the portal must be
// able to evidence: consent changes, data exports and deletion requests.
// They are thin wrappers over Log and share its best-effort contract.

// LogConsentChange records a user granting or withdrawing a consent type.
func (r *Recorder) LogConsentChange(userID uint64, consentType string, granted bool, ip, userAgent string) {
	r.Log(Entry{
		UserID:     &userID,
		Action:     models.AuditActionUpdate,
		EntityType: "user_consent",
		NewValues: models.ValueMap{
			"consent_type": consentType,
			"granted":      granted,
			"timestamp":    time.Now().UTC().Format(time.RFC3339),
		},
		IPAddress: ip,
		UserAgent: userAgent,
	})
}

// LogDataExport records a user requesting an export of their data.
func (r *Recorder) LogDataExport(userID uint64, ip, userAgent string) {
	r.Log(Entry{
		UserID:     &userID,
		Action:     models.AuditActionRead,
		EntityType: "user_data_export",
		NewValues: models.ValueMap{
			"export_requested_at": time.Now().UTC().Format(time.RFC3339),
			"status":              "initiated",
		},
		IPAddress: ip,
		UserAgent: userAgent,
	})
}

// LogDataDeletion records a right-to-be-forgotten request.
func (r *Recorder) LogDataDeletion(userID uint64, reason, ip, userAgent string) {
	r.Log(Entry{
		UserID:     &userID,
		Action:     models.AuditActionDelete,
		EntityType: "user_data_deletion",
		NewValues: models.ValueMap{
			"deletion_requested_at": time.Now().UTC().Format(time.RFC3339),
			"reason":                reason,
			"status":                "pending",
		},
		IPAddress: ip,
		UserAgent: userAgent,
	})
}
