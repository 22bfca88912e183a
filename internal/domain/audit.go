package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntityType identifies the kind of domain entity an audit entry documents.
type EntityType string

const (
	EntityTypeActivity    EntityType = "ACTIVITY"
	EntityTypeGroup       EntityType = "GROUP"
	EntityTypeUser        EntityType = "USER"
	EntityTypeSafetyCheck EntityType = "SAFETY_CHECK"
	EntityTypeAlert       EntityType = "ALERT"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeActivity, EntityTypeGroup, EntityTypeUser, EntityTypeSafetyCheck, EntityTypeAlert:
		return true
	}
	return false
}

// AuditAction represents the kind of change recorded in the audit log.
type AuditAction string

const (
	AuditActionCreated         AuditAction = "CREATED"
	AuditActionUpdated         AuditAction = "UPDATED"
	AuditActionCanceled        AuditAction = "CANCELED"
	AuditActionAssigned        AuditAction = "ASSIGNED"
	AuditActionResponded       AuditAction = "RESPONDED"
	AuditActionReminderSent    AuditAction = "REMINDER_SENT"
	AuditActionResultAnnounced AuditAction = "RESULT_ANNOUNCED"
	AuditActionAcknowledged    AuditAction = "ACKNOWLEDGED"
	AuditActionSafetyActivated AuditAction = "SAFETY_ACTIVATED"
	AuditActionSafetyClosed    AuditAction = "SAFETY_CLOSED"
	AuditActionAlertSent       AuditAction = "ALERT_SENT"
	AuditActionWelcomed        AuditAction = "WELCOMED"
	AuditActionRenamed         AuditAction = "RENAMED"
	AuditActionJoined          AuditAction = "JOINED"
	AuditActionAppLinkSent     AuditAction = "APP_LINK_SENT"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreated, AuditActionUpdated, AuditActionCanceled, AuditActionAssigned,
		AuditActionResponded, AuditActionReminderSent, AuditActionResultAnnounced,
		AuditActionAcknowledged, AuditActionSafetyActivated, AuditActionSafetyClosed, AuditActionAlertSent,
		AuditActionWelcomed, AuditActionRenamed, AuditActionJoined, AuditActionAppLinkSent:
		return true
	}
	return false
}

// AuditLogEntry is an immutable record of why an entity changed.
// ActorID is nil for changes made by background jobs.
type AuditLogEntry struct {
	ID         uuid.UUID
	ActorID    *uuid.UUID
	EntityType EntityType
	EntityID   *uuid.UUID
	Action     AuditAction
	Detail     *string
	CreatedAt  time.Time
}
