package model

import "time"

// Locking is an advisory edit lock on one entity. The lock is held by
// LockedBy until it is released or LockedAt is older than the lock TTL.
type Locking struct {
	ID          string    `gorm:"primaryKey;type:uuid"`
	EntityID    string    `gorm:"type:uuid;not null;uniqueIndex:IX_Loc_EntityId_TableName"`
	EntityTable string    `gorm:"column:table_name;size:100;not null;uniqueIndex:IX_Loc_EntityId_TableName"`
	LockedBy    string    `gorm:"size:100;not null"`
	LockedAt    time.Time `gorm:"not null;index:IX_Loc_LockedAt"`
}

func (Locking) TableName() string {
	return "lockings"
}

// Expired reports whether the lock is no longer held at now.
func (l *Locking) Expired(now time.Time, ttl time.Duration) bool {
	return !l.LockedAt.Add(ttl).After(now)
}
