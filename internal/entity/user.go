package entity

import (
	"time"

	"github.com/questforge/backend/pkg/enum"
)

type GlobalRole string

var (
	RoleSuperAdmin = enum.New(GlobalRole("super_admin"))
	RoleAdmin      = enum.New(GlobalRole("admin"))
	RoleUser       = enum.New(GlobalRole("user"))
)

var GlobalAdminRoles = []GlobalRole{RoleSuperAdmin, RoleAdmin}

// User carries the aggregate progression state mutated only by the settlement
// service.
type User struct {
	Base

	Name string
	Role GlobalRole

	Level      int
	Experience int
	Currency   int
	StatPoints int
}

// CompletedQuest records that a user finished a quest. The composite primary
// key makes the first insert win and every later one a conflict, which is the
// idempotency anchor of reward settlement.
type CompletedQuest struct {
	UserID    string `gorm:"primaryKey"`
	QuestID   string `gorm:"primaryKey"`
	CreatedAt time.Time
}

// ActiveQuest tracks quests a user has started and not yet completed.
type ActiveQuest struct {
	UserID    string `gorm:"primaryKey"`
	QuestID   string `gorm:"primaryKey"`
	CreatedAt time.Time
}
