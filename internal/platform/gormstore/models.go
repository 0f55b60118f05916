package gormstore

import (
	"fmt"

	"gorm.io/gorm"
)

// UserModel maps the users table. Groups is the many-to-many side held in
// the membership table.
type UserModel struct {
	ID        int64        `gorm:"column:id;primaryKey;autoIncrement"`
	FirstName string       `gorm:"column:first_name;not null"`
	LastName  string       `gorm:"column:last_name;not null"`
	UserID    string       `gorm:"column:userid;not null;uniqueIndex"`
	Groups    []GroupModel `gorm:"many2many:membership;joinForeignKey:UserID;joinReferences:GroupID"`
}

// TableName implements gorm's schema.Tabler.
func (UserModel) TableName() string { return "users" }

// GroupModel maps the groups table.
type GroupModel struct {
	ID    int64       `gorm:"column:id;primaryKey;autoIncrement"`
	Name  string      `gorm:"column:group_name;not null;uniqueIndex"`
	Users []UserModel `gorm:"many2many:membership;joinForeignKey:GroupID;joinReferences:UserID"`
}

// TableName implements gorm's schema.Tabler.
func (GroupModel) TableName() string { return "groups" }

// MembershipModel maps one row of the membership join table.
type MembershipModel struct {
	UserID  int64 `gorm:"column:user_id;primaryKey"`
	GroupID int64 `gorm:"column:group_id;primaryKey"`
}

// TableName implements gorm's schema.Tabler.
func (MembershipModel) TableName() string { return "membership" }

// setupJoinTables binds both sides of the association to MembershipModel.
func setupJoinTables(db *gorm.DB) error {
	if err := db.SetupJoinTable(&UserModel{}, "Groups", &MembershipModel{}); err != nil {
		return fmt.Errorf("failed to set up user groups join table: %w", err)
	}
	if err := db.SetupJoinTable(&GroupModel{}, "Users", &MembershipModel{}); err != nil {
		return fmt.Errorf("failed to set up group users join table: %w", err)
	}
	return nil
}
