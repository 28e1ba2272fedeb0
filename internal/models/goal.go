// internal/models/goal.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Goal struct {
	BaseModel
	Name        string     `json:"name" gorm:"size:200;not null"`
	Description string     `json:"description" gorm:"type:text"`
	StartDate   time.Time  `json:"start_date" gorm:"type:date;not null"`
	EndDate     time.Time  `json:"end_date" gorm:"type:date;not null"`
	Status      GoalStatus `json:"status" gorm:"type:varchar(20);default:'planned';not null"`
	Progress    int        `json:"progress" gorm:"default:0"` // 0..100

	Plans []Plan `json:"plans,omitempty" gorm:"foreignKey:GoalID"`
}

type Plan struct {
	BaseModel
	GoalID   uuid.UUID    `json:"goal_id" gorm:"type:uuid;not null;index"`
	TaskName string       `json:"task_name" gorm:"size:200;not null"`
	Deadline time.Time    `json:"deadline" gorm:"type:date;not null"`
	Priority PlanPriority `json:"priority" gorm:"type:varchar(20);default:'medium';not null"`
	Status   PlanStatus   `json:"status" gorm:"type:varchar(20);default:'pending';not null"`
}
