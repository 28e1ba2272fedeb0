// internal/services/goal_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurgarden/ngms-backend/internal/models"
)

type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

type GoalCreateRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
	Status      string `json:"status" validate:"omitempty,oneof=planned in_progress completed"`
}

type GoalUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Status      *string `json:"status" validate:"omitempty,oneof=planned in_progress completed"`
	Progress    *int    `json:"progress" validate:"omitempty,gte=0,lte=100"`
}

type PlanCreateRequest struct {
	TaskName string `json:"task_name" validate:"required,min=1,max=200"`
	Deadline string `json:"deadline" validate:"required"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status   string `json:"status" validate:"omitempty,oneof=pending in_progress done"`
}

type PlanUpdateRequest struct {
	TaskName *string `json:"task_name" validate:"omitempty,min=1,max=200"`
	Deadline *string `json:"deadline"`
	Priority *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status   *string `json:"status" validate:"omitempty,oneof=pending in_progress done"`
}

func (s *GoalService) Create(req *GoalCreateRequest) (*models.Goal, error) {
	start, err := time.Parse(saleDateLayout, req.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := time.Parse(saleDateLayout, req.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	goal := &models.Goal{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		Status:      models.GoalStatusPlanned,
	}
	if req.Status != "" {
		goal.Status = models.GoalStatus(req.Status)
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return goal, nil
}

func (s *GoalService) GetByID(id uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Preload("Plans").First(&goal, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}
	return &goal, nil
}

func (s *GoalService) List(status string) ([]models.Goal, error) {
	query := s.db.Model(&models.Goal{}).Preload("Plans")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var goals []models.Goal
	if err := query.Order("start_date asc").Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

func (s *GoalService) Update(id uuid.UUID, req *GoalUpdateRequest) (*models.Goal, error) {
	goal, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		goal.Name = *req.Name
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.StartDate != nil {
		start, err := time.Parse(saleDateLayout, *req.StartDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		goal.StartDate = start
	}
	if req.EndDate != nil {
		end, err := time.Parse(saleDateLayout, *req.EndDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		goal.EndDate = end
	}
	if req.Status != nil {
		goal.Status = models.GoalStatus(*req.Status)
	}
	if req.Progress != nil {
		goal.Progress = *req.Progress
	}

	if err := s.db.Save(goal).Error; err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return goal, nil
}

func (s *GoalService) Delete(id uuid.UUID) error {
	goal, err := s.GetByID(id)
	if err != nil {
		return err
	}

	// Plans go with their goal.
	if err := s.db.Where("goal_id = ?", id).Delete(&models.Plan{}).Error; err != nil {
		return fmt.Errorf("failed to delete goal plans: %w", err)
	}
	if err := s.db.Delete(goal).Error; err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}

func (s *GoalService) AddPlan(goalID uuid.UUID, req *PlanCreateRequest) (*models.Plan, error) {
	if _, err := s.GetByID(goalID); err != nil {
		return nil, err
	}

	deadline, err := time.Parse(saleDateLayout, req.Deadline)
	if err != nil {
		return nil, ErrInvalidDate
	}

	plan := &models.Plan{
		GoalID:   goalID,
		TaskName: req.TaskName,
		Deadline: deadline,
		Priority: models.PlanPriorityMedium,
		Status:   models.PlanStatusPending,
	}
	if req.Priority != "" {
		plan.Priority = models.PlanPriority(req.Priority)
	}
	if req.Status != "" {
		plan.Status = models.PlanStatus(req.Status)
	}

	if err := s.db.Create(plan).Error; err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}
	return plan, nil
}

func (s *GoalService) UpdatePlan(planID uuid.UUID, req *PlanUpdateRequest) (*models.Plan, error) {
	var plan models.Plan
	if err := s.db.First(&plan, "id = ?", planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}

	if req.TaskName != nil {
		plan.TaskName = *req.TaskName
	}
	if req.Deadline != nil {
		deadline, err := time.Parse(saleDateLayout, *req.Deadline)
		if err != nil {
			return nil, ErrInvalidDate
		}
		plan.Deadline = deadline
	}
	if req.Priority != nil {
		plan.Priority = models.PlanPriority(*req.Priority)
	}
	if req.Status != nil {
		plan.Status = models.PlanStatus(*req.Status)
	}

	if err := s.db.Save(&plan).Error; err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}
	return &plan, nil
}

func (s *GoalService) DeletePlan(planID uuid.UUID) error {
	var plan models.Plan
	if err := s.db.First(&plan, "id = ?", planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlanNotFound
		}
		return fmt.Errorf("failed to load plan: %w", err)
	}
	if err := s.db.Delete(&plan).Error; err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	return nil
}
