// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/project-ledger/backend/internal/domain/entity"
)

// ProjectModel represents the projects table in the database.
type ProjectModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name           string          `gorm:"type:varchar(255);not null"`
	Partner        string          `gorm:"type:varchar(255);not null"`
	Status         string          `gorm:"type:varchar(20);not null;index"`
	Value          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TaxRate        int             `gorm:"not null;default:0"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	StartDate      time.Time       `gorm:"type:date;not null"`
	EndDate        time.Time       `gorm:"type:date;not null;index"`
	ContractNumber string          `gorm:"type:varchar(100)"`
	Description    string          `gorm:"type:text"`
	CreatedBy      uuid.UUID       `gorm:"type:uuid"`
	CreatedByEmail string          `gorm:"type:varchar(255)"`
	UpdatedBy      uuid.UUID       `gorm:"type:uuid"`
	UpdatedByEmail string          `gorm:"type:varchar(255)"`
	CreatedAt      time.Time       `gorm:"not null;index"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ProjectModel.
func (ProjectModel) TableName() string {
	return "projects"
}

// ToEntity converts a ProjectModel to a domain Project entity.
func (m *ProjectModel) ToEntity() *entity.Project {
	return &entity.Project{
		ID:             m.ID,
		Name:           m.Name,
		Partner:        m.Partner,
		Status:         entity.ProjectStatus(m.Status),
		Value:          m.Value,
		TaxRate:        m.TaxRate,
		PaidAmount:     m.PaidAmount,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		ContractNumber: m.ContractNumber,
		Description:    m.Description,
		Audit: entity.Audit{
			CreatedBy:      m.CreatedBy,
			CreatedByEmail: m.CreatedByEmail,
			UpdatedBy:      m.UpdatedBy,
			UpdatedByEmail: m.UpdatedByEmail,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ProjectFromEntity creates a ProjectModel from a domain Project entity.
func ProjectFromEntity(project *entity.Project) *ProjectModel {
	return &ProjectModel{
		ID:             project.ID,
		Name:           project.Name,
		Partner:        project.Partner,
		Status:         string(project.Status),
		Value:          project.Value,
		TaxRate:        project.TaxRate,
		PaidAmount:     project.PaidAmount,
		StartDate:      project.StartDate,
		EndDate:        project.EndDate,
		ContractNumber: project.ContractNumber,
		Description:    project.Description,
		CreatedBy:      project.Audit.CreatedBy,
		CreatedByEmail: project.Audit.CreatedByEmail,
		UpdatedBy:      project.Audit.UpdatedBy,
		UpdatedByEmail: project.Audit.UpdatedByEmail,
		CreatedAt:      project.CreatedAt,
		UpdatedAt:      project.UpdatedAt,
	}
}
