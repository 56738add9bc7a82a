// Package store persists verification reports behind a driver-agnostic
// interface with SQLite and PostgreSQL backends.
package store

import (
	"context"

	"github.com/copperworks/labelcheck/internal/model"
)

// ReportFilter specifies criteria for listing reports.
type ReportFilter struct {
	Status        model.OverallStatus `json:"status,omitempty"`
	ApplicationID string              `json:"application_id,omitempty"`
	Limit         int                 `json:"limit,omitempty"`
	Offset        int                 `json:"offset,omitempty"`
}

// Store defines the persistence interface for verification reports.
type Store interface {
	SaveReport(ctx context.Context, result model.ApplicationResult) (*model.Report, error)
	GetReport(ctx context.Context, id string) (*model.Report, error)
	ListReports(ctx context.Context, filter ReportFilter) ([]model.Report, error)
	DeleteReport(ctx context.Context, id string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
