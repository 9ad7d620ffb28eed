package repository

import (
	"context"

	"stationhub/internal/domain"
)

// AlertsRepository accesses the alerts table. Alerts scope to a company
// through their referenced station.
type AlertsRepository interface {
	ListAlerts(ctx context.Context, companyID string, limit int) ([]*domain.Alert, error)
	GetAlert(ctx context.Context, companyID, alertID string) (*domain.Alert, error)
	CreateAlert(ctx context.Context, a *domain.Alert) (string, error)

	// ResolveAlert marks the alert resolved by userID. It is a conditional
	// write on is_resolved = FALSE; resolving an already-resolved alert
	// returns a conflict, an out-of-tenant alert returns not-found.
	ResolveAlert(ctx context.Context, companyID, alertID, userID string) (*domain.Alert, error)
}
