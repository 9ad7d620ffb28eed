package repository

import (
	"context"

	"stationhub/internal/domain"
)

// AlertRuleUpdate lists the mutable rule fields; nil means "leave unchanged".
type AlertRuleUpdate struct {
	Name      *string
	Parameter *string
	Condition *string
	Threshold *float64
	Level     *string
	IsActive  *bool
}

// AlertRulesRepository accesses the alert_rules table, always scoped to the
// owning company.
type AlertRulesRepository interface {
	ListRules(ctx context.Context, companyID string) ([]*domain.AlertRule, error)
	CreateRule(ctx context.Context, r *domain.AlertRule) (string, error)
	UpdateRule(ctx context.Context, companyID, ruleID string, upd AlertRuleUpdate) (*domain.AlertRule, error)
}
