package service

import (
	"context"

	"stationhub/internal/domain"
	"stationhub/internal/repository"

	"go.uber.org/zap"
)

// AlertRuleService manages static threshold rules. Evaluating rules against
// incoming readings is an external job, not part of this service.
type AlertRuleService interface {
	ListRules(ctx context.Context, actor *domain.User) ([]*domain.AlertRule, error)
	CreateRule(ctx context.Context, actor *domain.User, req AlertRuleCreateRequest) (*domain.AlertRule, error)
	UpdateRule(ctx context.Context, actor *domain.User, ruleID string, req AlertRuleUpdateRequest) (*domain.AlertRule, error)
}

type AlertRuleCreateRequest struct {
	Name      string  `json:"name"`
	Parameter string  `json:"parameter"`
	Condition string  `json:"condition"`
	Threshold float64 `json:"threshold"`
	Level     string  `json:"level"`
}

type AlertRuleUpdateRequest struct {
	Name      *string  `json:"name"`
	Parameter *string  `json:"parameter"`
	Condition *string  `json:"condition"`
	Threshold *float64 `json:"threshold"`
	Level     *string  `json:"level"`
	IsActive  *bool    `json:"isActive"`
}

type alertRuleService struct {
	rules  repository.AlertRulesRepository
	logger *zap.Logger
}

func NewAlertRuleService(rules repository.AlertRulesRepository, logger *zap.Logger) AlertRuleService {
	return &alertRuleService{rules: rules, logger: logger}
}

func (s *alertRuleService) ListRules(ctx context.Context, actor *domain.User) ([]*domain.AlertRule, error) {
	return s.rules.ListRules(ctx, actor.CompanyID.String)
}

func (s *alertRuleService) CreateRule(ctx context.Context, actor *domain.User, req AlertRuleCreateRequest) (*domain.AlertRule, error) {
	if err := domain.Authorize(actor, domain.PermAlertRuleWrite); err != nil {
		return nil, err
	}

	v := &domain.ValidationError{}
	if req.Name == "" {
		v.Add("name", "is required")
	}
	if req.Parameter == "" {
		v.Add("parameter", "is required")
	}
	if !domain.ValidRuleCondition(req.Condition) {
		v.Add("condition", "must be one of >, <, >=, <=, =")
	}
	if req.Level == "" {
		req.Level = domain.AlertWarning
	} else if !domain.ValidAlertLevel(req.Level) {
		v.Add("level", "must be one of info, warning, critical")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	rule := &domain.AlertRule{
		CompanyID: actor.CompanyID.String,
		Name:      req.Name,
		Parameter: req.Parameter,
		Condition: req.Condition,
		Threshold: req.Threshold,
		Level:     req.Level,
		IsActive:  true,
	}
	ruleID, err := s.rules.CreateRule(ctx, rule)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Alert rule created",
		zap.String("rule_id", ruleID),
		zap.String("company_id", actor.CompanyID.String),
		zap.String("parameter", req.Parameter))

	rule.RuleID = ruleID
	return rule, nil
}

func (s *alertRuleService) UpdateRule(ctx context.Context, actor *domain.User, ruleID string, req AlertRuleUpdateRequest) (*domain.AlertRule, error) {
	if err := domain.Authorize(actor, domain.PermAlertRuleWrite); err != nil {
		return nil, err
	}

	v := &domain.ValidationError{}
	if req.Name != nil && *req.Name == "" {
		v.Add("name", "must not be empty")
	}
	if req.Condition != nil && !domain.ValidRuleCondition(*req.Condition) {
		v.Add("condition", "must be one of >, <, >=, <=, =")
	}
	if req.Level != nil && !domain.ValidAlertLevel(*req.Level) {
		v.Add("level", "must be one of info, warning, critical")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	return s.rules.UpdateRule(ctx, actor.CompanyID.String, ruleID, repository.AlertRuleUpdate{
		Name:      req.Name,
		Parameter: req.Parameter,
		Condition: req.Condition,
		Threshold: req.Threshold,
		Level:     req.Level,
		IsActive:  req.IsActive,
	})
}
