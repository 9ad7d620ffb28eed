package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"stationhub/internal/domain"

	"github.com/google/uuid"
)

type PostgresAlertRulesRepo struct {
	db *sql.DB
}

func NewPostgresAlertRulesRepo(db *sql.DB) *PostgresAlertRulesRepo {
	return &PostgresAlertRulesRepo{db: db}
}

const ruleColumns = `rule_id::text, company_id::text, name, parameter, condition, threshold, level, is_active, created_at, updated_at`

func scanRule(row interface{ Scan(...any) error }) (*domain.AlertRule, error) {
	var r domain.AlertRule
	err := row.Scan(&r.RuleID, &r.CompanyID, &r.Name, &r.Parameter, &r.Condition,
		&r.Threshold, &r.Level, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *PostgresAlertRulesRepo) ListRules(ctx context.Context, companyID string) ([]*domain.AlertRule, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+ruleColumns+` FROM alert_rules WHERE company_id = $1 ORDER BY updated_at DESC`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.AlertRule{}
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	return out, rows.Err()
}

func (r *PostgresAlertRulesRepo) CreateRule(ctx context.Context, rule *domain.AlertRule) (string, error) {
	ruleID := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO alert_rules (rule_id, company_id, name, parameter, condition, threshold, level, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		ruleID, rule.CompanyID, rule.Name, rule.Parameter, rule.Condition,
		rule.Threshold, rule.Level, rule.IsActive)
	if err != nil {
		return "", err
	}
	return ruleID, nil
}

func (r *PostgresAlertRulesRepo) UpdateRule(ctx context.Context, companyID, ruleID string, upd AlertRuleUpdate) (*domain.AlertRule, error) {
	set := []string{"updated_at = now()"}
	args := []any{}
	argN := 1

	if upd.Name != nil {
		set = append(set, fmt.Sprintf("name = $%d", argN))
		args = append(args, *upd.Name)
		argN++
	}
	if upd.Parameter != nil {
		set = append(set, fmt.Sprintf("parameter = $%d", argN))
		args = append(args, *upd.Parameter)
		argN++
	}
	if upd.Condition != nil {
		set = append(set, fmt.Sprintf("condition = $%d", argN))
		args = append(args, *upd.Condition)
		argN++
	}
	if upd.Threshold != nil {
		set = append(set, fmt.Sprintf("threshold = $%d", argN))
		args = append(args, *upd.Threshold)
		argN++
	}
	if upd.Level != nil {
		set = append(set, fmt.Sprintf("level = $%d", argN))
		args = append(args, *upd.Level)
		argN++
	}
	if upd.IsActive != nil {
		set = append(set, fmt.Sprintf("is_active = $%d", argN))
		args = append(args, *upd.IsActive)
		argN++
	}

	args = append(args, ruleID, companyID)
	q := fmt.Sprintf(
		`UPDATE alert_rules SET %s WHERE rule_id = $%d AND company_id = $%d RETURNING `+ruleColumns,
		strings.Join(set, ", "), argN, argN+1)

	rule, err := scanRule(r.db.QueryRowContext(ctx, q, args...))
	if err == sql.ErrNoRows {
		return nil, domain.NotFound("alert rule")
	}
	return rule, err
}
