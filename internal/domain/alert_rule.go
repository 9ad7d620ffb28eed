package domain

import "time"

// Rule conditions: comparison of a reading value against the threshold.
var RuleConditions = []string{">", "<", ">=", "<=", "="}

func ValidRuleCondition(c string) bool {
	for _, rc := range RuleConditions {
		if c == rc {
			return true
		}
	}
	return false
}

// AlertRule maps the alert_rules table: a static threshold check owned by a
// company. Rule evaluation against incoming readings is an external job and
// is not wired up here.
type AlertRule struct {
	RuleID    string    `db:"rule_id"`
	CompanyID string    `db:"company_id"`
	Name      string    `db:"name"`
	Parameter string    `db:"parameter"`
	Condition string    `db:"condition"`
	Threshold float64   `db:"threshold"`
	Level     string    `db:"level"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *AlertRule) ToJSON() map[string]any {
	return map[string]any{
		"id":        r.RuleID,
		"companyId": r.CompanyID,
		"name":      r.Name,
		"parameter": r.Parameter,
		"condition": r.Condition,
		"threshold": r.Threshold,
		"level":     r.Level,
		"isActive":  r.IsActive,
		"createdAt": r.CreatedAt,
	}
}
