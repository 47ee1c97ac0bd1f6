package store

import "bujichang/spending/internal/models"

// MockRuleStore is an in-memory rule source for tests.
type MockRuleStore struct {
	Rules     []models.MerchantRule
	LoadError error
}

// LoadRules returns a copy of the mock rules.
func (m *MockRuleStore) LoadRules() ([]models.MerchantRule, error) {
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	if m.Rules == nil {
		return nil, nil
	}
	out := make([]models.MerchantRule, len(m.Rules))
	copy(out, m.Rules)
	return out, nil
}
