package models

// MerchantRule maps any of its keywords, found as a substring of a cleaned
// merchant name, to a tag.
type MerchantRule struct {
	Tag      Tag      `yaml:"tag"`
	Keywords []string `yaml:"keywords"`
}

// RulesConfig represents the structure of the rules YAML file.
type RulesConfig struct {
	MerchantRules []MerchantRule `yaml:"merchant_rules"`
}
