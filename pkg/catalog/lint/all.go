package lint

// RegisterAllRules registers every catalog rule.
func RegisterAllRules(registry *RuleRegistry) {
	registry.Register(NewCAT001())
	registry.Register(NewCAT002())
	registry.Register(NewCAT003())
	registry.Register(NewCAT004())
	registry.Register(NewCAT005())
	registry.Register(NewCAT006())
	registry.Register(NewCAT007())
	registry.Register(NewCAT008())
	registry.Register(NewCAT009())
}

// NewDefaultRegistry creates a registry with all rules registered.
func NewDefaultRegistry() *RuleRegistry {
	registry := NewRuleRegistry()
	RegisterAllRules(registry)
	return registry
}
