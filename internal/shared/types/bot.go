package types

// BotRecord is a bot as reported by the inventory service.
type BotRecord struct {
	BotID   string `json:"botId"`
	BotName string `json:"botName"`
}

// AliasRecord is one alias of a bot.
type AliasRecord struct {
	BotID     string `json:"botId"`
	AliasID   string `json:"aliasId"`
	AliasName string `json:"aliasName"`
}

// Target is a bot that has a production alias, as produced by discovery
type Target struct {
	BotName string `json:"BotName" yaml:"BotName"`
	BotID   string `json:"BotId" yaml:"BotId"`
	AliasID string `json:"BotAliasId" yaml:"BotAliasId"`
}

// RegistryEntry is a single path/value pair in the registry
type RegistryEntry struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}
