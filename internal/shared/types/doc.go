// Package types provides the data structures shared by the botsync jobs.
//
// Core Types:
//   - BotRecord, AliasRecord: inventory records (read-only to botsync)
//   - Target: a bot with a production alias (botName, botId, aliasId)
//   - RegistryEntry: a path/value pair in the registry
//   - AlarmSpec, Dimension: the alarm derived for a resolved bot
//
// Example Usage:
//
//	target := types.Target{BotName: "Support", BotID: "B1", AliasID: "A1"}
package types
