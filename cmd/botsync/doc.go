// Package main is the entry point for botsync.
//
// botsync keeps Lex V2 bots in step with a registry of their identifiers
// and with one CloudWatch alarm per bot.
//
// Pipeline:
//
//	Lex inventory → discover → sync → registry (/lex/{bot}/BotId, /lex/{bot}/BotAliasId)
//	registry → provision → CloudWatch alarm "{env} - RuntimeSystemErrors-{bot}"
//
// Commands:
//   - discover: list bots with a PROD alias
//   - sync: write discovered ids to the registry
//   - provision: upsert one alarm per resolved bot
//   - serve: admin HTTP API running the same jobs on demand
//
// Each job prints a status record {"statusCode":200,"body":...} to stdout
// and exits 1 when it aborts. Logs go to stderr.
//
// Configuration:
//   - Environment variables (12-factor), see internal/infrastructure/config
//   - --output json|yaml selects the status record encoding
//
// Usage:
//
//	REGISTRY_BACKEND=ssm ALARM_ENV_PREFIX=prod botsync sync
//	botsync provision --output yaml
//	botsync serve
//
// Signals:
//   - SIGINT, SIGTERM: cancel the running job or shut the server down
package main
