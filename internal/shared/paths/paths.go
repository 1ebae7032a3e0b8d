// Package paths provides the registry key scheme shared by the writer
// (registry sync) and the reader (provisioning).
package paths

import (
	"fmt"
	"strings"
)

// Root is the registry namespace that holds every bot entry.
const Root = "/lex/"

// Field names a registry value stored under a bot.
type Field string

// Registry fields
const (
	// BotID holds the bot's canonical identifier
	BotID Field = "BotId"

	// BotAliasID holds the identifier of the bot's production alias
	BotAliasID Field = "BotAliasId"
)

// Fields returns the fields every resolved bot carries, in write order.
func Fields() []Field {
	return []Field{BotID, BotAliasID}
}

// Bot returns registry paths for a specific bot
type Bot struct {
	Name string
}

// BotIDPath returns the path holding the bot id
func (b Bot) BotIDPath() string {
	return BotPath(b.Name, BotID)
}

// BotAliasIDPath returns the path holding the production alias id
func (b Bot) BotAliasIDPath() string {
	return BotPath(b.Name, BotAliasID)
}

// BotPaths returns paths for a specific bot
func BotPaths(botName string) Bot {
	return Bot{Name: botName}
}

// BotPath encodes botName and field as /lex/{botName}/{field}.
func BotPath(botName string, field Field) string {
	return Root + botName + "/" + string(field)
}

// ParseBotName extracts the bot name from a registry path.
// It matches "/lex/" followed by one non-empty segment, optionally followed
// by more segments, and reports false for anything else.
func ParseBotName(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, Root)
	if !ok {
		return "", false
	}
	name, _, _ := strings.Cut(rest, "/")
	if name == "" {
		return "", false
	}
	return name, true
}

// ValidateBotName checks if a bot name can be encoded into a registry path
func ValidateBotName(botName string) error {
	if botName == "" {
		return fmt.Errorf("bot name cannot be empty")
	}
	if strings.Contains(botName, "/") {
		return fmt.Errorf("bot name %q contains a path separator", botName)
	}
	return nil
}
