// Package paths defines the registry naming convention.
//
// Every bot with a production alias owns two registry entries:
//
//	/lex/
//	  └── {botName}/
//	      ├── BotId       (canonical bot identifier)
//	      └── BotAliasId  (production alias identifier)
//
// BotPath and ParseBotName form the encode/decode pair used symmetrically by
// the registry writer and the alarm provisioner, so no call site formats or
// splits registry paths by hand.
//
// # Usage
//
//	p := paths.BotPath("Support", paths.BotID) // /lex/Support/BotId
//	name, ok := paths.ParseBotName(p)          // "Support", true
package paths
