// Package inventory lists Lex V2 bots and their aliases.
package inventory

import (
	"context"
	"iter"

	"github.com/GriffinCanCode/botsync/internal/shared/paging"
	"github.com/GriffinCanCode/botsync/internal/shared/types"
)

// BotPage is one page of a bot listing.
type BotPage struct {
	Bots      []types.BotRecord
	NextToken string
}

// AliasPage is one page of an alias listing for a single bot.
type AliasPage struct {
	Aliases   []types.AliasRecord
	NextToken string
}

// Client returns one page per call; an empty NextToken ends the listing.
type Client interface {
	ListBots(ctx context.Context, token string) (BotPage, error)
	ListAliases(ctx context.Context, botID, token string) (AliasPage, error)
}

// Bots drains every page of the bot listing. A listing error is yielded
// once and ends the sequence.
func Bots(ctx context.Context, c Client) iter.Seq2[types.BotRecord, error] {
	return paging.Drain(func(token string) ([]types.BotRecord, string, error) {
		page, err := c.ListBots(ctx, token)
		return page.Bots, page.NextToken, err
	})
}

// Aliases drains every page of the alias listing for botID.
func Aliases(ctx context.Context, c Client, botID string) iter.Seq2[types.AliasRecord, error] {
	return paging.Drain(func(token string) ([]types.AliasRecord, string, error) {
		page, err := c.ListAliases(ctx, botID, token)
		return page.Aliases, page.NextToken, err
	})
}
