package inventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lexmodelsv2"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/botsync/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/botsync/internal/shared/types"
)

// ServiceName labels Lex calls in metrics and breaker state.
const ServiceName = "lex"

// LexAPI is the subset of the Lex V2 models API used here.
type LexAPI interface {
	ListBots(ctx context.Context, in *lexmodelsv2.ListBotsInput, optFns ...func(*lexmodelsv2.Options)) (*lexmodelsv2.ListBotsOutput, error)
	ListBotAliases(ctx context.Context, in *lexmodelsv2.ListBotAliasesInput, optFns ...func(*lexmodelsv2.Options)) (*lexmodelsv2.ListBotAliasesOutput, error)
}

// LexClient implements Client over the Lex V2 models API.
type LexClient struct {
	api      LexAPI
	guard    *resilience.Guard
	pageSize int32
	logger   *zap.Logger
}

// NewLexClient creates a Lex inventory client. A zero pageSize uses the
// service default.
func NewLexClient(api LexAPI, guard *resilience.Guard, pageSize int32, logger *zap.Logger) *LexClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LexClient{
		api:      api,
		guard:    guard,
		pageSize: pageSize,
		logger:   logger,
	}
}

// ListBots returns one page of bots.
func (c *LexClient) ListBots(ctx context.Context, token string) (BotPage, error) {
	in := &lexmodelsv2.ListBotsInput{NextToken: optional(token)}
	if c.pageSize > 0 {
		in.MaxResults = aws.Int32(c.pageSize)
	}

	var out *lexmodelsv2.ListBotsOutput
	err := c.guard.Do(ctx, "ListBots", func(ctx context.Context) error {
		var err error
		out, err = c.api.ListBots(ctx, in)
		return err
	})
	if err != nil {
		return BotPage{}, fmt.Errorf("list bots: %w", err)
	}

	page := BotPage{
		Bots:      make([]types.BotRecord, 0, len(out.BotSummaries)),
		NextToken: aws.ToString(out.NextToken),
	}
	for _, s := range out.BotSummaries {
		page.Bots = append(page.Bots, types.BotRecord{
			BotID:   aws.ToString(s.BotId),
			BotName: aws.ToString(s.BotName),
		})
	}

	c.logger.Debug("Listed bots",
		zap.Int("count", len(page.Bots)),
		zap.Bool("more", page.NextToken != ""),
	)
	return page, nil
}

// ListAliases returns one page of aliases for botID.
func (c *LexClient) ListAliases(ctx context.Context, botID, token string) (AliasPage, error) {
	in := &lexmodelsv2.ListBotAliasesInput{
		BotId:     aws.String(botID),
		NextToken: optional(token),
	}
	if c.pageSize > 0 {
		in.MaxResults = aws.Int32(c.pageSize)
	}

	var out *lexmodelsv2.ListBotAliasesOutput
	err := c.guard.Do(ctx, "ListBotAliases", func(ctx context.Context) error {
		var err error
		out, err = c.api.ListBotAliases(ctx, in)
		return err
	})
	if err != nil {
		return AliasPage{}, fmt.Errorf("list aliases for bot %s: %w", botID, err)
	}

	page := AliasPage{
		Aliases:   make([]types.AliasRecord, 0, len(out.BotAliasSummaries)),
		NextToken: aws.ToString(out.NextToken),
	}
	for _, s := range out.BotAliasSummaries {
		page.Aliases = append(page.Aliases, types.AliasRecord{
			BotID:     botID,
			AliasID:   aws.ToString(s.BotAliasId),
			AliasName: aws.ToString(s.BotAliasName),
		})
	}
	return page, nil
}

func optional(token string) *string {
	if token == "" {
		return nil
	}
	return aws.String(token)
}
