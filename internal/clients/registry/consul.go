package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/botsync/internal/infrastructure/config"
	"github.com/GriffinCanCode/botsync/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/botsync/internal/shared/types"
)

// ConsulServiceName labels Consul calls in metrics and breaker state.
const ConsulServiceName = "consul"

// kvPair is the Consul KV read representation; Value arrives base64 encoded.
type kvPair struct {
	Key         string `json:"Key"`
	Value       []byte `json:"Value"`
	ModifyIndex uint64 `json:"ModifyIndex"`
}

// ConsulStore implements Store over the Consul KV HTTP API. Registry paths
// map to keys without the leading slash.
type ConsulStore struct {
	resty  *resty.Client
	guard  *resilience.Guard
	logger *zap.Logger
}

// NewConsulStore creates a Consul-backed store. Transport errors and 5xx
// responses are retried up to cfg.ConsulRetry times.
func NewConsulStore(cfg config.RegistryConfig, guard *resilience.Guard, logger *zap.Logger) *ConsulStore {
	if logger == nil {
		logger = zap.NewNop()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.ConsulRetry
	retryClient.RetryWaitMin = 100 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.Logger = nil

	client := resty.NewWithClient(retryClient.StandardClient()).
		SetBaseURL(strings.TrimRight(cfg.ConsulAddr, "/")).
		SetHeader("User-Agent", "botsync/1.0").
		SetJSONUnmarshaler(sonic.ConfigStd.Unmarshal)
	if cfg.ConsulToken != "" {
		client.SetHeader("X-Consul-Token", cfg.ConsulToken)
	}

	return &ConsulStore{resty: client, guard: guard, logger: logger}
}

// GetByPrefix returns every key under prefix. Consul does not paginate
// recursive reads, so the result is always a single page.
func (s *ConsulStore) GetByPrefix(ctx context.Context, prefix, token string) (EntryPage, error) {
	if token != "" {
		return EntryPage{}, nil
	}

	var pairs []kvPair
	err := s.guard.Do(ctx, "KVList", func(ctx context.Context) error {
		resp, err := s.resty.R().
			SetContext(ctx).
			SetQueryParam("recurse", "true").
			SetResult(&pairs).
			Get(kvPath(prefix))
		if err != nil {
			return err
		}
		switch resp.StatusCode() {
		case http.StatusOK:
			return nil
		case http.StatusNotFound:
			pairs = nil
			return nil
		default:
			return statusError(resp)
		}
	})
	if err != nil {
		return EntryPage{}, fmt.Errorf("scan %s: %w", prefix, err)
	}

	page := EntryPage{Entries: make([]types.RegistryEntry, 0, len(pairs))}
	for _, p := range pairs {
		// Folder placeholders end in a slash and carry no value
		if strings.HasSuffix(p.Key, "/") {
			continue
		}
		page.Entries = append(page.Entries, types.RegistryEntry{
			Path:  "/" + p.Key,
			Value: string(p.Value),
		})
	}
	return page, nil
}

// Get returns the value at path.
func (s *ConsulStore) Get(ctx context.Context, path string) (string, error) {
	var pairs []kvPair
	err := s.guard.DoEntity(ctx, "KVGet", func(ctx context.Context) error {
		resp, err := s.resty.R().
			SetContext(ctx).
			SetResult(&pairs).
			Get(kvPath(path))
		if err != nil {
			return err
		}
		switch resp.StatusCode() {
		case http.StatusOK:
			if len(pairs) == 0 {
				return ErrNotFound
			}
			return nil
		case http.StatusNotFound:
			return ErrNotFound
		default:
			return statusError(resp)
		}
	})
	if err != nil {
		return "", fmt.Errorf("get %s: %w", path, err)
	}
	return string(pairs[0].Value), nil
}

// Put overwrites the value at path.
func (s *ConsulStore) Put(ctx context.Context, path, value string) error {
	err := s.guard.DoEntity(ctx, "KVPut", func(ctx context.Context) error {
		resp, err := s.resty.R().
			SetContext(ctx).
			SetBody([]byte(value)).
			Put(kvPath(path))
		if err != nil {
			return err
		}
		if resp.StatusCode() != http.StatusOK {
			return statusError(resp)
		}
		if strings.TrimSpace(resp.String()) != "true" {
			return fmt.Errorf("consul rejected write: %s", resp.String())
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", path, err)
	}

	s.logger.Debug("Key written", zap.String("path", path))
	return nil
}

// kvPath maps a registry path to the KV endpoint, escaping each segment.
func kvPath(path string) string {
	trailing := strings.HasSuffix(path, "/")
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}

	p := "/v1/kv/" + strings.Join(segments, "/")
	if trailing && !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// responseError is a non-success Consul reply. The status code lets the
// guard tell a rejected key from an unhealthy agent.
type responseError struct {
	code   int
	status string
	body   string
}

func (e *responseError) Error() string {
	return fmt.Sprintf("consul returned %s: %s", e.status, e.body)
}

// HTTPStatusCode returns the response status code.
func (e *responseError) HTTPStatusCode() int {
	return e.code
}

func statusError(resp *resty.Response) error {
	return &responseError{
		code:   resp.StatusCode(),
		status: resp.Status(),
		body:   strings.TrimSpace(resp.String()),
	}
}
