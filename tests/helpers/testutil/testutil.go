// Package testutil provides in-memory fakes and mocks of the inventory,
// registry and alarm clients for package tests.
package testutil

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/GriffinCanCode/botsync/internal/clients/inventory"
	"github.com/GriffinCanCode/botsync/internal/clients/registry"
	"github.com/GriffinCanCode/botsync/internal/shared/types"
)

// Bot describes one bot of a fake inventory and its aliases as name -> id.
type Bot struct {
	ID      string
	Name    string
	Aliases [][2]string
}

// FakeInventory is an in-memory inventory.Client that paginates its
// contents PageSize items at a time.
type FakeInventory struct {
	mu sync.Mutex

	Bots     []Bot
	PageSize int
	// ListBotsErr fails the bot listing at the page with this token
	ListBotsErr      error
	ListBotsErrToken string
	// ListAliasesErr fails alias listing for the given bot ids
	ListAliasesErr map[string]error

	BotCalls   int
	AliasCalls map[string]int
}

var _ inventory.Client = (*FakeInventory)(nil)

// NewFakeInventory creates an inventory holding bots.
func NewFakeInventory(pageSize int, bots ...Bot) *FakeInventory {
	return &FakeInventory{
		Bots:           bots,
		PageSize:       pageSize,
		ListAliasesErr: map[string]error{},
		AliasCalls:     map[string]int{},
	}
}

// ListBots implements inventory.Client.
func (f *FakeInventory) ListBots(ctx context.Context, token string) (inventory.BotPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.BotCalls++
	if f.ListBotsErr != nil && token == f.ListBotsErrToken {
		return inventory.BotPage{}, f.ListBotsErr
	}

	records := make([]types.BotRecord, 0, len(f.Bots))
	for _, b := range f.Bots {
		records = append(records, types.BotRecord{BotID: b.ID, BotName: b.Name})
	}

	items, next := page(records, token, f.PageSize)
	return inventory.BotPage{Bots: items, NextToken: next}, nil
}

// ListAliases implements inventory.Client.
func (f *FakeInventory) ListAliases(ctx context.Context, botID, token string) (inventory.AliasPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.AliasCalls[botID]++
	if err := f.ListAliasesErr[botID]; err != nil {
		return inventory.AliasPage{}, err
	}

	var records []types.AliasRecord
	for _, b := range f.Bots {
		if b.ID != botID {
			continue
		}
		for _, a := range b.Aliases {
			records = append(records, types.AliasRecord{BotID: botID, AliasName: a[0], AliasID: a[1]})
		}
	}

	items, next := page(records, token, f.PageSize)
	return inventory.AliasPage{Aliases: items, NextToken: next}, nil
}

// FakeRegistry is an in-memory registry.Store. Scans return paths in
// insertion order, PageSize entries at a time.
type FakeRegistry struct {
	mu sync.Mutex

	order  []string
	values map[string]string

	PageSize int
	// ScanErr fails every prefix scan
	ScanErr error
	// GetErr and PutErr inject per-path failures
	GetErr map[string]error
	PutErr map[string]error

	Puts []types.RegistryEntry
}

var _ registry.Store = (*FakeRegistry)(nil)

// NewFakeRegistry creates a registry seeded with entries.
func NewFakeRegistry(pageSize int, entries ...types.RegistryEntry) *FakeRegistry {
	f := &FakeRegistry{
		values:   map[string]string{},
		PageSize: pageSize,
		GetErr:   map[string]error{},
		PutErr:   map[string]error{},
	}
	for _, e := range entries {
		f.set(e.Path, e.Value)
	}
	return f
}

// GetByPrefix implements registry.Store.
func (f *FakeRegistry) GetByPrefix(ctx context.Context, prefix, token string) (registry.EntryPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ScanErr != nil {
		return registry.EntryPage{}, f.ScanErr
	}

	var entries []types.RegistryEntry
	for _, p := range f.order {
		if strings.HasPrefix(p, prefix) {
			entries = append(entries, types.RegistryEntry{Path: p, Value: f.values[p]})
		}
	}

	items, next := page(entries, token, f.PageSize)
	return registry.EntryPage{Entries: items, NextToken: next}, nil
}

// Get implements registry.Store.
func (f *FakeRegistry) Get(ctx context.Context, path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.GetErr[path]; err != nil {
		return "", err
	}
	v, ok := f.values[path]
	if !ok {
		return "", registry.ErrNotFound
	}
	return v, nil
}

// Put implements registry.Store.
func (f *FakeRegistry) Put(ctx context.Context, path, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.PutErr[path]; err != nil {
		return err
	}
	f.set(path, value)
	f.Puts = append(f.Puts, types.RegistryEntry{Path: path, Value: value})
	return nil
}

// Snapshot returns a copy of the stored values.
func (f *FakeRegistry) Snapshot() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

func (f *FakeRegistry) set(path, value string) {
	if _, ok := f.values[path]; !ok {
		f.order = append(f.order, path)
	}
	f.values[path] = value
}

// RecordingAlarms is an in-memory alarm.Client keyed by alarm name.
type RecordingAlarms struct {
	mu sync.Mutex

	// Err injects failures per alarm name
	Err map[string]error

	Calls  []types.AlarmSpec
	Alarms map[string]types.AlarmSpec
}

// NewRecordingAlarms creates an empty alarm recorder.
func NewRecordingAlarms() *RecordingAlarms {
	return &RecordingAlarms{
		Err:    map[string]error{},
		Alarms: map[string]types.AlarmSpec{},
	}
}

// PutAlarm implements alarm.Client.
func (r *RecordingAlarms) PutAlarm(ctx context.Context, spec types.AlarmSpec) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Calls = append(r.Calls, spec)
	if err := r.Err[spec.AlarmName]; err != nil {
		return err
	}
	r.Alarms[spec.AlarmName] = spec
	return nil
}

// MockAlarmClient is a testify mock of alarm.Client.
type MockAlarmClient struct {
	mock.Mock
}

// PutAlarm mocks the PutAlarm method.
func (m *MockAlarmClient) PutAlarm(ctx context.Context, spec types.AlarmSpec) error {
	args := m.Called(ctx, spec)
	return args.Error(0)
}

// NewMockAlarmClient creates a mock alarm client that accepts every alarm.
func NewMockAlarmClient(t *testing.T) *MockAlarmClient {
	t.Helper()
	m := new(MockAlarmClient)

	m.On("PutAlarm", mock.Anything, mock.Anything).Return(nil).Maybe()

	return m
}

// Entry builds a registry entry.
func Entry(path, value string) types.RegistryEntry {
	return types.RegistryEntry{Path: path, Value: value}
}

// page slices items at the offset encoded in token.
func page[T any](items []T, token string, size int) ([]T, string) {
	start := 0
	if token != "" {
		start, _ = strconv.Atoi(token)
	}
	if start > len(items) {
		start = len(items)
	}
	if size <= 0 {
		return items[start:], ""
	}

	end := start + size
	if end >= len(items) {
		return items[start:], ""
	}
	return items[start:end], strconv.Itoa(end)
}
