package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/botsync/internal/infrastructure/config"
	"github.com/GriffinCanCode/botsync/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/botsync/internal/jobs"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, name string) (jobs.Status, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(jobs.Status), args.Error(1)
}

func (m *mockRunner) Names() []string {
	return []string{jobs.Discover, jobs.Sync, jobs.Provision}
}

func (m *mockRunner) Last() []jobs.Run {
	args := m.Called()
	return args.Get(0).([]jobs.Run)
}

func newTestServer(t *testing.T, runner JobRunner) (*Server, *monitoring.Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	metrics := monitoring.NewMetricsWith(prometheus.NewRegistry())
	return NewServer(config.Default().Server, runner, nil, metrics, nil, true), metrics
}

func do(s *Server, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, new(mockRunner))

	rec := do(s, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestRunJob(t *testing.T) {
	runner := new(mockRunner)
	runner.On("Run", mock.Anything, jobs.Provision).Return(jobs.Status{
		StatusCode: http.StatusOK,
		Body:       jobs.Body{Message: "CloudWatch alarms created/updated."},
	}, nil)

	s, _ := newTestServer(t, runner)

	rec := do(s, http.MethodPost, "/jobs/provision")
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, float64(200), got["statusCode"])
	assert.Equal(t, "CloudWatch alarms created/updated.", got["body"].(map[string]any)["message"])
	runner.AssertExpectations(t)
}

func TestRunJobErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		want string
	}{
		{"unknown", fmt.Errorf("%w: %q", jobs.ErrUnknownJob, "reindex"), http.StatusNotFound, "unknown job"},
		{"busy", jobs.ErrBusy, http.StatusConflict, "already running"},
		{"fatal", errors.New("scan registry: throttled"), http.StatusInternalServerError, "scan registry: throttled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := new(mockRunner)
			runner.On("Run", mock.Anything, "sync").Return(jobs.Status{}, tt.err)

			s, _ := newTestServer(t, runner)

			rec := do(s, http.MethodPost, "/jobs/sync")
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestListJobs(t *testing.T) {
	runner := new(mockRunner)
	runner.On("Last").Return([]jobs.Run{{Job: jobs.Sync, RunID: "run_01"}})

	s, _ := newTestServer(t, runner)

	rec := do(s, http.MethodGet, "/jobs")
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Jobs []string   `json:"jobs"`
		Last []jobs.Run `json:"last"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"discover", "sync", "provision"}, got.Jobs)
	require.Len(t, got.Last, 1)
	assert.Equal(t, "sync", got.Last[0].Job)
}

func TestMetricsEndpoint(t *testing.T) {
	s, metrics := newTestServer(t, new(mockRunner))
	metrics.RecordAlarmUpsert(nil)

	do(s, http.MethodGet, "/health")
	rec := do(s, http.MethodGet, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "botsync_alarm_upserts_total")
	assert.Contains(t, rec.Body.String(), `path="/health"`)
}

func TestMethodNotMatched(t *testing.T) {
	s, _ := newTestServer(t, new(mockRunner))

	rec := do(s, http.MethodGet, "/jobs/sync")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
