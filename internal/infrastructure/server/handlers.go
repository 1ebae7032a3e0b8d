package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/botsync/internal/jobs"
)

// health handles the liveness check
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

// listJobs lists job names and the last run of each
func (s *Server) listJobs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"jobs": s.runner.Names(),
		"last": s.runner.Last(),
	})
}

// runJob runs a job and returns its status record. The job keeps running
// if the client disconnects.
func (s *Server) runJob(c *gin.Context) {
	name := c.Param("name")
	ctx := context.WithoutCancel(c.Request.Context())

	status, err := s.runner.Run(ctx, name)
	switch {
	case err == nil:
		c.JSON(status.StatusCode, status)
	case errors.Is(err, jobs.ErrUnknownJob):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, jobs.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		s.logger.Error("Job failed", zap.String("job", name), zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, jobs.Status{
			StatusCode: http.StatusInternalServerError,
			Body:       gin.H{"error": err.Error()},
		})
	}
}
