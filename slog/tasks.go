package slog

import (
	"context"
	"log/slog"

	"github.com/docbase/docbase"
)

// Ensure LoggingTaskService implements docbase.TaskService.
var _ docbase.TaskService = (*LoggingTaskService)(nil)

// LoggingTaskService wraps a TaskService with lifecycle logging.
type LoggingTaskService struct {
	next   docbase.TaskService
	logger *slog.Logger
}

// NewLoggingTaskService creates a new LoggingTaskService.
func NewLoggingTaskService(next docbase.TaskService, logger *slog.Logger) *LoggingTaskService {
	return &LoggingTaskService{next: next, logger: logger}
}

// Start delegates to the wrapped service and logs the task start.
func (s *LoggingTaskService) Start(ctx context.Context, profile string) (string, error) {
	taskID, err := s.next.Start(ctx, profile)
	if err != nil {
		s.logger.Error("task start",
			"profile", profile,
			"err", err,
		)
		return "", err
	}
	s.logger.Info("task start",
		"profile", profile,
		"task", taskID,
	)
	return taskID, nil
}

// Status delegates to the wrapped service.
func (s *LoggingTaskService) Status(taskID string) (*docbase.TaskSnapshot, error) {
	return s.next.Status(taskID)
}

// Cancel delegates to the wrapped service and logs the outcome.
func (s *LoggingTaskService) Cancel(taskID string) bool {
	ok := s.next.Cancel(taskID)
	s.logger.Info("task cancel",
		"task", taskID,
		"accepted", ok,
	)
	return ok
}

// Active delegates to the wrapped service.
func (s *LoggingTaskService) Active(profile string) (string, bool) {
	return s.next.Active(profile)
}
