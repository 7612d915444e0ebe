package mock

import (
	"context"

	"github.com/docbase/docbase"
)

var _ docbase.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of docbase.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string) ([]docbase.SearchResult, error)
}

func (s *Searcher) Search(ctx context.Context, query string) ([]docbase.SearchResult, error) {
	return s.SearchFn(ctx, query)
}

var _ docbase.Answerer = (*Answerer)(nil)

// Answerer is a mock implementation of docbase.Answerer.
type Answerer struct {
	AnswerFn func(ctx context.Context, question string, passages []docbase.SearchResult) (string, error)
}

func (a *Answerer) Answer(ctx context.Context, question string, passages []docbase.SearchResult) (string, error) {
	return a.AnswerFn(ctx, question, passages)
}

var _ docbase.TaskService = (*TaskService)(nil)

// TaskService is a mock implementation of docbase.TaskService.
type TaskService struct {
	StartFn  func(ctx context.Context, profile string) (string, error)
	StatusFn func(taskID string) (*docbase.TaskSnapshot, error)
	CancelFn func(taskID string) bool
	ActiveFn func(profile string) (string, bool)
}

func (s *TaskService) Start(ctx context.Context, profile string) (string, error) {
	return s.StartFn(ctx, profile)
}

func (s *TaskService) Status(taskID string) (*docbase.TaskSnapshot, error) {
	return s.StatusFn(taskID)
}

func (s *TaskService) Cancel(taskID string) bool {
	return s.CancelFn(taskID)
}

func (s *TaskService) Active(profile string) (string, bool) {
	return s.ActiveFn(profile)
}
