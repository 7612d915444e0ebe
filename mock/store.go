package mock

import (
	"context"

	"github.com/docbase/docbase"
)

var _ docbase.MetadataStore = (*MetadataStore)(nil)

// MetadataStore is a mock implementation of docbase.MetadataStore.
type MetadataStore struct {
	MetaFn       func(ctx context.Context, origin string) (*docbase.DocumentMeta, error)
	PutMetaFn    func(ctx context.Context, meta *docbase.DocumentMeta) error
	OriginsFn    func(ctx context.Context) ([]string, error)
	DeleteMetaFn func(ctx context.Context, origin string) error
}

func (s *MetadataStore) Meta(ctx context.Context, origin string) (*docbase.DocumentMeta, error) {
	return s.MetaFn(ctx, origin)
}

func (s *MetadataStore) PutMeta(ctx context.Context, meta *docbase.DocumentMeta) error {
	return s.PutMetaFn(ctx, meta)
}

func (s *MetadataStore) Origins(ctx context.Context) ([]string, error) {
	return s.OriginsFn(ctx)
}

func (s *MetadataStore) DeleteMeta(ctx context.Context, origin string) error {
	return s.DeleteMetaFn(ctx, origin)
}

var _ docbase.ChangeLog = (*ChangeLog)(nil)

// ChangeLog is a mock implementation of docbase.ChangeLog.
type ChangeLog struct {
	AppendFn        func(ctx context.Context, record *docbase.ChangeRecord) error
	RecentFn        func(ctx context.Context, limit int) ([]*docbase.ChangeRecord, error)
	MarkProcessedFn func(ctx context.Context, id int64) error
	StatsFn         func(ctx context.Context) (map[docbase.ChangeKind]int, error)
}

func (l *ChangeLog) Append(ctx context.Context, record *docbase.ChangeRecord) error {
	return l.AppendFn(ctx, record)
}

func (l *ChangeLog) Recent(ctx context.Context, limit int) ([]*docbase.ChangeRecord, error) {
	return l.RecentFn(ctx, limit)
}

func (l *ChangeLog) MarkProcessed(ctx context.Context, id int64) error {
	return l.MarkProcessedFn(ctx, id)
}

func (l *ChangeLog) Stats(ctx context.Context) (map[docbase.ChangeKind]int, error) {
	return l.StatsFn(ctx)
}

var _ docbase.IndexStore = (*IndexStore)(nil)

// IndexStore is a mock implementation of docbase.IndexStore.
type IndexStore struct {
	UpsertFn    func(ctx context.Context, batch *docbase.IndexBatch) error
	GetFn       func(ctx context.Context, limit int) (*docbase.Snapshot, error)
	CountFn     func(ctx context.Context) (int, error)
	DeleteFn    func(ctx context.Context, ids []string) error
	DimensionFn func(ctx context.Context) (int, error)
	ResetFn     func(ctx context.Context) error
}

func (s *IndexStore) Upsert(ctx context.Context, batch *docbase.IndexBatch) error {
	return s.UpsertFn(ctx, batch)
}

func (s *IndexStore) Get(ctx context.Context, limit int) (*docbase.Snapshot, error) {
	return s.GetFn(ctx, limit)
}

func (s *IndexStore) Count(ctx context.Context) (int, error) {
	return s.CountFn(ctx)
}

func (s *IndexStore) Delete(ctx context.Context, ids []string) error {
	return s.DeleteFn(ctx, ids)
}

func (s *IndexStore) Dimension(ctx context.Context) (int, error) {
	return s.DimensionFn(ctx)
}

func (s *IndexStore) Reset(ctx context.Context) error {
	return s.ResetFn(ctx)
}

var _ docbase.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is a mock implementation of docbase.ConfigStore.
type ConfigStore struct {
	LoadFn   func(ctx context.Context, profile string) (*docbase.Config, error)
	SaveFn   func(ctx context.Context, profile string, cfg *docbase.Config) error
	ListFn   func(ctx context.Context) ([]string, error)
	DeleteFn func(ctx context.Context, profile string) error
}

func (s *ConfigStore) Load(ctx context.Context, profile string) (*docbase.Config, error) {
	return s.LoadFn(ctx, profile)
}

func (s *ConfigStore) Save(ctx context.Context, profile string, cfg *docbase.Config) error {
	return s.SaveFn(ctx, profile, cfg)
}

func (s *ConfigStore) List(ctx context.Context) ([]string, error) {
	return s.ListFn(ctx)
}

func (s *ConfigStore) Delete(ctx context.Context, profile string) error {
	return s.DeleteFn(ctx, profile)
}
