// Package sdk exposes the typed data-access service: thin CRUD orchestration
// composed from the schema cache, the record mapper and the remote API
// client. All real design lives in the internal mapping engine; the service
// methods are one-line compositions with context prefixes on failures.
package sdk

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/faciam-dev/airtab/internal/logger"
	"github.com/faciam-dev/airtab/internal/mapper"
	"github.com/faciam-dev/airtab/internal/remoteapi"
	"github.com/faciam-dev/airtab/internal/schemacache"
	"github.com/faciam-dev/airtab/pkg/airerr"
)

// Service is the public surface of the data-access layer.
type Service interface {
	// Table resolves a table definition against the fetched base schema.
	Table(ctx context.Context, def *Table) (*TableHandle, error)
	// Get fetches one record by id and maps it to application shape.
	Get(ctx context.Context, def *Table, id string) (*Record, error)
	// Scan lists records; filter and view options pass through verbatim.
	Scan(ctx context.Context, def *Table, q ListQuery) ([]*Record, error)
	// Insert creates a record from application field values.
	Insert(ctx context.Context, def *Table, fields map[string]any) (*Record, error)
	// Update applies a partial record: fields absent from rec.Fields are
	// left untouched remotely.
	Update(ctx context.Context, def *Table, rec *Record) (*Record, error)
	// Remove deletes a record by id.
	Remove(ctx context.Context, def *Table, id string) error

	// MapFromRemote, MapToRemote and RequestedColumns expose the mapping
	// engine for callers that drive the transport themselves.
	MapFromRemote(h *TableHandle, raw *RawRecord) (*Record, error)
	MapToRemote(h *TableHandle, fields map[string]any) (map[string]any, error)
	RequestedColumns(h *TableHandle) []string
}

type service struct {
	client remoteapi.Client
	cache  *schemacache.Cache
	read   mapper.Options
	logger *zap.SugaredLogger
}

// New builds a Service from the configuration.
func New(cfg ServiceConfig) Service {
	opts := []remoteapi.Option{remoteapi.WithTimeout(cfg.HTTPTimeout)}
	if cfg.BaseURL != "" {
		opts = append(opts, remoteapi.WithBaseURL(cfg.BaseURL))
	}
	return newWithClient(cfg, remoteapi.New(cfg.Token, opts...))
}

func newWithClient(cfg ServiceConfig, client remoteapi.Client) Service {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	logger.Set(log)
	mode := mapper.ModeError
	if cfg.ReadValidation == ValidationWarning {
		mode = mapper.ModeWarning
	}
	return &service{
		client: client,
		cache:  schemacache.New(client, cfg.SchemaCacheTTL),
		read:   mapper.Options{Mode: mode, OnWarning: cfg.OnWarning},
		logger: log,
	}
}

func (s *service) Table(ctx context.Context, def *Table) (*TableHandle, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	ts, ok, err := s.cache.Table(ctx, def.BaseID, def.TableID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, airerr.NotFound("table %q (%s) not found in base %q", def.Label(), def.TableID, def.BaseID)
	}
	return newHandle(def, ts.Columns), nil
}

func (s *service) Get(ctx context.Context, def *Table, id string) (*Record, error) {
	if id == "" {
		return nil, airerr.InvalidParameter("no record id given")
	}
	h, err := s.Table(ctx, def)
	if err != nil {
		return nil, err
	}
	raw, err := s.client.FindRecord(ctx, def.BaseID, def.TableID, id)
	if err != nil {
		return nil, err
	}
	rec, err := s.MapFromRemote(h, raw)
	if err != nil {
		return nil, airerr.Wrap(err, recordFrame(id))
	}
	return rec, nil
}

func (s *service) Scan(ctx context.Context, def *Table, q ListQuery) ([]*Record, error) {
	h, err := s.Table(ctx, def)
	if err != nil {
		return nil, err
	}
	if q.Fields == nil {
		q.Fields = s.RequestedColumns(h)
	}
	raws, err := s.client.ListRecords(ctx, def.BaseID, def.TableID, q)
	if err != nil {
		return nil, err
	}
	out := make([]*Record, 0, len(raws))
	for i := range raws {
		rec, err := s.MapFromRemote(h, &raws[i])
		if err != nil {
			return nil, airerr.Wrap(err, recordFrame(raws[i].ID))
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *service) Insert(ctx context.Context, def *Table, fields map[string]any) (*Record, error) {
	h, err := s.Table(ctx, def)
	if err != nil {
		return nil, err
	}
	raw, err := s.MapToRemote(h, fields)
	if err != nil {
		return nil, err
	}
	created, err := s.client.CreateRecord(ctx, def.BaseID, def.TableID, raw)
	if err != nil {
		return nil, err
	}
	rec, err := s.MapFromRemote(h, created)
	if err != nil {
		return nil, airerr.Wrap(err, recordFrame(created.ID))
	}
	return rec, nil
}

func (s *service) Update(ctx context.Context, def *Table, rec *Record) (*Record, error) {
	if rec == nil || rec.ID == "" {
		return nil, airerr.InvalidParameter("no record id given")
	}
	h, err := s.Table(ctx, def)
	if err != nil {
		return nil, err
	}
	raw, err := s.MapToRemote(h, rec.Fields)
	if err != nil {
		return nil, err
	}
	updated, err := s.client.UpdateRecord(ctx, def.BaseID, def.TableID, rec.ID, raw)
	if err != nil {
		return nil, err
	}
	out, err := s.MapFromRemote(h, updated)
	if err != nil {
		return nil, airerr.Wrap(err, recordFrame(rec.ID))
	}
	return out, nil
}

func (s *service) Remove(ctx context.Context, def *Table, id string) error {
	if id == "" {
		return airerr.InvalidParameter("no record id given")
	}
	if err := def.Validate(); err != nil {
		return err
	}
	return s.client.DeleteRecord(ctx, def.BaseID, def.TableID, id)
}

func (s *service) MapFromRemote(h *TableHandle, raw *RawRecord) (*Record, error) {
	fields, err := mapper.FromRemote(h.Def, h.index, raw, s.read)
	if err != nil {
		return nil, airerr.Wrap(err, tableFrame(h.Def))
	}
	return &Record{ID: raw.ID, Fields: fields}, nil
}

func (s *service) MapToRemote(h *TableHandle, fields map[string]any) (map[string]any, error) {
	raw, err := mapper.ToRemote(h.Def, h.index, fields)
	if err != nil {
		return nil, airerr.Wrap(err, tableFrame(h.Def))
	}
	return raw, nil
}

func (s *service) RequestedColumns(h *TableHandle) []string {
	return mapper.RequestedColumns(h.Def, h.index)
}

func newHandle(def *Table, cols []remoteapi.Column) *TableHandle {
	return &TableHandle{Def: def, Columns: cols, index: remoteapi.IndexColumns(cols)}
}

func tableFrame(def *Table) string {
	return fmt.Sprintf("table %q (%s)", def.Label(), def.TableID)
}

func recordFrame(id string) string {
	return fmt.Sprintf("record %q", id)
}
