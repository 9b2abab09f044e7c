package diagram

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/reeflow/reeflow/pkg/cache"
	"github.com/reeflow/reeflow/pkg/dataset"
	"github.com/reeflow/reeflow/pkg/diagram/interact"
	"github.com/reeflow/reeflow/pkg/diagram/layout"
	"github.com/reeflow/reeflow/pkg/diagram/overrides"
	"github.com/reeflow/reeflow/pkg/diagram/route"
	apperr "github.com/reeflow/reeflow/pkg/errors"
	"github.com/reeflow/reeflow/pkg/flow"
	"github.com/reeflow/reeflow/pkg/observability"
	"github.com/reeflow/reeflow/pkg/render"
)

// Config assembles a session's collaborators.
type Config struct {
	Dataset *dataset.Dataset
	Store   overrides.Store // nil disables persistence
	Cache   cache.Cache     // nil disables artifact caching
	Keyer   cache.Keyer     // nil uses the default keyer
	Logger  *log.Logger     // nil uses the default logger
	Canvas  layout.Size     // zero uses 1000x600
	Layout  layout.Options
}

// yearState is the live, mutable state behind one year's diagram.
type yearState struct {
	graph   *flow.Graph
	offsets route.Table
	labels  interact.Labels
}

// cachedDiagram is the serialized product of the build pipeline, stored
// in the byte cache keyed by the year's row and the override snapshot.
type cachedDiagram struct {
	Graph   *flow.Graph `json:"graph"`
	Offsets route.Table `json:"offsets"`
}

// Session serializes all reads and edits of the per-year diagrams.
//
// Reads return deep-copied [Diagram] snapshots, so callers can hold them
// across edits without data races. Edits run under the session lock on a
// clone of the year's state and swap in atomically; when a rebuild
// fails, the previous state stays visible.
//
// The session holds one layout override for the whole dataset. Node and
// link identities are stable across years, so a saved layout applies to
// every year's rebuilt graph until it is replaced or reset.
type Session struct {
	mu     sync.Mutex
	ds     *dataset.Dataset
	store  overrides.Store
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
	canvas layout.Size
	layout layout.Options

	states map[int]*yearState

	override *overrides.Override
	// loaded marks the override as current with the store; it stays
	// false after a store outage so the next rebuild retries the load.
	loaded bool
}

// NewSession creates a session over a dataset.
func NewSession(cfg Config) *Session {
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.Keyer == nil {
		cfg.Keyer = cache.NewDefaultKeyer()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Canvas.W <= 0 || cfg.Canvas.H <= 0 {
		cfg.Canvas = layout.Size{W: 1000, H: 600}
	}
	return &Session{
		ds:     cfg.Dataset,
		store:  cfg.Store,
		cache:  cfg.Cache,
		keyer:  cfg.Keyer,
		logger: cfg.Logger,
		canvas: cfg.Canvas,
		layout: cfg.Layout,
		states: make(map[int]*yearState),
	}
}

// Years returns the dataset's years in ascending order.
func (s *Session) Years() []int {
	return s.ds.Years()
}

// Diagram returns the snapshot for a year, building it on first access.
func (s *Session) Diagram(ctx context.Context, year int) (*Diagram, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.stateLocked(ctx, year)
	if err != nil {
		return nil, err
	}
	return s.snapshot(year, st), nil
}

// Rebuild recomputes a year's diagram from its data row and the saved
// override, discarding unsaved edits. On layout failure the previous
// state is retained and the error returned.
func (s *Session) Rebuild(ctx context.Context, year int) (*Diagram, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.rebuildLocked(ctx, year)
	if err != nil {
		return nil, err
	}
	return s.snapshot(year, st), nil
}

// SaveLayout snapshots the year's current geometry and placement table
// into the dataset's override and persists it. The override applies to
// every year; other cached years are rebuilt so they pick it up. Entries
// saved for elements absent from the current graph are retained, never
// pruned.
func (s *Session) SaveLayout(ctx context.Context, year int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.stateLocked(ctx, year)
	if err != nil {
		return err
	}

	ov := overrides.Snapshot(s.loadOverrideLocked(ctx), st.graph, st.offsets)
	if s.store != nil {
		if err := s.store.Save(ctx, ov); err != nil {
			return apperr.Wrap(apperr.ErrCodeStoreUnavailable, err, "save layout")
		}
	}
	s.override = ov
	s.loaded = true
	s.refreshLocked(ctx, year)

	s.logger.Info("saved layout", "year", year, "nodes", len(ov.Nodes), "links", len(ov.Links))
	return nil
}

// ResetLayout deletes the saved override and rebuilds from automatic
// layout. All cached years revert, not just the requested one.
func (s *Session) ResetLayout(ctx context.Context, year int) (*Diagram, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Delete(ctx); err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeStoreUnavailable, err, "delete layout")
		}
	}
	s.override = nil
	s.loaded = true
	s.refreshLocked(ctx, year)

	st, err := s.rebuildLocked(ctx, year)
	if err != nil {
		return nil, err
	}
	return s.snapshot(year, st), nil
}

// Render produces an artifact for a year in the given format ("svg",
// "dot", or "json"), consulting the artifact cache first. Cached entries
// are keyed by the snapshot's content hash, so any edit naturally misses.
func (s *Session) Render(ctx context.Context, year int, format, style string) ([]byte, error) {
	if err := apperr.ValidateFormat(format); err != nil {
		return nil, err
	}

	d, err := s.Diagram(ctx, year)
	if err != nil {
		return nil, err
	}

	hash, err := d.Hash()
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "hash diagram for %d", year)
	}
	key := s.keyer.RenderKey(hash, cache.RenderKeyOpts{Format: format, Style: style})

	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "render")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	start := time.Now()
	observability.Diagram().OnRenderStart(ctx, year, format)

	var data []byte
	switch format {
	case "svg":
		data = render.RenderSVG(d.Graph, d.Labels, d.Canvas, render.SVGOptions{Style: style, ShowValues: true})
	case "dot":
		data = []byte(render.ToDOT(d.Graph, render.DOTOptions{Detailed: true}))
	case "json":
		if data, err = json.MarshalIndent(d, "", "  "); err != nil {
			observability.Diagram().OnRenderComplete(ctx, year, format, time.Since(start), err)
			return nil, apperr.Wrap(apperr.ErrCodeRenderFailed, err, "encode diagram for %d", year)
		}
	}
	observability.Diagram().OnRenderComplete(ctx, year, format, time.Since(start), nil)

	if err := s.cache.Set(ctx, key, data, cache.RenderTTL); err != nil {
		s.logger.Debug("render cache write failed", "year", year, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	}
	return data, nil
}

// === Interaction operations ===
//
// Each edit clones the year's state, applies one transition, re-routes,
// and swaps the clone in. The returned snapshot reflects the new state.

// MoveNode drags a node by (dx, dy), clamped to the canvas.
func (s *Session) MoveNode(ctx context.Context, year int, id string, dx, dy float64) (*Diagram, error) {
	return s.edit(ctx, year, func(st *yearState) error {
		return interact.DragNode(st.graph, id, dx, dy, s.canvas.Bounds())
	})
}

// ResizeNode sets a node's dimensions, anchored top-left.
func (s *Session) ResizeNode(ctx context.Context, year int, id string, w, h float64) (*Diagram, error) {
	return s.edit(ctx, year, func(st *yearState) error {
		return interact.ResizeNode(st.graph, id, w, h, s.canvas.Bounds())
	})
}

// RotateNode rotates a node about its center.
func (s *Session) RotateNode(ctx context.Context, year int, id string) (*Diagram, error) {
	return s.edit(ctx, year, func(st *yearState) error {
		return interact.RotateNode(st.graph, id, s.canvas.Bounds())
	})
}

// MoveEndpoint re-attaches one end of a link to the pointer position.
func (s *Session) MoveEndpoint(ctx context.Context, year int, key string, end route.End, pointer flow.Point) (*Diagram, error) {
	return s.edit(ctx, year, func(st *yearState) error {
		return interact.DragEndpoint(st.graph, st.offsets, key, end, pointer)
	})
}

// AddLabel creates a free-text label at a canvas position.
func (s *Session) AddLabel(ctx context.Context, year int, text string, at flow.Point) (*Diagram, error) {
	return s.edit(ctx, year, func(st *yearState) error {
		labels, _, err := st.labels.Add(text, at)
		if err != nil {
			return err
		}
		st.labels = labels
		return nil
	})
}

// EditLabel replaces a label's text.
func (s *Session) EditLabel(ctx context.Context, year int, id, text string) (*Diagram, error) {
	return s.edit(ctx, year, func(st *yearState) error {
		labels, err := st.labels.Edit(id, text)
		if err != nil {
			return err
		}
		st.labels = labels
		return nil
	})
}

// MoveLabel repositions a label.
func (s *Session) MoveLabel(ctx context.Context, year int, id string, at flow.Point) (*Diagram, error) {
	return s.edit(ctx, year, func(st *yearState) error {
		labels, err := st.labels.Move(id, at)
		if err != nil {
			return err
		}
		st.labels = labels
		return nil
	})
}

// DeleteLabel removes a label.
func (s *Session) DeleteLabel(ctx context.Context, year int, id string) (*Diagram, error) {
	return s.edit(ctx, year, func(st *yearState) error {
		labels, err := st.labels.Delete(id)
		if err != nil {
			return err
		}
		st.labels = labels
		return nil
	})
}

// === Internals ===

// stateLocked returns the year's state, building it on first access.
// The session lock must be held.
func (s *Session) stateLocked(ctx context.Context, year int) (*yearState, error) {
	if st, ok := s.states[year]; ok {
		return st, nil
	}
	return s.rebuildLocked(ctx, year)
}

// rebuildLocked runs the build → layout → apply → route pipeline for a
// year, consulting the diagram cache first. On failure the previous
// state (if any) is left in place.
func (s *Session) rebuildLocked(ctx context.Context, year int) (*yearState, error) {
	row, err := s.ds.Row(year)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Diagram().OnBuildStart(ctx, year)

	ov := s.loadOverrideLocked(ctx)

	var labels interact.Labels
	if prev, ok := s.states[year]; ok {
		labels = prev.labels
	}

	key := s.diagramKey(year, row, ov)
	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		var cd cachedDiagram
		if err := json.Unmarshal(data, &cd); err == nil && cd.Graph != nil {
			observability.Cache().OnCacheHit(ctx, "diagram")
			if cd.Offsets == nil {
				cd.Offsets = make(route.Table)
			}
			st := &yearState{graph: cd.Graph, offsets: cd.Offsets, labels: labels}
			s.states[year] = st
			observability.Diagram().OnBuildComplete(ctx, year, len(cd.Graph.Nodes), time.Since(start), nil)
			return st, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "diagram")

	g := flow.Build(row)
	if err := layout.Compute(g, s.layout, s.canvas, ov.HasNode); err != nil {
		observability.Diagram().OnBuildComplete(ctx, year, len(g.Nodes), time.Since(start), err)
		return nil, apperr.Wrap(apperr.ErrCodeLayoutFailed, err, "layout for year %d", year)
	}

	tbl := make(route.Table)
	overrides.Apply(ov, g, tbl)
	route.Route(g, tbl)

	st := &yearState{graph: g, offsets: tbl, labels: labels}
	s.states[year] = st

	if data, err := json.Marshal(cachedDiagram{Graph: g, Offsets: tbl}); err == nil {
		if err := s.cache.Set(ctx, key, data, cache.DiagramTTL); err != nil {
			s.logger.Debug("diagram cache write failed", "year", year, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "diagram", len(data))
		}
	}

	overridden := 0
	if ov != nil {
		overridden = len(ov.Nodes)
	}
	s.logger.Debug("rebuilt diagram",
		"year", year,
		"nodes", len(g.Nodes),
		"links", len(g.Links),
		"overridden", overridden)
	observability.Diagram().OnBuildComplete(ctx, year, len(g.Nodes), time.Since(start), nil)
	return st, nil
}

// diagramKey keys the cached pipeline output by the year, a hash of the
// row and override, and the layout options.
func (s *Session) diagramKey(year int, row flow.Row, ov *overrides.Override) string {
	data, _ := json.Marshal(struct {
		Row      flow.Row            `json:"row"`
		Override *overrides.Override `json:"override"`
	}{row, ov})
	return s.keyer.DiagramKey(year, cache.Hash(data), cache.DiagramKeyOpts{
		CanvasW:     s.canvas.W,
		CanvasH:     s.canvas.H,
		NodeWidth:   s.layout.NodeWidth,
		NodePadding: s.layout.NodePadding,
		FlowScale:   s.layout.FlowScale,
		Align:       string(s.layout.Align),
	})
}

// loadOverrideLocked fetches the saved override on first use and caches
// it for the session. A missing override is normal; a store outage is
// logged and tolerated so reads keep working on automatic layout, and
// the load is retried on the next rebuild.
func (s *Session) loadOverrideLocked(ctx context.Context) *overrides.Override {
	if s.loaded || s.store == nil {
		return s.override
	}

	ov, err := s.store.Load(ctx)
	if errors.Is(err, overrides.ErrNotFound) {
		s.loaded = true
		return nil
	}
	if err != nil {
		s.logger.Warn("override store unavailable, using automatic layout", "err", err)
		return nil
	}
	s.override = ov
	s.loaded = true
	return ov
}

// refreshLocked rebuilds every cached year except skip so an override
// change shows up on the next read. Labels survive the rebuild; a year
// that fails keeps its previous state.
func (s *Session) refreshLocked(ctx context.Context, skip int) {
	for y := range s.states {
		if y == skip {
			continue
		}
		if _, err := s.rebuildLocked(ctx, y); err != nil {
			s.logger.Warn("rebuild after layout change failed", "year", y, "err", err)
		}
	}
}

// edit applies one transition on a clone of the year's state, re-routes,
// and swaps the clone in.
func (s *Session) edit(ctx context.Context, year int, fn func(*yearState) error) (*Diagram, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.stateLocked(ctx, year)
	if err != nil {
		return nil, err
	}

	work := &yearState{
		graph:   st.graph.Clone(),
		offsets: st.offsets.Clone(),
		labels:  st.labels,
	}
	if err := fn(work); err != nil {
		return nil, err
	}
	route.Route(work.graph, work.offsets)

	s.states[year] = work
	return s.snapshot(year, work), nil
}

// snapshot deep-copies a state into an immutable Diagram.
func (s *Session) snapshot(year int, st *yearState) *Diagram {
	labels := make(interact.Labels, len(st.labels))
	copy(labels, st.labels)
	return &Diagram{
		Year:    year,
		Canvas:  s.canvas,
		Graph:   st.graph.Clone(),
		Offsets: st.offsets.Clone(),
		Labels:  labels,
	}
}
