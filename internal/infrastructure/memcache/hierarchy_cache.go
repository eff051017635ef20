package memcache

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/hierarchy"
)

var _ hierarchy.EdgeSource = (*HierarchyCache)(nil)

// Loader lee usuarios y aristas completos desde el almacenamiento.
type Loader interface {
	Members(ctx context.Context) ([]entity.Member, error)
	ListEdges(ctx context.Context) ([]entity.HierarchyEdge, error)
}

// loadTimeout acota una recarga compartida entre varios requests.
const loadTimeout = 10 * time.Second

// Origen de una invalidación, para métricas.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

type cacheEntry struct {
	snap     *hierarchy.Snapshot
	loadedAt time.Time
	gen      uint64
}

// HierarchyCache EdgeSource respaldado por un snapshot inmutable de la jerarquía.
// Las lecturas no toman locks; las recargas concurrentes se agrupan en una sola consulta.
type HierarchyCache struct {
	loader  Loader
	ttl     time.Duration
	now     func() time.Time
	current atomic.Pointer[cacheEntry]
	gen     atomic.Uint64
	group   singleflight.Group
}

// Option configura el cache.
type Option func(*HierarchyCache)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(c *HierarchyCache) { c.now = now }
}

// NewHierarchyCache construye el cache. ttl <= 0 desactiva la expiración: solo Invalidate recarga.
func NewHierarchyCache(loader Loader, ttl time.Duration, opts ...Option) *HierarchyCache {
	c := &HierarchyCache{loader: loader, ttl: ttl, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Snapshot devuelve el snapshot vigente, cargándolo si expiró o fue invalidado.
func (c *HierarchyCache) Snapshot(ctx context.Context) (*hierarchy.Snapshot, error) {
	gen := c.gen.Load()
	if e := c.current.Load(); e != nil && e.gen == gen && c.fresh(e) {
		cacheLookups.WithLabelValues("hit").Inc()
		return e.snap, nil
	}
	cacheLookups.WithLabelValues("miss").Inc()

	// La clave incluye la generación: tras una invalidación no se reutiliza una carga en curso.
	// La carga compartida no depende del ctx de quien la inició; cada caller espera con el suyo.
	ch := c.group.DoChan(strconv.FormatUint(gen, 10), func() (any, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()
		members, err := c.loader.Members(lctx)
		if err != nil {
			return nil, err
		}
		edges, err := c.loader.ListEdges(lctx)
		if err != nil {
			return nil, err
		}
		e := &cacheEntry{snap: hierarchy.NewSnapshot(members, edges), loadedAt: c.now(), gen: gen}
		if c.gen.Load() == gen {
			c.current.Store(e)
		}
		return e.snap, nil
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		cacheLoads.WithLabelValues("error").Inc()
		return nil, res.Err
	}
	cacheLoads.WithLabelValues("ok").Inc()
	return res.Val.(*hierarchy.Snapshot), nil
}

func (c *HierarchyCache) fresh(e *cacheEntry) bool {
	return c.ttl <= 0 || c.now().Sub(e.loadedAt) < c.ttl
}

// Invalidate descarta el snapshot vigente. source es SourceLocal o SourceRemote.
func (c *HierarchyCache) Invalidate(source string) {
	c.gen.Add(1)
	c.current.Store(nil)
	cacheInvalidations.WithLabelValues(source).Inc()
}

// DirectSuperior implementa hierarchy.EdgeSource.
func (c *HierarchyCache) DirectSuperior(ctx context.Context, userID string) (string, bool, error) {
	s, err := c.Snapshot(ctx)
	if err != nil {
		return "", false, err
	}
	return s.DirectSuperior(ctx, userID)
}

// DirectSubordinates implementa hierarchy.EdgeSource.
func (c *HierarchyCache) DirectSubordinates(ctx context.Context, userID string) ([]entity.Member, error) {
	s, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.DirectSubordinates(ctx, userID)
}

// Members implementa hierarchy.EdgeSource.
func (c *HierarchyCache) Members(ctx context.Context) ([]entity.Member, error) {
	s, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.Members(ctx)
}
