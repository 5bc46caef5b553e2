// Package index maps each location to the containers that must be
// consulted for a given package directory. Archives and images report the
// directories they hold, so they are only consulted for those; plain
// directories cannot be enumerated cheaply and are consulted for every
// directory. Each location's index is rebuilt when its epoch changes.
package index

import (
	"sort"
	"sync"

	"github.com/arthur-debert/pathfinder/pkg/container"
	"github.com/arthur-debert/pathfinder/pkg/locations"
	"github.com/arthur-debert/pathfinder/pkg/logging"
	"github.com/arthur-debert/pathfinder/pkg/relpath"
)

// Source provides the path entries of a location and a counter that
// changes whenever they do. *locations.Registry implements it.
type Source interface {
	Paths(loc locations.Location) ([]string, error)
	Epoch(loc locations.Location) uint64
}

// Entry is one container of a location together with the path entry, as
// given, that resolved to it
type Entry struct {
	Position  int
	UserPath  string
	Container container.Container
}

type locationIndex struct {
	epoch   uint64
	entries []Entry
	byDir   map[relpath.Directory][]Entry
	// walked holds the containers without an index of their own
	walked []Entry
}

// Index caches one locationIndex per location
type Index struct {
	src   Source
	cache *container.Cache

	mu    sync.Mutex
	byLoc map[locations.Location]*locationIndex
}

// New creates an empty index
func New(src Source, cache *container.Cache) *Index {
	return &Index{
		src:   src,
		cache: cache,
		byLoc: make(map[locations.Location]*locationIndex),
	}
}

// Lookup returns, in path order, the containers of loc that may hold
// files of dir
func (i *Index) Lookup(loc locations.Location, dir relpath.Directory) ([]Entry, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	li, err := i.get(loc)
	if err != nil {
		return nil, err
	}
	if entries, ok := li.byDir[dir]; ok {
		return entries, nil
	}
	return li.walked, nil
}

// All returns every container of loc in path order
func (i *Index) All(loc locations.Location) ([]Entry, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	li, err := i.get(loc)
	if err != nil {
		return nil, err
	}
	return li.entries, nil
}

// Invalidate drops the index of loc
func (i *Index) Invalidate(loc locations.Location) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.byLoc, loc)
}

// Clear drops every index
func (i *Index) Clear() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.byLoc = make(map[locations.Location]*locationIndex)
}

// Len returns the number of locations currently indexed
func (i *Index) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.byLoc)
}

func (i *Index) get(loc locations.Location) (*locationIndex, error) {
	logger := logging.GetLogger("index")
	epoch := i.src.Epoch(loc)
	if li, ok := i.byLoc[loc]; ok {
		if li.epoch == epoch {
			logger.Trace().Str("location", loc.Name()).Msg("Index hit")
			return li, nil
		}
		logger.Debug().
			Str("location", loc.Name()).
			Uint64("built", li.epoch).
			Uint64("current", epoch).
			Msg("Index stale")
	}

	li, err := i.build(loc, epoch)
	if err != nil {
		return nil, err
	}
	i.byLoc[loc] = li
	return li, nil
}

func (i *Index) build(loc locations.Location, epoch uint64) (*locationIndex, error) {
	logger := logging.GetLogger("index").With().Str("location", loc.Name()).Logger()
	defer logging.LogOperationStart(logger, "index.build")()

	paths, err := i.src.Paths(loc)
	if err != nil {
		return nil, err
	}

	li := &locationIndex{epoch: epoch, byDir: make(map[relpath.Directory][]Entry)}
	for pos, p := range paths {
		// a container that failed to open comes back as *container.Broken
		// and reports its error on every query
		ct, err := i.cache.Get(p)
		if err != nil {
			logger.Debug().Err(err).Str("path", p).Msg("Container unavailable")
		}
		e := Entry{Position: pos, UserPath: p, Container: ct}
		li.entries = append(li.entries, e)
		if !ct.MaintainsOwnIndex() {
			li.walked = append(li.walked, e)
			continue
		}
		for _, dir := range ct.IndexedDirectories() {
			li.byDir[dir] = append(li.byDir[dir], e)
		}
	}

	// every directory also needs the walked containers, in path order
	if len(li.walked) > 0 {
		for dir, entries := range li.byDir {
			merged := append(entries, li.walked...)
			sort.SliceStable(merged, func(a, b int) bool { return merged[a].Position < merged[b].Position })
			li.byDir[dir] = merged
		}
	}

	logger.Debug().
		Int("containers", len(li.entries)).
		Int("directories", len(li.byDir)).
		Uint64("epoch", epoch).
		Msg("Built directory index")
	return li, nil
}
