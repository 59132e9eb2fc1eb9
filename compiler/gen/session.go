package gen

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/variantgen/compiler/identity"
)

// CacheFile is the name of the incremental cache file written to the target
// directory.
const CacheFile = ".variantgen.cache"

// cacheVersion is bumped whenever generated output changes for unchanged
// descriptors, invalidating all caches written by previous versions.
const cacheVersion = 1

// Session holds the state shared by the work items of one synthesis run: the
// scratch-set pool, the shared constraint interfaces and the incremental
// cache. It is created once per run and discarded at its end; nothing is
// shared between runs except through the cache file.
type Session struct {
	// ID identifies the run in logs.
	ID string
	// Scratch is the pool of deduplication sets of the run.
	Scratch *identity.ReusableHashSet[string]
	// Constraints names the constraint sets shared by generic types.
	Constraints *ConstraintIndex

	mu sync.Mutex
	// pkg is the import path set by Prepare.
	pkg      string
	previous map[string]CacheEntry
	current  map[string]CacheEntry
	resolved map[string]ResolvedConfiguration
}

// CacheEntry records the generation of one type.
type CacheEntry struct {
	Type  *TypeDescriptor `msgpack:"type"`
	Flags FeatureFlags    `msgpack:"flags"`
	File  string          `msgpack:"file"`
	// Clean reports that no violation was found. Types with violations are
	// always generated again so their violations are reported on every run.
	Clean bool `msgpack:"clean"`
}

type cacheFile struct {
	Version int                   `msgpack:"version"`
	Entries map[string]CacheEntry `msgpack:"entries"`
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{
		ID:          uuid.NewString(),
		Scratch:     identity.NewReusableHashSet[string](identity.DefaultMaxCapacity),
		Constraints: NewConstraintIndex(),
		previous:    make(map[string]CacheEntry),
		current:     make(map[string]CacheEntry),
		resolved:    make(map[string]ResolvedConfiguration),
	}
}

// Prepare names the shared constraint sets of the given types in pkg, the
// import path of the package they are generated into. It runs sequentially
// before the parallel phase so the names do not depend on the scheduling of
// the workers.
func (s *Session) Prepare(pkg string, types []*TypeDescriptor) {
	sorted := slices.Clone(types)
	slices.SortStableFunc(sorted, func(a, b *TypeDescriptor) int {
		return strings.Compare(a.QualifiedName(), b.QualifiedName())
	})
	s.mu.Lock()
	s.pkg = pkg
	s.mu.Unlock()
	for _, t := range sorted {
		for _, p := range t.TypeParams {
			s.Constraints.Add(pkg, p.Constraints)
		}
	}
}

// Input returns the generator input of d, resolving its flags. Resolutions
// are memoized by the fingerprint of the descriptor.
func (s *Session) Input(d *TypeDescriptor, r Reporter) (*Input, error) {
	fp, err := d.Fingerprint()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	rc, ok := s.resolved[fp]
	if !ok {
		rc = Resolve(d.Flags, d)
		s.resolved[fp] = rc
	}
	pkg := s.pkg
	s.mu.Unlock()
	return &Input{
		Type:        d,
		Config:      rc,
		Package:     pkg,
		Reporter:    r,
		Scratch:     s.Scratch,
		Constraints: s.Constraints,
	}, nil
}

// Changed reports whether the type has to be generated again: no previous
// run generated a structurally equal descriptor with an equal configuration.
func (s *Session) Changed(d *TypeDescriptor, r ResolvedConfiguration) bool {
	s.mu.Lock()
	prev, ok := s.previous[d.QualifiedName()]
	s.mu.Unlock()
	return !ok || !prev.Clean || !prev.Type.Equal(d) || Resolve(prev.Flags, prev.Type) != r
}

// Record records that the type was generated, or left unchanged, in file.
func (s *Session) Record(d *TypeDescriptor, r ResolvedConfiguration, file string, clean bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current[d.QualifiedName()] = CacheEntry{Type: d, Flags: r.Flags(), File: file, Clean: clean}
}

// Stale returns the files recorded by the previous run for types that were
// not recorded in this run, sorted.
func (s *Session) Stale() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var files []string
	for name, e := range s.previous {
		if cur, ok := s.current[name]; (!ok || cur.File != e.File) && e.File != "" {
			files = append(files, e.File)
		}
	}
	slices.Sort(files)
	return files
}

// Load reads the cache written by a previous run. A missing, corrupt or
// outdated cache is ignored: every type is then considered changed.
func (s *Session) Load(path string) error {
	buf, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	var f cacheFile
	if err := msgpack.Unmarshal(buf, &f); err != nil || f.Version != cacheVersion {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, e := range f.Entries {
		if e.Type != nil {
			s.previous[name] = e
		}
	}
	return nil
}

// Save writes the entries recorded in this run to path.
func (s *Session) Save(path string) error {
	s.mu.Lock()
	f := cacheFile{Version: cacheVersion, Entries: make(map[string]CacheEntry, len(s.current))}
	for name, e := range s.current {
		f.Entries[name] = e
	}
	s.mu.Unlock()
	buf, err := msgpack.Marshal(&f)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	return os.WriteFile(path, buf, 0o644)
}

// Fingerprint returns a stable digest of the descriptor. Structurally equal
// descriptors have equal fingerprints, across processes.
func (t *TypeDescriptor) Fingerprint() (string, error) {
	buf, err := msgpack.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", t.Name, err)
	}
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:]), nil
}

// ConstraintIndex names the constraint sets of generic types per package.
// Sets are compared as unordered collections, so [comparable, fmt.Stringer]
// and [fmt.Stringer, comparable] share one interface.
type ConstraintIndex struct {
	mu    sync.Mutex
	pkgs  map[string]*identity.SetIndex[string, string]
	decls map[string][]ConstraintDecl
}

// ConstraintDecl is a shared constraint interface.
type ConstraintDecl struct {
	Name  string
	Types []string
}

// NewConstraintIndex returns an empty index.
func NewConstraintIndex() *ConstraintIndex {
	return &ConstraintIndex{
		pkgs:  make(map[string]*identity.SetIndex[string, string]),
		decls: make(map[string][]ConstraintDecl),
	}
}

// Add names the constraint set in the given package, if it has more than one
// element and was not named before. It returns the name, or the empty string
// for sets that are not shared.
func (c *ConstraintIndex) Add(pkg string, types []string) string {
	if len(types) < 2 {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, ok := c.pkgs[pkg]
	if !ok {
		idx = identity.NewSetIndex[string, string]()
		c.pkgs[pkg] = idx
	}
	name, _ := idx.GetOrAdd(types, func() string {
		name := fmt.Sprintf("variantConstraint%d", len(c.decls[pkg])+1)
		c.decls[pkg] = append(c.decls[pkg], ConstraintDecl{Name: name, Types: slices.Clone(types)})
		return name
	})
	return name
}

// Lookup returns the constraint of a type parameter. Sets that were not
// named by Add are returned inline.
func (c *ConstraintIndex) Lookup(pkg string, types []string) Constraint {
	if c == nil || len(types) < 2 {
		return Constraint{Types: types}
	}
	c.mu.Lock()
	idx, ok := c.pkgs[pkg]
	c.mu.Unlock()
	if !ok {
		return Constraint{Types: types}
	}
	name, _ := idx.Get(types)
	return Constraint{Shared: name, Types: types}
}

// Decls returns the shared constraint interfaces of the package, in naming
// order.
func (c *ConstraintIndex) Decls(pkg string) []ConstraintDecl {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.decls[pkg])
}
