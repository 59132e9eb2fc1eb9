package gen

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ConstraintsFile is the name of the file declaring the shared constraint
// interfaces of the target package.
const ConstraintsFile = "variant_constraints.go"

// Generator runs synthesis over a population of descriptors: it resolves
// the configuration of every type, runs the structural operation generators
// and writes one file per type through the configured Emitter. Types are
// generated in parallel; unchanged types are skipped using the incremental
// cache of the session.
type Generator struct {
	config  *Config
	session *Session
}

// Result summarizes a run.
type Result struct {
	// Session is the ID of the session of the run.
	Session string
	// Written lists the files written, sorted.
	Written []string
	// Unchanged lists the types skipped by the incremental cache, sorted.
	Unchanged []string
	// Removed lists the stale files removed, sorted.
	Removed []string
	// Violations is the number of violations reported during the run.
	Violations int
}

// NewGenerator returns a generator using the given configuration and a new
// session.
func NewGenerator(c *Config) *Generator {
	return &Generator{config: c, session: NewSession()}
}

// Session returns the session of the generator.
func (g *Generator) Session() *Session {
	return g.session
}

// FileName returns the name of the file generated for the type.
func FileName(d *TypeDescriptor) string {
	return snake(d.Name) + "_variant.go"
}

// Generate generates the given types. Violations are reported to the
// configured Reporter and do not fail the run; descriptor, emission and I/O
// errors do.
func (g *Generator) Generate(ctx context.Context, types []*TypeDescriptor) (*Result, error) {
	c := g.config
	switch {
	case c == nil || c.Target == "":
		return nil, NewConfigError("Target", nil, "missing target directory in config")
	case c.Emitter == nil:
		return nil, NewConfigError("Emitter", nil, "no emitter set: use WithEmitter")
	}
	if err := uniqueNames(types); err != nil {
		return nil, err
	}
	log := c.Logger.With(zap.String("session", g.session.ID), zap.String("target", c.Target))
	start := time.Now()
	if err := os.MkdirAll(c.Target, 0o755); err != nil {
		return nil, NewGenerationError("write", c.Target, "create target directory", err)
	}
	cachePath := filepath.Join(c.Target, CacheFile)
	if !c.NoCache && !c.Force {
		if err := g.session.Load(cachePath); err != nil {
			log.Warn("ignoring unreadable cache", zap.Error(err))
		}
	}
	g.session.Prepare(c.Package, types)

	var (
		mu         sync.Mutex
		res        = &Result{Session: g.session.ID}
		violations = &Collector{}
		pkg        = &Package{Path: c.Package, Name: c.PackageName(), Header: c.Header}
	)
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(c.Workers)
	for _, d := range types {
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			found := &Collector{}
			in, err := g.session.Input(d, multiReporter{c.Reporter, violations, found})
			if err != nil {
				return NewGenerationError("resolve", FileName(d), d.Name, err)
			}
			file := FileName(d)
			tlog := log.With(zap.String("type", d.QualifiedName()), zap.String("file", file))
			if !c.Force && !g.session.Changed(d, in.Config) && exists(filepath.Join(c.Target, file)) {
				g.session.Record(d, in.Config, file, true)
				tlog.Debug("type unchanged")
				mu.Lock()
				res.Unchanged = append(res.Unchanged, d.QualifiedName())
				mu.Unlock()
				return nil
			}
			members := Synthesize(in)
			f, err := c.Emitter.EmitType(pkg, d, members)
			if err != nil {
				return NewGenerationError("emit", file, d.Name, err)
			}
			written, err := writeFile(f, c.Target, file)
			if err != nil {
				return NewGenerationError("write", file, d.Name, err)
			}
			g.session.Record(d, in.Config, file, found.Len() == 0)
			tlog.Debug("type generated",
				zap.Int("members", memberCount(members)),
				zap.Int("violations", found.Len()),
				zap.Bool("written", written),
			)
			if written {
				mu.Lock()
				res.Written = append(res.Written, file)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	if err := g.writeConstraints(pkg, res); err != nil {
		return nil, err
	}
	for _, file := range g.session.Stale() {
		if err := remove(c.Target, file); err != nil {
			return nil, NewGenerationError("cleanup", file, "remove stale file", err)
		}
		res.Removed = append(res.Removed, file)
	}
	if !c.NoCache {
		if err := g.session.Save(cachePath); err != nil {
			return nil, NewGenerationError("write", CacheFile, "save cache", err)
		}
	}
	slices.Sort(res.Written)
	slices.Sort(res.Unchanged)
	res.Violations = violations.Len()
	hits, misses := g.session.Scratch.Stats()
	log.Info("generation finished",
		zap.Int("types", len(types)),
		zap.Int("written", len(res.Written)),
		zap.Int("unchanged", len(res.Unchanged)),
		zap.Int("removed", len(res.Removed)),
		zap.Int("violations", res.Violations),
		zap.Int64("scratch_hits", hits),
		zap.Int64("scratch_misses", misses),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

// writeConstraints writes the shared constraint interfaces of the package,
// or removes their file if no type needs them.
func (g *Generator) writeConstraints(pkg *Package, res *Result) error {
	decls := g.session.Constraints.Decls(pkg.Path)
	if len(decls) == 0 {
		if err := remove(g.config.Target, ConstraintsFile); err != nil {
			return NewGenerationError("cleanup", ConstraintsFile, "remove constraints", err)
		}
		return nil
	}
	f, err := g.config.Emitter.EmitConstraints(pkg, decls)
	if err != nil {
		return NewGenerationError("emit", ConstraintsFile, "constraints", err)
	}
	written, err := writeFile(f, g.config.Target, ConstraintsFile)
	if err != nil {
		return NewGenerationError("write", ConstraintsFile, "constraints", err)
	}
	if written {
		res.Written = append(res.Written, ConstraintsFile)
	}
	return nil
}

// uniqueNames checks that no two descriptors declare the same type.
func uniqueNames(types []*TypeDescriptor) error {
	seen := make(map[string]bool, len(types))
	for _, d := range types {
		if d == nil {
			return NewDescriptorError("", "", "nil descriptor", nil)
		}
		name := d.QualifiedName()
		if seen[name] {
			return NewDescriptorError(name, "", "type declared more than once", nil)
		}
		seen[name] = true
	}
	return nil
}

func memberCount(ms []*MemberDescription) int {
	n := 0
	for _, m := range ms {
		n += len(m.Members)
	}
	return n
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
