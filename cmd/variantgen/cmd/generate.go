package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/syssam/variantgen/compiler/gen"
	"github.com/syssam/variantgen/compiler/gen/golang"
	"github.com/syssam/variantgen/compiler/load"
)

// ErrViolations is returned when a run reported violations.
var ErrViolations = errors.New("variant features could not be generated")

func newGenerateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generate [paths...]",
		Short: "Generate the variant types of descriptor files",
		Long: `Generate one Go file per variant type described in the given descriptor
files or directories. Directories are searched for *.variant.yaml files.

Unless --target is set, files are generated next to their descriptors, one
package per directory. Types that did not change since the previous run are
skipped. Requested features that cannot be generated are reported and make
the command fail after all files are written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := a.generate(cmd.Context(), a.paths(args), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sum)
			if sum.Violations > 0 {
				return errors.Wrapf(ErrViolations, "%d violation(s)", sum.Violations)
			}
			return nil
		},
	}
}

// Summary sums up the results of the packages of a run.
type Summary struct {
	Packages   int
	Written    int
	Unchanged  int
	Removed    int
	Violations int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d package(s): %d file(s) written, %d type(s) unchanged, %d file(s) removed, %d violation(s)",
		s.Packages, s.Written, s.Unchanged, s.Removed, s.Violations)
}

// batch is the set of descriptors generated into one directory.
type batch struct {
	target string
	types  []*gen.TypeDescriptor
}

// generate loads the descriptors of paths and generates them. Violations
// are written to w.
func (a *app) generate(ctx context.Context, paths []string, w io.Writer) (Summary, error) {
	var sum Summary
	batches, err := a.batches(paths)
	if err != nil {
		return sum, err
	}
	emitter := golang.New(a.log.Named("emit"))
	for _, b := range batches {
		pkg, err := packageOf(a.opts.Package, b.types)
		if err != nil {
			return sum, errors.Wrapf(err, "target %s", b.target)
		}
		violations := &gen.Collector{}
		opts := []gen.Option{
			gen.WithTarget(b.target),
			gen.WithEmitter(emitter),
			gen.WithLogger(a.log),
			gen.WithReporter(violations),
			gen.WithWorkers(a.opts.Workers),
			gen.WithForce(a.opts.Force),
			gen.WithHeader(a.opts.Header),
		}
		if pkg != "" {
			opts = append(opts, gen.WithPackage(pkg))
		}
		if a.opts.NoCache {
			opts = append(opts, gen.WithoutCache())
		}
		cfg, err := gen.NewConfig(opts...)
		if err != nil {
			return sum, err
		}
		res, err := gen.NewGenerator(cfg).Generate(ctx, b.types)
		if err != nil {
			return sum, errors.Wrapf(err, "generate %s", b.target)
		}
		for _, v := range violations.Violations() {
			fmt.Fprintln(w, v.Error())
		}
		a.log.Info("package generated",
			zap.String("target", b.target),
			zap.String("session", res.Session),
			zap.Strings("written", res.Written),
			zap.Strings("removed", res.Removed),
		)
		sum.Packages++
		sum.Written += len(res.Written)
		sum.Unchanged += len(res.Unchanged)
		sum.Removed += len(res.Removed)
		sum.Violations += res.Violations
	}
	return sum, nil
}

// batches loads the descriptors and groups them by target directory.
func (a *app) batches(paths []string) ([]batch, error) {
	files, err := (&load.Config{Paths: paths}).Files()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.Newf("no descriptor files found in %v", paths)
	}
	byTarget := make(map[string]*batch)
	var order []string
	for _, file := range files {
		cfg := &load.Config{Paths: []string{file}, Package: a.opts.Package}
		types, err := cfg.Load()
		if err != nil {
			return nil, err
		}
		target := a.opts.Target
		if target == "" {
			target = filepath.Dir(file)
		}
		b, ok := byTarget[target]
		if !ok {
			b = &batch{target: target}
			byTarget[target] = b
			order = append(order, target)
		}
		b.types = append(b.types, types...)
	}
	slices.Sort(order)
	batches := make([]batch, len(order))
	for i, t := range order {
		batches[i] = *byTarget[t]
	}
	return batches, nil
}

// packageOf returns the import path of the generated package: the configured
// one, or the package shared by all descriptors.
func packageOf(configured string, types []*gen.TypeDescriptor) (string, error) {
	if configured != "" {
		return configured, nil
	}
	var pkg string
	for i, d := range types {
		if i > 0 && d.Package != pkg {
			return "", errors.Newf("types %s and %s are declared in different packages", types[0].QualifiedName(), d.QualifiedName())
		}
		pkg = d.Package
	}
	return pkg, nil
}
