// Package gen synthesizes the structural operations of closed variant types.
//
// A variant type is declared by a TypeDescriptor: either a key-based type
// wrapping a single key value (optionally restricted to a closed set of
// items), or a union whose value is exactly one of a fixed list of cases.
// From the descriptor and its FeatureFlags the package derives the members
// a complete implementation needs, and hands them to an Emitter that renders
// them as source code.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	TypeDescriptor + FeatureFlags
//	        ↓
//	   Resolve (ResolvedConfiguration)
//	        ↓
//	   Synthesize (one MemberDescription per generator)
//	        ↓
//	   Emitter (Go source through jennifer)
//	        ↓
//	   <type>_variant.go
//
// The generators are independent of each other: each one reads the Input
// and returns the description of one member kind (declaration, accessors,
// equality, hash, comparison and arithmetic operators, dispatch, parse,
// format, factories). Requests that cannot be honored are reported as
// Violations and produce no member.
//
// # Key Types
//
//   - TypeDescriptor: a validated variant type declaration
//   - FeatureFlags: the explicit generation options of a type
//   - ResolvedConfiguration: the flags with defaults applied
//   - MemberDescription: the members of one kind and their rules
//   - Session: resolution cache and shared constraint sets of a run
//   - Generator: writes the files of a set of types
//
// # Error Handling
//
// The package uses structured error types:
//
//   - DescriptorError: invalid type declarations
//   - ConfigError: invalid generator options
//   - GenerationError: failures while emitting or writing code
//   - Violation: an option that cannot be honored for a type
//
// Example error handling:
//
//	var violations gen.Collector
//	g := gen.NewGenerator(gen.MustNewConfig(gen.WithReporter(&violations), ...))
//	res, err := g.Generate(ctx, types)
//	if err != nil {
//	    if gen.IsDescriptorError(err) {
//	        // Fix the declaration.
//	    }
//	    return err
//	}
//	for _, v := range violations.Violations() {
//	    log.Println(v)
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	config, err := gen.NewConfig(
//	    gen.WithTarget("./domain"),
//	    gen.WithPackage("example.com/app/domain"),
//	    gen.WithEmitter(golang.New(logger)),
//	    gen.WithWorkers(4),
//	)
package gen
