// Package internal provides the core functionality of the oxlift assist tool.
//
// This package implements the engine that discovers structural refactoring
// assists in Rust source files. It parses files with tree-sitter, runs every
// registered assist provider against the parse tree, and returns the rewrites
// each provider offers together with the text edit that performs them.
//
// Key components:
//
// Engine: coordinates assist discovery. It owns the parser, the provider
// registry, the scan cache and the ignore lists, and answers both cursor
// queries (At) and whole-file scans (ScanFile).
//
// AssistProvider: the contract every assist implements. A provider inspects
// one position of a parse tree and returns the assists it can offer there.
//
// Cache: remembers scan results per file and invalidates them when the file
// content changes, so repeated scans of an unchanged tree stay cheap.
//
// SourceCode: the lines of one source file, used when assists are rendered
// for a terminal.
//
// Usage:
//
//	engine, err := internal.NewEngine(nil)
//	if err != nil {
//	    // handle error
//	}
//
//	found, err := engine.ScanFile(ctx, "path/to/file.rs")
//	if err != nil {
//	    // handle error
//	}
//
//	for _, a := range found {
//	    fmt.Printf("%s at line %d: %s\n", a.ID, a.Start.Line, a.Label)
//	}
//
// This package is intended for internal use within the assist tool and should
// not be imported by external packages.
package internal
