package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/oxlift/oxlift/internal/assists"
	"github.com/oxlift/oxlift/internal/noassist"
	"github.com/oxlift/oxlift/internal/sema"
	"github.com/oxlift/oxlift/internal/syntax"
	"github.com/oxlift/oxlift/internal/trie"
	tt "github.com/oxlift/oxlift/internal/types"
)

// Engine manages assist discovery across files.
type Engine struct {
	ignoredProviders map[string]bool
	ignoredPaths     *trie.Trie
	providers        map[string]AssistProvider
	parser           *syntax.Parser
	cache            *Cache

	watcher    *fsnotify.Watcher
	watchDirs  []string
	isWatching bool
}

// NewEngine creates a new assist engine with all known providers
// registered. The config map can disable providers by name.
func NewEngine(assistConfig map[string]tt.ConfigAssist) (*Engine, error) {
	cache, err := NewCache(defaultCacheSize)
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		parser:       syntax.NewParser(),
		ignoredPaths: trie.New(),
		cache:        cache,
	}
	engine.applyProviders(assistConfig)

	return engine, nil
}

type providerConstructor func() AssistProvider

type providerMap map[string]providerConstructor

var allProviderConstructors = providerMap{
	"merge-match-arms":  NewMergeMatchArmsProvider,
	"unmerge-match-arm": NewUnmergeMatchArmProvider,
}

func (e *Engine) applyProviders(assistConfig map[string]tt.ConfigAssist) {
	e.providers = make(map[string]AssistProvider)
	e.registerDefaultProviders()

	for key, cfg := range assistConfig {
		if e.findProvider(key) == nil {
			// unknown provider, continue to the next one
			continue
		}
		if cfg.Disabled {
			e.IgnoreProvider(key)
		}
	}
}

func (e *Engine) registerDefaultProviders() {
	for key, construct := range allProviderConstructors {
		e.providers[key] = construct()
	}
}

func (e *Engine) findProvider(name string) AssistProvider {
	if provider, ok := e.providers[name]; ok {
		return provider
	}
	return nil
}

// At returns the assists available at the byte offset in filename.
func (e *Engine) At(ctx context.Context, filename string, offset uint32) ([]tt.Assist, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return e.at(ctx, filename, src, offset)
}

// AtSource returns the assists available at the byte offset in src.
func (e *Engine) AtSource(ctx context.Context, src []byte, offset uint32) ([]tt.Assist, error) {
	return e.at(ctx, "", src, offset)
}

func (e *Engine) at(ctx context.Context, filename string, src []byte, offset uint32) ([]tt.Assist, error) {
	tree, err := e.parser.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.Root()
	suppressions := noassist.ParseComments(root, src, filename)
	actx := &assists.Context{
		Filename: filename,
		Src:      src,
		Root:     root,
		Offset:   offset,
		Types:    sema.NewFileResolver(root, src),
	}

	found := e.filterSuppressed(e.collect(actx), suppressions)
	sortAssists(found)
	return found, nil
}

// ScanFile discovers the assists available anywhere in filename. Results
// are cached until the file content changes.
func (e *Engine) ScanFile(ctx context.Context, filename string) ([]tt.Assist, error) {
	if found, ok := e.cache.Get(filename); ok {
		return found, nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	found, err := e.scanSource(ctx, filename, src)
	if err != nil {
		return nil, err
	}

	// a failed cache write only means the file is scanned again next time
	_ = e.cache.Set(filename, found)
	return found, nil
}

// ScanSource discovers the assists available anywhere in src.
func (e *Engine) ScanSource(ctx context.Context, src []byte) ([]tt.Assist, error) {
	return e.scanSource(ctx, "", src)
}

// scanSource collects assists anchored at every match arm of the file.
// The same rewrite reached from several anchors is reported once.
func (e *Engine) scanSource(ctx context.Context, filename string, src []byte) ([]tt.Assist, error) {
	tree, err := e.parser.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.Root()
	resolver := sema.NewFileResolver(root, src)
	suppressions := noassist.ParseComments(root, src, filename)

	var all []tt.Assist
	seen := make(map[string]bool)
	for _, arm := range syntax.AllMatchArms(root) {
		actx := &assists.Context{
			Filename: filename,
			Src:      src,
			Root:     root,
			Offset:   arm.StartByte(),
			Types:    resolver,
		}
		for _, a := range e.collect(actx) {
			key := fmt.Sprintf("%s|%d|%d", a.ID, a.Edit.Range.Start, a.Edit.Range.End)
			if seen[key] {
				continue
			}
			seen[key] = true
			all = append(all, a)
		}
	}

	all = e.filterSuppressed(all, suppressions)
	sortAssists(all)
	return all, nil
}

// collect fans the providers out over one position and gathers their
// results. A provider error drops that provider's results for the
// position.
func (e *Engine) collect(actx *assists.Context) []tt.Assist {
	var wg sync.WaitGroup
	var mu sync.Mutex

	var all []tt.Assist
	for _, provider := range e.providers {
		wg.Add(1)
		go func(p AssistProvider) {
			defer wg.Done()
			if e.ignoredProviders[p.Name()] {
				return
			}
			found, err := p.Collect(actx)
			if err != nil {
				return
			}

			mu.Lock()
			all = append(all, found...)
			mu.Unlock()
		}(provider)
	}
	wg.Wait()

	return all
}

func (e *Engine) IgnoreProvider(name string) {
	if e.ignoredProviders == nil {
		e.ignoredProviders = make(map[string]bool)
	}
	e.ignoredProviders[name] = true
}

// IgnorePath excludes a file or directory subtree from path scans.
func (e *Engine) IgnorePath(path string) {
	e.ignoredPaths.Insert(pathSegments(path))
}

// IsIgnoredPath reports whether path falls under an ignored path.
func (e *Engine) IsIgnoredPath(path string) bool {
	return e.ignoredPaths.ContainsPrefixOf(pathSegments(path))
}

func pathSegments(path string) []string {
	clean := filepath.ToSlash(filepath.Clean(path))
	return strings.Split(clean, "/")
}

// filterSuppressed drops assists silenced by noassist comments.
func (e *Engine) filterSuppressed(found []tt.Assist, mgr *noassist.Manager) []tt.Assist {
	filtered := make([]tt.Assist, 0, len(found))
	for _, a := range found {
		if !mgr.IsSuppressed(a.Filename, a.Start.Line, a.ID) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

func sortAssists(found []tt.Assist) {
	sort.Slice(found, func(i, j int) bool {
		if found[i].Target.Start != found[j].Target.Start {
			return found[i].Target.Start < found[j].Target.Start
		}
		return found[i].ID < found[j].ID
	})
}

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a
// SourceCode struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	return &SourceCode{Lines: lines}, nil
}
