package core

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"transform-deps/internal/ports"
	"transform-deps/internal/types"
)

var (
	projectA = types.ProjectID(":a")
	projectB = types.ProjectID(":b")
	projectC = types.ProjectID(":c")
	projectD = types.ProjectID(":d")
	moduleX  = types.ModuleID("org.acme", "x", "1.0.0")
	moduleY  = types.ModuleID("org.acme", "y", "2.0.0")
)

type passBuilder struct {
	pass  *types.ResolutionPass
	nodes map[types.ComponentID]*types.ComponentResult
}

func newPassBuilder(kind types.PassKind) *passBuilder {
	return &passBuilder{
		pass:  &types.ResolutionPass{Kind: kind},
		nodes: map[types.ComponentID]*types.ComponentResult{},
	}
}

func (b *passBuilder) node(id types.ComponentID) *types.ComponentResult {
	if node, ok := b.nodes[id]; ok {
		return node
	}
	node := &types.ComponentResult{ID: id}
	b.nodes[id] = node
	b.pass.Components = append(b.pass.Components, node)
	return node
}

func (b *passBuilder) edge(from types.ComponentID, to types.ComponentID) *passBuilder {
	source := b.node(from)
	target := b.node(to)
	source.Dependencies = append(source.Dependencies, types.DependencyResult{
		Requested: to.String(),
		Selected:  target,
	})
	return b
}

func (b *passBuilder) broken(from types.ComponentID, requested string) *passBuilder {
	source := b.node(from)
	source.Dependencies = append(source.Dependencies, types.DependencyResult{
		Requested: requested,
		Failure:   "could not resolve " + requested,
	})
	return b
}

func (b *passBuilder) build() *types.ResolutionPass {
	return b.pass
}

type countingProvider struct {
	pass  *types.ResolutionPass
	err   error
	calls atomic.Int32
}

func (p *countingProvider) ResolutionPass(context.Context) (*types.ResolutionPass, error) {
	p.calls.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	return p.pass, nil
}

type fakeResults struct {
	files map[types.ComponentID][]string
	tasks map[types.ComponentID]string
	err   error

	mu    sync.Mutex
	calls []types.Attributes
}

func (f *fakeResults) ResultsMatching(attributes types.Attributes, predicate func(types.ComponentID) bool) ports.FileCollection {
	f.mu.Lock()
	f.calls = append(f.calls, attributes)
	f.mu.Unlock()
	return &fakeCollection{results: f, attributes: attributes, predicate: predicate}
}

func (f *fakeResults) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeCollection struct {
	results    *fakeResults
	attributes types.Attributes
	predicate  func(types.ComponentID) bool
	resolved   atomic.Int32
}

func (c *fakeCollection) DisplayName() string {
	return "fake files " + c.attributes.String()
}

func (c *fakeCollection) Files(context.Context) ([]string, error) {
	c.resolved.Add(1)
	if c.results.err != nil {
		return nil, c.results.err
	}
	var out []string
	for id, files := range c.results.files {
		if c.predicate(id) {
			out = append(out, files...)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (c *fakeCollection) VisitDependencies(_ context.Context, deps ports.TaskDependencyContext) error {
	var tasks []string
	for id, task := range c.results.tasks {
		if c.predicate(id) {
			tasks = append(tasks, task)
		}
	}
	sort.Strings(tasks)
	for _, task := range tasks {
		deps.AddTask(task)
	}
	return nil
}

type recordingContext struct {
	added []ports.TaskDependencyContainer
	tasks []string
}

func (r *recordingContext) Add(dependency ports.TaskDependencyContainer) {
	r.added = append(r.added, dependency)
}

func (r *recordingContext) AddTask(path string) {
	r.tasks = append(r.tasks, path)
}

type fakeFingerprinter struct{}

func (fakeFingerprinter) Fingerprint(ctx context.Context, files ports.FileCollection) (types.Fingerprint, error) {
	paths, err := files.Files(ctx)
	if err != nil {
		return types.Fingerprint{}, err
	}
	return types.Fingerprint{Hash: "files", FileCount: len(paths)}, nil
}

func (fakeFingerprinter) Empty() types.Fingerprint {
	return types.Fingerprint{Hash: "empty"}
}
