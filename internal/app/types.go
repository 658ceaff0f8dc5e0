package app

type UpstreamRequest struct {
	GraphFile            string
	Component            string
	Transform            string
	FromAttributes       string
	Filters              []string
	RequiresDependencies bool
	Finalize             bool
	// ListSelected lists the matching upstream files straight from the
	// selection, without going through the computed dependencies.
	ListSelected bool
	// Owner is the project whose resolution produced the graph, if any.
	Owner     string
	OutputDir string
}

type UpstreamResult struct {
	Component            string
	HasDependencies      bool
	BuildDependencies    []string
	ArtifactDependencies []string
	ProducerTasks        []string
	OwningProjects       []string
	Files                []string
	SelectedFiles        []string
	Fingerprint          string
	OutputDir            string
}

type ValidateRequest struct {
	GraphFile  string
	Components []string
}

type ValidateResult struct {
	GraphComponents    int
	ArtifactComponents int
	Artifacts          int
	BrokenEdges        int
}

type InspectRequest struct {
	GraphFile string
	Component string
	Filters   []string
}

type InspectResult struct {
	Component               string
	BuildDependencies       []string
	ArtifactDependencies    []string
	MissingFromArtifactPass bool
}
