package types

type UpstreamReport struct {
	Component         string   `yaml:"component"`
	Transform         string   `yaml:"transform"`
	FromAttributes    string   `yaml:"from_attributes"`
	BuildDependencies []string `yaml:"build_dependencies"`
	ArtifactDeps      []string `yaml:"artifact_dependencies"`
	ProducerTasks     []string `yaml:"producer_tasks"`
	OwningProjects    []string `yaml:"owning_projects,omitempty"`
	Files             []string `yaml:"files"`
	Fingerprint       string   `yaml:"fingerprint"`
	GeneratedAt       string   `yaml:"generated_at"`
}
