package types

// GraphFile is the on-disk form of the two resolution passes and the
// artifact catalog that file collections are rendered from.
type GraphFile struct {
	Passes    GraphFilePasses       `yaml:"passes"`
	Artifacts []ArtifactCatalogItem `yaml:"artifacts,omitempty"`
}

type GraphFilePasses struct {
	Graph     []GraphFileComponent `yaml:"graph"`
	Artifacts []GraphFileComponent `yaml:"artifacts"`
}

type GraphFileComponent struct {
	ID           string                `yaml:"id"`
	Dependencies []GraphFileDependency `yaml:"dependencies,omitempty"`
}

// GraphFileDependency is either a resolved edge (Selected set) or a broken
// one (Requested and Failure set).
type GraphFileDependency struct {
	Selected  string `yaml:"selected,omitempty"`
	Requested string `yaml:"requested,omitempty"`
	Failure   string `yaml:"failure,omitempty"`
}

type ArtifactCatalogItem struct {
	Component  string            `yaml:"component"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
	File       string            `yaml:"file"`
	Producer   string            `yaml:"producer,omitempty"`
	Failure    string            `yaml:"failure,omitempty"`
}

// Artifact is a parsed catalog item.
type Artifact struct {
	Component  ComponentID
	Attributes Attributes
	File       string
	Producer   string
	Failure    string
}
