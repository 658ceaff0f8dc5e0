package types

// TransformStep is one artifact transform applied to a component. It carries
// the attributes of the variant selected before the transform runs.
type TransformStep struct {
	Name                 string
	FromAttributes       Attributes
	RequiresDependencies bool
}

func (s TransformStep) String() string {
	name := s.Name
	if name == "" {
		name = "transform"
	}
	return name + " " + s.FromAttributes.String()
}

// Fingerprint summarizes a resolved file collection.
type Fingerprint struct {
	Hash      string
	FileCount int
}

func (f Fingerprint) IsEmpty() bool {
	return f.FileCount == 0
}
