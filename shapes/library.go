package shapes

import "fmt"

// Library holds at most one generated mesh per [Kind]. A mesh is generated
// once no matter how many times it is drawn.
type Library struct {
	opts   Options
	meshes [numKinds]*Mesh
}

// NewLibrary returns an empty library that tessellates with opts.
// A zero Options value selects [DefaultOptions].
func NewLibrary(opts Options) *Library {
	if opts == (Options{}) {
		opts = DefaultOptions()
	}
	return &Library{opts: opts}
}

// Load generates the meshes of the given kinds that are not loaded yet.
func (lib *Library) Load(kinds ...Kind) error {
	for _, k := range kinds {
		if !k.Valid() {
			return fmt.Errorf("load mesh: invalid kind %s", k)
		} else if lib.meshes[k] != nil {
			continue
		}
		m, err := Generate(k, lib.opts)
		if err != nil {
			return fmt.Errorf("load %s mesh: %w", k, err)
		}
		lib.meshes[k] = m
	}
	return nil
}

// Mesh returns the loaded mesh of kind k.
func (lib *Library) Mesh(k Kind) (*Mesh, bool) {
	if !k.Valid() || lib.meshes[k] == nil {
		return nil, false
	}
	return lib.meshes[k], true
}

// Loaded returns the kinds currently loaded, in declaration order.
func (lib *Library) Loaded() []Kind {
	var kinds []Kind
	for k := Box; k < numKinds; k++ {
		if lib.meshes[k] != nil {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
