package stilllife

import (
	"errors"
	"fmt"

	"github.com/cs330/stilllife/shapes"
	"github.com/go-gl/mathgl/mgl32"
)

// TextureSpec names an image file to load under a tag.
type TextureSpec struct {
	Tag  string
	File string
}

// Surface selects how a part is shaded.
type Surface struct {
	// Texture is the tag of a loaded texture. When set it takes precedence over Color.
	Texture string
	// Material is the tag of a palette material. An empty material keeps
	// whatever material the previous part bound.
	Material string
	// Color is the flat RGBA color of untextured parts. It is also used when
	// Texture names a texture that failed to load.
	Color *mgl32.Vec4
	// UVScale multiplies texture coordinates. Nil means (1,1).
	UVScale *mgl32.Vec2
}

// Part is a single draw: a basic mesh, which of its faces to draw, where, and how.
type Part struct {
	Name  string
	Shape shapes.Kind
	// Faces selects the faces to draw. Zero draws all faces.
	Faces     shapes.Face
	Transform Transform
	Surface   Surface
}

// Object is a named group of parts, such as a bottle made of a body, label and cap.
type Object struct {
	Name  string
	Parts []Part
}

// Scene is everything needed to prepare and render a still-life.
type Scene struct {
	Name      string
	Textures  []TextureSpec
	Materials Palette
	Lighting  Lighting
	Objects   []Object
}

// Validate checks the scene is self consistent and returns every problem found.
func (s *Scene) Validate() error {
	var errs []error
	if len(s.Textures) > MaxTextureSlots {
		errs = append(errs, fmt.Errorf("%d textures exceeds %d texture slots", len(s.Textures), MaxTextureSlots))
	}
	texTags := make(map[string]bool, len(s.Textures))
	for i, t := range s.Textures {
		switch {
		case t.Tag == "":
			errs = append(errs, fmt.Errorf("texture %d: empty tag", i))
		case texTags[t.Tag]:
			errs = append(errs, fmt.Errorf("texture %d: %w: %q", i, ErrDuplicateTexture, t.Tag))
		}
		if t.File == "" {
			errs = append(errs, fmt.Errorf("texture %q: empty file name", t.Tag))
		}
		texTags[t.Tag] = true
	}
	matTags := make(map[string]bool, len(s.Materials))
	for i, m := range s.Materials {
		if m.Tag == "" {
			errs = append(errs, fmt.Errorf("material %d: empty tag", i))
		} else if matTags[m.Tag] {
			errs = append(errs, fmt.Errorf("material %d: duplicate tag %q", i, m.Tag))
		}
		matTags[m.Tag] = true
	}
	if err := s.Lighting.Validate(); err != nil {
		errs = append(errs, err)
	}
	for _, obj := range s.Objects {
		for i, p := range obj.Parts {
			where := partName(obj, i)
			if !p.Shape.Valid() {
				errs = append(errs, fmt.Errorf("%s: invalid shape %s", where, p.Shape))
			} else if p.Faces != 0 && p.Faces&p.Shape.Faces() == 0 {
				errs = append(errs, fmt.Errorf("%s: %s mesh has no %s faces", where, p.Shape, p.Faces))
			}
			if p.Surface.Texture != "" && !texTags[p.Surface.Texture] {
				errs = append(errs, fmt.Errorf("%s: undefined texture %q", where, p.Surface.Texture))
			}
			if p.Surface.Material != "" && !matTags[p.Surface.Material] {
				errs = append(errs, fmt.Errorf("%s: undefined material %q", where, p.Surface.Material))
			}
		}
	}
	return errors.Join(errs...)
}

// Shapes returns the distinct mesh kinds the scene draws, in order of first use.
func (s *Scene) Shapes() []shapes.Kind {
	var kinds []shapes.Kind
	var seen [256]bool
	for _, obj := range s.Objects {
		for _, p := range obj.Parts {
			if !seen[p.Shape] {
				seen[p.Shape] = true
				kinds = append(kinds, p.Shape)
			}
		}
	}
	return kinds
}

// NumParts returns the number of parts over all objects.
func (s *Scene) NumParts() (n int) {
	for _, obj := range s.Objects {
		n += len(obj.Parts)
	}
	return n
}

func partName(obj Object, i int) string {
	if name := obj.Parts[i].Name; name != "" {
		return obj.Name + "/" + name
	}
	return fmt.Sprintf("%s/%d", obj.Name, i)
}
