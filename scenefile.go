package stilllife

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cs330/stilllife/shapes"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Scene file layout. Vectors are YAML sequences. Parts flatten their
// transform and surface so anchors and merge keys (<<: *part) can share them.
type (
	sceneFile struct {
		Name      string         `yaml:"name"`
		Textures  []textureFile  `yaml:"textures,omitempty"`
		Materials []materialFile `yaml:"materials,omitempty"`
		Lighting  lightingFile   `yaml:"lighting"`
		Objects   []objectFile   `yaml:"objects"`
	}
	textureFile struct {
		Tag  string `yaml:"tag"`
		File string `yaml:"file"`
	}
	materialFile struct {
		Tag       string    `yaml:"tag"`
		Diffuse   []float32 `yaml:"diffuse,flow"`
		Specular  []float32 `yaml:"specular,flow"`
		Shininess float32   `yaml:"shininess"`
	}
	lightingFile struct {
		// Enabled defaults to true when any light is configured.
		Enabled     *bool            `yaml:"enabled,omitempty"`
		Directional *directionalFile `yaml:"directional,omitempty"`
		Points      []pointFile      `yaml:"points,omitempty"`
		Spot        *spotFile        `yaml:"spot,omitempty"`
	}
	directionalFile struct {
		Direction []float32 `yaml:"direction,flow"`
		Ambient   []float32 `yaml:"ambient,flow"`
		Diffuse   []float32 `yaml:"diffuse,flow"`
		Specular  []float32 `yaml:"specular,flow"`
	}
	pointFile struct {
		Position []float32 `yaml:"position,flow"`
		Ambient  []float32 `yaml:"ambient,flow"`
		Diffuse  []float32 `yaml:"diffuse,flow"`
		Specular []float32 `yaml:"specular,flow"`
	}
	spotFile struct {
		Position    []float32 `yaml:"position,flow"`
		Direction   []float32 `yaml:"direction,flow"`
		Ambient     []float32 `yaml:"ambient,flow"`
		Diffuse     []float32 `yaml:"diffuse,flow"`
		Specular    []float32 `yaml:"specular,flow"`
		Constant    float32   `yaml:"constant"`
		Linear      float32   `yaml:"linear"`
		Quadratic   float32   `yaml:"quadratic"`
		CutOff      float32   `yaml:"cutoff"`
		OuterCutOff float32   `yaml:"outer_cutoff"`
	}
	objectFile struct {
		Name  string     `yaml:"name"`
		Parts []partFile `yaml:"parts"`
	}
	partFile struct {
		Name     string    `yaml:"name,omitempty"`
		Shape    string    `yaml:"shape"`
		Faces    string    `yaml:"faces,omitempty"`
		Scale    []float32 `yaml:"scale,flow,omitempty"`
		Rotation []float32 `yaml:"rotation,flow,omitempty"`
		Position []float32 `yaml:"position,flow,omitempty"`
		Texture  string    `yaml:"texture,omitempty"`
		Material string    `yaml:"material,omitempty"`
		Color    []float32 `yaml:"color,flow,omitempty"`
		UVScale  []float32 `yaml:"uv_scale,flow,omitempty"`
	}
)

// DecodeScene reads a YAML scene. Unknown fields are rejected. Omitted part
// scale defaults to (1,1,1) and omitted faces to all faces. A three component
// color gets alpha 1.
func DecodeScene(r io.Reader) (*Scene, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var sf sceneFile
	if err := dec.Decode(&sf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty scene file")
		}
		return nil, err
	}
	return sf.scene()
}

// LoadSceneFile decodes the YAML scene at path and validates it.
func LoadSceneFile(path string) (*Scene, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	s, err := DecodeScene(fp)
	if err != nil {
		return nil, fmt.Errorf("decoding scene %s: %w", path, err)
	}
	if err = s.Validate(); err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

// EncodeScene writes s as YAML.
func EncodeScene(w io.Writer, s *Scene) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newSceneFile(s)); err != nil {
		return err
	}
	return enc.Close()
}

// vecDecoder accumulates vector length errors so a whole file reports at once.
type vecDecoder struct {
	errs []error
}

func (d *vecDecoder) vec3(where string, v []float32) mgl32.Vec3 {
	if len(v) != 3 {
		d.errs = append(d.errs, fmt.Errorf("%s: want 3 components, got %d", where, len(v)))
		return mgl32.Vec3{}
	}
	return mgl32.Vec3{v[0], v[1], v[2]}
}

func (d *vecDecoder) vec3Or(where string, v []float32, def mgl32.Vec3) mgl32.Vec3 {
	if v == nil {
		return def
	}
	return d.vec3(where, v)
}

func (sf *sceneFile) scene() (*Scene, error) {
	var d vecDecoder
	s := &Scene{Name: sf.Name}
	for _, t := range sf.Textures {
		s.Textures = append(s.Textures, TextureSpec{Tag: t.Tag, File: t.File})
	}
	for _, m := range sf.Materials {
		where := "material " + m.Tag
		s.Materials = append(s.Materials, Material{
			Tag:       m.Tag,
			Diffuse:   d.vec3(where+" diffuse", m.Diffuse),
			Specular:  d.vec3(where+" specular", m.Specular),
			Shininess: m.Shininess,
		})
	}
	lf := &sf.Lighting
	if dl := lf.Directional; dl != nil {
		s.Lighting.Directional = &DirectionalLight{
			Direction: d.vec3("directional light direction", dl.Direction),
			Ambient:   d.vec3("directional light ambient", dl.Ambient),
			Diffuse:   d.vec3("directional light diffuse", dl.Diffuse),
			Specular:  d.vec3("directional light specular", dl.Specular),
		}
	}
	for i, p := range lf.Points {
		where := fmt.Sprintf("point light %d", i)
		s.Lighting.Points = append(s.Lighting.Points, PointLight{
			Position: d.vec3(where+" position", p.Position),
			Ambient:  d.vec3(where+" ambient", p.Ambient),
			Diffuse:  d.vec3(where+" diffuse", p.Diffuse),
			Specular: d.vec3(where+" specular", p.Specular),
		})
	}
	if sp := lf.Spot; sp != nil {
		s.Lighting.Spot = &SpotLight{
			Position:    d.vec3("spot light position", sp.Position),
			Direction:   d.vec3("spot light direction", sp.Direction),
			Ambient:     d.vec3("spot light ambient", sp.Ambient),
			Diffuse:     d.vec3("spot light diffuse", sp.Diffuse),
			Specular:    d.vec3("spot light specular", sp.Specular),
			Constant:    sp.Constant,
			Linear:      sp.Linear,
			Quadratic:   sp.Quadratic,
			CutOff:      sp.CutOff,
			OuterCutOff: sp.OuterCutOff,
		}
	}
	s.Lighting.Enabled = s.Lighting.hasLights()
	if lf.Enabled != nil {
		s.Lighting.Enabled = *lf.Enabled
	}
	for _, of := range sf.Objects {
		obj := Object{Name: of.Name, Parts: make([]Part, 0, len(of.Parts))}
		for i, pf := range of.Parts {
			where := fmt.Sprintf("%s/%d", of.Name, i)
			if pf.Name != "" {
				where = of.Name + "/" + pf.Name
			}
			obj.Parts = append(obj.Parts, d.part(where, &pf))
		}
		s.Objects = append(s.Objects, obj)
	}
	if err := errors.Join(d.errs...); err != nil {
		return nil, err
	}
	return s, nil
}

func (d *vecDecoder) part(where string, pf *partFile) Part {
	p := Part{Name: pf.Name}
	var err error
	p.Shape, err = shapes.ParseKind(pf.Shape)
	if err != nil {
		d.errs = append(d.errs, fmt.Errorf("%s: %w", where, err))
	}
	p.Faces, err = shapes.ParseFaces(pf.Faces)
	if err != nil {
		d.errs = append(d.errs, fmt.Errorf("%s: %w", where, err))
	}
	p.Transform = Transform{
		Scale:    d.vec3Or(where+" scale", pf.Scale, mgl32.Vec3{1, 1, 1}),
		Rotation: d.vec3Or(where+" rotation", pf.Rotation, mgl32.Vec3{}),
		Position: d.vec3Or(where+" position", pf.Position, mgl32.Vec3{}),
	}
	p.Surface = Surface{Texture: pf.Texture, Material: pf.Material}
	switch len(pf.Color) {
	case 0:
	case 3:
		p.Surface.Color = &mgl32.Vec4{pf.Color[0], pf.Color[1], pf.Color[2], 1}
	case 4:
		p.Surface.Color = &mgl32.Vec4{pf.Color[0], pf.Color[1], pf.Color[2], pf.Color[3]}
	default:
		d.errs = append(d.errs, fmt.Errorf("%s color: want 3 or 4 components, got %d", where, len(pf.Color)))
	}
	switch len(pf.UVScale) {
	case 0:
	case 2:
		p.Surface.UVScale = &mgl32.Vec2{pf.UVScale[0], pf.UVScale[1]}
	default:
		d.errs = append(d.errs, fmt.Errorf("%s uv_scale: want 2 components, got %d", where, len(pf.UVScale)))
	}
	return p
}

func newSceneFile(s *Scene) *sceneFile {
	sf := &sceneFile{Name: s.Name}
	for _, t := range s.Textures {
		sf.Textures = append(sf.Textures, textureFile{Tag: t.Tag, File: t.File})
	}
	for _, m := range s.Materials {
		sf.Materials = append(sf.Materials, materialFile{
			Tag:       m.Tag,
			Diffuse:   m.Diffuse[:],
			Specular:  m.Specular[:],
			Shininess: m.Shininess,
		})
	}
	l := &s.Lighting
	if l.Enabled != l.hasLights() {
		enabled := l.Enabled
		sf.Lighting.Enabled = &enabled
	}
	if dl := l.Directional; dl != nil {
		sf.Lighting.Directional = &directionalFile{
			Direction: dl.Direction[:],
			Ambient:   dl.Ambient[:],
			Diffuse:   dl.Diffuse[:],
			Specular:  dl.Specular[:],
		}
	}
	for i := range l.Points {
		p := &l.Points[i]
		sf.Lighting.Points = append(sf.Lighting.Points, pointFile{
			Position: p.Position[:],
			Ambient:  p.Ambient[:],
			Diffuse:  p.Diffuse[:],
			Specular: p.Specular[:],
		})
	}
	if sp := l.Spot; sp != nil {
		sf.Lighting.Spot = &spotFile{
			Position:    sp.Position[:],
			Direction:   sp.Direction[:],
			Ambient:     sp.Ambient[:],
			Diffuse:     sp.Diffuse[:],
			Specular:    sp.Specular[:],
			Constant:    sp.Constant,
			Linear:      sp.Linear,
			Quadratic:   sp.Quadratic,
			CutOff:      sp.CutOff,
			OuterCutOff: sp.OuterCutOff,
		}
	}
	for _, obj := range s.Objects {
		of := objectFile{Name: obj.Name}
		for i := range obj.Parts {
			of.Parts = append(of.Parts, newPartFile(&obj.Parts[i]))
		}
		sf.Objects = append(sf.Objects, of)
	}
	return sf
}

func newPartFile(p *Part) partFile {
	pf := partFile{
		Name:     p.Name,
		Shape:    p.Shape.String(),
		Texture:  p.Surface.Texture,
		Material: p.Surface.Material,
	}
	if p.Faces != 0 && p.Faces != shapes.AllFaces {
		pf.Faces = p.Faces.String()
	}
	t := &p.Transform
	if t.Scale != (mgl32.Vec3{1, 1, 1}) {
		pf.Scale = t.Scale[:]
	}
	if t.Rotation != (mgl32.Vec3{}) {
		pf.Rotation = t.Rotation[:]
	}
	if t.Position != (mgl32.Vec3{}) {
		pf.Position = t.Position[:]
	}
	if c := p.Surface.Color; c != nil {
		pf.Color = c[:]
	}
	if uv := p.Surface.UVScale; uv != nil {
		pf.UVScale = uv[:]
	}
	return pf
}
