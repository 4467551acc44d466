package stilllife

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/cs330/stilllife/shapes"
	"github.com/cs330/stilllife/textures"
	"github.com/go-gl/mathgl/mgl32"
)

// Config configures a [Manager].
type Config struct {
	// TextureDir is prepended to relative texture file names.
	TextureDir string
	// FlipVertically stores images bottom row first as OpenGL texture coordinates expect.
	FlipVertically bool
	// MaxTextureSize downscales larger images. Zero keeps the original size.
	MaxTextureSize int
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the configuration used to render the shipped scenes.
func DefaultConfig() Config {
	return Config{
		TextureDir:     "textures",
		FlipVertically: true,
	}
}

// Manager prepares and renders scenes. It keeps the loaded textures and the
// material palette between frames. A Manager is not safe for concurrent use,
// which matches the single OpenGL context it drives.
type Manager struct {
	u         Uniforms
	meshes    MeshDrawer
	tex       TextureUploader
	cfg       Config
	log       *slog.Logger
	textures  TextureRegistry
	materials Palette
}

// NewManager returns a Manager issuing calls to the given collaborators.
func NewManager(u Uniforms, meshes MeshDrawer, tex TextureUploader, cfg Config) (*Manager, error) {
	if u == nil || meshes == nil || tex == nil {
		return nil, errors.New("nil uniforms, mesh drawer or texture uploader")
	} else if cfg.MaxTextureSize < 0 {
		return nil, errors.New("negative maximum texture size")
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Manager{u: u, meshes: meshes, tex: tex, cfg: cfg, log: log}, nil
}

// CreateTexture decodes the image file, uploads it and registers it under tag
// in the next texture slot.
func (m *Manager) CreateTexture(file, tag string) error {
	err := m.createTexture(file, tag)
	if err != nil {
		m.log.Warn("could not load texture", slog.String("tag", tag), slog.String("file", file), slog.Any("err", err))
	}
	return err
}

func (m *Manager) createTexture(file, tag string) error {
	// Check the registry first so a rejected texture is never uploaded.
	if m.textures.Slot(tag) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateTexture, tag)
	} else if m.textures.Full() {
		return fmt.Errorf("%w: cannot register %q", ErrTextureSlotsFull, tag)
	}
	path := file
	if m.cfg.TextureDir != "" && !filepath.IsAbs(file) {
		path = filepath.Join(m.cfg.TextureDir, file)
	}
	img, err := textures.Load(path, textures.Options{
		FlipVertically: m.cfg.FlipVertically,
		MaxSize:        m.cfg.MaxTextureSize,
	})
	if err != nil {
		return err
	}
	id, err := m.tex.UploadTexture(img)
	if err != nil {
		return fmt.Errorf("uploading %s: %w", path, err)
	}
	slot, err := m.textures.Register(tag, id)
	if err != nil {
		m.tex.DeleteTexture(id)
		return err
	}
	m.log.Info("loaded texture", slog.String("tag", tag), slog.String("file", path), slog.Int("slot", slot),
		slog.Int("width", img.Width), slog.Int("height", img.Height), slog.Int("channels", img.Channels))
	return nil
}

// LoadTextures creates every texture in specs and binds the loaded ones to
// their texture units. A texture that fails to load is skipped; the failures
// are returned joined.
func (m *Manager) LoadTextures(specs []TextureSpec) error {
	var errs []error
	for _, spec := range specs {
		if err := m.CreateTexture(spec.File, spec.Tag); err != nil {
			errs = append(errs, fmt.Errorf("texture %q: %w", spec.Tag, err))
		}
	}
	m.BindTextures()
	return errors.Join(errs...)
}

// BindTextures binds slot i to texture unit i for every loaded texture.
func (m *Manager) BindTextures() {
	for i := 0; i < m.textures.n; i++ {
		m.tex.BindTexture(i, m.textures.entries[i].id)
	}
}

// DestroyTextures releases every loaded texture and empties the texture slots.
func (m *Manager) DestroyTextures() {
	for i := 0; i < m.textures.n; i++ {
		m.tex.DeleteTexture(m.textures.entries[i].id)
	}
	m.textures.Reset()
}

// FindTextureID returns the id of the texture loaded under tag.
func (m *Manager) FindTextureID(tag string) (uint32, bool) { return m.textures.ID(tag) }

// FindTextureSlot returns the slot of the texture loaded under tag or -1.
func (m *Manager) FindTextureSlot(tag string) int { return m.textures.Slot(tag) }

// LoadedTextures returns the tags of the loaded textures in slot order.
func (m *Manager) LoadedTextures() []string { return m.textures.Tags() }

// DefineMaterials appends materials to the palette.
func (m *Manager) DefineMaterials(materials ...Material) {
	m.materials = append(m.materials, materials...)
}

// FindMaterial returns the first material defined with tag.
func (m *Manager) FindMaterial(tag string) (Material, bool) { return m.materials.Find(tag) }

// SetTransformations uploads the model matrix of t.
func (m *Manager) SetTransformations(t Transform) {
	m.u.SetMat4(uniformModel, t.Model())
}

// SetShaderColor disables texturing and sets the flat object color.
func (m *Manager) SetShaderColor(r, g, b, a float32) {
	m.u.SetBool(uniformUseTexture, false)
	m.u.SetVec4(uniformColor, mgl32.Vec4{r, g, b, a})
}

// SetShaderTexture enables texturing with the texture loaded under tag. If no
// such texture is loaded texturing is disabled, the object color is left as is
// and false is returned.
func (m *Manager) SetShaderTexture(tag string) bool {
	slot := m.textures.Slot(tag)
	if slot < 0 {
		m.log.Debug("texture not loaded", slog.String("tag", tag))
		m.u.SetBool(uniformUseTexture, false)
		return false
	}
	m.u.SetBool(uniformUseTexture, true)
	m.u.SetSampler2D(uniformTexture, int32(slot))
	return true
}

// SetTextureUVScale sets the texture coordinate multiplier.
func (m *Manager) SetTextureUVScale(u, v float32) {
	m.u.SetVec2(uniformUVScale, mgl32.Vec2{u, v})
}

// SetShaderMaterial uploads the material tagged tag. An undefined tag leaves
// the shader material unchanged and returns false.
func (m *Manager) SetShaderMaterial(tag string) bool {
	mat, ok := m.materials.Find(tag)
	if !ok {
		m.log.Debug("material not defined", slog.String("tag", tag))
		return false
	}
	m.u.SetVec3(uniformDiffuse, mat.Diffuse)
	m.u.SetVec3(uniformSpecular, mat.Specular)
	m.u.SetFloat(uniformShininess, mat.Shininess)
	return true
}

// SetupLights uploads the lighting configuration.
func (m *Manager) SetupLights(l *Lighting) error {
	return l.Apply(m.u)
}

// PrepareScene readies s for rendering, replacing any previously prepared
// scene. Textures that fail to load are logged and skipped and the parts using
// them fall back to their color. Any other failure is returned.
func (m *Manager) PrepareScene(s *Scene) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid scene %q: %w", s.Name, err)
	}
	m.DestroyTextures()
	m.materials = m.materials[:0]

	if err := m.LoadTextures(s.Textures); err != nil {
		for _, spec := range s.Textures {
			if m.textures.Slot(spec.Tag) < 0 {
				m.log.Warn("texture unavailable, parts use their color instead", slog.String("tag", spec.Tag))
			}
		}
	}
	m.DefineMaterials(s.Materials...)
	if err := m.SetupLights(&s.Lighting); err != nil {
		return err
	}
	// A mesh is loaded once no matter how many parts draw it.
	kinds := s.Shapes()
	if err := m.meshes.LoadMeshes(kinds...); err != nil {
		return fmt.Errorf("loading meshes: %w", err)
	}
	m.log.Debug("scene prepared", slog.String("scene", s.Name), slog.Int("objects", len(s.Objects)),
		slog.Int("parts", s.NumParts()), slog.Int("meshes", len(kinds)), slog.Int("textures", m.textures.Len()))
	return nil
}

// RenderScene draws every part of every object in order. A failed draw does
// not stop the rest of the scene from drawing; all failures are returned.
func (m *Manager) RenderScene(s *Scene) error {
	var errs []error
	for _, obj := range s.Objects {
		for i := range obj.Parts {
			if err := m.renderPart(&obj.Parts[i]); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", partName(obj, i), err))
			}
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) renderPart(p *Part) error {
	m.SetTransformations(p.Transform)
	uv := mgl32.Vec2{1, 1}
	if p.Surface.UVScale != nil {
		uv = *p.Surface.UVScale
	}
	m.SetTextureUVScale(uv[0], uv[1])

	textured := p.Surface.Texture != "" && m.SetShaderTexture(p.Surface.Texture)
	if !textured && p.Surface.Color != nil {
		c := *p.Surface.Color
		m.SetShaderColor(c[0], c[1], c[2], c[3])
	}
	if p.Surface.Material != "" {
		m.SetShaderMaterial(p.Surface.Material)
	}
	faces := p.Faces
	if faces == 0 {
		faces = shapes.AllFaces
	}
	return m.meshes.DrawMesh(p.Shape, faces)
}
