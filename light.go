package stilllife

import (
	"errors"
	"fmt"
	"strconv"

	math "github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DirectionalLight lights the whole scene from one direction, like the sun.
type DirectionalLight struct {
	Direction mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
}

// PointLight emits in all directions from Position.
type PointLight struct {
	Position mgl32.Vec3
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
}

// SpotLight emits a cone of light with smooth edges.
type SpotLight struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	// Attenuation is 1/(Constant + Linear*d + Quadratic*d²).
	Constant  float32
	Linear    float32
	Quadratic float32
	// CutOff and OuterCutOff are the inner and outer cone half-angles in degrees.
	// Intensity fades linearly between them.
	CutOff      float32
	OuterCutOff float32
}

// Lighting is the light setup of a scene.
type Lighting struct {
	// Enabled turns on the Phong lighting model. When false the shader
	// outputs unlit surface colors.
	Enabled     bool
	Directional *DirectionalLight
	Points      []PointLight
	Spot        *SpotLight
}

// hasLights reports whether any light source is configured.
func (l *Lighting) hasLights() bool {
	return l.Directional != nil || len(l.Points) > 0 || l.Spot != nil
}

// Validate checks the lights fit the shader.
func (l *Lighting) Validate() error {
	var errs []error
	if len(l.Points) > MaxPointLights {
		errs = append(errs, fmt.Errorf("%d point lights exceeds maximum of %d", len(l.Points), MaxPointLights))
	}
	if s := l.Spot; s != nil {
		if s.CutOff < 0 || s.OuterCutOff < s.CutOff {
			errs = append(errs, fmt.Errorf("spot light cutoff must satisfy 0 <= inner(%g) <= outer(%g)", s.CutOff, s.OuterCutOff))
		}
		if s.Constant < 0 || s.Linear < 0 || s.Quadratic < 0 {
			errs = append(errs, errors.New("negative spot light attenuation"))
		} else if s.Constant == 0 && s.Linear == 0 && s.Quadratic == 0 {
			errs = append(errs, errors.New("spot light attenuation is zero, need one of constant, linear or quadratic"))
		}
	}
	return errors.Join(errs...)
}

// Apply uploads the lights to u. Absent lights are explicitly deactivated.
func (l *Lighting) Apply(u Uniforms) error {
	if err := l.Validate(); err != nil {
		return err
	}
	u.SetBool(uniformLighting, l.Enabled)

	const dl = "directionalLight."
	if d := l.Directional; d != nil {
		u.SetVec3(dl+"direction", d.Direction)
		u.SetVec3(dl+"ambient", d.Ambient)
		u.SetVec3(dl+"diffuse", d.Diffuse)
		u.SetVec3(dl+"specular", d.Specular)
	}
	u.SetBool(dl+"bActive", l.Directional != nil)

	for i := 0; i < MaxPointLights; i++ {
		pl := "pointLights[" + strconv.Itoa(i) + "]."
		if i < len(l.Points) {
			p := &l.Points[i]
			u.SetVec3(pl+"position", p.Position)
			u.SetVec3(pl+"ambient", p.Ambient)
			u.SetVec3(pl+"diffuse", p.Diffuse)
			u.SetVec3(pl+"specular", p.Specular)
		}
		u.SetBool(pl+"bActive", i < len(l.Points))
	}

	const sl = "spotLight."
	if s := l.Spot; s != nil {
		u.SetVec3(sl+"position", s.Position)
		u.SetVec3(sl+"direction", s.Direction)
		u.SetVec3(sl+"ambient", s.Ambient)
		u.SetVec3(sl+"diffuse", s.Diffuse)
		u.SetVec3(sl+"specular", s.Specular)
		u.SetFloat(sl+"constant", s.Constant)
		u.SetFloat(sl+"linear", s.Linear)
		u.SetFloat(sl+"quadratic", s.Quadratic)
		// The shader compares against the cosine of the angle to the spot axis.
		u.SetFloat(sl+"cutOff", math.Cos(mgl32.DegToRad(s.CutOff)))
		u.SetFloat(sl+"outerCutOff", math.Cos(mgl32.DegToRad(s.OuterCutOff)))
	}
	u.SetBool(sl+"bActive", l.Spot != nil)
	return nil
}
