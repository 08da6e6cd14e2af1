package renderer

import (
	_ "embed"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/holomesh/surface"
)

//go:embed shaders/backdrop.fs
var backdropFS string

// BackdropRenderer paints a two-circle radial gradient with a fragment shader.
type BackdropRenderer struct {
	shader          rl.Shader
	screenHeightLoc int32
	innerCenterLoc  int32
	innerRadiusLoc  int32
	outerCenterLoc  int32
	outerRadiusLoc  int32
	innerColorLoc   int32
	outerColorLoc   int32

	initialized bool
	valid       bool
}

// NewBackdropRenderer creates a backdrop renderer. The shader is compiled on
// first use, after the window exists.
func NewBackdropRenderer() *BackdropRenderer {
	return &BackdropRenderer{}
}

// Init compiles the shader (must be called after raylib window is created).
func (b *BackdropRenderer) Init() {
	if b.initialized {
		return
	}
	b.initialized = true

	b.shader = rl.LoadShaderFromMemory("", backdropFS)
	b.valid = rl.IsShaderValid(b.shader)
	if !b.valid {
		return
	}

	b.screenHeightLoc = rl.GetShaderLocation(b.shader, "screenHeight")
	b.innerCenterLoc = rl.GetShaderLocation(b.shader, "innerCenter")
	b.innerRadiusLoc = rl.GetShaderLocation(b.shader, "innerRadius")
	b.outerCenterLoc = rl.GetShaderLocation(b.shader, "outerCenter")
	b.outerRadiusLoc = rl.GetShaderLocation(b.shader, "outerRadius")
	b.innerColorLoc = rl.GetShaderLocation(b.shader, "innerColor")
	b.outerColorLoc = rl.GetShaderLocation(b.shader, "outerColor")
}

// Draw fills the gradient's rectangle. screenH is the framebuffer height
// used to flip fragment coordinates.
func (b *BackdropRenderer) Draw(g surface.RadialGradient, screenH int) {
	if !b.initialized {
		b.Init()
	}
	x, y, w, h := int32(g.X), int32(g.Y), int32(g.W), int32(g.H)

	if !b.valid {
		// Without shaders, approximate with a gradient disc
		rl.DrawCircleGradient(int32(g.InnerX), int32(g.InnerY), float32(g.OuterR), toColor(g.Inner), toColor(g.Outer))
		return
	}

	rl.SetShaderValue(b.shader, b.screenHeightLoc, []float32{float32(screenH)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(b.shader, b.innerCenterLoc, []float32{float32(g.InnerX), float32(g.InnerY)}, rl.ShaderUniformVec2)
	rl.SetShaderValue(b.shader, b.innerRadiusLoc, []float32{float32(g.InnerR)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(b.shader, b.outerCenterLoc, []float32{float32(g.OuterX), float32(g.OuterY)}, rl.ShaderUniformVec2)
	rl.SetShaderValue(b.shader, b.outerRadiusLoc, []float32{float32(g.OuterR)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(b.shader, b.innerColorLoc, paintVec4(g.Inner), rl.ShaderUniformVec4)
	rl.SetShaderValue(b.shader, b.outerColorLoc, paintVec4(g.Outer), rl.ShaderUniformVec4)

	rl.BeginShaderMode(b.shader)
	rl.DrawRectangle(x, y, w, h, rl.White)
	rl.EndShaderMode()
}

// Unload frees resources.
func (b *BackdropRenderer) Unload() {
	if b.initialized && b.valid {
		rl.UnloadShader(b.shader)
	}
	b.initialized = false
	b.valid = false
}

// paintVec4 converts a paint to normalized RGBA shader input.
func paintVec4(p surface.Paint) []float32 {
	return []float32{
		float32(p.R) / 255.0,
		float32(p.G) / 255.0,
		float32(p.B) / 255.0,
		float32(p.A),
	}
}
