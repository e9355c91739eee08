package renderer

import (
	"brickwall/internal/logger"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// GPUMesh is a Mesh uploaded to GL: one VAO with one VBO per attribute.
type GPUMesh struct {
	VAO   uint32
	VBOs  [attribCount]uint32
	Count int32
}

// UploadMesh copies every attribute of m into its own static buffer.
func UploadMesh(m *Mesh) *GPUMesh {
	g := &GPUMesh{Count: int32(m.Count())}
	gl.GenVertexArrays(1, &g.VAO)
	gl.BindVertexArray(g.VAO)

	gl.GenBuffers(int32(attribCount), &g.VBOs[0])
	for loc, data := range m.Flatten() {
		gl.BindBuffer(gl.ARRAY_BUFFER, g.VBOs[loc])
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
		gl.VertexAttribPointer(uint32(loc), attribSizes[loc], gl.FLOAT, false, 0, gl.PtrOffset(0))
		gl.EnableVertexAttribArray(uint32(loc))
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return g
}

func (g *GPUMesh) Delete() {
	gl.DeleteBuffers(int32(attribCount), &g.VBOs[0])
	gl.DeleteVertexArrays(1, &g.VAO)
}

// OpenGLRenderer is the per-demo pipeline: one shader, one mesh, one material.
type OpenGLRenderer struct {
	Shader   Shader
	Mesh     *Mesh
	Material *Material
	Textures *TextureManager

	gpuMesh  *GPUMesh
	defaults [4]uint32 // stand-in texture per unit
}

// NewOpenGLRenderer prepares a pipeline; nothing touches GL until Init.
func NewOpenGLRenderer(shader Shader, mesh *Mesh, material *Material, textures *TextureManager) *OpenGLRenderer {
	return &OpenGLRenderer{
		Shader:   shader,
		Mesh:     mesh,
		Material: material,
		Textures: textures,
	}
}

func (rend *OpenGLRenderer) Init(width, height int32) error {
	if rend.Mesh == nil || rend.Material == nil || rend.Textures == nil {
		return fmt.Errorf("renderer needs a mesh, a material and a texture manager")
	}
	if !rend.Shader.IsCompiled() {
		if err := rend.Shader.Compile(); err != nil {
			return err
		}
	}
	if err := rend.Textures.UploadDefaults(); err != nil {
		return fmt.Errorf("default textures: %w", err)
	}
	rend.defaults = [4]uint32{
		DiffuseUnit:      rend.Textures.Lookup(DefaultWhiteTexture),
		NormalUnit:       rend.Textures.Lookup(DefaultNormalTexture),
		SpecularUnit:     rend.Textures.Lookup(DefaultWhiteTexture),
		DisplacementUnit: rend.Textures.Lookup(DefaultHeightTexture),
	}

	rend.gpuMesh = UploadMesh(rend.Mesh)

	if Debug {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	gl.Viewport(0, 0, width, height)

	// Sampler units never change, so bind them once.
	rend.Shader.Use()
	rend.Shader.SetInt("u_diffuse", int32(DiffuseUnit))
	rend.Shader.SetInt("u_normal", int32(NormalUnit))
	rend.Shader.SetInt("u_specular", int32(SpecularUnit))
	rend.Shader.SetInt("u_displacement", int32(DisplacementUnit))

	logger.Log.Info("OpenGL pipeline initialized",
		zap.String("shader", rend.Shader.Name),
		zap.Int32("vertices", rend.gpuMesh.Count))
	return nil
}

// Draw clears the frame and issues the single draw call of the demo.
func (rend *OpenGLRenderer) Draw(camera *OrbitCamera, light *Light, model mgl32.Mat4) {
	gl.ClearColor(ClearColorR, ClearColorG, ClearColorB, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if DepthTestEnabled {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	shader := &rend.Shader
	shader.Use()
	shader.SetMat4("projection", camera.GetProjectionMatrix())
	shader.SetMat4("view", camera.GetViewMatrix())
	shader.SetMat4("model", model)
	shader.SetVec3("u_eye", camera.Position)

	if light != nil {
		shader.SetVec3("u_light_position", light.Position)
		shader.SetVec3("u_light_color", light.Color)
		shader.SetFloat("u_light_intensity", light.Intensity)
		shader.SetFloat("u_light_radius", light.Radius)
		shader.SetFloat("u_light_falloff", light.Falloff)
	}

	rend.setMaterialUniforms(shader)
	rend.bindTextures()

	gl.BindVertexArray(rend.gpuMesh.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, rend.gpuMesh.Count)
	gl.BindVertexArray(0)
}

func (rend *OpenGLRenderer) setMaterialUniforms(shader *Shader) {
	p := rend.Material.Params
	shader.SetFloat("u_shininess", p.Shininess)
	shader.SetFloat("u_roughness", p.Roughness)
	shader.SetFloat("u_albedo", p.Albedo)
	shader.SetFloat("u_tiling", p.Tiling)
	shader.SetFloat("u_height_scale", p.HeightScale)
	shader.SetFloat("u_ambient", p.Ambient)
	shader.SetFloat("u_specular_strength", p.SpecularStrength)
}

func (rend *OpenGLRenderer) bindTextures() {
	for unit, id := range rend.Material.textureUnits() {
		if id == 0 {
			id = rend.defaults[unit]
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, id)
	}
	gl.ActiveTexture(gl.TEXTURE0)
}

// UpdateViewport updates the OpenGL viewport to match the current window size
func (rend *OpenGLRenderer) UpdateViewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

func (rend *OpenGLRenderer) Cleanup() {
	if rend.gpuMesh != nil {
		rend.gpuMesh.Delete()
		rend.gpuMesh = nil
	}
	rend.Shader.Delete()
	rend.Textures.Clear()
}
