package renderer

import (
	"brickwall/internal/config"
	"brickwall/internal/logger"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Fixed attribute locations shared by every stage.
const (
	PositionAttrib uint32 = iota
	NormalAttrib
	TexCoordAttrib
	TangentAttrib
	BitangentAttrib
	attribCount
)

// attribSizes is the component count of each attribute, by location.
var attribSizes = [attribCount]int32{4, 3, 2, 3, 3}

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	Name           string
	vertexSource   string
	fragmentSource string
	program        uint32
	uniforms       *UniformCache
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

func (shader *Shader) IsCompiled() bool {
	return shader.program != 0
}

func (shader *Shader) Program() uint32 {
	return shader.program
}

// Compile builds and links the program. The returned error carries the GL info log.
func (shader *Shader) Compile() error {
	vs, err := genShader(shader.vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return fmt.Errorf("%s vertex shader: %w", shader.Name, err)
	}
	fs, err := genShader(shader.fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return fmt.Errorf("%s fragment shader: %w", shader.Name, err)
	}
	program, err := genShaderProgram(vs, fs)
	if err != nil {
		return fmt.Errorf("%s program: %w", shader.Name, err)
	}
	shader.program = program
	shader.uniforms = NewUniformCache(program)
	logger.Log.Info("Shader compiled", zap.String("name", shader.Name), zap.Uint32("program", program))
	return nil
}

func (shader *Shader) Delete() {
	if shader.program != 0 {
		gl.DeleteProgram(shader.program)
		shader.program = 0
	}
}

func (shader *Shader) SetVec3(name string, value mgl32.Vec3) {
	shader.uniforms.SetVec3(name, value.X(), value.Y(), value.Z())
}

func (shader *Shader) SetFloat(name string, value float32) {
	shader.uniforms.SetFloat(name, value)
}

func (shader *Shader) SetInt(name string, value int32) {
	shader.uniforms.SetInt(name, value)
}

func (shader *Shader) SetMat4(name string, value mgl32.Mat4) {
	shader.uniforms.SetMat4(name, value)
}

func genShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		log = strings.TrimRight(log, "\x00")
		logger.Log.Error("Failed to compile", zap.Uint32("shaderType", shaderType), zap.String("log", log))
		return 0, fmt.Errorf("compile failed: %s", log)
	}
	return shader, nil
}

func genShaderProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		log = strings.TrimRight(log, "\x00")
		logger.Log.Error("Failed to link program", zap.String("log", log))
		return 0, fmt.Errorf("link failed: %s", log)
	}
	return program, nil
}

// ShaderFor returns the uncompiled shader pair of a demo stage.
func ShaderFor(stage config.Stage) (Shader, error) {
	var vs, fs string
	switch stage {
	case config.StageDiffuse:
		vs, fs = basicVertexShaderSource, diffuseFragmentShaderSource
	case config.StageNormal:
		vs, fs = basicVertexShaderSource, normalFragmentShaderSource
	case config.StageLighting:
		vs, fs = basicVertexShaderSource, lightingFragmentShaderSource
	case config.StageParallax:
		vs, fs = basicVertexShaderSource, parallaxFragmentShaderSource
	case config.StageTangent:
		vs, fs = tangentVertexShaderSource, tangentFragmentShaderSource
	default:
		return Shader{}, fmt.Errorf("no shader for stage %s", stage)
	}
	return Shader{
		Name:           stage.String(),
		vertexSource:   vs + "\x00",
		fragmentSource: fs + "\x00",
	}, nil
}

var basicVertexShaderSource = `#version 330 core

layout(location = 0) in vec4 a_position;
layout(location = 1) in vec3 a_normal;
layout(location = 2) in vec2 a_tx_coord;

uniform mat4 projection;
uniform mat4 view;
uniform mat4 model;

out vec3 v_position;
out vec3 v_normal;
out vec2 v_tx_coord;

void main() {
    vec4 world = model * a_position;
    v_position = world.xyz;
    v_normal = mat3(model) * a_normal;
    v_tx_coord = a_tx_coord;
    gl_Position = projection * view * world;
}
`

var diffuseFragmentShaderSource = `#version 330 core

uniform sampler2D u_diffuse;
uniform float u_tiling;

in vec3 v_position;
in vec3 v_normal;
in vec2 v_tx_coord;

out vec4 FragColor;

void main() {
    FragColor = texture(u_diffuse, v_tx_coord * u_tiling);
}
`

// Shared GLSL: screen-space tangent frame, lighting terms and tone mapping.
var cotangentFrameSource = `
mat3 cotangentFrame(vec3 N, vec3 p, vec2 uv) {
    vec3 dp1 = dFdx(p);
    vec3 dp2 = dFdy(p);
    vec2 duv1 = dFdx(uv);
    vec2 duv2 = dFdy(uv);

    vec3 dp2perp = cross(dp2, N);
    vec3 dp1perp = cross(N, dp1);
    vec3 T = dp2perp * duv1.x + dp1perp * duv2.x;
    vec3 B = dp2perp * duv1.y + dp1perp * duv2.y;

    float invmax = inversesqrt(max(dot(T, T), dot(B, B)));
    return mat3(T * invmax, B * invmax, N);
}

vec3 perturbNormal(sampler2D map, mat3 tbn, vec2 uv) {
    vec3 m = texture(map, uv).rgb * 2.0 - 1.0;
    return normalize(tbn * m);
}
`

var lightingFunctionsSource = `
const float PI = 3.14159265;
const float GAMMA = 2.2;

float orenNayar(vec3 L, vec3 V, vec3 N, float roughness, float albedo) {
    float NdotL = dot(N, L);
    if (NdotL <= 0.0) {
        return 0.0;
    }
    float NdotV = dot(N, V);
    float LdotV = dot(L, V);

    float s = LdotV - NdotL * NdotV;
    float t = mix(1.0, max(NdotL, NdotV), step(0.0, s));

    float sigma2 = roughness * roughness;
    float A = 1.0 + sigma2 * (albedo / (sigma2 + 0.13) + 0.5 / (sigma2 + 0.33));
    float B = 0.45 * sigma2 / (sigma2 + 0.09);
    return albedo * NdotL * (A + B * s / t) / PI;
}

float phongSpecular(vec3 L, vec3 V, vec3 N, float shininess) {
    vec3 R = -reflect(L, N);
    return pow(max(0.0, dot(V, R)), shininess);
}

float attenuation(float radius, float falloff, float d) {
    float denom = d / radius + 1.0;
    float a = 1.0 / (denom * denom);
    return max((a - falloff) / (1.0 - falloff), 0.0);
}

vec2 parallaxOffset(vec2 uv, vec3 viewTangent, float height, float scale) {
    float h = height * scale - scale * 0.5;
    return uv + viewTangent.xy * h;
}

vec3 toLinear(vec3 c) {
    return pow(max(c, 0.0), vec3(GAMMA));
}

vec3 toGamma(vec3 c) {
    return pow(max(c, 0.0), vec3(1.0 / GAMMA));
}
`

var normalFragmentShaderSource = `#version 330 core

uniform sampler2D u_diffuse;
uniform sampler2D u_normal;
uniform vec3 u_light_position;
uniform vec3 u_light_color;
uniform float u_ambient;
uniform float u_tiling;

in vec3 v_position;
in vec3 v_normal;
in vec2 v_tx_coord;

out vec4 FragColor;
` + cotangentFrameSource + `
void main() {
    vec2 uv = v_tx_coord * u_tiling;
    vec3 N = normalize(v_normal);
    mat3 tbn = cotangentFrame(N, v_position, uv);
    N = perturbNormal(u_normal, tbn, uv);

    vec3 L = normalize(u_light_position - v_position);
    float lambert = max(dot(N, L), 0.0);

    vec4 diff = texture(u_diffuse, uv);
    FragColor = vec4(diff.rgb * (u_ambient + lambert * u_light_color), diff.a);
}
`

// lightingUniformsSource is the uniform block of the lit stages.
var lightingUniformsSource = `
uniform sampler2D u_diffuse;
uniform sampler2D u_normal;
uniform sampler2D u_specular;
uniform sampler2D u_displacement;

uniform vec3 u_light_position;
uniform vec3 u_light_color;
uniform float u_light_intensity;
uniform float u_light_radius;
uniform float u_light_falloff;
uniform vec3 u_eye;

uniform float u_shininess;
uniform float u_roughness;
uniform float u_albedo;
uniform float u_tiling;
uniform float u_height_scale;
uniform float u_ambient;
uniform float u_specular_strength;
`

// shadeSource finishes a lit fragment once N, V and uv are known.
var shadeSource = `
vec3 shade(vec3 N, vec3 V, vec2 uv) {
    vec3 toLight = u_light_position - v_position;
    vec3 L = normalize(toLight);
    float att = attenuation(u_light_radius, u_light_falloff, length(toLight));
    vec3 radiance = u_light_color * u_light_intensity * att;

    vec3 diffuse = toLinear(texture(u_diffuse, uv).rgb);
    float specMask = texture(u_specular, uv).r;

    float kd = orenNayar(L, V, N, u_roughness, u_albedo);
    float ks = phongSpecular(L, V, N, u_shininess) * specMask * u_specular_strength;

    vec3 color = diffuse * u_ambient + diffuse * kd * radiance + ks * radiance;
    return toGamma(color);
}
`

var lightingFragmentShaderSource = `#version 330 core
` + lightingUniformsSource + `
in vec3 v_position;
in vec3 v_normal;
in vec2 v_tx_coord;

out vec4 FragColor;
` + lightingFunctionsSource + cotangentFrameSource + shadeSource + `
void main() {
    vec2 uv = v_tx_coord * u_tiling;
    vec3 N = normalize(v_normal);
    N = perturbNormal(u_normal, cotangentFrame(N, v_position, uv), uv);
    vec3 V = normalize(u_eye - v_position);

    FragColor = vec4(shade(N, V, uv), 1.0);
}
`

var parallaxFragmentShaderSource = `#version 330 core
` + lightingUniformsSource + `
in vec3 v_position;
in vec3 v_normal;
in vec2 v_tx_coord;

out vec4 FragColor;
` + lightingFunctionsSource + cotangentFrameSource + shadeSource + `
void main() {
    vec2 uv = v_tx_coord * u_tiling;
    vec3 N = normalize(v_normal);
    mat3 tbn = cotangentFrame(N, v_position, uv);
    vec3 V = normalize(u_eye - v_position);

    vec3 viewTangent = normalize(transpose(tbn) * V);
    float height = texture(u_displacement, uv).r;
    uv = parallaxOffset(uv, viewTangent, height, u_height_scale);

    N = perturbNormal(u_normal, tbn, uv);
    FragColor = vec4(shade(N, V, uv), 1.0);
}
`

var tangentVertexShaderSource = `#version 330 core

layout(location = 0) in vec4 a_position;
layout(location = 1) in vec3 a_normal;
layout(location = 2) in vec2 a_tx_coord;
layout(location = 3) in vec3 a_tangent;
layout(location = 4) in vec3 a_bitangent;

uniform mat4 projection;
uniform mat4 view;
uniform mat4 model;

out vec3 v_position;
out vec3 v_normal;
out vec2 v_tx_coord;
out mat3 v_tbn;

void main() {
    vec4 world = model * a_position;
    mat3 m = mat3(model);

    vec3 N = normalize(m * a_normal);
    vec3 T = normalize(m * a_tangent);
    vec3 B = normalize(m * a_bitangent);

    v_position = world.xyz;
    v_normal = N;
    v_tx_coord = a_tx_coord;
    v_tbn = mat3(T, B, N);
    gl_Position = projection * view * world;
}
`

var tangentFragmentShaderSource = `#version 330 core
` + lightingUniformsSource + `
in vec3 v_position;
in vec3 v_normal;
in vec2 v_tx_coord;
in mat3 v_tbn;

out vec4 FragColor;
` + lightingFunctionsSource + shadeSource + `
void main() {
    vec2 uv = v_tx_coord * u_tiling;
    vec3 V = normalize(u_eye - v_position);

    vec3 viewTangent = vec3(dot(V, v_tbn[0]), dot(V, v_tbn[1]), dot(V, v_tbn[2]));
    float height = texture(u_displacement, uv).r;
    uv = parallaxOffset(uv, viewTangent, height, u_height_scale);

    vec3 m = texture(u_normal, uv).rgb * 2.0 - 1.0;
    vec3 N = normalize(v_tbn * m);
    FragColor = vec4(shade(N, V, uv), 1.0);
}
`
