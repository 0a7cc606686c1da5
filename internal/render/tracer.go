package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/k0sti/crossworld/internal/core/bcf"
	"github.com/k0sti/crossworld/internal/core/cube"
)

// maxTextureWidth caps the BCF texture width to a widely supported
// device limit; longer streams wrap onto further rows
const maxTextureWidth = 8192

// Tracer renders a cube by walking its BCF bytes in a fragment shader:
// the octree is uploaded once as an R8UI texture and traversed per pixel
// with the same octant-index rule the CPU uses.
type Tracer struct {
	shader  *Shader
	texture uint32
	vao     uint32

	dataLen  int
	texWidth int
	depth    uint8
}

// NewTracer serializes the cube and uploads it to the GPU
func NewTracer(c *cube.Cube, depth uint8) (*Tracer, error) {
	data := bcf.Encode(c, depth)
	fmt.Printf("[tracer] BCF stream: %d bytes\n", len(data))

	shader, err := NewShader(tracerVertexSource, tracerFragmentSource)
	if err != nil {
		return nil, err
	}

	t := &Tracer{shader: shader, depth: depth}
	t.upload(data)

	// core profile requires a bound VAO even for attribute-less draws
	gl.GenVertexArrays(1, &t.vao)
	return t, nil
}

// Update re-serializes and re-uploads a changed cube
func (t *Tracer) Update(c *cube.Cube) {
	t.upload(bcf.Encode(c, t.depth))
}

func (t *Tracer) upload(data []byte) {
	width := len(data)
	if width > maxTextureWidth {
		width = maxTextureWidth
	}
	height := (len(data) + width - 1) / width

	// pad the last row
	padded := make([]byte, width*height)
	copy(padded, data)

	if t.texture == 0 {
		gl.GenTextures(1, &t.texture)
	}
	gl.BindTexture(gl.TEXTURE_2D, t.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8UI, int32(width), int32(height), 0,
		gl.RED_INTEGER, gl.UNSIGNED_BYTE, gl.Ptr(padded))

	t.dataLen = len(data)
	t.texWidth = width
}

// Draw traces the cube for the current frame
func (t *Tracer) Draw(viewProjection mgl32.Mat4, cameraPos mgl32.Vec3) {
	t.shader.Use()

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.texture)
	t.shader.SetInt("u_octree", 0)
	t.shader.SetInt("u_texWidth", int32(t.texWidth))
	t.shader.SetInt("u_rootOffset", int32(bcf.HeaderSize))
	t.shader.SetMat4("u_invViewProjection", viewProjection.Inv())
	t.shader.SetVec3("u_cameraPos", cameraPos)

	gl.BindVertexArray(t.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
}

// Delete releases GPU resources
func (t *Tracer) Delete() {
	gl.DeleteTextures(1, &t.texture)
	gl.DeleteVertexArrays(1, &t.vao)
	t.shader.Delete()
}

const tracerVertexSource = `#version 410 core
out vec2 v_ndc;
void main() {
    // fullscreen triangle from gl_VertexID
    float x = float((gl_VertexID & 1) << 2) - 1.0;
    float y = float((gl_VertexID & 2) << 1) - 1.0;
    v_ndc = vec2(x, y);
    gl_Position = vec4(x, y, 0.0, 1.0);
}
`

const tracerFragmentSource = `#version 410 core
in vec2 v_ndc;
out vec4 fragColor;

uniform usampler2D u_octree;
uniform int u_texWidth;
uniform int u_rootOffset;
uniform mat4 u_invViewProjection;
uniform vec3 u_cameraPos;

const int MAX_STEPS = 256;
const int MAX_DESCENT = 16;

uint fetchByte(uint off) {
    ivec2 p = ivec2(int(off) % u_texWidth, int(off) / u_texWidth);
    return texelFetch(u_octree, p, 0).r;
}

uint fetchU32(uint off) {
    return fetchByte(off)
        | (fetchByte(off + 1u) << 8)
        | (fetchByte(off + 2u) << 16)
        | (fetchByte(off + 3u) << 24);
}

// locate the leaf containing p, returning its material and bounds
uint descend(vec3 p, out vec3 lo, out vec3 hi) {
    lo = vec3(-1.0);
    hi = vec3(1.0);
    uint off = uint(u_rootOffset);
    for (int i = 0; i < MAX_DESCENT; i++) {
        uint tag = fetchByte(off);
        uint form = tag & 0xC0u;
        if (form == 0x00u) {
            return tag & 0x3Fu;
        }
        if (form == 0x40u) {
            return fetchByte(off + 1u);
        }
        vec3 c = 0.5 * (lo + hi);
        // zero biased to the positive side, matching the CPU octant rule
        bvec3 side = greaterThanEqual(p, c);
        uint oct = (side.x ? 4u : 0u) | (side.y ? 2u : 0u) | (side.z ? 1u : 0u);
        lo = mix(lo, c, vec3(side));
        hi = mix(c, hi, vec3(side));
        if (form == 0x80u) {
            return fetchByte(off + 1u + oct);
        }
        off = fetchU32(off + 1u + oct * 4u);
    }
    return 0u;
}

vec3 materialColor(uint id) {
    float h = fract(float(id) * 0.075);
    vec3 k = abs(fract(vec3(h) + vec3(0.0, 2.0 / 3.0, 1.0 / 3.0)) * 6.0 - 3.0) - 1.0;
    return 0.25 + 0.65 * clamp(k, 0.0, 1.0);
}

void main() {
    vec4 nearP = u_invViewProjection * vec4(v_ndc, -1.0, 1.0);
    vec4 farP = u_invViewProjection * vec4(v_ndc, 1.0, 1.0);
    vec3 origin = nearP.xyz / nearP.w;
    vec3 dir = normalize(farP.xyz / farP.w - origin);

    vec3 invDir = 1.0 / dir;
    vec3 t0 = (vec3(-1.0) - origin) * invDir;
    vec3 t1 = (vec3(1.0) - origin) * invDir;
    vec3 tminv = min(t0, t1);
    vec3 tmaxv = max(t0, t1);
    float tEnter = max(max(tminv.x, tminv.y), tminv.z);
    float tExit = min(min(tmaxv.x, tmaxv.y), tmaxv.z);
    if (tEnter > tExit || tExit < 0.0) {
        fragColor = vec4(0.08, 0.09, 0.11, 1.0);
        return;
    }

    float t = max(tEnter, 0.0) + 1e-4;
    vec3 lastNormal = vec3(0.0, 1.0, 0.0);
    if (tminv.x == tEnter) lastNormal = vec3(-sign(dir.x), 0.0, 0.0);
    else if (tminv.y == tEnter) lastNormal = vec3(0.0, -sign(dir.y), 0.0);
    else lastNormal = vec3(0.0, 0.0, -sign(dir.z));

    for (int i = 0; i < MAX_STEPS; i++) {
        if (t >= tExit) break;
        vec3 p = origin + dir * t;
        vec3 lo, hi;
        uint id = descend(p, lo, hi);
        if (id != 0u) {
            float light = 0.55 + 0.45 * max(dot(lastNormal, normalize(vec3(0.5, 0.8, 0.3))), 0.0);
            fragColor = vec4(materialColor(id) * light, 1.0);
            return;
        }
        // advance to the exit of this empty cell
        vec3 c0 = (lo - origin) * invDir;
        vec3 c1 = (hi - origin) * invDir;
        vec3 cmax = max(c0, c1);
        float cellExit = min(min(cmax.x, cmax.y), cmax.z);
        if (cmax.x == cellExit) lastNormal = vec3(-sign(dir.x), 0.0, 0.0);
        else if (cmax.y == cellExit) lastNormal = vec3(0.0, -sign(dir.y), 0.0);
        else lastNormal = vec3(0.0, 0.0, -sign(dir.z));
        t = cellExit + 1e-4;
    }
    fragColor = vec4(0.08, 0.09, 0.11, 1.0);
}
`
