// Package renderer draws the scene graph with OpenGL: lit meshes with a
// shadow-mapped key light, then camera-facing sprites.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/diorama/internal/engine/camera"
	"github.com/Faultbox/diorama/internal/engine/framebuffer"
	"github.com/Faultbox/diorama/internal/engine/lighting"
	"github.com/Faultbox/diorama/internal/engine/renderer/shaders"
	"github.com/Faultbox/diorama/internal/engine/scene"
	"github.com/Faultbox/diorama/internal/engine/shader"
	"github.com/Faultbox/diorama/internal/engine/shadow"
	"github.com/Faultbox/diorama/internal/engine/texture"
	"github.com/Faultbox/diorama/internal/logger"
)

var log = logger.Component("renderer")

// MaxTextureSize caps uploaded textures; larger images are downsampled.
const MaxTextureSize = 2048

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	Shadows          bool
	ShadowResolution int32
	ClearColor       [3]float32
}

// gpuMesh is an uploaded geometry.
type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	meshProgram   *shader.Program
	spriteProgram *shader.Program
	depthProgram  *shader.Program
	// presentProgram stretches the offscreen target over the window.
	presentProgram *shader.Program

	shadowMap *shadow.Map
	// target is the offscreen scene buffer used while the render size is
	// below the output size.
	target *framebuffer.Framebuffer

	outputWidth, outputHeight int

	quadVAO, quadVBO uint32
	whiteTex         uint32

	meshes   map[*scene.Geometry]*gpuMesh
	textures map[image.Image]uint32

	lights *lighting.Lights
	draws  drawList
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:       cfg,
		outputWidth:  cfg.Width,
		outputHeight: cfg.Height,
		meshes:       make(map[*scene.Geometry]*gpuMesh),
		textures:     make(map[image.Image]uint32),
		lights:       lighting.NewLights(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	log.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	var err error
	if r.meshProgram, err = shader.New("mesh", shaders.MeshVertexShader, shaders.MeshFragmentShader); err != nil {
		return nil, err
	}
	if r.spriteProgram, err = shader.New("sprite", shaders.SpriteVertexShader, shaders.SpriteFragmentShader); err != nil {
		r.Close()
		return nil, err
	}
	if r.depthProgram, err = shader.New("depth", shaders.DepthVertexShader, shaders.DepthFragmentShader); err != nil {
		r.Close()
		return nil, err
	}
	if r.presentProgram, err = shader.New("present", shaders.PresentVertexShader, shaders.PresentFragmentShader); err != nil {
		r.Close()
		return nil, err
	}

	if cfg.Shadows {
		r.shadowMap, err = shadow.NewMap(cfg.ShadowResolution)
		if err != nil {
			log.Warn("shadows disabled", zap.Error(err))
			r.config.Shadows = false
		}
	}

	r.createQuad()
	r.createWhiteTexture()

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	log.Info("closing renderer")
	for g, m := range r.meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
		delete(r.meshes, g)
	}
	for img, id := range r.textures {
		gl.DeleteTextures(1, &id)
		delete(r.textures, img)
	}
	if r.whiteTex != 0 {
		gl.DeleteTextures(1, &r.whiteTex)
	}
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
		gl.DeleteBuffers(1, &r.quadVBO)
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
	}
	if r.target != nil {
		r.target.Destroy()
	}
	for _, p := range []*shader.Program{r.meshProgram, r.spriteProgram, r.depthProgram, r.presentProgram} {
		if p != nil {
			p.Delete()
		}
	}
}

// Resize sets the render resolution in pixels. When it is below the
// output size the scene is drawn offscreen and scaled up.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetOutputSize sets the drawable size of the window in pixels.
func (r *Renderer) SetOutputSize(width, height int) {
	r.outputWidth = width
	r.outputHeight = height
}

// ReadPixels reads the finished frame from the back buffer as bottom-up
// RGBA rows. Call it after Render and before the buffers are swapped.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.outputWidth, r.outputHeight
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.ReadBuffer(gl.BACK)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// offscreen reports whether a render size needs the scaled offscreen path.
func offscreen(renderW, renderH, outputW, outputH int) bool {
	if renderW <= 0 || renderH <= 0 || outputW <= 0 || outputH <= 0 {
		return false
	}
	return renderW != outputW || renderH != outputH
}

// beginTarget binds the framebuffer the scene is drawn into and reports
// whether it is the offscreen one.
func (r *Renderer) beginTarget() bool {
	w, h := r.config.Width, r.config.Height
	if !offscreen(w, h, r.outputWidth, r.outputHeight) {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, int32(w), int32(h))
		return false
	}
	if r.target == nil {
		fb, err := framebuffer.New(int32(w), int32(h))
		if err != nil {
			log.Warn("offscreen target unavailable", zap.Error(err))
			r.config.Width, r.config.Height = r.outputWidth, r.outputHeight
			gl.Viewport(0, 0, int32(r.outputWidth), int32(r.outputHeight))
			return false
		}
		r.target = fb
	}
	r.target.Resize(int32(w), int32(h))
	r.target.Bind()
	return true
}

// Render draws root as seen from cam.
func (r *Renderer) Render(root *scene.Node, cam *camera.Perspective) {
	r.lights.Gather(root)
	r.draws.build(root, cam.ViewMatrix())

	lightViewProj, shadowLight := r.renderShadowPass(root)
	scaled := r.beginTarget()

	c := r.config.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	viewProj := cam.ViewProjection()
	r.beginMeshes(viewProj, cam.Position, lightViewProj, shadowLight)

	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	for _, d := range r.draws.opaque {
		r.drawMesh(d)
	}

	gl.Enable(gl.BLEND)
	right, up := cam.Basis()
	meshActive := true
	for _, d := range r.draws.transparent {
		if d.sprite != nil {
			if meshActive {
				r.beginSprites(viewProj, right, up)
				meshActive = false
			}
			r.drawSprite(d)
			continue
		}
		if !meshActive {
			r.beginMeshes(viewProj, cam.Position, lightViewProj, shadowLight)
			meshActive = true
		}
		r.drawMesh(d)
	}

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)

	if scaled {
		r.present()
	}
}

// present draws the offscreen target over the whole window. A textured
// quad is used rather than a framebuffer blit, which is invalid when the
// window is multisampled.
func (r *Renderer) present() {
	r.target.Unbind()
	gl.Viewport(0, 0, int32(r.outputWidth), int32(r.outputHeight))
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	r.presentProgram.Use()
	r.presentProgram.SetInt("uTexture", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.target.ColorTexture())
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

// renderShadowPass draws the shadow casters into the shadow map from the
// first shadow casting directional light. It returns that light's
// view-projection and index, or -1 when no shadow map was rendered.
func (r *Renderer) renderShadowPass(root *scene.Node) (mgl32.Mat4, int32) {
	if !r.config.Shadows || !r.shadowMap.IsValid() {
		return mgl32.Ident4(), -1
	}

	index := int32(-1)
	var caster lighting.DirectionalLight
	for i, d := range r.lights.Directional {
		if d.CastShadow {
			index, caster = int32(i), d
			break
		}
	}
	if index < 0 {
		return mgl32.Ident4(), -1
	}

	var lightViewProj mgl32.Mat4
	if src := caster.Source; src != nil && shadow.HasVolume(src.Shadow) {
		lightViewProj = shadow.LightMatrix(caster.Position, src.Target, src.Shadow)
	} else {
		lightViewProj = shadow.FitMatrix(mgl32.Vec3(caster.Direction), scene.Bounds(root))
	}

	r.shadowMap.Bind()
	r.depthProgram.Use()
	r.depthProgram.SetMat4("uLightViewProj", lightViewProj)
	for _, d := range r.draws.casters {
		m := r.upload(d.mesh.Geometry)
		if m == nil {
			continue
		}
		r.depthProgram.SetMat4("uModel", d.world)
		gl.BindVertexArray(m.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
	}
	gl.BindVertexArray(0)
	r.shadowMap.Unbind()

	return lightViewProj, index
}

func (r *Renderer) beginMeshes(viewProj mgl32.Mat4, camPos mgl32.Vec3, lightViewProj mgl32.Mat4, shadowLight int32) {
	p := r.meshProgram
	p.Use()
	p.SetMat4("uViewProj", viewProj)
	p.SetVec3("uCameraPos", camPos)
	p.SetMat4("uLightViewProj", lightViewProj)

	l := r.lights
	p.SetVec3("uSkyColor", l.SkyColor)
	p.SetVec3("uGroundColor", l.GroundColor)

	dirs := make([]float32, 0, lighting.MaxDirectionalLights*3)
	colors := make([]float32, 0, lighting.MaxDirectionalLights*3)
	for _, d := range l.Directional {
		dirs = append(dirs, d.Direction[:]...)
		colors = append(colors, d.Color[:]...)
	}
	p.SetInt("uDirCount", int32(len(l.Directional)))
	p.SetVec3Array("uDirDirections", dirs)
	p.SetVec3Array("uDirColors", colors)

	count := l.Points.Count
	p.SetInt("uPointCount", int32(count))
	if count > 0 {
		p.SetVec3Array("uPointPositions", l.Points.GetPositions()[:count*3])
		p.SetVec3Array("uPointColors", l.Points.GetColors()[:count*3])
		p.SetFloatArray("uPointRanges", l.Points.GetRanges()[:count])
		p.SetFloatArray("uPointDecays", l.Points.GetDecays()[:count])
	}

	shadows := shadowLight >= 0
	p.SetBool("uShadowsEnabled", shadows)
	p.SetInt("uShadowLight", shadowLight)
	p.SetInt("uMap", 0)
	p.SetInt("uShadowMap", 1)
	if shadows {
		bias := float32(0.0005)
		if src := l.Directional[shadowLight].Source; src != nil && src.Shadow.Bias != 0 {
			bias = max(bias, -src.Shadow.Bias)
		}
		p.SetFloat("uShadowBias", bias)
		r.shadowMap.BindTexture(gl.TEXTURE1)
	}
}

func (r *Renderer) drawMesh(d drawItem) {
	m := r.upload(d.mesh.Geometry)
	if m == nil {
		return
	}
	mat := d.mesh.Material
	p := r.meshProgram

	p.SetMat4("uModel", d.world)
	nm := normalMatrix(d.world)
	gl.UniformMatrix3fv(p.Uniform("uNormalMatrix"), 1, false, &nm[0])

	p.SetVec3("uColor", mat.Color)
	p.SetVec3("uEmissive", mat.Emissive.Mul(mat.EmissiveIntensity))
	p.SetFloat("uRoughness", mat.Roughness)
	p.SetFloat("uMetalness", mat.Metalness)
	p.SetFloat("uOpacity", mat.Opacity)
	p.SetBool("uUnlit", mat.Unlit)
	p.SetBool("uReceiveShadow", d.node.ReceiveShadow)

	p.SetBool("uHasMap", mat.Map != nil)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture(mat.Map, gl.REPEAT))

	if mat.Transparent {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.DepthMask(mat.DepthWrite)
	}
	if mat.DoubleSided || mat.Transparent {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}

	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
}

func (r *Renderer) beginSprites(viewProj mgl32.Mat4, right, up mgl32.Vec3) {
	p := r.spriteProgram
	p.Use()
	p.SetMat4("uViewProj", viewProj)
	p.SetVec3("uCamRight", right)
	p.SetVec3("uCamUp", up)
	p.SetInt("uTexture", 0)

	gl.Disable(gl.CULL_FACE)
	gl.DepthMask(false)
	gl.BindVertexArray(r.quadVAO)
}

func (r *Renderer) drawSprite(d drawItem) {
	mat := d.sprite.Material
	p := r.spriteProgram

	scale := d.node.WorldScale()
	p.SetVec3("uWorldPos", d.node.WorldPosition())
	p.SetVec2("uSize", mgl32.Vec2{scale.X(), scale.Y()})
	p.SetFloat("uRotation", mat.Rotation)
	p.SetVec3("uColor", mat.Color)
	p.SetFloat("uOpacity", mat.Opacity)

	if mat.Blend == scene.BlendAdditive {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture(mat.Map, gl.CLAMP_TO_EDGE))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// upload returns the GPU copy of g, creating it on first use.
func (r *Renderer) upload(g *scene.Geometry) *gpuMesh {
	if m, ok := r.meshes[g]; ok {
		return m
	}
	if len(g.Positions) == 0 || len(g.Indices) == 0 {
		r.meshes[g] = nil
		return nil
	}

	vertices := interleave(g)
	m := &gpuMesh{indexCount: int32(len(g.Indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*vertexSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexSize, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexSize, 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, vertexSize, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, unsafe.Pointer(&g.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	r.meshes[g] = m
	return m
}

// texture returns the GPU texture for img, uploading it on first use. A nil
// image maps to a white texel.
func (r *Renderer) texture(img image.Image, wrap int32) uint32 {
	if img == nil {
		return r.whiteTex
	}
	if id, ok := r.textures[img]; ok {
		return id
	}

	rgba := texture.ToRGBA(texture.Fit(img, MaxTextureSize))
	b := rgba.Bounds()

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, 8.0)

	r.textures[img] = id
	log.Debug("texture uploaded", zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
	return id
}

func (r *Renderer) createWhiteTexture() {
	gl.GenTextures(1, &r.whiteTex)
	gl.BindTexture(gl.TEXTURE_2D, r.whiteTex)
	white := []uint8{255, 255, 255, 255}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(white))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
}

// createQuad builds the unit billboard: two triangles centered on the
// origin, expanded along the camera axes in the vertex shader.
func (r *Renderer) createQuad() {
	vertices := []float32{
		// Corner (XY), TexCoord (UV)
		-0.5, -0.5, 0.0, 1.0,
		0.5, -0.5, 1.0, 1.0,
		0.5, 0.5, 1.0, 0.0,
		-0.5, -0.5, 0.0, 1.0,
		0.5, 0.5, 1.0, 0.0,
		-0.5, 0.5, 0.0, 0.0,
	}

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.BindVertexArray(r.quadVAO)

	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}
