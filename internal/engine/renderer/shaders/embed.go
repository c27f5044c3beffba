// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MeshVertexShader is the vertex shader for lit meshes.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader is the fragment shader for lit meshes.
//
//go:embed mesh.frag
var MeshFragmentShader string

// SpriteVertexShader is the vertex shader for camera-facing billboards.
//
//go:embed sprite.vert
var SpriteVertexShader string

// SpriteFragmentShader is the fragment shader for camera-facing billboards.
//
//go:embed sprite.frag
var SpriteFragmentShader string

// DepthVertexShader is the vertex shader for the shadow depth pass.
//
//go:embed depth.vert
var DepthVertexShader string

// DepthFragmentShader is the fragment shader for the shadow depth pass.
//
//go:embed depth.frag
var DepthFragmentShader string

// PresentVertexShader is the vertex shader that stretches the offscreen
// scene buffer over the window.
//
//go:embed present.vert
var PresentVertexShader string

// PresentFragmentShader is the fragment shader for the present pass.
//
//go:embed present.frag
var PresentFragmentShader string
