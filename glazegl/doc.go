// Package glazegl provides a minimal, predictable retained-mode 3D layer on
// top of Ebitengine.
//
// It is intended for visualization: meshes, simple scenes, and interactive
// views (orbit/zoom). It is not a game engine and does not provide a GPU
// abstraction of its own.
//
// Pipeline (fixed):
//
//	Scene → Transform → Projection → Backface cull → Depth sort → DrawTriangles batches.
//
// Vertex transformation runs on the CPU in float32; rasterization is delegated
// to (*ebiten.Image).DrawTriangles. The renderer reuses its internal buffers
// and avoids allocations in the render hot path.
package glazegl
