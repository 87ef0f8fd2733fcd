package shader

import _ "embed"

// CircleSource is the WGSL module used by the GPU backend to fill circles.
// It expects the "camera" and "circle" includes.
//
//go:embed assets/circle.wgsl
var CircleSource string
