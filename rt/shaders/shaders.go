package shaders

import (
	_ "embed"
)

//go:embed material.wgsl
var MaterialWGSL string

//go:embed material_flags.wgsl
var materialFlagsBody string

// MaterialFlagsWGSL is a compute shader that writes one light flag (0 or 1)
// per material. It includes MaterialWGSL.
var MaterialFlagsWGSL = MaterialWGSL + "\n" + materialFlagsBody

// FlagsWorkgroupSize matches @workgroup_size in material_flags.wgsl.
const FlagsWorkgroupSize = 64
