package shader

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// typeLayout is the byte size and alignment of a WGSL host-shareable type.
//
// Reference: https://www.w3.org/TR/WGSL/#alignment-and-size
type typeLayout struct {
	size  uint64
	align uint64
}

// primitiveLayouts covers the scalar, vector and matrix types the renderer's shaders use.
var primitiveLayouts = map[string]typeLayout{
	"f32": {4, 4}, "i32": {4, 4}, "u32": {4, 4},

	"vec2<f32>": {8, 8}, "vec2f": {8, 8},
	"vec3<f32>": {12, 16}, "vec3f": {12, 16},
	"vec4<f32>": {16, 16}, "vec4f": {16, 16},
	"vec2<u32>": {8, 8}, "vec2u": {8, 8},
	"vec4<u32>": {16, 16}, "vec4u": {16, 16},

	"mat3x3<f32>": {48, 16},
	"mat4x4<f32>": {64, 16},
}

var (
	vertexEntryRegex   = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)

	// structRegex captures a struct's name and body.
	structRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	// memberRegex captures a struct member's name and type, skipping leading attributes.
	memberRegex = regexp.MustCompile(`^(?:@\w+(?:\([^)]*\))?\s*)*(\w+)\s*:\s*(.+)$`)

	// bindingRegex captures group, binding, address space, name and type of a resource declaration,
	// e.g. `@group(0) @binding(1) var<storage, read> circles: array<CircleInstance>;`
	bindingRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

// parseEntryPoint returns the name of the first function declared for stage, or "".
func parseEntryPoint(source string, stage Stage) string {
	re := vertexEntryRegex
	if stage == StageFragment {
		re = fragmentEntryRegex
	}
	if m := re.FindStringSubmatch(stripComments(source)); m != nil {
		return m[1]
	}
	return ""
}

// parseBindGroupLayouts reflects the buffer bindings declared in source into layout descriptors keyed by
// group, entries sorted by binding. Handle types (textures, samplers) are not reflected.
//
// Parameters:
//   - source: the WGSL source
//   - visibility: the stages every entry is visible to
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: the layouts keyed by group index
//   - map[int]map[int]string: variable names keyed by group then binding
func parseBindGroupLayouts(source string, visibility wgpu.ShaderStage) (map[int]wgpu.BindGroupLayoutDescriptor, map[int]map[int]string) {
	cleaned := stripComments(source)
	structs := structLayouts(cleaned)

	entries := make(map[int][]wgpu.BindGroupLayoutEntry)
	names := make(map[int]map[int]string)

	for _, m := range bindingRegex.FindAllStringSubmatch(cleaned, -1) {
		group, _ := strconv.Atoi(m[1])
		binding, _ := strconv.Atoi(m[2])
		space, name, typeName := strings.TrimSpace(m[3]), m[4], strings.TrimSpace(m[5])

		var bindingType wgpu.BufferBindingType
		switch {
		case space == "uniform":
			bindingType = wgpu.BufferBindingTypeUniform
		case strings.HasPrefix(space, "storage") && strings.Contains(space, "read_write"):
			bindingType = wgpu.BufferBindingTypeStorage
		case strings.HasPrefix(space, "storage"):
			bindingType = wgpu.BufferBindingTypeReadOnlyStorage
		default:
			continue
		}

		entry := wgpu.BindGroupLayoutEntry{
			Binding:    uint32(binding),
			Visibility: visibility,
		}
		entry.Buffer.Type = bindingType
		if l, ok := resolveLayout(typeName, structs); ok {
			entry.Buffer.MinBindingSize = l.size
		}
		entries[group] = append(entries[group], entry)

		if names[group] == nil {
			names[group] = make(map[int]string)
		}
		names[group][binding] = name
	}

	out := make(map[int]wgpu.BindGroupLayoutDescriptor, len(entries))
	for g, es := range entries {
		slices.SortFunc(es, func(a, b wgpu.BindGroupLayoutEntry) int {
			return int(a.Binding) - int(b.Binding)
		})
		out[g] = wgpu.BindGroupLayoutDescriptor{Entries: es}
	}
	return out, names
}

// structLayouts computes the layout of every struct in source. Structs may reference structs declared
// before or after them; unresolvable structs are left out.
func structLayouts(source string) map[string]typeLayout {
	type member struct{ name, typeName string }
	pending := make(map[string][]member)
	for _, m := range structRegex.FindAllStringSubmatch(source, -1) {
		var members []member
		for _, field := range splitTopLevel(m[2]) {
			fm := memberRegex.FindStringSubmatch(strings.TrimSpace(field))
			if fm == nil {
				continue
			}
			members = append(members, member{fm[1], strings.TrimSpace(fm[2])})
		}
		pending[m[1]] = members
	}

	resolved := make(map[string]typeLayout, len(pending))
	for progress := true; progress && len(pending) > 0; {
		progress = false
		for name, members := range pending {
			var offset, align uint64 = 0, 1
			ok := true
			for _, mem := range members {
				l, found := resolveLayout(mem.typeName, resolved)
				if !found {
					ok = false
					break
				}
				offset = roundUp(l.align, offset) + l.size
				align = max(align, l.align)
			}
			if !ok {
				continue
			}
			resolved[name] = typeLayout{size: roundUp(align, offset), align: align}
			delete(pending, name)
			progress = true
		}
	}
	return resolved
}

// resolveLayout returns the layout of a primitive, known struct or array type.
// A runtime-sized array resolves to one element stride.
func resolveLayout(typeName string, structs map[string]typeLayout) (typeLayout, bool) {
	if l, ok := primitiveLayouts[typeName]; ok {
		return l, true
	}
	if l, ok := structs[typeName]; ok {
		return l, true
	}

	inner, ok := strings.CutPrefix(typeName, "array<")
	if !ok || !strings.HasSuffix(inner, ">") {
		return typeLayout{}, false
	}
	parts := splitTopLevel(strings.TrimSuffix(inner, ">"))
	elem, ok := resolveLayout(strings.TrimSpace(parts[0]), structs)
	if !ok {
		return typeLayout{}, false
	}
	stride := roundUp(elem.align, elem.size)
	if len(parts) == 1 {
		return typeLayout{size: stride, align: elem.align}, true
	}
	n, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return typeLayout{}, false
	}
	return typeLayout{size: n * stride, align: elem.align}, true
}

func roundUp(align, v uint64) uint64 {
	if align == 0 {
		return v
	}
	return (v + align - 1) &^ (align - 1)
}

// splitTopLevel splits s at commas that are not nested inside <...>. Empty trailing parts are dropped.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth = max(depth-1, 0)
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if tail := s[start:]; strings.TrimSpace(tail) != "" || len(parts) == 0 {
		parts = append(parts, tail)
	}
	return parts
}

// stripComments removes line comments and nested block comments.
func stripComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		if i+1 < len(source) {
			switch {
			case source[i] == '/' && source[i+1] == '*':
				depth++
				i++
				continue
			case source[i] == '*' && source[i+1] == '/' && depth > 0:
				depth--
				i++
				continue
			case depth == 0 && source[i] == '/' && source[i+1] == '/':
				for i < len(source) && source[i] != '\n' {
					i++
				}
				if i < len(source) {
					sb.WriteByte('\n')
				}
				continue
			}
		}
		if depth == 0 {
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}
