package shader

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Stage identifies a programmable pipeline stage inside a WGSL module.
type Stage int

const (
	// StageVertex is the vertex stage, declared with @vertex.
	StageVertex Stage = iota

	// StageFragment is the fragment stage, declared with @fragment.
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// shader is the implementation of the Shader interface.
type shader struct {
	key         string
	source      string
	entryPoints map[Stage]string
	layouts     map[int]wgpu.BindGroupLayoutDescriptor
	varNames    map[int]map[int]string
	module      *wgpu.ShaderModuleDescriptor

	includes map[string]string
}

// Shader is a pre-processed WGSL module holding a vertex and a fragment entry point, together with the
// bind group layouts reflected from its @group/@binding declarations.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used as the module label.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the pre-processed WGSL source code.
	//
	// Returns:
	//   - string: the WGSL source with all includes expanded
	Source() string

	// EntryPoint returns the function name declared for the given stage.
	//
	// Parameters:
	//   - stage: the pipeline stage
	//
	// Returns:
	//   - string: the entry point name, or "" if the module has none for that stage
	EntryPoint(stage Stage) string

	// BindGroupLayoutDescriptors retrieves the bind group layouts reflected from the source, keyed by group
	// index. Every entry is visible to both the vertex and fragment stages. Buffer entries carry the
	// MinBindingSize of their WGSL type; for runtime-sized arrays that is one element.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// Binding resolves a variable name declared in a group to its binding index.
	//
	// Parameters:
	//   - group: the bind group index
	//   - name: the WGSL variable name
	//
	// Returns:
	//   - int: the binding index, or -1
	//   - bool: true if the variable was found
	Binding(group int, name string) (int, bool)

	// Module returns the descriptor used to create the GPU shader module.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the module descriptor
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader pre-processes and reflects a WGSL module. The module must declare both a @vertex and a
// @fragment entry point.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - source: the raw WGSL source, possibly containing include directives
//   - options: functional options, e.g. WithInclude
//
// Returns:
//   - Shader: the parsed shader
//   - error: error if an include cannot be resolved or an entry point is missing
func NewShader(key string, source string, options ...ShaderBuilderOption) (Shader, error) {
	if source == "" {
		return nil, fmt.Errorf("shader %s: empty source", key)
	}
	s := &shader{
		key:         key,
		entryPoints: make(map[Stage]string, 2),
		includes:    make(map[string]string),
	}
	for _, opt := range options {
		opt(s)
	}

	processed, err := expandIncludes(source, s.includes)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	s.source = processed

	var missing []error
	for _, stage := range []Stage{StageVertex, StageFragment} {
		name := parseEntryPoint(s.source, stage)
		if name == "" {
			missing = append(missing, fmt.Errorf("no @%s entry point", stage))
			continue
		}
		s.entryPoints[stage] = name
	}
	if err := errors.Join(missing...); err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}

	s.layouts, s.varNames = parseBindGroupLayouts(s.source, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment)
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) EntryPoint(stage Stage) string {
	return s.entryPoints[stage]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.layouts
}

func (s *shader) Binding(group int, name string) (int, bool) {
	for binding, n := range s.varNames[group] {
		if n == name {
			return binding, true
		}
	}
	return -1, false
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
