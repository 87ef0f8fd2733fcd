package shader

// ShaderBuilderOption is a functional option applied to a shader during NewShader.
type ShaderBuilderOption func(*shader)

// WithInclude registers WGSL text that replaces every `//@dust:include <name>` line in the source.
// Used to share struct definitions between Go GPU types and shaders.
//
// Parameters:
//   - name: the include name referenced by the directive
//   - source: the WGSL text to inject
//
// Returns:
//   - ShaderBuilderOption: a function that registers the include
func WithInclude(name, source string) ShaderBuilderOption {
	return func(s *shader) {
		s.includes[name] = source
	}
}
