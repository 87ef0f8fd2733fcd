package bind_group_provider

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithGroup sets the @group index the provider's bind group is set at.
//
// Parameters:
//   - group: the group index
//
// Returns:
//   - BindGroupProviderOption: a function that sets the group index for this provider
func WithGroup(group uint32) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.group = group
	}
}
