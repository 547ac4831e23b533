package logfacade

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry behind the package-level functions.
func Default() *Registry {
	return defaultRegistry
}

// Root returns the root facade of the default registry. It is usable
// without any setup and resolves to the fallback provider until a provider
// is installed.
func Root() *Facade {
	return defaultRegistry.Root()
}

// GetLogger returns a facade for category from the default registry.
func GetLogger(category string) *Facade {
	return defaultRegistry.GetLogger(category)
}

// SetProvider installs p in the default registry; nil clears it.
func SetProvider(p Provider) error {
	return defaultRegistry.SetProvider(p)
}

// SetProviderValue installs a runtime-typed provider in the default registry.
func SetProviderValue(v any) error {
	return defaultRegistry.SetProviderValue(v)
}

// GetProvider returns the provider installed in the default registry, or nil.
func GetProvider() Provider {
	return defaultRegistry.Provider()
}
