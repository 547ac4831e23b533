package logfacade

const (
	// Version is recorded by Initialize in the process-wide module registry.
	Version = "0.3.0"

	// ModuleKey identifies this module across copies loaded into one process.
	ModuleKey = "github.com/Station-Manager/logfacade"
)
