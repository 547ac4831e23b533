package logfacade

import (
	"expvar"
	"os"
	"strconv"
	"sync"

	smerrors "github.com/Station-Manager/errors"
	"github.com/rs/zerolog"
)

// guardMu serializes guard checks made by this copy of the module. Another
// copy has its own mutex; expvar's registry is the state both copies share.
var guardMu sync.Mutex

// moduleGuard registers a module version under a process-wide key.
type moduleGuard struct {
	key     string
	version string
	lookup  func(string) (string, bool)
	diag    zerolog.Logger
}

// Initialize records this module's Version in the process-wide expvar
// registry (visible under /debug/vars). If a different version of the module
// already registered itself, Initialize fails with ErrVersionConflict unless
// LOGFACADE_ALLOW_CONFLICT_MODULES=1, in which case it warns on stderr and
// returns nil. Calling it again from the same version is a no-op.
//
// Importing this package imports expvar, which registers the /debug/vars
// handler on http.DefaultServeMux. Hosts serving the default mux publicly
// expose the process command line and memory statistics there as well.
func Initialize() error {
	return moduleGuard{
		key:     ModuleKey,
		version: Version,
		lookup:  os.LookupEnv,
		diag:    defaultRegistry.diag,
	}.check()
}

func (g moduleGuard) check() error {
	const op smerrors.Op = "logfacade.Initialize"

	guardMu.Lock()
	defer guardMu.Unlock()

	existing := expvar.Get(g.key)
	if existing == nil {
		expvar.NewString(g.key).Set(g.version)
		return nil
	}

	other := registeredVersion(existing)
	if other == g.version {
		return nil
	}

	if v, ok := g.lookup(EnvAllowConflictModules); ok && v == "1" {
		g.diag.Warn().
			Str("module", g.key).
			Str("loaded", other).
			Str("loading", g.version).
			Msg(errMsgVersionConflict + " This is treated as a warning because " + EnvAllowConflictModules + " is set.")
		return nil
	}

	return smerrors.New(op).Err(ErrVersionConflict).
		Msg(errMsgVersionConflict + " " + g.key + ": " + other + " and " + g.version + ". " + errMsgAllowConflictTip)
}

func registeredVersion(v expvar.Var) string {
	if s, ok := v.(*expvar.String); ok {
		return s.Value()
	}
	raw := v.String()
	if unquoted, err := strconv.Unquote(raw); err == nil {
		return unquoted
	}
	return raw
}
