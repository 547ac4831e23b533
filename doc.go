// Package logfacade lets code obtain named loggers without binding to a
// concrete logging backend, and lets the host process swap that backend at
// runtime without invalidating loggers that were already handed out.
//
// Key features
//   - Facades are cheap handles holding a category name; they re-resolve the
//     real logger from the registration slot and cache it only while the
//     installed provider stays the same
//   - A process-wide fallback provider (zerolog, configured from LOG_LEVEL and
//     LOG_CONFIG) serves every facade until a provider is installed
//   - Installing or clearing a provider takes effect on the next call of every
//     outstanding facade, with no invalidation broadcast
//   - An explicit Initialize guards against two different versions of this
//     module sharing one process
//
// Typical usage
//
//	if err := logfacade.Initialize(); err != nil { panic(err) }
//
//	log := logfacade.GetLogger("billing")
//	log.Info("invoice created", invoiceID)
//
//	// later, in the host
//	_ = logfacade.SetProvider(zapprovider.New(zapLogger))
//	log.Info("now routed through zap")
//
// Fallback configuration
//
// Without LOG_CONFIG the fallback writes to stderr through a single console
// appender at LOG_LEVEL (default "info"). With LOG_CONFIG the named JSON or
// YAML file declares appenders and categories; LOG_LEVEL, when also set,
// forces every category to that level.
package logfacade
