// Package trace records engine decisions as structured events.
//
// It is separate from operational logging (slog): every classification and
// replacement decision produces one Event that can be written to a CBOR file,
// mirrored to slog, or fed to metrics collectors.
//
//	fl, err := trace.NewFileLogger("decisions.mtrace")
//	if err != nil {
//		return err
//	}
//	defer fl.Close()
//
//	cfg := engine.DefaultConfig()
//	cfg.Tracer = trace.NewMultiLogger(trace.NewSlogAdapter(slog.Default()), fl)
//
// Trace files are a stream of CBOR-encoded events with integer keys. The
// mpnctl log command reads and filters them.
package trace
