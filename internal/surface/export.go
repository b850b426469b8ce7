package surface

import (
	"DoodlePad/internal/export"
)

// Export encodes the committed ink into a sink obtained from o and returns
// the name it was written under. Export ends the drawing session: the
// surface is cleared afterwards, and also after a failure unless
// Options.ClearOnFailedExport is off. Strokes still in flight are not
// exported.
//
// Failures are *ExportError values whose Op is "snapshot", "open",
// "encode" or "close".
func (s *Surface) Export(o export.Opener) (name string, err error) {
	defer func() {
		if err == nil || s.opts.ClearOnFailedExport {
			s.Clear()
		}
	}()

	log := Logger().With("session", s.session.ID)
	if s.canvas == nil {
		err = &ExportError{Op: "snapshot", Err: ErrNoCanvas}
		log.Warn("export failed", "err", err)
		return "", err
	}

	now := s.opts.Clock.Now()
	req := export.NewRequest(s.opts.Export, s.session.ID, now)
	log = log.With("name", req.Name)

	w, err := o.Open(req)
	if err != nil {
		err = &ExportError{Op: "open", Name: req.Name, Err: err}
		log.Warn("export failed", "err", err)
		return "", err
	}

	meta := export.Meta{Title: req.Name, Session: req.Session, Created: now}
	if encErr := export.Encode(w, s.Snapshot(), req.Format, s.opts.Export.Quality, meta); encErr != nil {
		_ = w.Close()
		err = &ExportError{Op: "encode", Name: req.Name, Err: encErr}
		log.Warn("export failed", "err", err)
		return "", err
	}
	if closeErr := w.Close(); closeErr != nil {
		err = &ExportError{Op: "close", Name: req.Name, Err: closeErr}
		log.Warn("export failed", "err", err)
		return "", err
	}

	log.Info("export written", "mime", req.MIME, "commits", s.session.Commits)
	return req.Name, nil
}
