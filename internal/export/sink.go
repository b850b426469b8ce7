package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Settings fixes how every export of a surface is encoded and named.
type Settings struct {
	Format   Format
	Quality  int
	Prefix   string
	Location string
}

func DefaultSettings() Settings {
	return Settings{
		Format:   JPEG,
		Quality:  100,
		Prefix:   "Doodle",
		Location: "Download/DoodleApp",
	}
}

// Request describes the sink a surface asks for: a suggested file name,
// the MIME type of the payload and a suggested storage location relative to
// whatever root the opener manages.
type Request struct {
	Name     string
	MIME     string
	Location string
	Format   Format
	Session  string
}

// NewRequest names the export <prefix>_<unix millis>.<ext>.
func NewRequest(s Settings, session string, now time.Time) Request {
	return Request{
		Name:     fmt.Sprintf("%s_%d.%s", s.Prefix, now.UnixMilli(), s.Format.Ext()),
		MIME:     s.Format.MIME(),
		Location: s.Location,
		Format:   s.Format,
		Session:  session,
	}
}

// Opener resolves a Request into a writable sink.
type Opener interface {
	Open(req Request) (io.WriteCloser, error)
}

type OpenerFunc func(req Request) (io.WriteCloser, error)

func (f OpenerFunc) Open(req Request) (io.WriteCloser, error) { return f(req) }

// Dir stores exports as files under Root/Location.
type Dir struct {
	Root string
}

func (d Dir) Path(req Request) string {
	return filepath.Join(d.Root, filepath.FromSlash(req.Location), req.Name)
}

// Open creates the target directory if needed and the file itself. An
// existing file is never overwritten.
func (d Dir) Open(req Request) (io.WriteCloser, error) {
	if req.Name == "" || filepath.Base(req.Name) != req.Name {
		return nil, fmt.Errorf("invalid file name %q", req.Name)
	}
	path := d.Path(req)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	return f, nil
}
