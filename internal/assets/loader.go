package assets

import (
	"embed"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/roadrush/internal/core"
)

//go:embed sprites/*.txt
var builtin embed.FS

// Built-in sprite names.
const (
	Car  = "car"
	Road = "road"
)

// Builtin returns one of the embedded sprites.
func Builtin(name string, color core.Color) (*Sprite, error) {
	data, err := builtin.ReadFile("sprites/" + name + ".txt")
	if err != nil {
		return nil, fmt.Errorf("assets: no built-in sprite %q: %w", name, err)
	}
	return Parse(data, color), nil
}

// Loader reads sprite files in the background.
type Loader struct {
	logger *log.Logger
	wg     sync.WaitGroup
}

// NewLoader creates a loader. A nil logger discards load warnings.
func NewLoader(logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{logger: logger}
}

// Load returns a sprite immediately. With an empty path the built-in sprite
// of the same name is returned already loaded; otherwise the file is read on
// a goroutine and the sprite stays unloaded (draws nothing) until it is ready.
// A file that cannot be read leaves the sprite unloaded for good.
func (l *Loader) Load(name, path string, color core.Color) *Sprite {
	if path == "" {
		s, err := Builtin(name, color)
		if err != nil {
			l.logger.Warn("missing built-in sprite", "name", name, "error", err)
			return NewSprite(color)
		}
		return s
	}

	s := NewSprite(color)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		data, err := os.ReadFile(path)
		if err != nil {
			l.logger.Warn("could not load sprite", "name", name, "path", path, "error", err)
			return
		}
		s.store(parseRows(data))
		l.logger.Debug("sprite loaded", "name", name, "path", path)
	}()
	return s
}

// Wait blocks until all pending loads have finished.
func (l *Loader) Wait() {
	l.wg.Wait()
}
