package screenshot

import "github.com/charmbracelet/log"

// ClipboardWriter receives a copy of every saved capture.
type ClipboardWriter interface {
	WriteImage(png []byte) error
}

// Capturer grabs a region and stores it at a fixed path.
type Capturer struct {
	Path      string
	Clipboard ClipboardWriter
}

// Capture grabs b, saves it to c.Path and returns that path. A clipboard
// failure is logged but does not fail the capture.
func (c Capturer) Capture(b Bounds) (string, error) {
	path := c.Path
	if path == "" {
		path = DefaultFileName
	}

	log.Debug("capturing region", "bounds", b, "path", path)
	data, err := CaptureRegion(b)
	if err != nil {
		return "", err
	}
	if err := Save(path, data); err != nil {
		return "", err
	}

	if c.Clipboard != nil {
		if err := c.Clipboard.WriteImage(data); err != nil {
			log.Warn("clipboard copy failed", "err", err)
		}
	}
	log.Debug("capture saved", "path", path, "bytes", len(data))
	return path, nil
}
