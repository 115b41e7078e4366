// Package render turns a formatted report into a human-viewable artifact.
package render

import (
	"errors"

	"github.com/tejusbharadwaj/weatherboard/internal/formatter"
)

var (
	ErrRender = errors.New("render error")
	ErrWrite  = errors.New("write error")
)

// Renderer produces one artifact from a report and returns where it went.
type Renderer interface {
	Name() string
	Render(report *formatter.Report) (string, error)
}
