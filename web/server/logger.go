package server

import (
	"fmt"
	"log"
	"strings"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// RequestLogger implements core.Logger by tagging messages with a render ID
type RequestLogger struct {
	renderID int64
}

// NewRequestLogger creates a logger for a single render request
func NewRequestLogger(renderID int64) core.Logger {
	return &RequestLogger{renderID: renderID}
}

// Printf implements core.Logger interface
func (rl *RequestLogger) Printf(format string, args ...interface{}) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	log.Printf("[render %d] %s", rl.renderID, message)
}
