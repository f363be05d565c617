package presenter

import (
	"fmt"
	"sync"

	"github.com/wcharczuk/go-chart/v2"
)

// Capabilities is proof that chart rendering was initialized for the process.
type Capabilities struct {
	style chart.Style
}

var (
	registerOnce sync.Once
	registered   *Capabilities
	registerErr  error
)

// Register loads the chart font once per process. Later calls return the
// same capabilities.
func Register() (*Capabilities, error) {
	registerOnce.Do(func() {
		font, err := chart.GetDefaultFont()
		if err != nil {
			registerErr = fmt.Errorf("load chart font: %w", err)
			return
		}
		registered = &Capabilities{style: chart.Style{Font: font}}
	})

	return registered, registerErr
}
