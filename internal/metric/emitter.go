package metric

import (
	"fmt"
	"io"
)

// Emitter writes observations in the mackerel-agent plugin format:
// "<name>\t<value>\t<timestamp>" per line.
type Emitter struct {
	w io.Writer
}

// NewEmitter creates an emitter writing to w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// Emit writes a single observation.
func (e *Emitter) Emit(o Observation) error {
	if _, err := fmt.Fprintf(e.w, "%s\t%d\t%d\n", o.Name, o.Value, o.Timestamp); err != nil {
		return fmt.Errorf("failed to write metric %q: %w", o.Name, err)
	}
	return nil
}

// EmitAll writes observations in order.
func (e *Emitter) EmitAll(obs []Observation) error {
	for _, o := range obs {
		if err := e.Emit(o); err != nil {
			return err
		}
	}
	return nil
}
