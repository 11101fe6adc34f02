package visualizer

// Options configures the rendered diagram.
type Options struct {
	// ShowConditions appends condition summaries to edge labels.
	ShowConditions bool

	// ShowCapabilities appends required capabilities to edge labels.
	ShowCapabilities bool

	// Direction controls diagram flow: "TD" (top-down) or "LR" (left-right).
	Direction string

	// HighlightPath highlights the named states.
	HighlightPath []string
}

// DefaultOptions returns the defaults used for generated docs.
func DefaultOptions() Options {
	return Options{
		ShowConditions: true,
		Direction:      "TD",
	}
}

// WithShowConditions enables or disables condition labels.
func (o Options) WithShowConditions(show bool) Options {
	o.ShowConditions = show

	return o
}

// WithShowCapabilities enables or disables capability labels.
func (o Options) WithShowCapabilities(show bool) Options {
	o.ShowCapabilities = show

	return o
}

// WithDirection sets the diagram direction.
func (o Options) WithDirection(direction string) Options {
	o.Direction = direction

	return o
}

// WithHighlightPath sets states to highlight.
func (o Options) WithHighlightPath(path []string) Options {
	o.HighlightPath = path

	return o
}
