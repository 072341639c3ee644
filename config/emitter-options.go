package config

type EmitterOptionsInterface interface {
	SetCaptureRejections(bool)
	GetRawCaptureRejections() *bool
	CaptureRejections() bool

	SetName(string)
	GetRawName() *string
	Name() string
}

type EmitterOptions struct {
	// reroute listener failures into the "error" event instead of returning them from Emit
	captureRejections *bool `json:"captureRejections,omitempty"`

	// type name reported by diagnostics
	name *string `json:"name,omitempty"`
}

func DefaultEmitterOptions() *EmitterOptions {
	return &EmitterOptions{}
}

func (e *EmitterOptions) Assign(data EmitterOptionsInterface) EmitterOptionsInterface {
	if data == nil {
		return e
	}

	if e.GetRawCaptureRejections() == nil {
		e.SetCaptureRejections(data.CaptureRejections())
	}

	if e.GetRawName() == nil {
		e.SetName(data.Name())
	}

	return e
}

// reroute listener failures into the "error" event instead of returning them from Emit
// @default false
func (e *EmitterOptions) SetCaptureRejections(captureRejections bool) {
	e.captureRejections = &captureRejections
}
func (e *EmitterOptions) GetRawCaptureRejections() *bool {
	return e.captureRejections
}
func (e *EmitterOptions) CaptureRejections() bool {
	if e.captureRejections == nil {
		return false
	}

	return *e.captureRejections
}

// type name reported by diagnostics
// @default "EventEmitter"
func (e *EmitterOptions) SetName(name string) {
	e.name = &name
}
func (e *EmitterOptions) GetRawName() *string {
	return e.name
}
func (e *EmitterOptions) Name() string {
	if e.name == nil {
		return "EventEmitter"
	}

	return *e.name
}
