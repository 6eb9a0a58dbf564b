package telemetry

// message is an internal event routed from the tracer to the renderer.
type message any

// msgStageLog carries a chunk of log output for a specific stage.
type msgStageLog struct {
	SpanID string
	Data   []byte
}

// msgPlan announces the ordered stages about to run.
type msgPlan struct {
	Stages []string
}
