package render

// Priority determines render order. Lower values render first
type Priority int

const (
	PriorityField Priority = iota
	PriorityHalo
	PriorityCore
	PriorityWhisper
	PriorityDiagnostics
)
