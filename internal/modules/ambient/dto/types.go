package dto

type SceneOutput struct {
	ID          string
	Label       string
	Description string
}

type StatusOutput struct {
	Active      string
	Playing     bool
	Volume      int
	ActiveNodes int
	Timers      int
}
