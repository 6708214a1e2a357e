package models

// WizardStep indexes the four submission steps.
type WizardStep int

const (
	StepSelectCategory WizardStep = 1
	StepProvideDetails WizardStep = 2
	StepAddMedia       WizardStep = 3
	StepReview         WizardStep = 4
)

// Draft is the in-progress state of one user's submission wizard.
// It lives in Redis until Submit succeeds and is serialized as JSON.
type Draft struct {
	UserID      string     `json:"user_id"`
	Step        WizardStep `json:"step"`
	Category    Category   `json:"category"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Images      []string   `json:"images"`
	AudioURL    string     `json:"audio_url"`
	VideoURL    string     `json:"video_url"`
	Details     string     `json:"details"`
}
