package domain

// Step is a single external command executed on behalf of the workflow.
type Step struct {
	Name        string
	Command     []string
	WorkingDir  string
	Environment map[string]string
}
