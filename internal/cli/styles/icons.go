package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconVersion   = "" // tag
	IconGitBranch = "" // git branch
	IconCalendar  = "" // calendar
	IconGithub    = "" // github
	IconGo        = "" // go gopher
	IconArrowIn   = "" // arrow left
	IconArrowOut  = "" // arrow right

	IconCheck    = ""
	IconX        = ""
	IconWarning  = ""
	IconConfig   = ""
	IconDatabase = ""
	IconTrash    = ""
)
