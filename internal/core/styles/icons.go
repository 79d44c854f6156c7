package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconComment  = ""     // comment
	IconEdit     = ""     // pencil
	IconTrash    = ""     // trash
	IconUser     = ""     // user
	IconBug      = ""     // bug
	IconLight    = ""     // lightbulb
	IconWrench   = ""     // wrench
	IconTag      = ""     // tag
	IconFeedback = "\U000F0288" // bullhorn

	IconNotifySuccess = "\uf058" // check-circle
	IconNotifyInfo    = "\uf05a" // info-circle
	IconNotifyWarning = "\uf071" // warning
	IconNotifyError   = "\uf057" // times-circle
)

// CategoryIcon returns the icon shown next to a feedback category.
func CategoryIcon(category string) string {
	switch category {
	case "bug":
		return IconBug
	case "feature":
		return IconLight
	case "improvement":
		return IconWrench
	default:
		return IconTag
	}
}
