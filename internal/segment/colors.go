package segment

// ANSI color sequences used by the prompt renderer.
const (
	colorBlueConstant   = "\x1b[34m"
	colorPurpleConstant = "\x1b[35m"
	colorGreenConstant  = "\x1b[32m"
	colorRedConstant    = "\x1b[31m"
	colorResetConstant  = "\x1b[0m"
)
