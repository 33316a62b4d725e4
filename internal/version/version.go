package version

// Build metadata. Overridden at build time via -ldflags.
var (
	AppName        = "Discord-Music-Bot"
	AppDescription = "A Discord bot that plays music from YouTube in voice channels"
	AppVersion     = "dev"
	GoVersion      = ""
	BuildDate      = ""
)
