// Package version holds build identity, overridable via -ldflags.
package version

var (
	AppName   = "guild-warden"
	Version   = "dev"
	BuildDate = "unknown"
)
