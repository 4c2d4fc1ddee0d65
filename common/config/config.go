package config

// DefaultAppIdentifier names the per-user config directory
// (<config-home>/<identifier>/settings.json).
const DefaultAppIdentifier = "com.mordilloSan.appsettings"

// DefaultPort is the webserver's default listen port.
const DefaultPort = 8095

// Build info - set at build time via ldflags:
// go build -ldflags "-X github.com/mordilloSan/appsettings/common/config.Version=v1.0.0"
var (
	Version   = "untracked"
	CommitSHA = ""
	BuildTime = ""
)
