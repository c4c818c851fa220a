package buildconfig

// Set via -ldflags "-X github.com/Harshitk-cp/openmind/internal/buildconfig.version=..."
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func Version() string {
	return version
}

func Commit() string {
	return commit
}

func Date() string {
	return date
}

// VersionInfo is the payload of the version endpoint and the CLI's
// version --json output.
func VersionInfo() map[string]string {
	return map[string]string{
		"version": version,
		"commit":  commit,
		"date":    date,
	}
}

func String() string {
	return version + " (commit: " + commit + ", built: " + date + ")"
}
