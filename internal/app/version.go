package app

// Version and Commit are stamped at build time:
//
//	go build -ldflags "-X github.com/heartmarshall/huddle-backend/internal/app.Version=1.4.0 -X github.com/heartmarshall/huddle-backend/internal/app.Commit=$(git rev-parse --short HEAD)" ./cmd/server
var (
	Version = "dev"
	Commit  = "unknown"
)

// BuildVersion is the version reported in startup logs and /health.
func BuildVersion() string {
	if Commit == "unknown" || Commit == "" {
		return Version
	}
	return Version + "+" + Commit
}
