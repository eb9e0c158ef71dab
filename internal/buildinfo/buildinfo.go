// Package buildinfo carries identifiers stamped into the binary at
// build time, e.g.
//
//	go build -ldflags "-X glaze/internal/buildinfo.Version=v0.3.0"
package buildinfo

var (
	Version = "dev"
	Commit  = "unknown"
)

// Short picks the most specific identifier available. It is what ends
// up in the window title and the startup log line.
func Short() string {
	switch {
	case Version != "" && Version != "dev":
		return Version
	case Commit != "" && Commit != "unknown":
		return Commit
	}
	return "dev"
}
