// Package version carries the build identity stamped in at link time
// via -ldflags "-X ...".
package version

// Overridden by the release build; defaults describe a source build.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// String renders "dev", "1.2.0 (abc1234)" or "1.2.0 (abc1234, 2026-08-29)"
// depending on which build facts were stamped.
func String() string {
	if Commit == "" && Date == "" {
		return Version
	}
	extra := Commit
	if Date != "" {
		if extra != "" {
			extra += ", "
		}
		extra += Date
	}
	return Version + " (" + extra + ")"
}
