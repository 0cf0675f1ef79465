package piggybank

import "fmt"

// Release numbers of the state machine. Bump Major whenever stored records
// or message encodings change in an incompatible way.
const (
	Major  = 0
	Minor  = 1
	Patch  = 0
	Suffix = "-dev"
)

// GitCommit is set at build time with
//
//	-ldflags "-X github.com/iov-one/piggybank.GitCommit=<sha>"
var GitCommit = ""

// Version is reported by the ABCI Info call and by "piggyd version".
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d%s", Major, Minor, Patch, Suffix)
	if GitCommit != "" {
		v += "+" + GitCommit
	}
	return v
}
