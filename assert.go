// SPDX-License-Identifier: Apache-2.0

package vector

import "fmt"

// assert panics when cond is false and the package is built with the vectordebug tag.
// Violations are caller bugs, not recoverable errors, so release builds skip the check.
func assert(cond bool, format string, args ...any) {
	if debugChecks && !cond {
		panic(fmt.Sprintf("vector: "+format, args...))
	}
}

// noCopy may be embedded into structs which must not be copied after first use.
// See https://golang.org/issues/8005#issuecomment-190753527 for details.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
