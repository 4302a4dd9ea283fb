// SPDX-License-Identifier: Apache-2.0

//go:build !vectordebug

package vector

const debugChecks = false
