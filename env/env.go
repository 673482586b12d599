// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package env

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=env.go -destination=mocks/mock_source.go -package=mocks Source,Mutable

import "os"

// Source defines read access to an environment variable table.
type Source interface {
	// Lookup retrieves the value of the variable named by key and reports
	// whether it is present. A present empty value is distinct from an
	// absent variable.
	Lookup(key string) (string, bool)

	// Snapshot returns a copy of the full variable table. Callers own the
	// returned map and may mutate it freely.
	Snapshot() Map
}

// Mutable is a Source that also accepts writes. The process table is mutable
// so variables can be promoted to public names during startup.
type Mutable interface {
	Source

	// Set stores value under key, replacing any existing entry.
	Set(key, value string) error
}

// OSSource implements Mutable over the process environment using the
// standard os package.
type OSSource struct{}

// Lookup returns the value of the process environment variable named by key.
func (*OSSource) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Snapshot returns a copy of the full process environment.
func (*OSSource) Snapshot() Map {
	return FromEnviron(os.Environ())
}

// Set stores value under key in the process environment.
func (*OSSource) Set(key, value string) error {
	return os.Setenv(key, value)
}
