// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	info := Info()
	if !strings.HasPrefix(info, "medgate "+Version) {
		t.Errorf("Info() = %q, want prefix %q", info, "medgate "+Version)
	}
	for _, field := range []string{GitCommit, BuildDate, GoVersion, Platform} {
		if !strings.Contains(info, field) {
			t.Errorf("Info() = %q, missing %q", info, field)
		}
	}
}

func TestFull(t *testing.T) {
	full := Full()
	want := map[string]string{
		"version":   Version,
		"commit":    GitCommit,
		"buildDate": BuildDate,
		"goVersion": GoVersion,
		"platform":  Platform,
	}
	if len(full) != len(want) {
		t.Fatalf("Full() has %d fields, want %d", len(full), len(want))
	}
	for key, value := range want {
		if full[key] != value {
			t.Errorf("Full()[%q] = %q, want %q", key, full[key], value)
		}
	}
}
