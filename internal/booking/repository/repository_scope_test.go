package repository

import (
	"strings"
	"testing"
)

func TestAdvisoryLockOrderIsMasterBeforeClient(t *testing.T) {
	if !strings.Contains(advisoryLockQuery, "pg_advisory_xact_lock") {
		t.Fatal("booking writes must serialize through transaction-scoped advisory locks")
	}
	if lockClassMaster >= lockClassClient {
		t.Fatalf("master lock class (%d) must sort before client lock class (%d) to keep the lock order fixed",
			lockClassMaster, lockClassClient)
	}
}

func TestMasterConflictQueryUsesHalfOpenOverlap(t *testing.T) {
	query := strings.ToLower(masterConflictQuery)

	requiredFragments := []string{
		"from appointments",
		"master_id = $1",
		"start_time < $3",
		"end_time > $2",
		"id <> $4",
	}

	for _, fragment := range requiredFragments {
		if !strings.Contains(query, fragment) {
			t.Fatalf("expected conflict query fragment %q to be present", fragment)
		}
	}
}

func TestClientConflictQueryUsesHalfOpenOverlap(t *testing.T) {
	query := strings.ToLower(clientConflictQuery)

	requiredFragments := []string{
		"from appointments",
		"client_id = $1",
		"start_time < $3",
		"end_time > $2",
		"id <> $4",
	}

	for _, fragment := range requiredFragments {
		if !strings.Contains(query, fragment) {
			t.Fatalf("expected conflict query fragment %q to be present", fragment)
		}
	}
}
