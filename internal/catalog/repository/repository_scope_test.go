package repository

import (
	"strings"
	"testing"
)

func TestListServicesQueryIsSalonScoped(t *testing.T) {
	query := strings.ToLower(listServicesQuery)

	requiredFragments := []string{
		"from services",
		"where salon_id = $1",
	}

	for _, fragment := range requiredFragments {
		if !strings.Contains(query, fragment) {
			t.Fatalf("expected salon-scoped query fragment %q to be present", fragment)
		}
	}
}

func TestListMastersQueryIsSalonScoped(t *testing.T) {
	query := strings.ToLower(listMastersQuery)

	requiredFragments := []string{
		"from masters",
		"where salon_id = $1",
	}

	for _, fragment := range requiredFragments {
		if !strings.Contains(query, fragment) {
			t.Fatalf("expected salon-scoped query fragment %q to be present", fragment)
		}
	}
}
