package catalog

import (
	"errors"
	"testing"
)

func TestNewCategory(t *testing.T) {
	t.Parallel()

	t.Run("picks the smallest common language", func(t *testing.T) {
		cat, err := NewCategory(decodeOne(t, `{
			"id": 201,
			"code": "music",
			"parent": {
				"id": 301,
				"code": "event_type",
				"translations": {
					"en_US": {"name": "Event type"},
					"pl_PL": {"name": "Typ wydarzenia"}
				}
			},
			"translations": {
				"pl_PL": {"name": "Muzyka"},
				"en_US": {"name": "Music"},
				"de_DE": {"name": "Musik"}
			}
		}`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		// de_DE is not in the parent map, so en_US is the smallest common one
		if cat.Language() != "en_US" {
			t.Fatalf("expected initial language en_US, got %s", cat.Language())
		}
		if cat.Name() != "Music" || cat.ParentName() != "Event type" {
			t.Fatalf("expected en_US names, got %s/%s", cat.Name(), cat.ParentName())
		}
		if cat.ParentID() != "301" || cat.ParentCode() != "event_type" {
			t.Fatalf("expected parent mapped, got %s/%s", cat.ParentID(), cat.ParentCode())
		}
	})

	t.Run("parentless record fails", func(t *testing.T) {
		_, err := NewCategory(decodeOne(t, `{
			"id": 203,
			"code": "orphan",
			"translations": {"pl_PL": {"name": "Sierota"}}
		}`))
		if !errors.Is(err, ErrLanguageNotFound) {
			t.Fatalf("expected ErrLanguageNotFound, got %v", err)
		}
	})

	t.Run("no common language fails", func(t *testing.T) {
		_, err := NewCategory(decodeOne(t, `{
			"id": 204,
			"code": "mismatch",
			"parent": {"id": 300, "code": "p", "translations": {"en_US": {"name": "P"}}},
			"translations": {"pl_PL": {"name": "M"}}
		}`))
		if !errors.Is(err, ErrLanguageNotFound) {
			t.Fatalf("expected ErrLanguageNotFound, got %v", err)
		}
	})

	t.Run("missing id fails", func(t *testing.T) {
		_, err := NewCategory(decodeOne(t, `{"code": "music"}`))
		if err == nil {
			t.Fatalf("expected error for missing id, got nil")
		}
	})
}

func TestCategory_SelectLanguage(t *testing.T) {
	t.Parallel()

	cat, err := NewCategory(decodeOne(t, `{
		"id": 201,
		"code": "music",
		"parent": {
			"id": 301,
			"code": "event_type",
			"translations": {"pl_PL": {"name": "Typ"}, "en_US": {"name": "Type"}}
		},
		"translations": {
			"pl_PL": {"name": "Muzyka"},
			"en_US": {"name": "Music"},
			"de_DE": {"name": "Musik"}
		}
	}`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := cat.SelectLanguage("pl_PL"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cat.Name() != "Muzyka" || cat.ParentName() != "Typ" {
		t.Fatalf("expected pl_PL names, got %s/%s", cat.Name(), cat.ParentName())
	}

	// de_DE exists in the own map but not the parent map
	if err := cat.SelectLanguage("de_DE"); !errors.Is(err, ErrLanguageNotFound) {
		t.Fatalf("expected ErrLanguageNotFound, got %v", err)
	}
	if cat.Language() != "pl_PL" {
		t.Fatalf("expected selection unchanged after failure, got %s", cat.Language())
	}
}
