package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nhle/inbox-pilot/internal/model"
	"github.com/nhle/inbox-pilot/internal/store"
	"github.com/nhle/inbox-pilot/tests/testutil"
)

func TestLoadPreferences_Defaults(t *testing.T) {
	s := testutil.NewTestStore(t)

	got, err := s.LoadPreferences(context.Background(), model.DefaultPreferences())
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if got != model.DefaultPreferences() {
		t.Errorf("got %+v, want defaults", got)
	}
}

func TestSavePreferences_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	want := model.Preferences{
		Tone:             model.ToneConcise,
		FollowUpDuration: model.Duration1Week,
		SampleData:       true,
	}
	if err := s.SavePreferences(ctx, want); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}
	got, err := s.LoadPreferences(ctx, model.DefaultPreferences())
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	// Overwrite a single key.
	if err := s.SetPreference(ctx, store.KeySampleData, "false"); err != nil {
		t.Fatalf("SetPreference: %v", err)
	}
	got, _ = s.LoadPreferences(ctx, model.DefaultPreferences())
	if got.SampleData {
		t.Error("SampleData still true after overwrite")
	}
}

func TestLoadPreferences_IgnoresBadValues(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	for k, v := range map[string]string{
		store.KeyTone:             "shouty",
		store.KeyFollowUpDuration: "forever",
		store.KeySampleData:       "maybe",
	} {
		if err := s.SetPreference(ctx, k, v); err != nil {
			t.Fatalf("SetPreference(%s): %v", k, err)
		}
	}

	got, err := s.LoadPreferences(ctx, model.DefaultPreferences())
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if got != model.DefaultPreferences() {
		t.Errorf("got %+v, want defaults", got)
	}
}

func TestSetPreference_SingleKey(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	if err := s.SetPreference(ctx, store.KeyTone, "formal"); err != nil {
		t.Fatalf("SetPreference: %v", err)
	}
	got, err := s.LoadPreferences(ctx, model.DefaultPreferences())
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	want := model.DefaultPreferences()
	want.Tone = model.ToneFormal
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestMigrations_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	s, err := store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := s.SetPreference(context.Background(), store.KeyTone, "formal"); err != nil {
		t.Fatalf("SetPreference: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer s.Close()

	v, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != 1 {
		t.Errorf("SchemaVersion = %d, want 1", v)
	}
	got, err := s.LoadPreferences(context.Background(), model.DefaultPreferences())
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if got.Tone != model.ToneFormal {
		t.Errorf("tone after reopen = %q, want formal", got.Tone)
	}
}
