package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/docbase/docbase"
	main "github.com/docbase/docbase/cmd/docbase"
	"github.com/docbase/docbase/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notFoundConfigs() *mock.ConfigStore {
	return &mock.ConfigStore{
		LoadFn: func(_ context.Context, profile string) (*docbase.Config, error) {
			return nil, docbase.Errorf(docbase.ENOTFOUND, "profile %q not found", profile)
		},
	}
}

func TestProfileAddCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("creates a web profile with defaults", func(t *testing.T) {
		t.Parallel()

		var saved *docbase.Config
		configs := notFoundConfigs()
		configs.SaveFn = func(_ context.Context, profile string, cfg *docbase.Config) error {
			saved = cfg
			return nil
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Configs: configs,
		}

		cmd := &main.ProfileAddCmd{
			Name:   "docs",
			Type:   "web",
			Domain: "https://docs.example.com",
			Depth:  2,
		}

		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, docbase.SourceWeb, saved.Source.Type)
		assert.Equal(t, "https://docs.example.com", saved.Source.Domain)
		assert.Equal(t, 40, saved.Retrieval.KLexical)
		assert.Contains(t, stdout.String(), "created")
	})

	t.Run("rejects duplicate profile", func(t *testing.T) {
		t.Parallel()

		configs := &mock.ConfigStore{
			LoadFn: func(_ context.Context, profile string) (*docbase.Config, error) {
				cfg := docbase.DefaultConfig()
				return &cfg, nil
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Configs: configs,
		}

		cmd := &main.ProfileAddCmd{Name: "docs", Type: "web", Domain: "https://x.example"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, docbase.ECONFLICT, docbase.ErrorCode(err))
		assert.Contains(t, stderr.String(), "already exists")
	})

	t.Run("rejects web profile without domain", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
			Configs: notFoundConfigs(),
		}

		cmd := &main.ProfileAddCmd{Name: "docs", Type: "web"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, docbase.EINVALID, docbase.ErrorCode(err))
	})

	t.Run("rejects local profile without paths", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
			Configs: notFoundConfigs(),
		}

		cmd := &main.ProfileAddCmd{Name: "notes", Type: "local"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, docbase.EINVALID, docbase.ErrorCode(err))
	})
}

func TestProfileListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists profiles with source summary", func(t *testing.T) {
		t.Parallel()

		configs := &mock.ConfigStore{
			ListFn: func(context.Context) ([]string, error) {
				return []string{"docs", "notes"}, nil
			},
			LoadFn: func(_ context.Context, profile string) (*docbase.Config, error) {
				cfg := docbase.DefaultConfig()
				if profile == "notes" {
					cfg.Source = docbase.Source{Type: docbase.SourceLocal, LocalPaths: []string{"/home/me/notes"}}
				} else {
					cfg.Source = docbase.Source{Type: docbase.SourceWeb, Domain: "https://docs.example.com"}
				}
				return &cfg, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Configs: configs,
		}

		err := (&main.ProfileListCmd{}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "docs  web  https://docs.example.com")
		assert.Contains(t, output, "notes  local  1 path(s)")
	})

	t.Run("shows helpful message when no profiles exist", func(t *testing.T) {
		t.Parallel()

		configs := &mock.ConfigStore{
			ListFn: func(context.Context) ([]string, error) { return nil, nil },
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Configs: configs,
		}

		err := (&main.ProfileListCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No profiles found")
	})
}

func TestProfileDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes profile", func(t *testing.T) {
		t.Parallel()

		var deleted string
		configs := &mock.ConfigStore{
			DeleteFn: func(_ context.Context, profile string) error {
				deleted = profile
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Configs: configs,
		}

		err := (&main.ProfileDeleteCmd{Name: "docs"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "docs", deleted)
		assert.Contains(t, stdout.String(), "deleted")
	})

	t.Run("reports missing profile", func(t *testing.T) {
		t.Parallel()

		configs := &mock.ConfigStore{
			DeleteFn: func(_ context.Context, profile string) error {
				return docbase.Errorf(docbase.ENOTFOUND, "profile %q not found", profile)
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Configs: configs,
		}

		err := (&main.ProfileDeleteCmd{Name: "ghost"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, docbase.ENOTFOUND, docbase.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})
}
