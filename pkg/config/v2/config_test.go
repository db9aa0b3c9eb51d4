package config_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/octofit/octofit-web/pkg/config/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var update = flag.Bool("update", false, "update golden files")

func newFakeConfig() config.Config {
	return config.Config{
		Server: config.Server{
			Hostname: "localhost",
			Address:  "127.0.0.1",
			Port:     "8080",
		},
		Tracker: config.Tracker{
			CodespaceName: "fuzzy-space-waffle",
		},
		LogLevel: "info",
		Debug:    false,
	}
}

func updateGoldenFiles(t *testing.T, filePath string, cfg config.Config) []byte {
	t.Helper()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Errorf("marshal config: %v", err)
	}

	err = os.WriteFile(filePath, data, 0o600)
	if err != nil {
		t.Errorf("write golden file: %v", err)
	}

	return data
}

func TestValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		config    config.Config
		expectErr bool
	}{
		{
			name:      "Valid config",
			config:    newFakeConfig(),
			expectErr: false,
		},
		{
			name: "Valid config with api url instead of codespace",
			config: func() config.Config {
				cfg := newFakeConfig()
				cfg.Tracker.CodespaceName = ""
				cfg.Tracker.APIURL = "http://localhost:8000/api"

				return cfg
			}(),
			expectErr: false,
		},
		{
			name: "Missing codespace and api url",
			config: func() config.Config {
				cfg := newFakeConfig()
				cfg.Tracker.CodespaceName = ""

				return cfg
			}(),
			expectErr: true,
		},
		{
			name: "Invalid log level",
			config: func() config.Config {
				cfg := newFakeConfig()
				cfg.LogLevel = "loud"

				return cfg
			}(),
			expectErr: true,
		},
		{
			name: "Invalid port",
			config: func() config.Config {
				cfg := newFakeConfig()
				cfg.Server.Port = "http"

				return cfg
			}(),
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if err != nil && !tc.expectErr {
				t.Errorf("unexpected error: %v", err)
			}

			if err == nil && tc.expectErr {
				t.Errorf("expected error, got none")
			}
		})
	}
}

func TestTracker_BaseURL(t *testing.T) {
	testCases := []struct {
		name    string
		tracker config.Tracker
		expect  string
	}{
		{
			name:    "codespace",
			tracker: config.Tracker{CodespaceName: "fuzzy-space-waffle"},
			expect:  "https://fuzzy-space-waffle-8000.app.github.dev/api",
		},
		{
			name:    "override wins",
			tracker: config.Tracker{CodespaceName: "fuzzy-space-waffle", APIURL: "http://localhost:8000/api/"},
			expect:  "http://localhost:8000/api",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.tracker.BaseURL())
		})
	}
}

func TestLoad(t *testing.T) {
	if *update {
		t.Log("Updating golden files")
		updateGoldenFiles(t, "testdata/config.yaml", newFakeConfig())
		t.Log("Done updating golden files")

		return
	}

	testCases := []struct {
		name      string
		config    string
		path      string
		envPrefix string
		loader    config.Loader
		binder    config.Binder
		envs      map[string]string
		expect    config.Config
		expectErr bool
	}{
		{
			name:   "Standard config",
			config: "config",
			path:   "testdata",
			loader: config.NewFileSystemLoader(),
			expect: newFakeConfig(),
		},
		{
			name:   "Standard config with env overrides",
			config: "config",
			path:   "testdata",
			loader: config.NewFileSystemLoader(),
			expect: func() config.Config {
				cfg := newFakeConfig()
				cfg.Server.Address = "0.0.0.0"

				return cfg
			}(),
			envs: map[string]string{
				"SERVER_ADDRESS": "0.0.0.0",
			},
		},
		{
			name:      "Standard config with env prefix overrides",
			config:    "config",
			path:      "testdata",
			envPrefix: "octofit",
			loader:    config.NewFileSystemLoader(),
			expect: func() config.Config {
				cfg := newFakeConfig()
				cfg.Tracker.APIURL = "http://localhost:8000/api"

				return cfg
			}(),
			envs: map[string]string{
				"OCTOFIT_TRACKER_API_URL": "http://localhost:8000/api",
			},
		},
		{
			name:      "Codespace name from the environment",
			config:    "config",
			path:      "testdata",
			envPrefix: "octofit",
			loader:    config.NewFileSystemLoader(),
			binder:    config.NewDefaultEnvBinder(),
			expect: func() config.Config {
				cfg := newFakeConfig()
				cfg.Tracker.CodespaceName = "literate-spork"

				return cfg
			}(),
			envs: map[string]string{
				"REACT_APP_CODESPACE_NAME": "literate-spork",
			},
		},
		{
			name:      "Codespace name prefers CODESPACE_NAME",
			config:    "config",
			path:      "testdata",
			envPrefix: "octofit",
			loader:    config.NewFileSystemLoader(),
			binder:    config.NewDefaultEnvBinder(),
			expect: func() config.Config {
				cfg := newFakeConfig()
				cfg.Tracker.CodespaceName = "curly-octo-guide"

				return cfg
			}(),
			envs: map[string]string{
				"CODESPACE_NAME":           "curly-octo-guide",
				"REACT_APP_CODESPACE_NAME": "literate-spork",
			},
		},
		{
			name:      "Missing config file",
			config:    "does-not-exist",
			path:      "testdata",
			loader:    config.NewFileSystemLoader(),
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.envs {
				t.Setenv(k, v)
			}

			cfg, err := tc.loader.Load(tc.config, tc.path, tc.envPrefix, tc.binder)
			if err != nil && !tc.expectErr {
				t.Errorf("unexpected error: %v", err)
			}

			if err == nil && tc.expectErr {
				t.Errorf("expected error, got none")
			}

			if !tc.expectErr {
				if diff := cmp.Diff(tc.expect, cfg); diff != "" {
					t.Errorf("mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestLoad_RepositoryConfig(t *testing.T) {
	testCases := []struct {
		name   string
		envs   map[string]string
		expect string
	}{
		{
			name:   "Codespace endpoint",
			envs:   map[string]string{"CODESPACE_NAME": "fluffy-space"},
			expect: "https://fluffy-space-8000.app.github.dev/api",
		},
		{
			name:   "Codespace endpoint from the frontend variable",
			envs:   map[string]string{"REACT_APP_CODESPACE_NAME": "fluffy-space"},
			expect: "https://fluffy-space-8000.app.github.dev/api",
		},
		{
			name: "Local emulator",
			envs: map[string]string{
				"CODESPACE_NAME":          "fluffy-space",
				"OCTOFIT_TRACKER_API_URL": "http://localhost:8000/api",
			},
			expect: "http://localhost:8000/api",
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.envs {
				t.Setenv(k, v)
			}

			cfg, err := config.NewFileSystemLoader().Load("config", "../../..", "OCTOFIT", config.NewDefaultEnvBinder())
			require.NoError(t, err)
			require.NoError(t, cfg.Validate())

			assert.Equal(t, tc.expect, cfg.Tracker.BaseURL())
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	require.NoError(t, config.LoadEnvFile("testdata/missing.env"))

	t.Setenv("OCTOFIT_TEST_DOTENV_VALUE", "")
	require.NoError(t, os.Unsetenv("OCTOFIT_TEST_DOTENV_VALUE"))

	require.NoError(t, config.LoadEnvFile("testdata/test.env"))
	assert.Equal(t, "from-dotenv", os.Getenv("OCTOFIT_TEST_DOTENV_VALUE"))
}

func getWorkingDir(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Errorf("get working dir: %v", err)
	}

	return wd
}

func TestProcessConfigPath(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		path      string
		expect    config.FileParts
		expectErr bool
	}{
		{
			name: "Valid config path",
			path: "testdata/config.yaml",
			expect: config.FileParts{
				FileName: "config",
				Path:     filepath.Join(getWorkingDir(t), "testdata"),
			},
		},
		{
			name:      "Invalid extension",
			path:      "testdata/config.json",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := config.ProcessConfigPath(tc.path)
			if err != nil && !tc.expectErr {
				t.Errorf("unexpected error: %v", err)
			}

			if err == nil && tc.expectErr {
				t.Errorf("expected error, got none")
			}

			if !tc.expectErr {
				if diff := cmp.Diff(tc.expect, got); diff != "" {
					t.Errorf("mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}
