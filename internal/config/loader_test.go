package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/okian/scout/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.ArtifactsPath, convey.ShouldEqual, "models/scout.db")
				convey.So(cfg.DefaultTopN, convey.ShouldEqual, 5)
				convey.So(cfg.MaxTopN, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SCOUT_ADDR", ":8080")
			_ = os.Setenv("SCOUT_ARTIFACTS_PATH", "/var/lib/scout/model.db")
			_ = os.Setenv("SCOUT_DEFAULT_TOP_N", "3")
			_ = os.Setenv("SCOUT_MAX_TOP_N", "10")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.ArtifactsPath, convey.ShouldEqual, "/var/lib/scout/model.db")
				convey.So(cfg.DefaultTopN, convey.ShouldEqual, 3)
				convey.So(cfg.MaxTopN, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
log_level: "debug"
artifacts_path: "models/other.db"
default_top_n: 4
max_top_n: 15
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SCOUT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.ArtifactsPath, convey.ShouldEqual, "models/other.db")
				convey.So(cfg.DefaultTopN, convey.ShouldEqual, 4)
				convey.So(cfg.MaxTopN, convey.ShouldEqual, 15)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
default_top_n: 4
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SCOUT_CONFIG", tmpFile)
			_ = os.Setenv("SCOUT_ADDR", ":8080") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")  // Overridden by env
				convey.So(cfg.DefaultTopN, convey.ShouldEqual, 4) // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			invalidYaml := `invalid: yaml: content: [`
			tmpFile := createTempConfigFile(invalidYaml)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SCOUT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the top_n bounds are inconsistent", func() {
			_ = os.Setenv("SCOUT_DEFAULT_TOP_N", "30")
			_ = os.Setenv("SCOUT_MAX_TOP_N", "10")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then validation should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// clearConfigEnvVars removes all SCOUT_* variables the loader reads.
func clearConfigEnvVars() {
	for _, key := range []string{
		"SCOUT_CONFIG",
		"SCOUT_ADDR",
		"SCOUT_LOG_LEVEL",
		"SCOUT_ARTIFACTS_PATH",
		"SCOUT_DEFAULT_TOP_N",
		"SCOUT_MAX_TOP_N",
	} {
		_ = os.Unsetenv(key)
	}
}

// createTempConfigFile writes content to a temp file and returns its path.
func createTempConfigFile(content string) string {
	f, err := os.CreateTemp("", "scout-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := f.WriteString(content); err != nil {
		panic(err)
	}
	if err := f.Close(); err != nil {
		panic(err)
	}
	return f.Name()
}
