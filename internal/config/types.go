// Package config loads inkwell configuration from file, environment, and
// CLI flags with koanf. Precedence, highest first: flags, environment
// variables, config file, built-in defaults.
package config

// Defaults applied when neither file, environment, nor flags say otherwise.
const (
	DefaultContentDir = "content"
	DefaultStatePath  = ".inkwell/state.db"
	DefaultPort       = 4600
)

// Config is the resolved configuration of one inkwell project.
type Config struct {
	// ProjectRoot is the directory the config file was found in (or the
	// working directory). Relative paths resolve against it.
	ProjectRoot string `koanf:"-"`

	// ContentDir is the content root scanned for pages and folders.
	ContentDir string `koanf:"content_dir"`

	// StatePath is the local SQLite state database.
	StatePath string `koanf:"state_path"`

	// Port is the HTTP port of the sidebar API server.
	Port int `koanf:"port"`

	// Watch enables the filesystem watcher while serving.
	Watch bool `koanf:"watch"`

	// SessionSecret signs the session cookie carrying per-browser sidebar
	// open-state. Generated when empty.
	SessionSecret string `koanf:"session_secret"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}
