// Package config provides user configuration management for tablekit.
//
// The configuration is a YAML file holding display preferences, the claimed
// account username and the list of linked devices. It follows OS-specific
// conventions for storage location.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/tablekit/config.yaml or $HOME/.config/tablekit/config.yaml
//   - macOS: $HOME/.config/tablekit/config.yaml
//   - Windows: %LOCALAPPDATA%\tablekit\config.yaml
//
// The --config flag overrides the location; see LoadFrom.
//
// # Usage Example
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg.Preferences.Theme = "dark"
//	cfg.SetAccount("alice", "42")
//
//	// Save changes atomically
//	if err := cfg.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// File operations are serialized with a package-level mutex. A *Config value
// itself is not safe for concurrent mutation.
package config
