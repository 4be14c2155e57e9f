// Package paths provides centralized path handling for limo.
//
// It follows the XDG Base Directory specification:
//
//   - config: $XDG_CONFIG_HOME/limo, holds config.toml
//   - data:   $XDG_DATA_HOME/limo, holds deployers/<name> state dirs
//   - state:  $XDG_STATE_HOME/limo, holds limo.log
//
// # Environment Variables
//
//   - LIMO_CONFIG_DIR: override the config directory
//   - LIMO_DATA_DIR: override the data directory
//   - LIMO_STATE_DIR: override the state directory
//   - LIMO_CONFIG: use this file instead of <config dir>/config.toml
//
// A leading ~ in any of them is expanded to the home directory.
package paths
