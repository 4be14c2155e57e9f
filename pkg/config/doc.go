// Package config loads limo's layered configuration.
//
// Sources are merged in order, later ones winning:
//
//  1. the embedded defaults.toml
//  2. the user config file ($XDG_CONFIG_HOME/limo/config.toml or $LIMO_CONFIG)
//  3. LIMO_<SECTION>_<KEY> environment variables
//
// The result is decoded into Config with mapstructure. The package also
// writes the user file: InitConfig creates a commented template and
// AddDeployer appends a [[deployers]] table.
package config
