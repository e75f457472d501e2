package environment

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// ConfigFileKey is the env key (under the app namespace) naming an optional
// TOML configuration file.
const ConfigFileKey = "CONFIG_FILE"

// LoadTOML decodes the TOML file at path into cfg. Keys the struct does not
// declare are ignored so a single file can feed several config structs.
// An empty path is a no-op.
func LoadTOML(path string, cfg any) error {
	_, err := decodeTOML(path, cfg)
	return err
}

// Parse fills cfg from, in increasing precedence: struct-tag defaults, the
// TOML file named by <prefix>_CONFIG_FILE, and environment variables.
func Parse(prefix string, cfg any) error {
	defined, err := decodeTOML(GetNamespaceEnvValue(prefix, ConfigFileKey), cfg)
	if err != nil {
		return err
	}
	return parseTags(prefix, cfg, defined)
}

// decodeTOML returns the set of top level keys present in the file.
func decodeTOML(path string, cfg any) (map[string]bool, error) {
	defined := make(map[string]bool)
	if path == "" {
		return defined, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("decode toml %s: %w", path, err)
	}

	for _, key := range md.Keys() {
		if len(key) == 1 {
			defined[key[0]] = true
		}
	}
	return defined, nil
}
