package config

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/filesystem"
	"github.com/alekulyn/limo/pkg/types"
)

// AddDeployer appends a [[deployers]] table to the user config file at
// path, creating the file when needed. Other settings in the file are
// kept, but comments are not: the file is re-encoded.
func AddDeployer(fsys types.FS, path string, d DeployerConfig) error {
	if err := d.Validate(); err != nil {
		return err
	}

	doc := map[string]interface{}{}
	exists, err := filesystem.Exists(fsys, path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "cannot stat %s", path)
	}
	if exists {
		data, err := fsys.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path)
		}
		if err := toml.Unmarshal(data, &doc); err != nil {
			return errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path).
				WithDetail("path", path)
		}
	}

	var deployers []interface{}
	switch existing := doc["deployers"].(type) {
	case nil:
	case []interface{}:
		deployers = existing
	default:
		return errors.Newf(errors.ErrConfigInvalid, "%s: deployers must be an array of tables", path)
	}
	for _, raw := range deployers {
		if m, ok := raw.(map[string]interface{}); ok && m["name"] == d.Name {
			return errors.Newf(errors.ErrAlreadyExists, "deployer %q already exists", d.Name).
				WithDetail("path", path)
		}
	}

	table := map[string]interface{}{
		"name":       d.Name,
		"dialect":    d.Dialect,
		"target_dir": d.TargetDir,
	}
	if d.StateDir != "" {
		table["state_dir"] = d.StateDir
	}
	if d.DataDir != "" {
		table["data_dir"] = d.DataDir
	}
	doc["deployers"] = append(deployers, table)

	data, err := toml.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode config")
	}
	if err := filesystem.WriteFileAtomic(fsys, path, data); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	return nil
}
