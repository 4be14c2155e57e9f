package deployer

import "github.com/alekulyn/limo/pkg/profile"

// AddProfile creates a profile. Its load order is copied from profile
// copyFrom, or from the current state when copyFrom is negative or names
// the current profile.
func (d *Deployer) AddProfile(name string, copyFrom int) (profile.Profile, error) {
	return d.profiles.Add(name, copyFrom)
}

// SetProfile switches to profile id, reloads the load order and rewrites
// the external file to match it.
func (d *Deployer) SetProfile(id int) error {
	changed, err := d.profiles.Switch(id)
	if err != nil || !changed {
		return err
	}
	if err := d.Load(); err != nil {
		return err
	}
	return d.commit()
}

// RemoveProfile deletes a profile other than the current one.
func (d *Deployer) RemoveProfile(id int) error {
	return d.profiles.Remove(id)
}

// RenameProfile renames profile id.
func (d *Deployer) RenameProfile(id int, name string) error {
	return d.profiles.Rename(id, name)
}

func (d *Deployer) Profiles() []profile.Profile {
	return d.profiles.List()
}

func (d *Deployer) ProfileNames() []string {
	return d.profiles.Names()
}

func (d *Deployer) CurrentProfile() profile.Profile {
	return d.profiles.Current()
}
