package entry

// Record is the serialized form of an entry and its subtree, as written to
// a deployer's state file.
type Record struct {
	Separator bool     `json:"separator,omitempty"`
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Source    string   `json:"source,omitempty"`
	Enabled   bool     `json:"enabled,omitempty"`
	Children  []Record `json:"children,omitempty"`
}

// ToRecord converts e without children.
func (e *Entry) ToRecord() Record {
	r := Record{
		Separator: e.IsSeparator(),
		ID:        e.ID,
		Name:      e.Name,
	}
	if e.Mod != nil {
		r.Source = e.Mod.SourceName
		r.Enabled = e.Mod.Enabled
	}
	return r
}

// FromRecord builds an entry from r, ignoring r.Children.
func FromRecord(r Record) *Entry {
	if r.Separator {
		s := NewSeparator(r.Name)
		s.ID = r.ID
		return s
	}
	return NewMod(r.Name, r.Source, r.ID, r.Enabled)
}
