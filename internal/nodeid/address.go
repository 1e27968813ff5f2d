// internal/nodeid/address.go
package nodeid

// New returns the address of a file produced by the given stage.
func New(stage Stage, filename string) *Address {
	return &Address{Stage: stage, Name: filename}
}

// NewPhony returns the address of a phony target.
func NewPhony(name string) *Address {
	return &Address{Stage: Phony, Name: name}
}

// String serializes the Address into its canonical target path.
func (a *Address) String() string {
	if a == nil {
		return ""
	}
	if a.Stage == Phony || int(a.Stage) >= len(layouts) {
		return a.Name
	}
	l := layouts[a.Stage]
	return l.dir + "/" + a.Name + l.ext
}

// Equal checks for equality between two Address pointers.
func (a *Address) Equal(other *Address) bool {
	if a == nil || other == nil {
		return a == other
	}
	return *a == *other
}
