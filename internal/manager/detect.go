package manager

import "os/exec"

// Detection records which of the configured binaries are on PATH.
type Detection struct {
	Primary   bool
	Alternate bool
	Elevator  bool
}

func Detect(b Builder) Detection {
	return Detection{
		Primary:   onPath(b.Primary),
		Alternate: onPath(b.Alternate),
		Elevator:  onPath(b.Elevator),
	}
}

// Usable reports whether mutating operations can run under sel. Removal
// always needs the elevated primary tool.
func (d Detection) Usable(sel Selection) bool {
	if !d.Primary || !d.Elevator {
		return false
	}
	if sel == Alternate {
		return d.Alternate
	}
	return true
}

func onPath(name string) bool {
	if name == "" {
		return false
	}
	_, err := exec.LookPath(name)
	return err == nil
}
