package manager

// Selection picks which package tool and argument dialect a command is built
// for. It is threaded explicitly into every Build call; changing it only
// affects commands built afterwards.
type Selection int

const (
	Primary Selection = iota
	Alternate
)

func (s Selection) String() string {
	switch s {
	case Primary:
		return "primary"
	case Alternate:
		return "alternate"
	}
	return "unknown"
}

// SelectionFor maps the persisted "use alternate" flag to a Selection.
func SelectionFor(useAlternate bool) Selection {
	if useAlternate {
		return Alternate
	}
	return Primary
}

// Toggle returns the other selection.
func (s Selection) Toggle() Selection {
	if s == Alternate {
		return Primary
	}
	return Alternate
}
