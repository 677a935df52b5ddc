package component

// Name is a human-readable label, used by debug output.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
