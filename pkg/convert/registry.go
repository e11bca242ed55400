package convert

// Registry gives every distinct atom a dense positive variable, in first-seen order
type Registry interface {
	// Returns the variable of atom, assigning the next one if the atom was never seen
	Resolve(atom string) int64
	// Returns the number of distinct atoms resolved so far
	Len() int
	// Returns the resolved atoms, where the atom of variable v is found at index v-1
	Atoms() []string
}

func NewRegistry() Registry {
	return &registryImplementation{
		variables: make(map[string]int64),
	}
}

type registryImplementation struct {
	variables map[string]int64
	atoms     []string
}

func (registry *registryImplementation) Resolve(atom string) int64 {
	if variable, ok := registry.variables[atom]; ok {
		return variable
	}
	registry.atoms = append(registry.atoms, atom)
	variable := int64(len(registry.atoms))
	registry.variables[atom] = variable
	return variable
}

func (registry *registryImplementation) Len() int {
	return len(registry.atoms)
}

func (registry *registryImplementation) Atoms() []string {
	atoms := make([]string, len(registry.atoms))
	copy(atoms, registry.atoms)
	return atoms
}
