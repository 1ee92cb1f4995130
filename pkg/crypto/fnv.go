package crypto

import "hash/fnv"

// BlockKey derives a block key from its record name: FNV-1a-32 over the
// name's bytes. The game assigns every record a name at build time and
// stores only the hash.
func BlockKey(name string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(name))
	return h.Sum32()
}
