package fmdl

import "strconv"

// Dictionary maps a raw hash to a human-readable string. It is optional and
// only affects display; decoding never consults it.
type Dictionary interface {
	Lookup(hash uint64) (string, bool)
}

// Resolver maps nameId/textureId fields through a model's hash tables.
// It never mutates the tables and is safe for concurrent use.
type Resolver struct {
	names    []uint64
	textures []uint64
	dict     Dictionary
}

func NewResolver(names, textures []uint64, dict Dictionary) *Resolver {
	return &Resolver{names: names, textures: textures, dict: dict}
}

// NameHash returns the section 0x16 hash at id.
func (r *Resolver) NameHash(id uint16) (uint64, error) {
	if int(id) >= len(r.names) {
		return 0, &IndexOutOfRangeError{Table: "name hashes", Index: int(id), Len: len(r.names), Offset: -1}
	}
	return r.names[id], nil
}

// TextureHash returns the section 0x15 hash at id with the format bias removed.
func (r *Resolver) TextureHash(id uint16) (uint64, error) {
	if int(id) >= len(r.textures) {
		return 0, &IndexOutOfRangeError{Table: "texture hashes", Index: int(id), Len: len(r.textures), Offset: -1}
	}
	return r.textures[id] - TextureHashBias, nil
}

// Name resolves id to its dictionary string, or the lowercase hex hash.
func (r *Resolver) Name(id uint16) (string, error) {
	h, err := r.NameHash(id)
	if err != nil {
		return "", err
	}
	return r.Display(h), nil
}

// Texture resolves id to its dictionary string, or the lowercase hex hash.
func (r *Resolver) Texture(id uint16) (string, error) {
	h, err := r.TextureHash(id)
	if err != nil {
		return "", err
	}
	return r.Display(h), nil
}

// Display formats a hash for humans.
func (r *Resolver) Display(hash uint64) string {
	if r.dict != nil {
		if s, ok := r.dict.Lookup(hash); ok {
			return s
		}
	}
	return strconv.FormatUint(hash, 16)
}

// MeshGroupName follows meshGroupId -> section 0x1 nameId -> name hash.
func (m *Model) MeshGroupName(r *Resolver, meshGroupID uint16) (string, error) {
	if int(meshGroupID) >= len(m.MeshGroups) {
		return "", &IndexOutOfRangeError{Table: "mesh groups", Index: int(meshGroupID), Len: len(m.MeshGroups), Offset: -1}
	}
	return r.Name(m.MeshGroups[meshGroupID].NameID)
}
