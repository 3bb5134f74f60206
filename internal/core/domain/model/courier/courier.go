package courier

import (
	"fmt"
	"slices"
)

// ID identifies a courier service. The values match the courier dictionary
// of the back office database and must not be renumbered.
type ID int

// Courier services known to the back office.
const (
	IDBRT      ID = 4
	IDSDA      ID = 7
	IDPostAT   ID = 11
	IDFDBRT    ID = 12
	IDCorreos  ID = 14
	IDGLSES    ID = 15
	IDLogpoint ID = 16
)

// getCourierNames returns the display names of known courier services.
func getCourierNames() map[ID]string {
	return map[ID]string{
		IDBRT:      "BRT",
		IDSDA:      "SDA",
		IDPostAT:   "Post AT",
		IDFDBRT:    "FD BRT",
		IDCorreos:  "Correos",
		IDGLSES:    "GLS ES",
		IDLogpoint: "Logpoint",
	}
}

// KnownIDs returns the identifiers of every known courier service in
// ascending order. Exception dispatch registers a handler per entry, so the
// set is fixed regardless of the current dictionary contents.
func KnownIDs() []ID {
	names := getCourierNames()
	ids := make([]ID, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// IsKnown reports whether the ID belongs to a courier service registered in
// the back office.
func (id ID) IsKnown() bool {
	_, ok := getCourierNames()[id]
	return ok
}

// String returns the courier's display name, or "Courier#<id>" for
// identifiers outside the known set.
func (id ID) String() string {
	if name, ok := getCourierNames()[id]; ok {
		return name
	}
	return fmt.Sprintf("Courier#%d", int(id))
}
