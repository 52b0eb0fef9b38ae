package entities

// Zone is a catalog entry naming a treatable body area.
// Zones are immutable reference data and are only ever read.
type Zone struct {
	id            int64
	name          string
	localizedName *string
	sexSpecific   bool
}

// ReconstructZone hydrates a Zone from stored data.
func ReconstructZone(id int64, name string, localizedName *string, sexSpecific bool) *Zone {
	return &Zone{
		id:            id,
		name:          name,
		localizedName: localizedName,
		sexSpecific:   sexSpecific,
	}
}

func (z *Zone) ID() int64              { return z.id }
func (z *Zone) Name() string           { return z.name }
func (z *Zone) LocalizedName() *string { return z.localizedName }
func (z *Zone) SexSpecific() bool      { return z.sexSpecific }
