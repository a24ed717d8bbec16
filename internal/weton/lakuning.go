package weton

// Lakuning is the archetype indexed by neptu. Every neptu from 7 to 18
// has a label; all other values map to LakuningUnknown.
type Lakuning int

const (
	LakuningUnknown Lakuning = iota
	LakuningPenditoSakti
	LakuningGeni
	LakuningAngin
	LakuningPenditoMbangunTeki
	LakuningSetan
	LakuningKembang
	LakuningLintang
	LakuningBulan
	LakuningSrengenge
	LakuningBumi
	LakuningGunung
	LakuningParipurna
)

// Bounds of the neptu values that carry a lakuning.
const (
	MinNeptu = 7
	MaxNeptu = 18
)

var lakuningNames = [...]string{
	LakuningUnknown:            UnknownMarker,
	LakuningPenditoSakti:       "Lakuning Pendito Sakti",
	LakuningGeni:               "Lakuning Geni",
	LakuningAngin:              "Lakuning Angin",
	LakuningPenditoMbangunTeki: "Lakuning Pendito Mbangun Teki",
	LakuningSetan:              "Lakuning Setan",
	LakuningKembang:            "Lakuning Kembang",
	LakuningLintang:            "Lakuning Lintang",
	LakuningBulan:              "Lakuning Bulan",
	LakuningSrengenge:          "Lakuning Srengenge",
	LakuningBumi:               "Lakuning Bumi",
	LakuningGunung:             "Lakuning Gunung",
	LakuningParipurna:          "Lakuning Paripurna",
}

// LakuningFor returns the archetype for a neptu value.
func LakuningFor(neptu int) Lakuning {
	if neptu < MinNeptu || neptu > MaxNeptu {
		return LakuningUnknown
	}
	return Lakuning(neptu - MinNeptu + 1)
}

func (l Lakuning) String() string {
	if l < LakuningUnknown || int(l) >= len(lakuningNames) {
		return UnknownMarker
	}
	return lakuningNames[l]
}
