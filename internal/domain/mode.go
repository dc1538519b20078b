package domain

// Mode is the transport capacity a shipment was (or should have been) served by.
type Mode string

const (
	ModeFleet      Mode = "FLEET"
	ModeAggregated Mode = "AGGREGATED"
	ModeThirdParty Mode = "THIRD_PARTY"
	ModeUnknown    Mode = "UNKNOWN"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeFleet, ModeAggregated, ModeThirdParty, ModeUnknown}

// Labels are matched after NormalizeKey, so accents and case do not matter.
var modeLabels = map[string]Mode{
	"FROTA":         ModeFleet,
	"FROTA PROPRIA": ModeFleet,
	"FLEET":         ModeFleet,
	"AGREGADO":      ModeAggregated,
	"AGREGADOS":     ModeAggregated,
	"AGGREGATED":    ModeAggregated,
	"TERCEIRO":      ModeThirdParty,
	"TERCEIROS":     ModeThirdParty,
	"THIRD_PARTY":   ModeThirdParty,
	"THIRD PARTY":   ModeThirdParty,
}

// ParseMode maps a raw realized-mode label to a Mode. It is total:
// anything unrecognized maps to ModeUnknown.
func ParseMode(label string) Mode {
	if m, ok := modeLabels[NormalizeKey(label)]; ok {
		return m
	}
	return ModeUnknown
}

// Known reports whether the mode came from a recognized label.
func (m Mode) Known() bool { return m != ModeUnknown && m != "" }

// Label returns the display label used in reports and exports.
func (m Mode) Label() string {
	switch m {
	case ModeFleet:
		return "Frota Própria"
	case ModeAggregated:
		return "Agregado"
	case ModeThirdParty:
		return "Terceiro"
	default:
		return "Desconhecido"
	}
}
