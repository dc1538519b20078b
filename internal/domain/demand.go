package domain

import "time"

// DemandRecord is one historical shipment read from the uploaded demand table.
// The lane key is derived from Origin and Destination at construction and is
// only readable through Lane.
type DemandRecord struct {
	ID            string
	Date          *time.Time
	RealizedLabel string
	RealizedMode  Mode
	Client        string
	Origin        string
	Destination   string

	lane LaneKey
}

func NewDemandRecord(id string, date *time.Time, realizedLabel, client, origin, destination string) DemandRecord {
	return DemandRecord{
		ID:            id,
		Date:          date,
		RealizedLabel: realizedLabel,
		RealizedMode:  ParseMode(realizedLabel),
		Client:        client,
		Origin:        origin,
		Destination:   destination,
		lane:          NewLaneKey(origin, destination),
	}
}

func (d DemandRecord) Lane() LaneKey { return d.lane }

// Dated reports whether the shipment carries a date.
func (d DemandRecord) Dated() bool { return d.Date != nil }
