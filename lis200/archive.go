package lis200

import (
	"fmt"
	"strings"
	"time"

	"github.com/pwitab/iec62056-21/message"
)

// ArchiveDataPoint is one value of one archive row, joined with the address
// and unit of its column.
type ArchiveDataPoint struct {
	Timestamp time.Time
	Value     string
	Address   string
	Unit      string
}

// ArchiveReadout joins the value rows of an archive with the column
// metadata read separately: addresses from attribute 4, units from
// attribute 3. Values alone carry neither.
type ArchiveReadout struct {
	Values    *message.AnswerDataMessage
	Addresses *message.AnswerDataMessage
	Units     *message.AnswerDataMessage

	// DatetimePosition is the 1 based column of the row timestamp.
	DatetimePosition int

	// Location interprets row timestamps, UTC when nil.
	Location *time.Location
}

// Data joins the readouts into one data point per value. Leading zeros are
// stripped from addresses; devices reference them without.
func (r *ArchiveReadout) Data() ([]ArchiveDataPoint, error) {
	addresses, err := metadataLine(r.Addresses, "addresses")
	if err != nil {
		return nil, err
	}
	units, err := metadataLine(r.Units, "units")
	if err != nil {
		return nil, err
	}

	index := r.DatetimePosition - 1
	if index < 0 {
		return nil, fmt.Errorf("lis200: datetime position %d out of range [1, )", r.DatetimePosition)
	}

	var points []ArchiveDataPoint
	for _, line := range r.Values.DataBlock.DataLines {
		sets := line.DataSets
		if index >= len(sets) {
			return nil, fmt.Errorf("lis200: datetime position %d exceeds row width %d",
				r.DatetimePosition, len(sets))
		}

		timestamp, err := ParseTimestamp(sets[index].Value, r.Location)
		if err != nil {
			return nil, err
		}

		for i, set := range sets {
			if i >= len(addresses) || i >= len(units) {
				return nil, fmt.Errorf("lis200: row width %d exceeds metadata width", len(sets))
			}

			points = append(points, ArchiveDataPoint{
				Timestamp: timestamp,
				Value:     set.Value,
				Address:   strings.TrimLeft(addresses[i].Value, "0"),
				Unit:      units[i].Value,
			})
		}
	}

	return points, nil
}

// metadataLine returns the single row of an attribute readout.
func metadataLine(answer *message.AnswerDataMessage, what string) ([]message.DataSet, error) {
	if answer == nil || len(answer.DataBlock.DataLines) == 0 {
		return nil, fmt.Errorf("lis200: %s readout is empty", what)
	}

	return answer.DataBlock.DataLines[0].DataSets, nil
}
