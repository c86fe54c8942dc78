package ioutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/catrack/catracker/internal/tracker/event"
)

// LoadLabels parses every label block in path and returns one
// event.MCLookup per event, in file order.
func LoadLabels(path string) ([]event.MCLookup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ioutil: open label file: %w", err)
	}
	defer f.Close()

	return parseLabels(f)
}

func parseLabels(r io.Reader) ([]event.MCLookup, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lookups []event.MCLookup

	for {
		header, ok, err := nextNonEmptyLine(sc)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		fields := strings.Fields(header)
		if len(fields) != 3 || fields[0] != "EVENT" {
			return nil, fmt.Errorf("ioutil: malformed label header %q", header)
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("ioutil: event id: %w", err)
		}
		nLabels, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("ioutil: label count: %w", err)
		}

		lookup := make(event.MCLookup, nLabels)

		for i := 0; i < nLabels; i++ {
			line, ok, err := nextNonEmptyLine(sc)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, fmt.Errorf("ioutil: event %d: truncated label list", id)
			}
			label, err := parseLabel(line)
			if err != nil {
				return nil, fmt.Errorf("ioutil: event %d: %w", id, err)
			}
			lookup[label.MCID] = label
		}

		line, ok, err := nextNonEmptyLine(sc)
		if err != nil {
			return nil, err
		}
		if !ok || line != "ENDEVENT" {
			return nil, fmt.Errorf("ioutil: event %d: missing ENDEVENT", id)
		}

		lookups = append(lookups, lookup)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ioutil: scan label file: %w", err)
	}

	return lookups, nil
}

func parseLabel(line string) (event.Label, error) {
	fields := strings.Fields(line)
	if len(fields) != 6 {
		return event.Label{}, fmt.Errorf("malformed label record %q", line)
	}

	mcID, err := strconv.Atoi(fields[0])
	if err != nil {
		return event.Label{}, fmt.Errorf("mc id: %w", err)
	}
	vals, err := parseFloats(fields[1:4])
	if err != nil {
		return event.Label{}, err
	}
	pdgCode, err := strconv.Atoi(fields[4])
	if err != nil {
		return event.Label{}, fmt.Errorf("pdg code: %w", err)
	}
	nClusters, err := strconv.Atoi(fields[5])
	if err != nil {
		return event.Label{}, fmt.Errorf("cluster count: %w", err)
	}

	return event.Label{
		MCID:      mcID,
		Pt:        vals[0],
		Phi:       vals[1],
		Eta:       vals[2],
		PDGCode:   pdgCode,
		NClusters: nClusters,
	}, nil
}
