package ioutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/catrack/catracker/internal/tracker/event"
	"github.com/catrack/catracker/internal/tracker/tuning"
)

// LoadEvents parses every event block in path and returns them in file
// order.
func LoadEvents(path string) ([]event.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ioutil: open event file: %w", err)
	}
	defer f.Close()

	return parseEvents(f)
}

func parseEvents(r io.Reader) ([]event.Event, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var events []event.Event

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
			return nil, fmt.Errorf("ioutil: malformed event header %q", header)
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("ioutil: event id: %w", err)
		}
		nVertices, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("ioutil: vertex count: %w", err)
		}

		ev := event.Event{ID: id, Vertices: make([]event.Vertex, 0, nVertices)}

		for i := 0; i < nVertices; i++ {
			line, ok, err := nextNonEmptyLine(sc)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, fmt.Errorf("ioutil: event %d: truncated vertex list", id)
			}
			v, err := parseVertex(line)
			if err != nil {
				return nil, fmt.Errorf("ioutil: event %d: %w", id, err)
			}
			ev.Vertices = append(ev.Vertices, v)
		}

		for {
			line, ok, err := nextNonEmptyLine(sc)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, fmt.Errorf("ioutil: event %d: missing ENDEVENT", id)
			}
			if line == "ENDEVENT" {
				break
			}

			rc, layerIndex, err := parseCluster(line)
			if err != nil {
				return nil, fmt.Errorf("ioutil: event %d: %w", id, err)
			}
			if layerIndex < 0 || layerIndex >= tuning.LayersNum {
				return nil, fmt.Errorf("ioutil: event %d: cluster %d: layer index %d out of range", id, rc.ClusterID, layerIndex)
			}
			ev.Clusters[layerIndex] = append(ev.Clusters[layerIndex], rc)
		}

		events = append(events, ev)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ioutil: scan event file: %w", err)
	}

	return events, nil
}

func parseVertex(line string) (event.Vertex, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return event.Vertex{}, fmt.Errorf("malformed vertex record %q", line)
	}
	vals, err := parseFloats(fields)
	if err != nil {
		return event.Vertex{}, err
	}
	return event.Vertex{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

func parseCluster(line string) (event.RawCluster, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 7 {
		return event.RawCluster{}, 0, fmt.Errorf("malformed cluster record %q", line)
	}

	clusterID, err := strconv.Atoi(fields[0])
	if err != nil {
		return event.RawCluster{}, 0, fmt.Errorf("cluster id: %w", err)
	}
	vals, err := parseFloats(fields[1:5])
	if err != nil {
		return event.RawCluster{}, 0, err
	}
	mcID, err := strconv.Atoi(fields[5])
	if err != nil {
		return event.RawCluster{}, 0, fmt.Errorf("mc id: %w", err)
	}
	layerIndex, err := strconv.Atoi(fields[6])
	if err != nil {
		return event.RawCluster{}, 0, fmt.Errorf("layer index: %w", err)
	}

	return event.RawCluster{
		ClusterID: clusterID,
		X:         vals[0],
		Y:         vals[1],
		Z:         vals[2],
		Alpha:     vals[3],
		MCID:      mcID,
	}, layerIndex, nil
}

func parseFloats(fields []string) ([]float64, error) {
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f, err)
		}
		vals[i] = v
	}
	return vals, nil
}

// nextNonEmptyLine returns the next line with leading/trailing space
// trimmed, skipping blank lines. ok is false at EOF.
func nextNonEmptyLine(sc *bufio.Scanner) (string, bool, error) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		return line, true, nil
	}
	if err := sc.Err(); err != nil {
		return "", false, fmt.Errorf("ioutil: scan: %w", err)
	}
	return "", false, nil
}
