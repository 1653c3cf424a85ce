// Package replay reads recorded observation batches for the replay tool.
//
// Two formats are supported: JSONL, one frame per line as
// {"points": [[x, y], ...]}, and CSV with frame,x,y rows where
// consecutive rows sharing a frame value form one batch.
package replay

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Frame is one batch of observed points, split per axis the way
// PositionTracker consumes them.
type Frame struct {
	XS []float64
	YS []float64
}

// Len returns the number of points in the frame.
func (f Frame) Len() int {
	return len(f.XS)
}

type jsonlFrame struct {
	Points [][]float64 `json:"points"`
}

// ReadJSONL parses a JSONL frame stream. Blank lines are skipped; each
// remaining line must be a {"points": [[x, y], ...]} object. An empty
// points array is preserved as an empty frame so callers can decide how
// to handle observation gaps.
func ReadJSONL(r io.Reader) ([]Frame, error) {
	var frames []Frame
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var jf jsonlFrame
		if err := json.Unmarshal(line, &jf); err != nil {
			return nil, fmt.Errorf("line %d: parse frame: %w", lineNo, err)
		}

		frame := Frame{
			XS: make([]float64, 0, len(jf.Points)),
			YS: make([]float64, 0, len(jf.Points)),
		}
		for pi, p := range jf.Points {
			if len(p) != 2 {
				return nil, fmt.Errorf("line %d: point %d has %d coordinates, want 2", lineNo, pi, len(p))
			}
			frame.XS = append(frame.XS, p[0])
			frame.YS = append(frame.YS, p[1])
		}
		frames = append(frames, frame)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read frames: %w", err)
	}
	return frames, nil
}

// ReadCSV parses a frame,x,y CSV stream. A header row is skipped when the
// first field is not numeric. Rows must be grouped by frame value; each
// change of frame value starts a new batch.
func ReadCSV(r io.Reader) ([]Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	var frames []Frame
	var current *Frame
	currentKey := ""

	rowNo := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rowNo++

		if _, numErr := strconv.ParseInt(record[0], 10, 64); numErr != nil {
			if rowNo == 1 {
				continue // header row
			}
			return nil, fmt.Errorf("row %d: bad frame value %q", rowNo, record[0])
		}

		x, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad x value %q", rowNo, record[1])
		}
		y, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad y value %q", rowNo, record[2])
		}

		if current == nil || record[0] != currentKey {
			frames = append(frames, Frame{})
			current = &frames[len(frames)-1]
			currentKey = record[0]
		}
		current.XS = append(current.XS, x)
		current.YS = append(current.YS, y)
	}
	return frames, nil
}
