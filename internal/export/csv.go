package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/scopetrail/internal/trail"
)

// WriteCSV dumps every sample of every slot, oldest slot first.
func WriteCSV(w io.Writer, frame int, slots []trail.Slot) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"frame", "slot", "opacity", "i", "x", "y"}); err != nil {
		return err
	}

	f := strconv.Itoa(frame)
	for _, s := range slots {
		rank := strconv.Itoa(s.Rank)
		alpha := strconv.FormatFloat(s.Opacity, 'f', 6, 64)
		for i := 0; i < s.Curve.Len(); i++ {
			row := []string{
				f, rank, alpha, strconv.Itoa(i),
				strconv.FormatFloat(s.Curve.X[i], 'f', 6, 64),
				strconv.FormatFloat(s.Curve.Y[i], 'f', 6, 64),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
