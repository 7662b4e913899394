package exporter

import (
	"idxcli/pkg/contracts/domain"
)

// NormalizedHeader is the exact header of every normalized index file.
var NormalizedHeader = []string{"Date", "Open", "Close"}

// WriteSeries writes a normalized series to filePath with the fixed
// Date,Open,Close schema, streaming row by row since a series can span
// a decade of trading days. No BOM is written: the files are consumed
// by analysis tooling, not Excel.
func (w *CSVWriter) WriteSeries(filePath string, series domain.Series) error {
	stream, err := w.CreateStreamWriter(filePath, NormalizedHeader)
	if err != nil {
		return err
	}
	for _, point := range series.Points {
		if err := stream.WriteRecord(point.CSVRow()); err != nil {
			stream.Close()
			return err
		}
	}
	return stream.Close()
}
