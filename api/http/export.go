// Copyright 2026 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package http

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/mendersoftware/scaffold/model"
)

const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"

	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	exportSheet = "Sheet1"
)

var exportFormats = []string{formatCSV, formatXLSX}

func exportContentType(format string) string {
	if format == formatXLSX {
		return contentTypeXLSX
	}
	return contentTypeCSV
}

func exportFilename(resource, format string) string {
	return fmt.Sprintf("%s-%s.%s", resource, time.Now().UTC().Format("20060102"), format)
}

func writeExport(w io.Writer, format string, t *model.Table) error {
	if format == formatXLSX {
		return writeXLSX(w, t)
	}
	return writeCSV(w, t)
}

func writeCSV(w io.Writer, t *model.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return errors.Wrap(err, "failed to write csv header")
	}
	line := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, v := range row {
			line[i] = cellText(v)
		}
		if err := cw.Write(line); err != nil {
			return errors.Wrap(err, "failed to write csv row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush csv")
}

func writeXLSX(w io.Writer, t *model.Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, col := range t.Columns {
		if err := setCell(f, i+1, 1, col); err != nil {
			return err
		}
	}
	for r, row := range t.Rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			if err := setCell(f, c+1, r+2, v); err != nil {
				return err
			}
		}
	}
	return errors.Wrap(f.Write(w), "failed to write xlsx")
}

func setCell(f *excelize.File, col, row int, v interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return errors.Wrap(err, "failed to address xlsx cell")
	}
	switch v.(type) {
	case string, bool, int, int32, int64, float32, float64, time.Time:
	default:
		v = cellText(v)
	}
	return errors.Wrap(f.SetCellValue(exportSheet, cell, v), "failed to set xlsx cell")
}

func cellText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		return val.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}
