package sites

import (
	"bufio"
	"os"
	"strings"

	"gobind/internal/errors"
)

// WriteTSV writes a tab-delimited table. A nil header writes data rows only.
func WriteTSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.OutputWrite(path, err)
	}
	w := bufio.NewWriter(f)
	if header != nil {
		if _, err := w.WriteString(strings.Join(header, "\t") + "\n"); err != nil {
			f.Close()
			return errors.OutputWrite(path, err)
		}
	}
	for _, row := range rows {
		if _, err := w.WriteString(strings.Join(row, "\t") + "\n"); err != nil {
			f.Close()
			return errors.OutputWrite(path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errors.OutputWrite(path, err)
	}
	if err := f.Close(); err != nil {
		return errors.OutputWrite(path, err)
	}
	return nil
}
