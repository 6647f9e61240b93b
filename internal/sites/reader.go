package sites

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gobind/domain/genomic"
	"gobind/internal/errors"
)

// ReadAll loads a motif's full occurrence stream from its temp file.
func ReadAll(path string, conditions int) ([]genomic.Occurrence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open site stream %s", path)
	}
	defer f.Close()

	var out []genomic.Occurrence
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if line == "" {
			continue
		}
		occ, err := DecodeLine(line, conditions)
		if err != nil {
			return nil, errors.Wrapf(err, "corrupt site stream %s line %d", path, lineNo)
		}
		out = append(out, occ)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read site stream %s", path)
	}
	return out, nil
}

// ReadRegions loads peak regions from a BED file. The first three columns are
// the interval; any remaining columns are kept as the region's extra columns.
// Comment and track lines are skipped.
func ReadRegions(path string) ([]genomic.Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open regions file %s", path)
	}
	defer f.Close()

	var out []genomic.Region
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 3 {
			return nil, fmt.Errorf("regions file %s line %d: want at least 3 columns, got %d", path, lineNo, len(cols))
		}
		start, err := strconv.Atoi(cols[1])
		if err != nil {
			return nil, fmt.Errorf("regions file %s line %d: bad start %q", path, lineNo, cols[1])
		}
		end, err := strconv.Atoi(cols[2])
		if err != nil {
			return nil, fmt.Errorf("regions file %s line %d: bad end %q", path, lineNo, cols[2])
		}
		r := genomic.Region{Chrom: cols[0], Start: start, End: end, Extra: append([]string(nil), cols[3:]...)}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("regions file %s line %d: %w", path, lineNo, err)
		}
		out = append(out, r)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read regions file %s", path)
	}
	return out, nil
}
