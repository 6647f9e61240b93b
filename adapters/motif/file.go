package motif

import (
	"bufio"
	"os"
	"strings"

	dmotif "gobind/domain/motif"
	"gobind/internal/errors"
)

// LoadFile reads a tab-separated motif list and returns the catalog plus the
// consensus per motif id. Lines are "id<TAB>consensus",
// "id<TAB>name<TAB>consensus" or "id<TAB>name<TAB>alt<TAB>consensus"; blank
// lines and # comments are skipped.
func LoadFile(path string) (*dmotif.Catalog, map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open motif file %s", path)
	}
	defer f.Close()

	var motifs []dmotif.Motif
	consensi := make(map[string]string)

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		var m dmotif.Motif
		var cons string
		switch len(fields) {
		case 2:
			m = dmotif.Motif{ID: fields[0], Name: fields[0], AltName: fields[0]}
			cons = fields[1]
		case 3:
			m = dmotif.Motif{ID: fields[0], Name: fields[1], AltName: fields[1]}
			cons = fields[2]
		case 4:
			m = dmotif.Motif{ID: fields[0], Name: fields[1], AltName: fields[2]}
			cons = fields[3]
		default:
			return nil, nil, errors.ConfigInvalid("motif line needs 2 to 4 tab-separated fields: " + line)
		}
		motifs = append(motifs, m)
		consensi[m.ID] = cons
	}
	if err := sc.Err(); err != nil {
		return nil, nil, errors.Wrapf(err, "failed to read motif file %s", path)
	}

	catalog, err := dmotif.NewCatalog(motifs)
	if err != nil {
		return nil, nil, err
	}
	return catalog, consensi, nil
}
