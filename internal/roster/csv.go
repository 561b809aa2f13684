package roster

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// ParseCSV reads an import file with a header row. Columns full_name
// and national_id are required; anything else is ignored.
func ParseCSV(r io.Reader) ([]Student, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	hdr, err := cr.Read()
	if err != nil {
		return nil, errors.New("empty or unreadable CSV")
	}
	idx := map[string]int{}
	for i, h := range hdr {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, k := range []string{"full_name", "national_id"} {
		if _, ok := idx[k]; !ok {
			return nil, errors.New("missing column: " + k)
		}
	}
	var students []Student
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		st := Student{
			FullName:   strings.TrimSpace(rec[idx["full_name"]]),
			NationalID: strings.TrimSpace(rec[idx["national_id"]]),
		}
		if st.FullName == "" && st.NationalID == "" {
			continue
		}
		students = append(students, st)
	}
	return students, nil
}
