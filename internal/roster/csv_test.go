package roster

import (
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	in := strings.Join([]string{
		"full_name,national_id",
		"Amira Hassan,1001",
		" Omar Farouk , 1002 ",
		",",
		"Layla Ahmed,1003",
	}, "\n")

	students, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(students) != 3 {
		t.Fatalf("parsed %d rows, want 3", len(students))
	}
	if students[1].FullName != "Omar Farouk" || students[1].NationalID != "1002" {
		t.Fatalf("row 1 not trimmed: %+v", students[1])
	}
}

func TestParseCSVColumnOrderAndExtras(t *testing.T) {
	in := strings.Join([]string{
		"grade,national_id,full_name",
		"A,1001,Amira Hassan",
	}, "\n")

	students, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(students) != 1 {
		t.Fatalf("parsed %d rows", len(students))
	}
	if students[0].FullName != "Amira Hassan" || students[0].NationalID != "1001" {
		t.Fatalf("row = %+v", students[0])
	}
}

func TestParseCSVHeaderCaseInsensitive(t *testing.T) {
	in := "Full_Name,NATIONAL_ID\nAmira Hassan,1001\n"
	students, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(students) != 1 {
		t.Fatalf("parsed %d rows", len(students))
	}
}

func TestParseCSVMissingColumn(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("full_name\nAmira\n")); err == nil {
		t.Fatal("missing national_id column accepted")
	}
	if _, err := ParseCSV(strings.NewReader("")); err == nil {
		t.Fatal("empty file accepted")
	}
}
