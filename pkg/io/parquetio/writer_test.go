package parquetio

import (
	"strings"
	"testing"

	"github.com/wdm0006/dswizard/pkg/frame"
)

func TestSchemaJSONTextColumn(t *testing.T) {
	got := schemaJSON(frame.Schema{Fields: []frame.Field{{Name: "city", Type: frame.TypeString}}})
	if !strings.Contains(got, "name=city, repetitiontype=OPTIONAL, type=UTF8") {
		t.Fatalf("text column tag: %s", got)
	}
	if strings.Contains(got, "convertedtype") {
		t.Fatalf("tag key unknown to the writer: %s", got)
	}
}
