package parquetio

import (
	"bytes"
	"encoding/json"
	"fmt"

	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"

	"github.com/wdm0006/dswizard/pkg/frame"
)

type jsonField struct {
	Tag string `json:"Tag"`
}

type jsonSchema struct {
	Tag    string      `json:"Tag"`
	Fields []jsonField `json:"Fields"`
}

// schemaJSON builds the JSON schema the parquet-go JSONWriter expects. Every
// column is optional.
func schemaJSON(s frame.Schema) string {
	sc := jsonSchema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for _, fd := range s.Fields {
		tag := "name=" + fd.Name + ", repetitiontype=OPTIONAL, type="
		switch fd.Type {
		case frame.TypeFloat:
			tag += "DOUBLE"
		case frame.TypeInt:
			tag += "INT64"
		case frame.TypeBool:
			tag += "BOOLEAN"
		default:
			tag += "UTF8"
		}
		sc.Fields = append(sc.Fields, jsonField{Tag: tag})
	}
	b, _ := json.Marshal(sc)
	return string(b)
}

// WriteAll writes f to a parquet file at path.
func WriteAll(path string, f *frame.Frame) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	w, err := pw.NewJSONWriter(schemaJSON(f.Schema()), fw, 4)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	names := f.Schema().Names()
	var line bytes.Buffer
	for r := 0; r < f.Rows(); r++ {
		rec := make(map[string]any, len(names))
		for c, name := range names {
			if v := f.Column(c).Value(r); v != nil {
				rec[name] = v
			}
		}
		line.Reset()
		if err := json.NewEncoder(&line).Encode(rec); err != nil {
			_ = fw.Close()
			return err
		}
		if err := w.Write(line.String()); err != nil {
			_ = fw.Close()
			return fmt.Errorf("parquet write row %d: %w", r, err)
		}
	}
	if err := w.WriteStop(); err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet flush: %w", err)
	}
	return fw.Close()
}
